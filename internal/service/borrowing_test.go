package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesezeit/lesezeit-server/internal/domain"
	domainerrors "github.com/lesezeit/lesezeit-server/internal/errors"
	"github.com/lesezeit/lesezeit-server/internal/store/sqlite"
)

// setupTestServices creates all services on a shared temp database.
func setupTestServices(t *testing.T) (*AddressService, *CustomerService, *MediaService, *BorrowingService) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	testStore, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testStore.Close() })

	return NewAddressService(testStore, logger),
		NewCustomerService(testStore, logger),
		NewMediaService(testStore, logger),
		NewBorrowingService(testStore, logger)
}

// createTestLoanFixtures creates a customer and a media item to borrow.
func createTestLoanFixtures(t *testing.T, ctx context.Context, customers *CustomerService, media *MediaService) (*domain.Customer, *domain.Media) {
	t.Helper()

	c, err := customers.CreateCustomer(ctx, CreateCustomerRequest{
		Firstname: "Anna",
		Lastname:  "Keller",
		Birthdate: domain.NewDate(1990, time.May, 10),
	})
	require.NoError(t, err)

	m, err := media.CreateMedia(ctx, CreateMediaRequest{Title: "Buch A"})
	require.NoError(t, err)

	return c, m
}

func TestBorrowingService_Create(t *testing.T) {
	_, customers, media, borrowings := setupTestServices(t)
	ctx := context.Background()

	c, m := createTestLoanFixtures(t, ctx, customers, media)

	due := domain.Today().AddDays(14)
	b, err := borrowings.CreateBorrowing(ctx, CreateBorrowingRequest{
		Duedate:    due,
		CustomerID: c.ID,
		MediaID:    m.ID,
	})
	require.NoError(t, err)

	// Dateborrowed defaults to today.
	assert.True(t, b.Dateborrowed.Equal(domain.Today()))
	assert.True(t, b.Duedate.Equal(due))
	assert.True(t, b.ExtendedOn.IsZero())
	require.NotNil(t, b.Customer)
	assert.Equal(t, "Keller", b.Customer.Lastname)
	require.NotNil(t, b.Media)
	assert.Equal(t, "Buch A", b.Media.Title)
}

func TestBorrowingService_CreateConflict(t *testing.T) {
	_, customers, media, borrowings := setupTestServices(t)
	ctx := context.Background()

	c, m := createTestLoanFixtures(t, ctx, customers, media)

	req := CreateBorrowingRequest{
		Duedate:    domain.Today().AddDays(14),
		CustomerID: c.ID,
		MediaID:    m.ID,
	}
	_, err := borrowings.CreateBorrowing(ctx, req)
	require.NoError(t, err)

	_, err = borrowings.CreateBorrowing(ctx, req)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrConflict))
}

func TestBorrowingService_CreateUnknownReferences(t *testing.T) {
	_, customers, media, borrowings := setupTestServices(t)
	ctx := context.Background()

	c, m := createTestLoanFixtures(t, ctx, customers, media)
	due := domain.Today().AddDays(14)

	_, err := borrowings.CreateBorrowing(ctx, CreateBorrowingRequest{
		Duedate:    due,
		CustomerID: "cust-missing",
		MediaID:    m.ID,
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))

	_, err = borrowings.CreateBorrowing(ctx, CreateBorrowingRequest{
		Duedate:    due,
		CustomerID: c.ID,
		MediaID:    "med-missing",
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestBorrowingService_CreateMissingDuedate(t *testing.T) {
	_, customers, media, borrowings := setupTestServices(t)
	ctx := context.Background()

	c, m := createTestLoanFixtures(t, ctx, customers, media)

	_, err := borrowings.CreateBorrowing(ctx, CreateBorrowingRequest{
		CustomerID: c.ID,
		MediaID:    m.ID,
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestBorrowingService_DeleteThenRecreate(t *testing.T) {
	_, customers, media, borrowings := setupTestServices(t)
	ctx := context.Background()

	c, m := createTestLoanFixtures(t, ctx, customers, media)

	req := CreateBorrowingRequest{
		Duedate:    domain.Today().AddDays(14),
		CustomerID: c.ID,
		MediaID:    m.ID,
	}
	first, err := borrowings.CreateBorrowing(ctx, req)
	require.NoError(t, err)

	// Returning the item frees it for the next loan.
	require.NoError(t, borrowings.DeleteBorrowing(ctx, first.ID))

	second, err := borrowings.CreateBorrowing(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBorrowingService_DeleteIdempotent(t *testing.T) {
	_, _, _, borrowings := setupTestServices(t)

	err := borrowings.DeleteBorrowing(context.Background(), "bor-missing")
	assert.NoError(t, err)
}

func TestBorrowingService_Update(t *testing.T) {
	_, customers, media, borrowings := setupTestServices(t)
	ctx := context.Background()

	c, m := createTestLoanFixtures(t, ctx, customers, media)

	b, err := borrowings.CreateBorrowing(ctx, CreateBorrowingRequest{
		Duedate:    domain.Today().AddDays(14),
		CustomerID: c.ID,
		MediaID:    m.ID,
	})
	require.NoError(t, err)

	extended := b.Dateborrowed.AddDays(10)
	newDue := b.Duedate.AddDays(14)
	updated, err := borrowings.UpdateBorrowing(ctx, b.ID, UpdateBorrowingRequest{
		ExtendedOn: &extended,
		Duedate:    &newDue,
	})
	require.NoError(t, err)
	assert.True(t, updated.Extended())
	assert.True(t, updated.Duedate.Equal(newDue))
}

func TestBorrowingService_UpdateExtensionBeforeBorrow(t *testing.T) {
	_, customers, media, borrowings := setupTestServices(t)
	ctx := context.Background()

	c, m := createTestLoanFixtures(t, ctx, customers, media)

	b, err := borrowings.CreateBorrowing(ctx, CreateBorrowingRequest{
		Duedate:    domain.Today().AddDays(14),
		CustomerID: c.ID,
		MediaID:    m.ID,
	})
	require.NoError(t, err)

	// extended_on must lie strictly after dateborrowed.
	bad := b.Dateborrowed.AddDays(-1)
	_, err = borrowings.UpdateBorrowing(ctx, b.ID, UpdateBorrowingRequest{ExtendedOn: &bad})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	same := b.Dateborrowed
	_, err = borrowings.UpdateBorrowing(ctx, b.ID, UpdateBorrowingRequest{ExtendedOn: &same})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestBorrowingService_UpdateMediaConflict(t *testing.T) {
	_, customers, media, borrowings := setupTestServices(t)
	ctx := context.Background()

	c, mA := createTestLoanFixtures(t, ctx, customers, media)
	mB, err := media.CreateMedia(ctx, CreateMediaRequest{Title: "Buch B"})
	require.NoError(t, err)

	due := domain.Today().AddDays(14)
	_, err = borrowings.CreateBorrowing(ctx, CreateBorrowingRequest{
		Duedate: due, CustomerID: c.ID, MediaID: mA.ID,
	})
	require.NoError(t, err)
	second, err := borrowings.CreateBorrowing(ctx, CreateBorrowingRequest{
		Duedate: due, CustomerID: c.ID, MediaID: mB.ID,
	})
	require.NoError(t, err)

	// Moving the second loan onto the borrowed item must conflict.
	_, err = borrowings.UpdateBorrowing(ctx, second.ID, UpdateBorrowingRequest{MediaID: &mA.ID})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrConflict))

	// Re-stating the loan's own media item is not a conflict.
	_, err = borrowings.UpdateBorrowing(ctx, second.ID, UpdateBorrowingRequest{MediaID: &mB.ID})
	assert.NoError(t, err)
}

func TestBorrowingService_SaveCreatesWithSuppliedID(t *testing.T) {
	_, customers, media, borrowings := setupTestServices(t)
	ctx := context.Background()

	c, m := createTestLoanFixtures(t, ctx, customers, media)

	b, err := borrowings.SaveBorrowing(ctx, "bor-explicit", CreateBorrowingRequest{
		Duedate:    domain.Today().AddDays(14),
		CustomerID: c.ID,
		MediaID:    m.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "bor-explicit", b.ID)

	// Saving the same ID again updates in place.
	newDue := domain.Today().AddDays(28)
	b, err = borrowings.SaveBorrowing(ctx, "bor-explicit", CreateBorrowingRequest{
		Duedate:    newDue,
		CustomerID: c.ID,
		MediaID:    m.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "bor-explicit", b.ID)
	assert.True(t, b.Duedate.Equal(newDue))
}

func TestBorrowingService_FindByMedia(t *testing.T) {
	_, customers, media, borrowings := setupTestServices(t)
	ctx := context.Background()

	c, m := createTestLoanFixtures(t, ctx, customers, media)

	// No active loan: absence, not an error.
	b, err := borrowings.FindBorrowingByMedia(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, b)

	created, err := borrowings.CreateBorrowing(ctx, CreateBorrowingRequest{
		Duedate:    domain.Today().AddDays(14),
		CustomerID: c.ID,
		MediaID:    m.ID,
	})
	require.NoError(t, err)

	b, err = borrowings.FindBorrowingByMedia(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, created.ID, b.ID)
}

func TestBorrowingService_ListOverdue(t *testing.T) {
	_, customers, media, borrowings := setupTestServices(t)
	ctx := context.Background()

	c, mA := createTestLoanFixtures(t, ctx, customers, media)
	mB, err := media.CreateMedia(ctx, CreateMediaRequest{Title: "Buch B"})
	require.NoError(t, err)

	past := domain.Today().AddDays(-20)
	overdueLoan, err := borrowings.CreateBorrowing(ctx, CreateBorrowingRequest{
		Dateborrowed: past,
		Duedate:      past.AddDays(14),
		CustomerID:   c.ID,
		MediaID:      mA.ID,
	})
	require.NoError(t, err)
	_, err = borrowings.CreateBorrowing(ctx, CreateBorrowingRequest{
		Duedate:    domain.Today().AddDays(14),
		CustomerID: c.ID,
		MediaID:    mB.ID,
	})
	require.NoError(t, err)

	overdue, err := borrowings.ListOverdueBorrowings(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, overdueLoan.ID, overdue[0].ID)
	assert.Equal(t, domain.DueStatusOverdue, overdue[0].DueStatus(domain.Today()))
}

// The unique media constraint holds through any create/update sequence: at
// most one active borrowing per media item.
func TestBorrowingService_AtMostOneActiveLoanPerMedia(t *testing.T) {
	_, customers, media, borrowings := setupTestServices(t)
	ctx := context.Background()

	c, m := createTestLoanFixtures(t, ctx, customers, media)
	due := domain.Today().AddDays(14)

	for range 3 {
		req := CreateBorrowingRequest{Duedate: due, CustomerID: c.ID, MediaID: m.ID}
		first, err := borrowings.CreateBorrowing(ctx, req)
		require.NoError(t, err)

		_, err = borrowings.CreateBorrowing(ctx, req)
		require.Error(t, err)

		all, err := borrowings.ListBorrowings(ctx)
		require.NoError(t, err)
		count := 0
		for _, b := range all {
			if b.MediaID == m.ID {
				count++
			}
		}
		assert.Equal(t, 1, count)

		require.NoError(t, borrowings.DeleteBorrowing(ctx, first.ID))
	}
}
