package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/lesezeit/lesezeit-server/internal/domain"
	domainerrors "github.com/lesezeit/lesezeit-server/internal/errors"
	"github.com/lesezeit/lesezeit-server/internal/id"
	"github.com/lesezeit/lesezeit-server/internal/store"
	"github.com/lesezeit/lesezeit-server/internal/validation"
)

// BorrowingService orchestrates the loan lifecycle. A media item has at most
// one active borrowing; the store's unique constraint is the source of truth
// and the pre-checks here only exist for precise error messages.
type BorrowingService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewBorrowingService creates a new borrowing service.
func NewBorrowingService(store store.Store, logger *slog.Logger) *BorrowingService {
	return &BorrowingService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreateBorrowingRequest contains fields for creating a borrowing.
// Dateborrowed defaults to today when omitted.
type CreateBorrowingRequest struct {
	Dateborrowed domain.Date `json:"dateborrowed,omitzero"`
	Duedate      domain.Date `json:"duedate"`
	ExtendedOn   domain.Date `json:"extended_on,omitzero"`
	CustomerID   string      `json:"customer_id" validate:"required"`
	MediaID      string      `json:"media_id" validate:"required"`
}

// CreateBorrowing lends a media item to a customer. Returns a conflict error
// when the item is already borrowed and a not-found error when the customer
// or media does not exist.
func (s *BorrowingService) CreateBorrowing(ctx context.Context, req CreateBorrowingRequest) (*domain.Borrowing, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.CustomerID, req.MediaID); err != nil {
		return nil, err
	}
	if err := s.checkMediaFree(ctx, req.MediaID, ""); err != nil {
		return nil, err
	}

	borID, err := id.Generate("bor")
	if err != nil {
		return nil, err
	}

	dateborrowed := req.Dateborrowed
	if dateborrowed.IsZero() {
		dateborrowed = domain.Today()
	}

	now := time.Now().UTC()
	b := &domain.Borrowing{
		ID:           borID,
		Dateborrowed: dateborrowed,
		Duedate:      req.Duedate,
		ExtendedOn:   req.ExtendedOn,
		CustomerID:   req.CustomerID,
		MediaID:      req.MediaID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateBorrowing(ctx, b); err != nil {
		return nil, s.mapBorrowingWriteError(ctx, err, b)
	}

	s.logger.Info("borrowing created",
		"id", borID, "customer", req.CustomerID, "media", req.MediaID, "due", b.Duedate.String())
	return s.GetBorrowing(ctx, borID)
}

// checkReferences verifies that the customer and media exist.
func (s *BorrowingService) checkReferences(ctx context.Context, customerID, mediaID string) error {
	if _, err := s.store.GetCustomer(ctx, customerID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFoundf("customer %s not found", customerID)
		}
		return err
	}
	if _, err := s.store.GetMedia(ctx, mediaID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFoundf("media %s not found", mediaID)
		}
		return err
	}
	return nil
}

// checkMediaFree verifies that no other borrowing holds the media item.
// ownID excludes the borrowing being updated from the check.
func (s *BorrowingService) checkMediaFree(ctx context.Context, mediaID, ownID string) error {
	active, err := s.store.FindBorrowingByMedia(ctx, mediaID)
	switch {
	case err == nil:
		if active.ID != ownID {
			return domainerrors.Conflictf("media %s is already borrowed", mediaID)
		}
		return nil
	case domainerrors.Is(err, store.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *BorrowingService) mapBorrowingWriteError(ctx context.Context, err error, b *domain.Borrowing) error {
	switch {
	case domainerrors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Conflictf("media %s is already borrowed", b.MediaID)
	case domainerrors.Is(err, store.ErrReferenceMissing):
		if refErr := s.checkReferences(ctx, b.CustomerID, b.MediaID); refErr != nil {
			return refErr
		}
		return err
	default:
		return err
	}
}

// GetBorrowing returns a single borrowing with customer and media embedded.
func (s *BorrowingService) GetBorrowing(ctx context.Context, borrowingID string) (*domain.Borrowing, error) {
	b, err := s.store.GetBorrowing(ctx, borrowingID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("borrowing %s not found", borrowingID)
		}
		return nil, err
	}
	return b, nil
}

// ListBorrowings returns all borrowings in insertion order.
func (s *BorrowingService) ListBorrowings(ctx context.Context) ([]*domain.Borrowing, error) {
	return s.store.ListBorrowings(ctx)
}

// ListOverdueBorrowings returns the borrowings whose due date lies before
// today.
func (s *BorrowingService) ListOverdueBorrowings(ctx context.Context) ([]*domain.Borrowing, error) {
	all, err := s.store.ListBorrowings(ctx)
	if err != nil {
		return nil, err
	}

	today := domain.Today()
	overdue := make([]*domain.Borrowing, 0)
	for _, b := range all {
		if b.Overdue(today) {
			overdue = append(overdue, b)
		}
	}
	return overdue, nil
}

// UpdateBorrowingRequest contains fields for a partial borrowing update.
type UpdateBorrowingRequest struct {
	Dateborrowed *domain.Date `json:"dateborrowed,omitempty"`
	Duedate      *domain.Date `json:"duedate,omitempty"`
	ExtendedOn   *domain.Date `json:"extended_on,omitempty"`
	CustomerID   *string      `json:"customer_id,omitempty"`
	MediaID      *string      `json:"media_id,omitempty"`
}

// UpdateBorrowing applies a partial update to an existing borrowing. Moving
// the borrowing to a media item that is actively borrowed elsewhere returns a
// conflict error.
func (s *BorrowingService) UpdateBorrowing(ctx context.Context, borrowingID string, req UpdateBorrowingRequest) (*domain.Borrowing, error) {
	b, err := s.GetBorrowing(ctx, borrowingID)
	if err != nil {
		return nil, err
	}

	if req.Dateborrowed != nil {
		b.Dateborrowed = *req.Dateborrowed
	}
	if req.Duedate != nil {
		b.Duedate = *req.Duedate
	}
	if req.ExtendedOn != nil {
		b.ExtendedOn = *req.ExtendedOn
	}
	if req.CustomerID != nil {
		b.CustomerID = *req.CustomerID
	}
	if req.MediaID != nil && *req.MediaID != b.MediaID {
		b.MediaID = *req.MediaID
		if err := s.checkMediaFree(ctx, b.MediaID, b.ID); err != nil {
			return nil, err
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateBorrowing(ctx, b); err != nil {
		return nil, s.mapBorrowingWriteError(ctx, err, b)
	}
	return s.GetBorrowing(ctx, borrowingID)
}

// SaveBorrowing stores the full record under the given ID, creating it with
// exactly that ID when it does not exist yet.
func (s *BorrowingService) SaveBorrowing(ctx context.Context, borrowingID string, req CreateBorrowingRequest) (*domain.Borrowing, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.CustomerID, req.MediaID); err != nil {
		return nil, err
	}
	if err := s.checkMediaFree(ctx, req.MediaID, borrowingID); err != nil {
		return nil, err
	}

	dateborrowed := req.Dateborrowed
	if dateborrowed.IsZero() {
		dateborrowed = domain.Today()
	}

	now := time.Now().UTC()
	b, err := s.store.GetBorrowing(ctx, borrowingID)
	switch {
	case err == nil:
		b.Dateborrowed = dateborrowed
		b.Duedate = req.Duedate
		b.ExtendedOn = req.ExtendedOn
		b.CustomerID = req.CustomerID
		b.MediaID = req.MediaID
		b.UpdatedAt = now
		if err := b.Validate(); err != nil {
			return nil, err
		}
		err = s.store.UpdateBorrowing(ctx, b)
	case domainerrors.Is(err, store.ErrNotFound):
		b = &domain.Borrowing{
			ID:           borrowingID,
			Dateborrowed: dateborrowed,
			Duedate:      req.Duedate,
			ExtendedOn:   req.ExtendedOn,
			CustomerID:   req.CustomerID,
			MediaID:      req.MediaID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := b.Validate(); err != nil {
			return nil, err
		}
		err = s.store.CreateBorrowing(ctx, b)
	default:
		return nil, err
	}

	if err != nil {
		return nil, s.mapBorrowingWriteError(ctx, err, b)
	}
	return s.GetBorrowing(ctx, borrowingID)
}

// DeleteBorrowing records the return of a media item. Deleting an absent
// borrowing is a no-op.
func (s *BorrowingService) DeleteBorrowing(ctx context.Context, borrowingID string) error {
	err := s.store.DeleteBorrowing(ctx, borrowingID)
	if err != nil && !domainerrors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

// FindBorrowingByMedia returns the active borrowing of a media item, or nil
// when the item is not currently borrowed.
func (s *BorrowingService) FindBorrowingByMedia(ctx context.Context, mediaID string) (*domain.Borrowing, error) {
	b, err := s.store.FindBorrowingByMedia(ctx, mediaID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// FindBorrowingsByCustomer returns all borrowings of a customer in insertion
// order.
func (s *BorrowingService) FindBorrowingsByCustomer(ctx context.Context, customerID string) ([]*domain.Borrowing, error) {
	return s.store.FindBorrowingsByCustomer(ctx, customerID)
}
