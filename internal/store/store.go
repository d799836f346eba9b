// Package store defines the persistence contracts for the Lesezeit server.
//
// Implementations live in subpackages (currently sqlite). Uniqueness rules
// are enforced by the backing store's own constraint system: implementations
// must translate their native constraint violations into ErrAlreadyExists so
// that application code never has to re-check uniqueness under concurrency.
package store

import (
	"context"
	"errors"

	"github.com/lesezeit/lesezeit-server/internal/domain"
)

// Sentinel errors returned by store implementations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists indicates a uniqueness constraint violation:
	// duplicate ID, duplicate (streetandnum, city) address, duplicate
	// (firstname, lastname, birthdate) customer, or a media item that is
	// already actively borrowed.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrReferenceMissing indicates a write referenced a customer, media
	// item or address that does not exist.
	ErrReferenceMissing = errors.New("referenced record does not exist")
)

// AddressStore persists postal addresses.
type AddressStore interface {
	CreateAddress(ctx context.Context, addr *domain.Address) error
	GetAddress(ctx context.Context, id string) (*domain.Address, error)
	ListAddresses(ctx context.Context) ([]*domain.Address, error)
	UpdateAddress(ctx context.Context, addr *domain.Address) error
	DeleteAddress(ctx context.Context, id string) error
	FindAddressesByCity(ctx context.Context, city string) ([]*domain.Address, error)
	FindAddressesByPLZ(ctx context.Context, plz string) ([]*domain.Address, error)
}

// CustomerStore persists customers. Reads embed the customer's address.
type CustomerStore interface {
	CreateCustomer(ctx context.Context, c *domain.Customer) error
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	UpdateCustomer(ctx context.Context, c *domain.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
	FindCustomersByLastname(ctx context.Context, lastname string) ([]*domain.Customer, error)
	FindCustomersByAddress(ctx context.Context, addressID string) ([]*domain.Customer, error)
}

// MediaStore persists catalog items.
type MediaStore interface {
	CreateMedia(ctx context.Context, m *domain.Media) error
	GetMedia(ctx context.Context, id string) (*domain.Media, error)
	ListMedia(ctx context.Context) ([]*domain.Media, error)
	UpdateMedia(ctx context.Context, m *domain.Media) error
	DeleteMedia(ctx context.Context, id string) error
	FindMediaByTitle(ctx context.Context, title string) ([]*domain.Media, error)
}

// BorrowingStore persists borrowings. Reads embed the customer (with its
// address) and the media item. FindBorrowingsByCustomer returns records in
// insertion order.
type BorrowingStore interface {
	CreateBorrowing(ctx context.Context, b *domain.Borrowing) error
	GetBorrowing(ctx context.Context, id string) (*domain.Borrowing, error)
	ListBorrowings(ctx context.Context) ([]*domain.Borrowing, error)
	UpdateBorrowing(ctx context.Context, b *domain.Borrowing) error
	DeleteBorrowing(ctx context.Context, id string) error
	FindBorrowingByMedia(ctx context.Context, mediaID string) (*domain.Borrowing, error)
	FindBorrowingsByCustomer(ctx context.Context, customerID string) ([]*domain.Borrowing, error)
}

// Store is the full persistence surface of the server.
type Store interface {
	AddressStore
	CustomerStore
	MediaStore
	BorrowingStore

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error
	Close() error
}
