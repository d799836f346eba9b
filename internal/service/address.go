// Package service implements the business rules on top of the record store:
// lifecycle orchestration, cascades, and translation of store sentinels into
// coded domain errors.
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

// AddressService orchestrates address operations.
type AddressService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewAddressService creates a new address service.
func NewAddressService(store store.Store, logger *slog.Logger) *AddressService {
	return &AddressService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreateAddressRequest contains fields for creating an address.
type CreateAddressRequest struct {
	StreetAndNum string `json:"streetandnum" validate:"required,max=200"`
	City         string `json:"city" validate:"required,max=100"`
	PLZ          string `json:"plz,omitempty" validate:"max=10"`
}

// CreateAddress creates a new address. The (streetandnum, city) pair must be
// unique; a duplicate returns a conflict error.
func (s *AddressService) CreateAddress(ctx context.Context, req CreateAddressRequest) (*domain.Address, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	addrID, err := id.Generate("addr")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	addr := &domain.Address{
		ID:           addrID,
		StreetAndNum: req.StreetAndNum,
		City:         req.City,
		PLZ:          req.PLZ,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateAddress(ctx, addr); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflictf("address %q in %q already exists", req.StreetAndNum, req.City)
		}
		return nil, err
	}

	s.logger.Info("address created", "id", addrID, "city", req.City)
	return addr, nil
}

// GetAddress returns a single address.
func (s *AddressService) GetAddress(ctx context.Context, addressID string) (*domain.Address, error) {
	addr, err := s.store.GetAddress(ctx, addressID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("address %s not found", addressID)
		}
		return nil, err
	}
	return addr, nil
}

// ListAddresses returns all addresses in insertion order.
func (s *AddressService) ListAddresses(ctx context.Context) ([]*domain.Address, error) {
	return s.store.ListAddresses(ctx)
}

// UpdateAddressRequest contains fields for a partial address update.
type UpdateAddressRequest struct {
	StreetAndNum *string `json:"streetandnum,omitempty" validate:"omitempty,max=200"`
	City         *string `json:"city,omitempty" validate:"omitempty,max=100"`
	PLZ          *string `json:"plz,omitempty" validate:"omitempty,max=10"`
}

// UpdateAddress applies a partial update to an existing address.
func (s *AddressService) UpdateAddress(ctx context.Context, addressID string, req UpdateAddressRequest) (*domain.Address, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	addr, err := s.GetAddress(ctx, addressID)
	if err != nil {
		return nil, err
	}

	if req.StreetAndNum != nil {
		addr.StreetAndNum = *req.StreetAndNum
	}
	if req.City != nil {
		addr.City = *req.City
	}
	if req.PLZ != nil {
		addr.PLZ = *req.PLZ
	}
	addr.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateAddress(ctx, addr); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflictf("address %q in %q already exists", addr.StreetAndNum, addr.City)
		}
		return nil, err
	}
	return addr, nil
}

// SaveAddress stores the full record under the given ID, creating it with
// exactly that ID when it does not exist yet.
func (s *AddressService) SaveAddress(ctx context.Context, addressID string, req CreateAddressRequest) (*domain.Address, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	addr, err := s.store.GetAddress(ctx, addressID)
	switch {
	case err == nil:
		addr.StreetAndNum = req.StreetAndNum
		addr.City = req.City
		addr.PLZ = req.PLZ
		addr.UpdatedAt = now
		err = s.store.UpdateAddress(ctx, addr)
	case domainerrors.Is(err, store.ErrNotFound):
		addr = &domain.Address{
			ID:           addressID,
			StreetAndNum: req.StreetAndNum,
			City:         req.City,
			PLZ:          req.PLZ,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		err = s.store.CreateAddress(ctx, addr)
	default:
		return nil, err
	}

	if err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflictf("address %q in %q already exists", req.StreetAndNum, req.City)
		}
		return nil, err
	}
	return addr, nil
}

// DeleteAddress removes an address. Deleting an absent address is a no-op.
func (s *AddressService) DeleteAddress(ctx context.Context, addressID string) error {
	err := s.store.DeleteAddress(ctx, addressID)
	if err != nil && !domainerrors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

// FindAddressesByCity returns all addresses in the given city, exact match.
func (s *AddressService) FindAddressesByCity(ctx context.Context, city string) ([]*domain.Address, error) {
	return s.store.FindAddressesByCity(ctx, city)
}

// FindAddressesByPLZ returns all addresses with the given postal code.
func (s *AddressService) FindAddressesByPLZ(ctx context.Context, plz string) ([]*domain.Address, error) {
	return s.store.FindAddressesByPLZ(ctx, plz)
}
