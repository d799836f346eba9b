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

// CustomerService orchestrates customer operations.
type CustomerService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewCustomerService creates a new customer service.
func NewCustomerService(store store.Store, logger *slog.Logger) *CustomerService {
	return &CustomerService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreateCustomerRequest contains fields for creating a customer. The address
// can be given by reference (address_id) or inline; an inline address without
// an ID is persisted together with the customer.
type CreateCustomerRequest struct {
	Firstname string                `json:"firstname" validate:"required,max=100"`
	Lastname  string                `json:"lastname" validate:"required,max=100"`
	Birthdate domain.Date           `json:"birthdate,omitzero"`
	Email     string                `json:"email,omitempty" validate:"omitempty,email"`
	AddressID string                `json:"address_id,omitempty"`
	Address   *CreateAddressRequest `json:"address,omitempty"`
}

// CreateCustomer creates a new customer. The (firstname, lastname, birthdate)
// triple must be unique; a duplicate returns a conflict error.
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	addressID, addr, err := s.resolveAddress(ctx, req.AddressID, req.Address)
	if err != nil {
		return nil, err
	}

	custID, err := id.Generate("cust")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Customer{
		ID:        custID,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Birthdate: req.Birthdate,
		Email:     req.Email,
		AddressID: addressID,
		Address:   addr,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateCustomer(ctx, c); err != nil {
		return nil, s.mapCustomerWriteError(err, c)
	}

	s.logger.Info("customer created", "id", custID, "lastname", req.Lastname)
	return c, nil
}

// resolveAddress resolves the address reference of a create or save request.
// An inline address is persisted first so the customer row can reference it.
func (s *CustomerService) resolveAddress(ctx context.Context, addressID string, inline *CreateAddressRequest) (string, *domain.Address, error) {
	if addressID != "" {
		addr, err := s.store.GetAddress(ctx, addressID)
		if err != nil {
			if domainerrors.Is(err, store.ErrNotFound) {
				return "", nil, domainerrors.NotFoundf("address %s not found", addressID)
			}
			return "", nil, err
		}
		return addressID, addr, nil
	}

	if inline == nil {
		return "", nil, nil
	}

	if err := s.validator.Validate(*inline); err != nil {
		return "", nil, err
	}
	newID, err := id.Generate("addr")
	if err != nil {
		return "", nil, err
	}
	now := time.Now().UTC()
	addr := &domain.Address{
		ID:           newID,
		StreetAndNum: inline.StreetAndNum,
		City:         inline.City,
		PLZ:          inline.PLZ,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateAddress(ctx, addr); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return "", nil, domainerrors.Conflictf("address %q in %q already exists", inline.StreetAndNum, inline.City)
		}
		return "", nil, err
	}
	return newID, addr, nil
}

func (s *CustomerService) mapCustomerWriteError(err error, c *domain.Customer) error {
	switch {
	case domainerrors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Conflictf("customer %s %s born %s already exists", c.Firstname, c.Lastname, c.Birthdate)
	case domainerrors.Is(err, store.ErrReferenceMissing):
		return domainerrors.NotFoundf("address %s not found", c.AddressID)
	default:
		return err
	}
}

// GetCustomer returns a single customer with the address embedded.
func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	c, err := s.store.GetCustomer(ctx, customerID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("customer %s not found", customerID)
		}
		return nil, err
	}
	return c, nil
}

// ListCustomers returns all customers in insertion order.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.store.ListCustomers(ctx)
}

// UpdateCustomerRequest contains fields for a partial customer update.
type UpdateCustomerRequest struct {
	Firstname *string      `json:"firstname,omitempty" validate:"omitempty,max=100"`
	Lastname  *string      `json:"lastname,omitempty" validate:"omitempty,max=100"`
	Birthdate *domain.Date `json:"birthdate,omitempty"`
	Email     *string      `json:"email,omitempty" validate:"omitempty,email"`
	AddressID *string      `json:"address_id,omitempty"`
}

// UpdateCustomer applies a partial update to an existing customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID string, req UpdateCustomerRequest) (*domain.Customer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	c, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Firstname != nil {
		c.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		c.Lastname = *req.Lastname
	}
	if req.Birthdate != nil {
		c.Birthdate = *req.Birthdate
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.AddressID != nil {
		c.AddressID = *req.AddressID
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateCustomer(ctx, c); err != nil {
		return nil, s.mapCustomerWriteError(err, c)
	}
	return s.GetCustomer(ctx, customerID)
}

// SaveCustomer stores the full record under the given ID, creating it with
// exactly that ID when it does not exist yet.
func (s *CustomerService) SaveCustomer(ctx context.Context, customerID string, req CreateCustomerRequest) (*domain.Customer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	addressID, addr, err := s.resolveAddress(ctx, req.AddressID, req.Address)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c, err := s.store.GetCustomer(ctx, customerID)
	switch {
	case err == nil:
		c.Firstname = req.Firstname
		c.Lastname = req.Lastname
		c.Birthdate = req.Birthdate
		c.Email = req.Email
		c.AddressID = addressID
		c.Address = addr
		c.UpdatedAt = now
		err = s.store.UpdateCustomer(ctx, c)
	case domainerrors.Is(err, store.ErrNotFound):
		c = &domain.Customer{
			ID:        customerID,
			Firstname: req.Firstname,
			Lastname:  req.Lastname,
			Birthdate: req.Birthdate,
			Email:     req.Email,
			AddressID: addressID,
			Address:   addr,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = s.store.CreateCustomer(ctx, c)
	default:
		return nil, err
	}

	if err != nil {
		return nil, s.mapCustomerWriteError(err, c)
	}
	return c, nil
}

// DeleteCustomer removes a customer. Deleting an absent customer is a no-op.
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	err := s.store.DeleteCustomer(ctx, customerID)
	if err != nil && !domainerrors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

// FindCustomersByLastname returns all customers with the given lastname,
// exact match.
func (s *CustomerService) FindCustomersByLastname(ctx context.Context, lastname string) ([]*domain.Customer, error) {
	return s.store.FindCustomersByLastname(ctx, lastname)
}

// FindCustomersByAddress returns all customers living at the given address.
func (s *CustomerService) FindCustomersByAddress(ctx context.Context, addressID string) ([]*domain.Customer, error) {
	return s.store.FindCustomersByAddress(ctx, addressID)
}
