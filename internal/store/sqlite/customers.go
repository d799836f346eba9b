package sqlite

import (
	"context"
	"database/sql"

	"github.com/lesezeit/lesezeit-server/internal/domain"
	"github.com/lesezeit/lesezeit-server/internal/store"
)

// customerColumns joins the customer row with its address so reads can embed
// the full address. Must match the scan order in scanCustomer.
const customerColumns = `c.id, c.firstname, c.lastname, c.birthdate, c.email,
	c.address_id, c.created_at, c.updated_at,
	a.id, a.streetandnum, a.city, a.plz, a.created_at, a.updated_at`

// The address join is LEFT so customers without an address still scan.
const customerFrom = ` FROM customers c LEFT JOIN addresses a ON a.id = c.address_id`

// scanCustomer scans a joined customer+address row into a domain.Customer.
func scanCustomer(scanner interface{ Scan(dest ...any) error }) (*domain.Customer, error) {
	var c domain.Customer
	var (
		birthdate string
		createdAt string
		updatedAt string
		addressID sql.NullString

		addrID, addrStreet, addrCity, addrPLZ sql.NullString
		addrCreated, addrUpdated              sql.NullString
	)

	err := scanner.Scan(
		&c.ID,
		&c.Firstname,
		&c.Lastname,
		&birthdate,
		&c.Email,
		&addressID,
		&createdAt,
		&updatedAt,
		&addrID,
		&addrStreet,
		&addrCity,
		&addrPLZ,
		&addrCreated,
		&addrUpdated,
	)
	if err != nil {
		return nil, err
	}

	c.AddressID = addressID.String
	if c.Birthdate, err = parseDate(birthdate); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	if addrID.Valid {
		a := domain.Address{
			ID:           addrID.String,
			StreetAndNum: addrStreet.String,
			City:         addrCity.String,
			PLZ:          addrPLZ.String,
		}
		if a.CreatedAt, err = parseTime(addrCreated.String); err != nil {
			return nil, err
		}
		if a.UpdatedAt, err = parseTime(addrUpdated.String); err != nil {
			return nil, err
		}
		c.Address = &a
	}

	return &c, nil
}

// CreateCustomer inserts a new customer.
// Returns store.ErrAlreadyExists on a duplicate ID or a duplicate
// (firstname, lastname, birthdate) triple, and store.ErrReferenceMissing if
// the referenced address does not exist.
func (s *Store) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, firstname, lastname, birthdate, email, address_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Firstname,
		c.Lastname,
		formatDate(c.Birthdate),
		c.Email,
		nullString(c.AddressID),
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	if isForeignKeyViolation(err) {
		return store.ErrReferenceMissing
	}
	return err
}

// GetCustomer retrieves a customer by ID with its address embedded.
// Returns store.ErrNotFound if the customer does not exist.
func (s *Store) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+customerFrom+` WHERE c.id = ?`, id)

	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCustomers returns all customers in insertion order.
func (s *Store) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.queryCustomers(ctx,
		`SELECT `+customerColumns+customerFrom+` ORDER BY c.created_at ASC`)
}

// UpdateCustomer performs a full row update on an existing customer.
// Returns store.ErrNotFound if the customer does not exist,
// store.ErrAlreadyExists if the new name triple collides, and
// store.ErrReferenceMissing if the new address does not exist.
func (s *Store) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE customers SET
			firstname = ?,
			lastname = ?,
			birthdate = ?,
			email = ?,
			address_id = ?,
			updated_at = ?
		WHERE id = ?`,
		c.Firstname,
		c.Lastname,
		formatDate(c.Birthdate),
		c.Email,
		nullString(c.AddressID),
		formatTime(c.UpdatedAt),
		c.ID,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	if isForeignKeyViolation(err) {
		return store.ErrReferenceMissing
	}
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteCustomer removes a customer.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// FindCustomersByLastname returns all customers with an exact lastname match.
func (s *Store) FindCustomersByLastname(ctx context.Context, lastname string) ([]*domain.Customer, error) {
	return s.queryCustomers(ctx,
		`SELECT `+customerColumns+customerFrom+` WHERE c.lastname = ? ORDER BY c.created_at ASC`, lastname)
}

// FindCustomersByAddress returns all customers living at the given address.
func (s *Store) FindCustomersByAddress(ctx context.Context, addressID string) ([]*domain.Customer, error) {
	return s.queryCustomers(ctx,
		`SELECT `+customerColumns+customerFrom+` WHERE c.address_id = ? ORDER BY c.created_at ASC`, addressID)
}

func (s *Store) queryCustomers(ctx context.Context, query string, args ...any) ([]*domain.Customer, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}
