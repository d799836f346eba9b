package sqlite

import (
	"context"
	"database/sql"

	"github.com/lesezeit/lesezeit-server/internal/domain"
	"github.com/lesezeit/lesezeit-server/internal/store"
)

// addressColumns is the ordered list of columns selected in address queries.
// Must match the scan order in scanAddress.
const addressColumns = `id, streetandnum, city, plz, created_at, updated_at`

// scanAddress scans a sql.Row (or sql.Rows via its Scan method) into a domain.Address.
func scanAddress(scanner interface{ Scan(dest ...any) error }) (*domain.Address, error) {
	var a domain.Address
	var createdAt, updatedAt string

	err := scanner.Scan(
		&a.ID,
		&a.StreetAndNum,
		&a.City,
		&a.PLZ,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAddress inserts a new address.
// Returns store.ErrAlreadyExists if the ID or the (streetandnum, city) pair
// is already taken.
func (s *Store) CreateAddress(ctx context.Context, addr *domain.Address) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO addresses (id, streetandnum, city, plz, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		addr.ID,
		addr.StreetAndNum,
		addr.City,
		addr.PLZ,
		formatTime(addr.CreatedAt),
		formatTime(addr.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// GetAddress retrieves an address by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetAddress(ctx context.Context, id string) (*domain.Address, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE id = ?`, id)

	a, err := scanAddress(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAddresses returns all addresses in insertion order.
func (s *Store) ListAddresses(ctx context.Context) ([]*domain.Address, error) {
	return s.queryAddresses(ctx,
		`SELECT `+addressColumns+` FROM addresses ORDER BY created_at ASC`)
}

// UpdateAddress performs a full row update on an existing address.
// Returns store.ErrNotFound if the address does not exist and
// store.ErrAlreadyExists if the new (streetandnum, city) pair collides.
func (s *Store) UpdateAddress(ctx context.Context, addr *domain.Address) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE addresses SET
			streetandnum = ?,
			city = ?,
			plz = ?,
			updated_at = ?
		WHERE id = ?`,
		addr.StreetAndNum,
		addr.City,
		addr.PLZ,
		formatTime(addr.UpdatedAt),
		addr.ID,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
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

// DeleteAddress removes an address.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) DeleteAddress(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = ?`, id)
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

// FindAddressesByCity returns all addresses in a city (exact match).
func (s *Store) FindAddressesByCity(ctx context.Context, city string) ([]*domain.Address, error) {
	return s.queryAddresses(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE city = ? ORDER BY created_at ASC`, city)
}

// FindAddressesByPLZ returns all addresses with a postal code (exact match).
func (s *Store) FindAddressesByPLZ(ctx context.Context, plz string) ([]*domain.Address, error) {
	return s.queryAddresses(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE plz = ? ORDER BY created_at ASC`, plz)
}

func (s *Store) queryAddresses(ctx context.Context, query string, args ...any) ([]*domain.Address, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addrs []*domain.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return addrs, nil
}
