package sqlite

import (
	"context"
	"database/sql"

	"github.com/lesezeit/lesezeit-server/internal/domain"
	"github.com/lesezeit/lesezeit-server/internal/store"
)

// borrowingColumns joins the borrowing row with its customer (and the
// customer's address) and media so reads return fully embedded records.
// Must match the scan order in scanBorrowing.
const borrowingColumns = `b.id, b.dateborrowed, b.duedate, b.extended_on,
	b.customer_id, b.media_id, b.created_at, b.updated_at,
	c.firstname, c.lastname, c.birthdate, c.email, c.address_id, c.created_at, c.updated_at,
	a.streetandnum, a.city, a.plz, a.created_at, a.updated_at,
	m.title, m.author, m.genre, m.rating, m.isbn, m.shelf_code, m.fsk, m.created_at, m.updated_at`

const borrowingFrom = ` FROM borrowings b
	JOIN customers c ON c.id = b.customer_id
	LEFT JOIN addresses a ON a.id = c.address_id
	JOIN media m ON m.id = b.media_id`

// scanBorrowing scans a joined borrowing row into a domain.Borrowing.
func scanBorrowing(scanner interface{ Scan(dest ...any) error }) (*domain.Borrowing, error) {
	var b domain.Borrowing
	var c domain.Customer
	var m domain.Media
	var (
		dateborrowed       string
		duedate            string
		extendedOn         sql.NullString
		birthdate          string
		addressID          sql.NullString
		isbn               sql.NullInt64
		bCreated, bUpdated string
		cCreated, cUpdated string
		mCreated, mUpdated string

		addrStreet, addrCity, addrPLZ sql.NullString
		addrCreated, addrUpdated      sql.NullString
	)

	err := scanner.Scan(
		&b.ID,
		&dateborrowed,
		&duedate,
		&extendedOn,
		&b.CustomerID,
		&b.MediaID,
		&bCreated,
		&bUpdated,
		&c.Firstname,
		&c.Lastname,
		&birthdate,
		&c.Email,
		&addressID,
		&cCreated,
		&cUpdated,
		&addrStreet,
		&addrCity,
		&addrPLZ,
		&addrCreated,
		&addrUpdated,
		&m.Title,
		&m.Author,
		&m.Genre,
		&m.Rating,
		&isbn,
		&m.ShelfCode,
		&m.FSK,
		&mCreated,
		&mUpdated,
	)
	if err != nil {
		return nil, err
	}

	if b.Dateborrowed, err = parseDate(dateborrowed); err != nil {
		return nil, err
	}
	if b.Duedate, err = parseDate(duedate); err != nil {
		return nil, err
	}
	if b.ExtendedOn, err = parseNullDate(extendedOn); err != nil {
		return nil, err
	}
	if c.Birthdate, err = parseDate(birthdate); err != nil {
		return nil, err
	}
	if isbn.Valid {
		m.ISBN = &isbn.Int64
	}

	if b.CreatedAt, err = parseTime(bCreated); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(bUpdated); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(cCreated); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(cUpdated); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTime(mCreated); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(mUpdated); err != nil {
		return nil, err
	}

	c.ID = b.CustomerID
	c.AddressID = addressID.String
	if addressID.Valid {
		a := domain.Address{
			ID:           addressID.String,
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
	m.ID = b.MediaID
	b.Customer = &c
	b.Media = &m
	return &b, nil
}

// CreateBorrowing inserts a new borrowing.
// Returns store.ErrAlreadyExists if the ID is taken or the media item is
// already actively borrowed (UNIQUE media_id), and store.ErrReferenceMissing
// if the customer or media does not exist.
func (s *Store) CreateBorrowing(ctx context.Context, b *domain.Borrowing) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO borrowings (id, dateborrowed, duedate, extended_on, customer_id, media_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		formatDate(b.Dateborrowed),
		formatDate(b.Duedate),
		nullDateString(b.ExtendedOn),
		b.CustomerID,
		b.MediaID,
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	if isForeignKeyViolation(err) {
		return store.ErrReferenceMissing
	}
	return err
}

// GetBorrowing retrieves a borrowing by ID with customer and media embedded.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetBorrowing(ctx context.Context, id string) (*domain.Borrowing, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+borrowingColumns+borrowingFrom+` WHERE b.id = ?`, id)

	b, err := scanBorrowing(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBorrowings returns all borrowings in insertion order.
func (s *Store) ListBorrowings(ctx context.Context) ([]*domain.Borrowing, error) {
	return s.queryBorrowings(ctx,
		`SELECT `+borrowingColumns+borrowingFrom+` ORDER BY b.created_at ASC`)
}

// UpdateBorrowing performs a full row update on an existing borrowing.
// Returns store.ErrNotFound if it does not exist, store.ErrAlreadyExists if
// the new media item is already borrowed elsewhere, and
// store.ErrReferenceMissing if the new customer or media does not exist.
func (s *Store) UpdateBorrowing(ctx context.Context, b *domain.Borrowing) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE borrowings SET
			dateborrowed = ?,
			duedate = ?,
			extended_on = ?,
			customer_id = ?,
			media_id = ?,
			updated_at = ?
		WHERE id = ?`,
		formatDate(b.Dateborrowed),
		formatDate(b.Duedate),
		nullDateString(b.ExtendedOn),
		b.CustomerID,
		b.MediaID,
		formatTime(b.UpdatedAt),
		b.ID,
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

// DeleteBorrowing removes a borrowing. This is the "return" event.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) DeleteBorrowing(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM borrowings WHERE id = ?`, id)
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

// FindBorrowingByMedia returns the single active borrowing for a media item.
// Returns store.ErrNotFound if the media is not currently borrowed.
func (s *Store) FindBorrowingByMedia(ctx context.Context, mediaID string) (*domain.Borrowing, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+borrowingColumns+borrowingFrom+` WHERE b.media_id = ?`, mediaID)

	b, err := scanBorrowing(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// FindBorrowingsByCustomer returns all borrowings of a customer in
// insertion order.
func (s *Store) FindBorrowingsByCustomer(ctx context.Context, customerID string) ([]*domain.Borrowing, error) {
	return s.queryBorrowings(ctx,
		`SELECT `+borrowingColumns+borrowingFrom+` WHERE b.customer_id = ? ORDER BY b.created_at ASC`, customerID)
}

func (s *Store) queryBorrowings(ctx context.Context, query string, args ...any) ([]*domain.Borrowing, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var borrowings []*domain.Borrowing
	for rows.Next() {
		b, err := scanBorrowing(rows)
		if err != nil {
			return nil, err
		}
		borrowings = append(borrowings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return borrowings, nil
}
