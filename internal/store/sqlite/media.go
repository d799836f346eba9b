package sqlite

import (
	"context"
	"database/sql"

	"github.com/lesezeit/lesezeit-server/internal/domain"
	"github.com/lesezeit/lesezeit-server/internal/store"
)

// mediaColumns is the ordered list of columns selected in media queries.
// Must match the scan order in scanMedia.
const mediaColumns = `id, title, author, genre, rating, isbn, shelf_code, fsk, created_at, updated_at`

// scanMedia scans a sql.Row (or sql.Rows via its Scan method) into a domain.Media.
func scanMedia(scanner interface{ Scan(dest ...any) error }) (*domain.Media, error) {
	var m domain.Media
	var (
		isbn      sql.NullInt64
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&m.ID,
		&m.Title,
		&m.Author,
		&m.Genre,
		&m.Rating,
		&isbn,
		&m.ShelfCode,
		&m.FSK,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if isbn.Valid {
		m.ISBN = &isbn.Int64
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// nullISBN converts an optional ISBN to sql.NullInt64.
func nullISBN(isbn *int64) sql.NullInt64 {
	if isbn == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *isbn, Valid: true}
}

// CreateMedia inserts a new catalog item.
// Returns store.ErrAlreadyExists if the ID is already taken.
func (s *Store) CreateMedia(ctx context.Context, m *domain.Media) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO media (id, title, author, genre, rating, isbn, shelf_code, fsk, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.Title,
		m.Author,
		m.Genre,
		m.Rating,
		nullISBN(m.ISBN),
		m.ShelfCode,
		m.FSK,
		formatTime(m.CreatedAt),
		formatTime(m.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// GetMedia retrieves a catalog item by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetMedia(ctx context.Context, id string) (*domain.Media, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)

	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListMedia returns all catalog items in insertion order.
func (s *Store) ListMedia(ctx context.Context) ([]*domain.Media, error) {
	return s.queryMedia(ctx,
		`SELECT `+mediaColumns+` FROM media ORDER BY created_at ASC`)
}

// UpdateMedia performs a full row update on an existing catalog item.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) UpdateMedia(ctx context.Context, m *domain.Media) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE media SET
			title = ?,
			author = ?,
			genre = ?,
			rating = ?,
			isbn = ?,
			shelf_code = ?,
			fsk = ?,
			updated_at = ?
		WHERE id = ?`,
		m.Title,
		m.Author,
		m.Genre,
		m.Rating,
		nullISBN(m.ISBN),
		m.ShelfCode,
		m.FSK,
		formatTime(m.UpdatedAt),
		m.ID,
	)
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

// DeleteMedia removes a catalog item.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) DeleteMedia(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
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

// FindMediaByTitle returns all catalog items with an exact title match.
// Duplicate titles are expected: one row per physical copy.
func (s *Store) FindMediaByTitle(ctx context.Context, title string) ([]*domain.Media, error) {
	return s.queryMedia(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE title = ? ORDER BY created_at ASC`, title)
}

func (s *Store) queryMedia(ctx context.Context, query string, args ...any) ([]*domain.Media, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
