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

// MediaService orchestrates catalog operations.
type MediaService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewMediaService creates a new media service.
func NewMediaService(store store.Store, logger *slog.Logger) *MediaService {
	return &MediaService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreateMediaRequest contains fields for creating a media item. Titles are
// not unique; each physical copy is its own record.
type CreateMediaRequest struct {
	Title     string `json:"title" validate:"required,max=300"`
	Author    string `json:"author,omitempty" validate:"max=200"`
	Genre     string `json:"genre,omitempty" validate:"max=100"`
	Rating    int    `json:"rating,omitempty" validate:"gte=0,lte=5"`
	ISBN      *int64 `json:"isbn,omitempty"`
	ShelfCode string `json:"shelf_code,omitempty" validate:"max=20"`
	FSK       string `json:"fsk,omitempty" validate:"max=10"`
}

// CreateMedia creates a new media item.
func (s *MediaService) CreateMedia(ctx context.Context, req CreateMediaRequest) (*domain.Media, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	medID, err := id.Generate("med")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := &domain.Media{
		ID:        medID,
		Title:     req.Title,
		Author:    req.Author,
		Genre:     req.Genre,
		Rating:    req.Rating,
		ISBN:      req.ISBN,
		ShelfCode: req.ShelfCode,
		FSK:       req.FSK,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateMedia(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("media created", "id", medID, "title", req.Title)
	return m, nil
}

// GetMedia returns a single media item.
func (s *MediaService) GetMedia(ctx context.Context, mediaID string) (*domain.Media, error) {
	m, err := s.store.GetMedia(ctx, mediaID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("media %s not found", mediaID)
		}
		return nil, err
	}
	return m, nil
}

// ListMedia returns the whole catalog in insertion order.
func (s *MediaService) ListMedia(ctx context.Context) ([]*domain.Media, error) {
	return s.store.ListMedia(ctx)
}

// UpdateMediaRequest contains fields for a partial media update.
type UpdateMediaRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,max=300"`
	Author    *string `json:"author,omitempty" validate:"omitempty,max=200"`
	Genre     *string `json:"genre,omitempty" validate:"omitempty,max=100"`
	Rating    *int    `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	ISBN      *int64  `json:"isbn,omitempty"`
	ShelfCode *string `json:"shelf_code,omitempty" validate:"omitempty,max=20"`
	FSK       *string `json:"fsk,omitempty" validate:"omitempty,max=10"`
}

// UpdateMedia applies a partial update to an existing media item.
func (s *MediaService) UpdateMedia(ctx context.Context, mediaID string, req UpdateMediaRequest) (*domain.Media, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	m, err := s.GetMedia(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Author != nil {
		m.Author = *req.Author
	}
	if req.Genre != nil {
		m.Genre = *req.Genre
	}
	if req.Rating != nil {
		m.Rating = *req.Rating
	}
	if req.ISBN != nil {
		m.ISBN = req.ISBN
	}
	if req.ShelfCode != nil {
		m.ShelfCode = *req.ShelfCode
	}
	if req.FSK != nil {
		m.FSK = *req.FSK
	}
	m.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateMedia(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// SaveMedia stores the full record under the given ID, creating it with
// exactly that ID when it does not exist yet.
func (s *MediaService) SaveMedia(ctx context.Context, mediaID string, req CreateMediaRequest) (*domain.Media, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m, err := s.store.GetMedia(ctx, mediaID)
	switch {
	case err == nil:
		m.Title = req.Title
		m.Author = req.Author
		m.Genre = req.Genre
		m.Rating = req.Rating
		m.ISBN = req.ISBN
		m.ShelfCode = req.ShelfCode
		m.FSK = req.FSK
		m.UpdatedAt = now
		err = s.store.UpdateMedia(ctx, m)
	case domainerrors.Is(err, store.ErrNotFound):
		m = &domain.Media{
			ID:        mediaID,
			Title:     req.Title,
			Author:    req.Author,
			Genre:     req.Genre,
			Rating:    req.Rating,
			ISBN:      req.ISBN,
			ShelfCode: req.ShelfCode,
			FSK:       req.FSK,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = s.store.CreateMedia(ctx, m)
	default:
		return nil, err
	}

	if err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMedia removes a media item. Deleting an absent item is a no-op.
func (s *MediaService) DeleteMedia(ctx context.Context, mediaID string) error {
	err := s.store.DeleteMedia(ctx, mediaID)
	if err != nil && !domainerrors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

// FindMediaByTitle returns all copies with the given title, exact match.
func (s *MediaService) FindMediaByTitle(ctx context.Context, title string) ([]*domain.Media, error) {
	return s.store.FindMediaByTitle(ctx, title)
}
