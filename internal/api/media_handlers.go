package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lesezeit/lesezeit-server/internal/service"
)

func (s *Server) registerMediaRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMedia",
		Method:      http.MethodGet,
		Path:        "/api/media",
		Summary:     "List media",
		Description: "Returns the whole catalog in insertion order",
		Tags:        []string{"Media"},
	}, s.handleListMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "createMedia",
		Method:      http.MethodPost,
		Path:        "/api/media",
		Summary:     "Create media",
		Description: "Creates a new media item; each physical copy is its own record",
		Tags:        []string{"Media"},
	}, s.handleCreateMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMedia",
		Method:      http.MethodGet,
		Path:        "/api/media/{id}",
		Summary:     "Get media",
		Description: "Returns a media item by ID",
		Tags:        []string{"Media"},
	}, s.handleGetMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveMedia",
		Method:      http.MethodPut,
		Path:        "/api/media/{id}",
		Summary:     "Save media",
		Description: "Stores the full record under the given ID, creating it when absent",
		Tags:        []string{"Media"},
	}, s.handleSaveMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateMedia",
		Method:      http.MethodPatch,
		Path:        "/api/media/{id}",
		Summary:     "Update media",
		Description: "Applies a partial update to a media item",
		Tags:        []string{"Media"},
	}, s.handleUpdateMedia)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteMedia",
		Method:        http.MethodDelete,
		Path:          "/api/media/{id}",
		Summary:       "Delete media",
		Description:   "Removes a media item; deleting an absent item is a no-op",
		Tags:          []string{"Media"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "findMediaByTitle",
		Method:      http.MethodGet,
		Path:        "/api/media/search/title",
		Summary:     "Find media by title",
		Description: "Exact-match lookup by title; returns every copy",
		Tags:        []string{"Media"},
	}, s.handleFindMediaByTitle)

	huma.Register(s.api, huma.Operation{
		OperationID: "findMediaByID",
		Method:      http.MethodGet,
		Path:        "/api/media/search/id",
		Summary:     "Find media by ID",
		Description: "Query-parameter variant of the getMedia lookup",
		Tags:        []string{"Media"},
	}, s.handleFindMediaByID)
}

// === DTOs ===

type ListMediaOutput struct {
	Body []MediaResponse
}

type CreateMediaInput struct {
	Body service.CreateMediaRequest
}

type MediaOutput struct {
	Body *MediaResponse
}

type GetMediaInput struct {
	ID string `path:"id" doc:"Media ID"`
}

type SaveMediaInput struct {
	ID   string `path:"id" doc:"Media ID"`
	Body service.CreateMediaRequest
}

type UpdateMediaInput struct {
	ID   string `path:"id" doc:"Media ID"`
	Body service.UpdateMediaRequest
}

type DeleteMediaInput struct {
	ID string `path:"id" doc:"Media ID"`
}

type FindMediaByTitleInput struct {
	Title string `query:"title" required:"true" doc:"Title, exact match"`
}

type FindMediaByIDInput struct {
	ID string `query:"id" required:"true" doc:"Media ID"`
}

// === Handlers ===

func (s *Server) handleListMedia(ctx context.Context, _ *struct{}) (*ListMediaOutput, error) {
	media, err := s.services.Media.ListMedia(ctx)
	if err != nil {
		return nil, err
	}
	return &ListMediaOutput{Body: toMediaResponses(media)}, nil
}

func (s *Server) handleCreateMedia(ctx context.Context, input *CreateMediaInput) (*MediaOutput, error) {
	m, err := s.services.Media.CreateMedia(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &MediaOutput{Body: toMediaResponse(m)}, nil
}

func (s *Server) handleGetMedia(ctx context.Context, input *GetMediaInput) (*MediaOutput, error) {
	m, err := s.services.Media.GetMedia(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &MediaOutput{Body: toMediaResponse(m)}, nil
}

func (s *Server) handleSaveMedia(ctx context.Context, input *SaveMediaInput) (*MediaOutput, error) {
	m, err := s.services.Media.SaveMedia(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &MediaOutput{Body: toMediaResponse(m)}, nil
}

func (s *Server) handleUpdateMedia(ctx context.Context, input *UpdateMediaInput) (*MediaOutput, error) {
	m, err := s.services.Media.UpdateMedia(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &MediaOutput{Body: toMediaResponse(m)}, nil
}

func (s *Server) handleDeleteMedia(ctx context.Context, input *DeleteMediaInput) (*struct{}, error) {
	if err := s.services.Media.DeleteMedia(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleFindMediaByTitle(ctx context.Context, input *FindMediaByTitleInput) (*ListMediaOutput, error) {
	media, err := s.services.Media.FindMediaByTitle(ctx, input.Title)
	if err != nil {
		return nil, err
	}
	return &ListMediaOutput{Body: toMediaResponses(media)}, nil
}

func (s *Server) handleFindMediaByID(ctx context.Context, input *FindMediaByIDInput) (*MediaOutput, error) {
	m, err := s.services.Media.GetMedia(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &MediaOutput{Body: toMediaResponse(m)}, nil
}
