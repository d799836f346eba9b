package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lesezeit/lesezeit-server/internal/service"
)

func (s *Server) registerBorrowingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBorrowings",
		Method:      http.MethodGet,
		Path:        "/api/borrowings",
		Summary:     "List borrowings",
		Description: "Returns all borrowings in insertion order",
		Tags:        []string{"Borrowings"},
	}, s.handleListBorrowings)

	huma.Register(s.api, huma.Operation{
		OperationID: "createBorrowing",
		Method:      http.MethodPost,
		Path:        "/api/borrowings",
		Summary:     "Create borrowing",
		Description: "Lends a media item to a customer; conflicts when the item is already borrowed",
		Tags:        []string{"Borrowings"},
	}, s.handleCreateBorrowing)

	huma.Register(s.api, huma.Operation{
		OperationID: "listOverdueBorrowings",
		Method:      http.MethodGet,
		Path:        "/api/borrowings/overdue",
		Summary:     "List overdue borrowings",
		Description: "Returns borrowings whose due date lies before today",
		Tags:        []string{"Borrowings"},
	}, s.handleListOverdueBorrowings)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBorrowing",
		Method:      http.MethodGet,
		Path:        "/api/borrowings/{id}",
		Summary:     "Get borrowing",
		Description: "Returns a borrowing by ID with customer and media embedded",
		Tags:        []string{"Borrowings"},
	}, s.handleGetBorrowing)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveBorrowing",
		Method:      http.MethodPut,
		Path:        "/api/borrowings/{id}",
		Summary:     "Save borrowing",
		Description: "Stores the full record under the given ID, creating it when absent",
		Tags:        []string{"Borrowings"},
	}, s.handleSaveBorrowing)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBorrowing",
		Method:      http.MethodPatch,
		Path:        "/api/borrowings/{id}",
		Summary:     "Update borrowing",
		Description: "Applies a partial update, e.g. an extension of the due date",
		Tags:        []string{"Borrowings"},
	}, s.handleUpdateBorrowing)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteBorrowing",
		Method:        http.MethodDelete,
		Path:          "/api/borrowings/{id}",
		Summary:       "Delete borrowing",
		Description:   "Records the return of a media item; idempotent",
		Tags:          []string{"Borrowings"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteBorrowing)

	huma.Register(s.api, huma.Operation{
		OperationID: "findBorrowingByMedia",
		Method:      http.MethodGet,
		Path:        "/api/borrowings/search/media",
		Summary:     "Find borrowing by media",
		Description: "Returns the active borrowing of a media item, or nothing when it is free",
		Tags:        []string{"Borrowings"},
	}, s.handleFindBorrowingByMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "findBorrowingsByCustomer",
		Method:      http.MethodGet,
		Path:        "/api/borrowings/search/customer",
		Summary:     "Find borrowings by customer",
		Description: "Returns all borrowings of a customer in insertion order",
		Tags:        []string{"Borrowings"},
	}, s.handleFindBorrowingsByCustomer)
}

// === DTOs ===

type ListBorrowingsOutput struct {
	Body []BorrowingResponse
}

type CreateBorrowingInput struct {
	Body service.CreateBorrowingRequest
}

type BorrowingOutput struct {
	Body *BorrowingResponse
}

type GetBorrowingInput struct {
	ID string `path:"id" doc:"Borrowing ID"`
}

type SaveBorrowingInput struct {
	ID   string `path:"id" doc:"Borrowing ID"`
	Body service.CreateBorrowingRequest
}

type UpdateBorrowingInput struct {
	ID   string `path:"id" doc:"Borrowing ID"`
	Body service.UpdateBorrowingRequest
}

type DeleteBorrowingInput struct {
	ID string `path:"id" doc:"Borrowing ID"`
}

type FindBorrowingByMediaInput struct {
	ID string `query:"id" required:"true" doc:"Media ID"`
}

type FindBorrowingsByCustomerInput struct {
	ID string `query:"id" required:"true" doc:"Customer ID"`
}

// === Handlers ===

func (s *Server) handleListBorrowings(ctx context.Context, _ *struct{}) (*ListBorrowingsOutput, error) {
	borrowings, err := s.services.Borrowing.ListBorrowings(ctx)
	if err != nil {
		return nil, err
	}
	return &ListBorrowingsOutput{Body: toBorrowingResponses(borrowings)}, nil
}

func (s *Server) handleCreateBorrowing(ctx context.Context, input *CreateBorrowingInput) (*BorrowingOutput, error) {
	b, err := s.services.Borrowing.CreateBorrowing(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &BorrowingOutput{Body: toBorrowingResponse(b)}, nil
}

func (s *Server) handleListOverdueBorrowings(ctx context.Context, _ *struct{}) (*ListBorrowingsOutput, error) {
	borrowings, err := s.services.Borrowing.ListOverdueBorrowings(ctx)
	if err != nil {
		return nil, err
	}
	return &ListBorrowingsOutput{Body: toBorrowingResponses(borrowings)}, nil
}

func (s *Server) handleGetBorrowing(ctx context.Context, input *GetBorrowingInput) (*BorrowingOutput, error) {
	b, err := s.services.Borrowing.GetBorrowing(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BorrowingOutput{Body: toBorrowingResponse(b)}, nil
}

func (s *Server) handleSaveBorrowing(ctx context.Context, input *SaveBorrowingInput) (*BorrowingOutput, error) {
	b, err := s.services.Borrowing.SaveBorrowing(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &BorrowingOutput{Body: toBorrowingResponse(b)}, nil
}

func (s *Server) handleUpdateBorrowing(ctx context.Context, input *UpdateBorrowingInput) (*BorrowingOutput, error) {
	b, err := s.services.Borrowing.UpdateBorrowing(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &BorrowingOutput{Body: toBorrowingResponse(b)}, nil
}

func (s *Server) handleDeleteBorrowing(ctx context.Context, input *DeleteBorrowingInput) (*struct{}, error) {
	if err := s.services.Borrowing.DeleteBorrowing(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

// handleFindBorrowingByMedia is singular-or-none: a free media item yields a
// success envelope without data.
func (s *Server) handleFindBorrowingByMedia(ctx context.Context, input *FindBorrowingByMediaInput) (*BorrowingOutput, error) {
	b, err := s.services.Borrowing.FindBorrowingByMedia(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BorrowingOutput{Body: toBorrowingResponse(b)}, nil
}

func (s *Server) handleFindBorrowingsByCustomer(ctx context.Context, input *FindBorrowingsByCustomerInput) (*ListBorrowingsOutput, error) {
	borrowings, err := s.services.Borrowing.FindBorrowingsByCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListBorrowingsOutput{Body: toBorrowingResponses(borrowings)}, nil
}
