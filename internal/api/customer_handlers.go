package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lesezeit/lesezeit-server/internal/service"
)

func (s *Server) registerCustomerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCustomers",
		Method:      http.MethodGet,
		Path:        "/api/customers",
		Summary:     "List customers",
		Description: "Returns all customers in insertion order",
		Tags:        []string{"Customers"},
	}, s.handleListCustomers)

	huma.Register(s.api, huma.Operation{
		OperationID: "createCustomer",
		Method:      http.MethodPost,
		Path:        "/api/customers",
		Summary:     "Create customer",
		Description: "Creates a new customer; an inline address is persisted first",
		Tags:        []string{"Customers"},
	}, s.handleCreateCustomer)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCustomer",
		Method:      http.MethodGet,
		Path:        "/api/customers/{id}",
		Summary:     "Get customer",
		Description: "Returns a customer by ID with the address embedded",
		Tags:        []string{"Customers"},
	}, s.handleGetCustomer)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveCustomer",
		Method:      http.MethodPut,
		Path:        "/api/customers/{id}",
		Summary:     "Save customer",
		Description: "Stores the full record under the given ID, creating it when absent",
		Tags:        []string{"Customers"},
	}, s.handleSaveCustomer)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCustomer",
		Method:      http.MethodPatch,
		Path:        "/api/customers/{id}",
		Summary:     "Update customer",
		Description: "Applies a partial update to a customer",
		Tags:        []string{"Customers"},
	}, s.handleUpdateCustomer)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteCustomer",
		Method:        http.MethodDelete,
		Path:          "/api/customers/{id}",
		Summary:       "Delete customer",
		Description:   "Removes a customer; deleting an absent customer is a no-op",
		Tags:          []string{"Customers"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteCustomer)

	huma.Register(s.api, huma.Operation{
		OperationID: "findCustomersByLastname",
		Method:      http.MethodGet,
		Path:        "/api/customers/search/lastname",
		Summary:     "Find customers by lastname",
		Description: "Exact-match lookup by last name",
		Tags:        []string{"Customers"},
	}, s.handleFindCustomersByLastname)

	huma.Register(s.api, huma.Operation{
		OperationID: "findCustomersByAddress",
		Method:      http.MethodGet,
		Path:        "/api/customers/search/address",
		Summary:     "Find customers by address",
		Description: "Returns all customers living at the given address",
		Tags:        []string{"Customers"},
	}, s.handleFindCustomersByAddress)
}

// === DTOs ===

type ListCustomersOutput struct {
	Body []CustomerResponse
}

type CreateCustomerInput struct {
	Body service.CreateCustomerRequest
}

type CustomerOutput struct {
	Body *CustomerResponse
}

type GetCustomerInput struct {
	ID string `path:"id" doc:"Customer ID"`
}

type SaveCustomerInput struct {
	ID   string `path:"id" doc:"Customer ID"`
	Body service.CreateCustomerRequest
}

type UpdateCustomerInput struct {
	ID   string `path:"id" doc:"Customer ID"`
	Body service.UpdateCustomerRequest
}

type DeleteCustomerInput struct {
	ID string `path:"id" doc:"Customer ID"`
}

type FindCustomersByLastnameInput struct {
	Name string `query:"name" required:"true" doc:"Last name, exact match"`
}

type FindCustomersByAddressInput struct {
	ID string `query:"id" required:"true" doc:"Address ID"`
}

// === Handlers ===

func (s *Server) handleListCustomers(ctx context.Context, _ *struct{}) (*ListCustomersOutput, error) {
	customers, err := s.services.Customer.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return &ListCustomersOutput{Body: toCustomerResponses(customers)}, nil
}

func (s *Server) handleCreateCustomer(ctx context.Context, input *CreateCustomerInput) (*CustomerOutput, error) {
	c, err := s.services.Customer.CreateCustomer(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &CustomerOutput{Body: toCustomerResponse(c)}, nil
}

func (s *Server) handleGetCustomer(ctx context.Context, input *GetCustomerInput) (*CustomerOutput, error) {
	c, err := s.services.Customer.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CustomerOutput{Body: toCustomerResponse(c)}, nil
}

func (s *Server) handleSaveCustomer(ctx context.Context, input *SaveCustomerInput) (*CustomerOutput, error) {
	c, err := s.services.Customer.SaveCustomer(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &CustomerOutput{Body: toCustomerResponse(c)}, nil
}

func (s *Server) handleUpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*CustomerOutput, error) {
	c, err := s.services.Customer.UpdateCustomer(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &CustomerOutput{Body: toCustomerResponse(c)}, nil
}

func (s *Server) handleDeleteCustomer(ctx context.Context, input *DeleteCustomerInput) (*struct{}, error) {
	if err := s.services.Customer.DeleteCustomer(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleFindCustomersByLastname(ctx context.Context, input *FindCustomersByLastnameInput) (*ListCustomersOutput, error) {
	customers, err := s.services.Customer.FindCustomersByLastname(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	return &ListCustomersOutput{Body: toCustomerResponses(customers)}, nil
}

func (s *Server) handleFindCustomersByAddress(ctx context.Context, input *FindCustomersByAddressInput) (*ListCustomersOutput, error) {
	customers, err := s.services.Customer.FindCustomersByAddress(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListCustomersOutput{Body: toCustomerResponses(customers)}, nil
}
