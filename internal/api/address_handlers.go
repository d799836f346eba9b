package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lesezeit/lesezeit-server/internal/service"
)

func (s *Server) registerAddressRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAddresses",
		Method:      http.MethodGet,
		Path:        "/api/addresses",
		Summary:     "List addresses",
		Description: "Returns all addresses in insertion order",
		Tags:        []string{"Addresses"},
	}, s.handleListAddresses)

	huma.Register(s.api, huma.Operation{
		OperationID: "createAddress",
		Method:      http.MethodPost,
		Path:        "/api/addresses",
		Summary:     "Create address",
		Description: "Creates a new address; (streetandnum, city) must be unique",
		Tags:        []string{"Addresses"},
	}, s.handleCreateAddress)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAddress",
		Method:      http.MethodGet,
		Path:        "/api/addresses/{id}",
		Summary:     "Get address",
		Description: "Returns an address by ID",
		Tags:        []string{"Addresses"},
	}, s.handleGetAddress)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveAddress",
		Method:      http.MethodPut,
		Path:        "/api/addresses/{id}",
		Summary:     "Save address",
		Description: "Stores the full record under the given ID, creating it when absent",
		Tags:        []string{"Addresses"},
	}, s.handleSaveAddress)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateAddress",
		Method:      http.MethodPatch,
		Path:        "/api/addresses/{id}",
		Summary:     "Update address",
		Description: "Applies a partial update to an address",
		Tags:        []string{"Addresses"},
	}, s.handleUpdateAddress)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteAddress",
		Method:        http.MethodDelete,
		Path:          "/api/addresses/{id}",
		Summary:       "Delete address",
		Description:   "Removes an address; deleting an absent address is a no-op",
		Tags:          []string{"Addresses"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteAddress)

	huma.Register(s.api, huma.Operation{
		OperationID: "findAddressesByCity",
		Method:      http.MethodGet,
		Path:        "/api/addresses/search/city",
		Summary:     "Find addresses by city",
		Description: "Exact-match lookup by city name",
		Tags:        []string{"Addresses"},
	}, s.handleFindAddressesByCity)

	huma.Register(s.api, huma.Operation{
		OperationID: "findAddressesByPLZ",
		Method:      http.MethodGet,
		Path:        "/api/addresses/search/plz",
		Summary:     "Find addresses by postal code",
		Description: "Exact-match lookup by postal code",
		Tags:        []string{"Addresses"},
	}, s.handleFindAddressesByPLZ)
}

// === DTOs ===

type ListAddressesOutput struct {
	Body []AddressResponse
}

type CreateAddressInput struct {
	Body service.CreateAddressRequest
}

type AddressOutput struct {
	Body *AddressResponse
}

type GetAddressInput struct {
	ID string `path:"id" doc:"Address ID"`
}

type SaveAddressInput struct {
	ID   string `path:"id" doc:"Address ID"`
	Body service.CreateAddressRequest
}

type UpdateAddressInput struct {
	ID   string `path:"id" doc:"Address ID"`
	Body service.UpdateAddressRequest
}

type DeleteAddressInput struct {
	ID string `path:"id" doc:"Address ID"`
}

type FindAddressesByCityInput struct {
	Name string `query:"name" required:"true" doc:"City name, exact match"`
}

type FindAddressesByPLZInput struct {
	PLZ string `query:"plz" required:"true" doc:"Postal code, exact match"`
}

// === Handlers ===

func (s *Server) handleListAddresses(ctx context.Context, _ *struct{}) (*ListAddressesOutput, error) {
	addrs, err := s.services.Address.ListAddresses(ctx)
	if err != nil {
		return nil, err
	}
	return &ListAddressesOutput{Body: toAddressResponses(addrs)}, nil
}

func (s *Server) handleCreateAddress(ctx context.Context, input *CreateAddressInput) (*AddressOutput, error) {
	addr, err := s.services.Address.CreateAddress(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &AddressOutput{Body: toAddressResponse(addr)}, nil
}

func (s *Server) handleGetAddress(ctx context.Context, input *GetAddressInput) (*AddressOutput, error) {
	addr, err := s.services.Address.GetAddress(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &AddressOutput{Body: toAddressResponse(addr)}, nil
}

func (s *Server) handleSaveAddress(ctx context.Context, input *SaveAddressInput) (*AddressOutput, error) {
	addr, err := s.services.Address.SaveAddress(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &AddressOutput{Body: toAddressResponse(addr)}, nil
}

func (s *Server) handleUpdateAddress(ctx context.Context, input *UpdateAddressInput) (*AddressOutput, error) {
	addr, err := s.services.Address.UpdateAddress(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &AddressOutput{Body: toAddressResponse(addr)}, nil
}

func (s *Server) handleDeleteAddress(ctx context.Context, input *DeleteAddressInput) (*struct{}, error) {
	if err := s.services.Address.DeleteAddress(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleFindAddressesByCity(ctx context.Context, input *FindAddressesByCityInput) (*ListAddressesOutput, error) {
	addrs, err := s.services.Address.FindAddressesByCity(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	return &ListAddressesOutput{Body: toAddressResponses(addrs)}, nil
}

func (s *Server) handleFindAddressesByPLZ(ctx context.Context, input *FindAddressesByPLZInput) (*ListAddressesOutput, error) {
	addrs, err := s.services.Address.FindAddressesByPLZ(ctx, input.PLZ)
	if err != nil {
		return nil, err
	}
	return &ListAddressesOutput{Body: toAddressResponses(addrs)}, nil
}
