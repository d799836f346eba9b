package api

import (
	"github.com/lesezeit/lesezeit-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Address   *service.AddressService
	Customer  *service.CustomerService
	Media     *service.MediaService
	Borrowing *service.BorrowingService
}
