package providers

import (
	"github.com/samber/do/v2"

	"github.com/lesezeit/lesezeit-server/internal/logger"
	"github.com/lesezeit/lesezeit-server/internal/service"
)

// ProvideAddressService provides the address service.
func ProvideAddressService(i do.Injector) (*service.AddressService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAddressService(storeHandle.Store, log.Logger), nil
}

// ProvideCustomerService provides the customer service.
func ProvideCustomerService(i do.Injector) (*service.CustomerService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCustomerService(storeHandle.Store, log.Logger), nil
}

// ProvideMediaService provides the media catalog service.
func ProvideMediaService(i do.Injector) (*service.MediaService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMediaService(storeHandle.Store, log.Logger), nil
}

// ProvideBorrowingService provides the borrowing service.
func ProvideBorrowingService(i do.Injector) (*service.BorrowingService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBorrowingService(storeHandle.Store, log.Logger), nil
}
