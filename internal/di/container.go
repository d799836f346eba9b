// Package di provides dependency injection configuration for the Lesezeit server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/lesezeit/lesezeit-server/internal/config"
	"github.com/lesezeit/lesezeit-server/internal/di/providers"
	"github.com/lesezeit/lesezeit-server/internal/logger"
	"github.com/lesezeit/lesezeit-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideAddressService)
	do.Provide(injector, providers.ProvideCustomerService)
	do.Provide(injector, providers.ProvideMediaService)
	do.Provide(injector, providers.ProvideBorrowingService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.AddressService](injector)
	_ = do.MustInvoke[*service.CustomerService](injector)
	_ = do.MustInvoke[*service.MediaService](injector)
	_ = do.MustInvoke[*service.BorrowingService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
