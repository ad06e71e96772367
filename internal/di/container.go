// Package di provides dependency injection configuration for the LibraSys server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/librasys/librasys-server/internal/auth"
	"github.com/librasys/librasys-server/internal/config"
	"github.com/librasys/librasys-server/internal/di/providers"
	"github.com/librasys/librasys-server/internal/logger"
	"github.com/librasys/librasys-server/internal/service"
	"github.com/librasys/librasys-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideBootstrap)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Assistant layer
	do.Provide(injector, providers.ProvideAssistantClient)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideAccountService)
	do.Provide(injector, providers.ProvideStatsService)
	do.Provide(injector, providers.ProvideAssistantService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.Bootstrap](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*providers.AssistantClientHandle](injector)

	// Business services
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.AccountService](injector)
	_ = do.MustInvoke[*service.StatsService](injector)
	_ = do.MustInvoke[*service.AssistantService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
