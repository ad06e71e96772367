package providers

import (
	"github.com/samber/do/v2"

	"github.com/librasys/librasys-server/internal/auth"
	"github.com/librasys/librasys-server/internal/logger"
	"github.com/librasys/librasys-server/internal/service"
	"github.com/librasys/librasys-server/internal/validation"
)

// ProvideValidator provides the struct validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideCatalogService provides the catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideAccountService provides the account management service.
func ProvideAccountService(i do.Injector) (*service.AccountService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAccountService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideStatsService provides the catalog statistics service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatsService(storeHandle.Store, log.Logger), nil
}

// ProvideAssistantService provides the chat assistant service.
func ProvideAssistantService(i do.Injector) (*service.AssistantService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	clientHandle := do.MustInvoke[*AssistantClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAssistantService(storeHandle.Store, clientHandle.Client, log.Logger), nil
}
