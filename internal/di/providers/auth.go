package providers

import (
	"github.com/samber/do/v2"

	"github.com/librasys/librasys-server/internal/auth"
	"github.com/librasys/librasys-server/internal/config"
	"github.com/librasys/librasys-server/internal/logger"
)

// AuthKey wraps the hex-encoded token signing key.
type AuthKey string

// ProvideAuthKey loads or generates the authentication key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	keyHex, err := auth.LoadOrGenerateKey(cfg.Data.Path)
	if err != nil {
		return "", err
	}

	// Update config with the loaded key
	cfg.Auth.AccessTokenKeyHex = keyHex

	log.Info("Authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
		"refresh_token_duration", cfg.Auth.RefreshTokenDuration,
	)

	return AuthKey(keyHex), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(authKey), cfg.Auth.AccessTokenDuration, cfg.Auth.RefreshTokenDuration)
}
