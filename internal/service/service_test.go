package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/librasys/librasys-server/internal/auth"
	"github.com/librasys/librasys-server/internal/domain"
	"github.com/librasys/librasys-server/internal/service"
	"github.com/librasys/librasys-server/internal/store"
	"github.com/librasys/librasys-server/internal/validation"
)

const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func setupStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "service-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	s, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func setupAuthService(t *testing.T, s *store.Store) *service.AuthService {
	t.Helper()

	tokens, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	return service.NewAuthService(s, tokens, nil)
}

func setupCatalogService(t *testing.T, s *store.Store) *service.CatalogService {
	t.Helper()
	return service.NewCatalogService(s, validation.New(), nil)
}

func setupAccountService(t *testing.T, s *store.Store) *service.AccountService {
	t.Helper()
	return service.NewAccountService(s, validation.New(), nil)
}

func createAccount(t *testing.T, s *store.Store, username, password string, role domain.Role) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	require.NoError(t, s.CreateAccount(context.Background(), &domain.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}))
}

func asClient(username string) service.Actor {
	return service.Actor{Username: username, Role: domain.RoleClient}
}

func asAdmin(username string) service.Actor {
	return service.Actor{Username: username, Role: domain.RoleAdmin}
}

func asSuperAdmin(username string) service.Actor {
	return service.Actor{Username: username, Role: domain.RoleSuperAdmin}
}
