package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librasys/librasys-server/internal/auth"
	"github.com/librasys/librasys-server/internal/domain"
	domainerrors "github.com/librasys/librasys-server/internal/errors"
	"github.com/librasys/librasys-server/internal/service"
)

func TestLogin_Success(t *testing.T) {
	s := setupStore(t)
	svc := setupAuthService(t, s)
	createAccount(t, s, "alice", "secret", domain.RoleClient)

	resp, err := svc.Login(context.Background(), service.LoginRequest{
		Username: "alice",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.Account.Username)
	assert.Equal(t, domain.RoleClient, resp.Account.Role)
	assert.Empty(t, resp.Account.PasswordHash, "hash must not leave the service")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(15*60), resp.ExpiresIn)
}

func TestLogin_SameErrorForBadUserAndBadPassword(t *testing.T) {
	s := setupStore(t)
	svc := setupAuthService(t, s)
	createAccount(t, s, "alice", "secret", domain.RoleClient)

	_, errBadPassword := svc.Login(context.Background(), service.LoginRequest{
		Username: "alice", Password: "wrong",
	})
	_, errBadUser := svc.Login(context.Background(), service.LoginRequest{
		Username: "nobody", Password: "secret",
	})

	require.Error(t, errBadPassword)
	require.Error(t, errBadUser)
	// Identical errors so responses don't reveal which usernames exist.
	assert.Equal(t, errBadPassword.Error(), errBadUser.Error())
	assert.ErrorIs(t, errBadPassword, domainerrors.ErrInvalidCredentials)
}

func TestLogin_UpgradesLegacyHash(t *testing.T) {
	s := setupStore(t)
	svc := setupAuthService(t, s)

	ctx := context.Background()
	require.NoError(t, s.CreateAccount(ctx, &domain.Account{
		Username:     "oldtimer",
		PasswordHash: auth.LegacyHash("123"),
		Role:         domain.RoleClient,
	}))

	_, err := svc.Login(ctx, service.LoginRequest{Username: "oldtimer", Password: "123"})
	require.NoError(t, err)

	stored, err := s.GetAccount(ctx, "oldtimer")
	require.NoError(t, err)
	assert.False(t, auth.IsLegacyHash(stored.PasswordHash), "hash should be rewritten as argon2id")

	// The upgraded hash still verifies the same password.
	_, err = svc.Login(ctx, service.LoginRequest{Username: "oldtimer", Password: "123"})
	require.NoError(t, err)
}

func TestRegister_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		req     service.RegisterRequest
		wantMsg string
	}{
		{
			name:    "short username reported first",
			req:     service.RegisterRequest{Username: "ab", Password: "x", ConfirmPassword: "y"},
			wantMsg: "username must be at least 3 characters",
		},
		{
			// Multi-byte runes still count as single characters.
			name:    "short non-ascii username",
			req:     service.RegisterRequest{Username: "日本", Password: "abc", ConfirmPassword: "abc"},
			wantMsg: "username must be at least 3 characters",
		},
		{
			name:    "short password",
			req:     service.RegisterRequest{Username: "alice", Password: "xy", ConfirmPassword: "zz"},
			wantMsg: "password must be at least 3 characters",
		},
		{
			name:    "mismatched confirmation",
			req:     service.RegisterRequest{Username: "alice", Password: "abc", ConfirmPassword: "abd"},
			wantMsg: "passwords do not match",
		},
		{
			name:    "taken username checked last",
			req:     service.RegisterRequest{Username: "taken", Password: "abc", ConfirmPassword: "abc"},
			wantMsg: "username already exists",
		},
	}

	s := setupStore(t)
	svc := setupAuthService(t, s)
	createAccount(t, s, "taken", "pw3", domain.RoleClient)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRegister_AutoLogin(t *testing.T) {
	s := setupStore(t)
	svc := setupAuthService(t, s)

	resp, err := svc.Register(context.Background(), service.RegisterRequest{
		Username:        "newbie",
		Password:        "abc",
		ConfirmPassword: "abc",
	})
	require.NoError(t, err)

	// Registration hands back a live session for a client account.
	assert.Equal(t, domain.RoleClient, resp.Account.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	account, err := svc.VerifyAccess(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "newbie", account.Username)
}

func TestRefresh_RotatesToken(t *testing.T) {
	s := setupStore(t)
	svc := setupAuthService(t, s)
	createAccount(t, s, "alice", "secret", domain.RoleClient)

	ctx := context.Background()
	login, err := svc.Login(ctx, service.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, service.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token is dead after rotation.
	_, err = svc.Refresh(ctx, service.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.Error(t, err)

	// The new one works.
	_, err = svc.Refresh(ctx, service.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	require.NoError(t, err)
}

func TestLogout_Idempotent(t *testing.T) {
	s := setupStore(t)
	svc := setupAuthService(t, s)
	createAccount(t, s, "alice", "secret", domain.RoleClient)

	ctx := context.Background()
	login, err := svc.Login(ctx, service.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))
	require.NoError(t, svc.Logout(ctx, login.RefreshToken)) // already logged out

	_, err = svc.Refresh(ctx, service.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.Error(t, err)
}

func TestVerifyAccess_DeletedAccount(t *testing.T) {
	s := setupStore(t)
	svc := setupAuthService(t, s)
	createAccount(t, s, "alice", "secret", domain.RoleClient)

	ctx := context.Background()
	login, err := svc.Login(ctx, service.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAccount(ctx, "alice"))

	_, err = svc.VerifyAccess(ctx, login.AccessToken)
	assert.Error(t, err, "tokens die with the account")
}
