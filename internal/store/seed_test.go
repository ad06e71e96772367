package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librasys/librasys-server/internal/auth"
	"github.com/librasys/librasys-server/internal/domain"
)

func TestSeedDefaults(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.SeedDefaults(ctx))

	accounts, err := s.CountAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, accounts)

	admin, err := s.GetAccount(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, auth.IsLegacyHash(admin.PasswordHash))

	items, err := s.CountMedia(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, items)

	pinkFloyd, err := s.GetMedia(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Dark Side of the Moon", pinkFloyd.Title)
	assert.False(t, pinkFloyd.Available)
	assert.Equal(t, domain.KindAudio, pinkFloyd.Kind)
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.SeedDefaults(ctx))

	// Mutate state, then seed again; nothing should be re-created.
	require.NoError(t, s.DeleteMedia(ctx, 1))
	require.NoError(t, s.SeedDefaults(ctx))

	items, err := s.CountMedia(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, items)

	accounts, err := s.CountAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, accounts)
}
