package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librasys/librasys-server/internal/domain"
	"github.com/librasys/librasys-server/internal/store"
)

func newTestSession(id, username, tokenHash string, ttl time.Duration) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:               id,
		Username:         username,
		RefreshTokenHash: tokenHash,
		ExpiresAt:        now.Add(ttl),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
}

func TestGetSessionByRefreshToken(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	session := newTestSession("sess-1", "alice", "hash-abc", time.Hour)
	require.NoError(t, s.CreateSession(ctx, session))

	got, err := s.GetSessionByRefreshToken(ctx, "hash-abc")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.ID)
	assert.Equal(t, "alice", got.Username)

	_, err = s.GetSessionByRefreshToken(ctx, "hash-unknown")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestGetSessionByRefreshToken_Expired(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	session := newTestSession("sess-old", "bob", "hash-old", -time.Minute)
	require.NoError(t, s.CreateSession(ctx, session))

	_, err := s.GetSessionByRefreshToken(ctx, "hash-old")
	assert.ErrorIs(t, err, store.ErrSessionExpired)
}

func TestUpdateSession_RotatesTokenIndex(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	session := newTestSession("sess-2", "carol", "hash-before", time.Hour)
	require.NoError(t, s.CreateSession(ctx, session))

	session.RefreshTokenHash = "hash-after"
	session.Touch()
	require.NoError(t, s.UpdateSession(ctx, session))

	got, err := s.GetSessionByRefreshToken(ctx, "hash-after")
	require.NoError(t, err)
	assert.Equal(t, "sess-2", got.ID)

	// Old token no longer resolves.
	_, err = s.GetSessionByRefreshToken(ctx, "hash-before")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestDeleteSession_RemovesTokenIndex(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	session := newTestSession("sess-3", "dave", "hash-3", time.Hour)
	require.NoError(t, s.CreateSession(ctx, session))

	require.NoError(t, s.DeleteSession(ctx, "sess-3"))
	require.NoError(t, s.DeleteSession(ctx, "sess-3")) // idempotent

	_, err := s.GetSessionByRefreshToken(ctx, "hash-3")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestPurgeExpiredSessions(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateSession(ctx, newTestSession("live", "alice", "h1", time.Hour)))
	require.NoError(t, s.CreateSession(ctx, newTestSession("dead-1", "bob", "h2", -time.Minute)))
	require.NoError(t, s.CreateSession(ctx, newTestSession("dead-2", "carol", "h3", -time.Hour)))

	purged, err := s.PurgeExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, purged)

	live, err := s.GetSessionByRefreshToken(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "live", live.ID)

	_, err = s.GetSessionByRefreshToken(ctx, "h2")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}
