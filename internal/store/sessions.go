package store

import (
	"context"
	"errors"

	"github.com/librasys/librasys-server/internal/domain"
)

// CreateSession stores a new login session.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	return s.Sessions.Create(ctx, session.ID, session)
}

// GetSessionByRefreshToken looks up a session by its refresh token hash.
// Used during the token refresh flow.
func (s *Store) GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error) {
	session, err := s.Sessions.GetByIndex(ctx, "token", tokenHash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	return session, nil
}

// UpdateSession replaces a session record, re-pointing the token index when
// the refresh token rotates.
func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	if err := s.Sessions.Update(ctx, session.ID, session); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

// DeleteSession removes a session (logout). Idempotent.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	return s.Sessions.Delete(ctx, id)
}

// PurgeExpiredSessions removes all sessions past their expiry and returns
// how many were deleted.
func (s *Store) PurgeExpiredSessions(ctx context.Context) (int, error) {
	var expired []string
	for session, err := range s.Sessions.List(ctx) {
		if err != nil {
			return 0, err
		}
		if session.IsExpired() {
			expired = append(expired, session.ID)
		}
	}

	for _, id := range expired {
		if err := s.Sessions.Delete(ctx, id); err != nil {
			return 0, err
		}
	}

	return len(expired), nil
}
