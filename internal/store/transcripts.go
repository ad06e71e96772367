package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/librasys/librasys-server/internal/domain"
)

// Each account keeps one assistant conversation transcript.
const transcriptPrefix = "chat:"

func transcriptKey(username string) []byte {
	return []byte(transcriptPrefix + username)
}

// GetTranscript retrieves the chat transcript for a user.
func (s *Store) GetTranscript(ctx context.Context, username string) (*domain.Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var transcript domain.Transcript
	if err := s.get(transcriptKey(username), &transcript); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("get transcript: %w", err)
	}

	return &transcript, nil
}

// SaveTranscript stores a user's chat transcript, replacing any previous one.
func (s *Store) SaveTranscript(ctx context.Context, transcript *domain.Transcript) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.set(transcriptKey(transcript.Username), transcript)
}

// DeleteTranscript removes a user's chat transcript. Idempotent; called when
// the account is deleted so the conversation does not outlive its owner.
func (s *Store) DeleteTranscript(ctx context.Context, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.delete(transcriptKey(username))
}
