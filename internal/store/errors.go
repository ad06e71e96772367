package store

import (
	apperrors "github.com/librasys/librasys-server/internal/errors"
)

// Sentinel errors returned by store operations. The API layer maps the
// embedded codes to HTTP statuses.
var (
	ErrNotFound      = apperrors.ErrNotFound
	ErrAlreadyExists = apperrors.ErrAlreadyExists

	ErrAccountNotFound = apperrors.NotFound("account not found")
	ErrAccountExists   = apperrors.AlreadyExists("an account with this username already exists")

	ErrMediaNotFound = apperrors.NotFound("media item not found")

	ErrSessionNotFound = apperrors.Unauthorized("session not found")
	ErrSessionExpired  = apperrors.Unauthorized("session expired")

	ErrTranscriptNotFound = apperrors.NotFound("transcript not found")
)
