package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/librasys/librasys-server/internal/service"
)

// AuthenticatedInput carries the bearer token for protected operations.
type AuthenticatedInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

// authenticateRequest validates the Authorization header and returns the
// acting account as a service actor.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (service.Actor, error) {
	if authHeader == "" {
		return service.Actor{}, huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return service.Actor{}, huma.Error401Unauthorized("Invalid authorization header format")
	}

	account, err := s.services.Auth.VerifyAccess(ctx, parts[1])
	if err != nil {
		return service.Actor{}, huma.Error401Unauthorized("Invalid or expired token")
	}

	return service.Actor{Username: account.Username, Role: account.Role}, nil
}
