package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/librasys/librasys-server/internal/service"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStatsOverview",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats/overview",
		Summary:     "Catalog statistics",
		Description: "Returns aggregate catalog statistics. Requires admin rights.",
		Tags:        []string{"Statistics"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleStatsOverview)
}

// StatsOutput wraps the overview for Huma.
type StatsOutput struct {
	Body service.Overview
}

func (s *Server) handleStatsOverview(ctx context.Context, input *AuthenticatedInput) (*StatsOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	overview, err := s.services.Stats.Overview(ctx, actor)
	if err != nil {
		return nil, err
	}

	return &StatsOutput{Body: *overview}, nil
}
