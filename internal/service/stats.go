package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/librasys/librasys-server/internal/domain"
	"github.com/librasys/librasys-server/internal/store"
)

// StatsService aggregates catalog statistics for the dashboard.
type StatsService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(store *store.Store, logger *slog.Logger) *StatsService {
	return &StatsService{
		store:  store,
		logger: logger,
	}
}

// Overview summarizes the catalog.
type Overview struct {
	TotalItems int `json:"total_items"`
	Available  int `json:"available"`
	Borrowed   int `json:"borrowed"`

	// Items per media kind: book, video, audio, ebook, audiobook.
	ByKind map[domain.Kind]int `json:"by_kind"`

	// Sums across items that carry the relevant field.
	TotalDurationMinutes int `json:"total_duration_minutes"`
	TotalPages           int `json:"total_pages"`
}

// Overview computes catalog statistics in one pass.
func (s *StatsService) Overview(ctx context.Context, actor Actor) (*Overview, error) {
	if err := actor.require(domain.CapabilityViewStats); err != nil {
		return nil, err
	}

	overview := &Overview{
		ByKind: make(map[domain.Kind]int),
	}

	for media, err := range s.store.ListMedia(ctx) {
		if err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}

		overview.TotalItems++
		if media.Available {
			overview.Available++
		} else {
			overview.Borrowed++
		}
		overview.ByKind[media.Kind]++
		overview.TotalDurationMinutes += media.DurationMinutes()
		overview.TotalPages += media.PageCount()
	}

	return overview, nil
}
