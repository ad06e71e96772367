package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/librasys/librasys-server/internal/config"
	"github.com/librasys/librasys-server/internal/logger"
	"github.com/librasys/librasys-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.Path, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// Bootstrap marks the database as seeded with the default accounts and catalog.
type Bootstrap struct{}

// ProvideBootstrap seeds the default accounts and catalog on first run.
// An already-populated database is left untouched.
func ProvideBootstrap(i do.Injector) (*Bootstrap, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx := context.Background()

	if err := storeHandle.SeedDefaults(ctx); err != nil {
		return nil, err
	}
	log.Info("Default data verified")

	purged, err := storeHandle.PurgeExpiredSessions(ctx)
	if err != nil {
		return nil, err
	}
	if purged > 0 {
		log.Info("Purged expired sessions", "count", purged)
	}

	return &Bootstrap{}, nil
}
