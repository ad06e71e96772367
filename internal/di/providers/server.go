package providers

import (
	"context"
	"net"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/librasys/librasys-server/internal/api"
	"github.com/librasys/librasys-server/internal/config"
	"github.com/librasys/librasys-server/internal/logger"
	"github.com/librasys/librasys-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	// Seeding must have happened before the first request.
	_ = do.MustInvoke[*Bootstrap](i)

	services := &api.Services{
		Auth:      do.MustInvoke[*service.AuthService](i),
		Catalog:   do.MustInvoke[*service.CatalogService](i),
		Account:   do.MustInvoke[*service.AccountService](i),
		Stats:     do.MustInvoke[*service.StatsService](i),
		Assistant: do.MustInvoke[*service.AssistantService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, cfg.Server.Name, log.Logger)

	srv := &http.Server{
		Addr:         net.JoinHostPort("", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
