package server

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/talkroom/talkroom/internal/server/store"
)

// App wires the hub, store and HTTP server together.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *Hub
	store           store.Store
	log             *zerolog.Logger
}

// NewApp assembles the application from already-constructed pieces. The
// HTTP server is built by the httpapi package; keeping construction there
// avoids an import cycle with the hub.
func NewApp(srv *stdhttp.Server, hub *Hub, st store.Store, shutdownTimeout time.Duration, logger *zerolog.Logger) *App {
	return &App{
		server:          srv,
		shutdownTimeout: shutdownTimeout,
		hub:             hub,
		store:           st,
		log:             logger,
	}
}

// Run starts the hub and HTTP server and blocks until context
// cancellation or a fatal server error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
