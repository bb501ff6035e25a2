package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osyp/eventix/internal/config"
	"github.com/osyp/eventix/internal/repository/memory"
	"github.com/osyp/eventix/internal/service"
	"github.com/osyp/eventix/internal/service/booking"
	"github.com/osyp/eventix/internal/session"
	httpgin "github.com/osyp/eventix/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// The store is process-lifetime state: seeded once, lost on exit.
	store := memory.NewStore()
	if cfg.Seed {
		if err := store.Seed(time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("failed to seed store: %w", err)
		}
		logger.Info("seeded demo data")
	}

	sessions := session.NewManager(cfg.Session.TTL)

	services := service.NewServices(store, service.Config{
		Booking: booking.Config{UnitPrice: cfg.Booking.TicketPrice},
	})

	router := httpgin.NewRouter(services, sessions, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
