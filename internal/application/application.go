package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/messaging-config/internal/api"
	"github.com/eugenenazirov/messaging-config/internal/config"
	"github.com/eugenenazirov/messaging-config/internal/provider"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	provider *provider.Config
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// New loads the property sources and initializes the introspection server.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	p, err := BuildProvider(ctx, cfg.Sources, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build configuration provider: %w", err)
	}
	return newApp(cfg, p, logger), nil
}

func newApp(cfg config.Config, p *provider.Config, logger *zap.Logger) *App {
	handler := api.NewHandler(p)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		provider: p,
		handler:  handler,
		router:   router,
		logger:   logger,
		server:   NewServer(cfg, router),
	}
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Provider returns the configuration provider served by the application.
func (a *App) Provider() *provider.Config {
	return a.provider
}
