package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mwieland/lectern/internal/api"
	"github.com/mwieland/lectern/internal/catechism"
	"github.com/mwieland/lectern/internal/config"
	"github.com/mwieland/lectern/internal/render"
	"github.com/mwieland/lectern/internal/server/endpoints"
	"github.com/mwieland/lectern/internal/sessions"
	"github.com/mwieland/lectern/internal/svcctx"
)

// Server is the main Lectern HTTP server. It owns the content catalog, the
// page renderer and the websocket session hub, and shuts all of them down
// together.
type Server struct {
	httpServer *http.Server
	catalog    *catechism.Catalog
	renderer   *render.Renderer
	hub        *sessions.Hub
	configMgr  *config.Manager
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// CatalogPath selects a custom catalog file; empty uses the
	// embedded Heidelberg Catechism.
	CatalogPath string
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	var catalog *catechism.Catalog
	var err error
	if cfg.CatalogPath != "" {
		catalog, err = catechism.Load(cfg.CatalogPath)
	} else {
		catalog, err = catechism.Builtin()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	renderer, err := render.New(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	// Hub consults the config manager per session so reader tuning
	// hot-reloads apply without a restart.
	settings := func() sessions.Settings {
		if cfg.ConfigManager == nil {
			d := config.DefaultConfig().Reader
			return sessions.Settings{
				HysteresisPages: d.HysteresisPages,
				DebounceMs:      d.DebounceMs,
			}
		}
		rc := cfg.ConfigManager.Get().Reader
		return sessions.Settings{
			HysteresisPages: rc.HysteresisPages,
			DebounceMs:      rc.DebounceMs,
		}
	}
	hub := sessions.NewHub(catalog, settings, cfg.Logger)

	s := &Server{
		catalog:   catalog,
		renderer:  renderer,
		hub:       hub,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
	}

	s.services = &svcctx.Services{
		Catalog:   catalog,
		Hub:       hub,
		Renderer:  renderer,
		ConfigMgr: cfg.ConfigManager,
		Logger:    cfg.Logger,
		StartedAt: time.Now(),
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{}) {
		s.endpointRegistry.Register(ep)
	}

	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		IdleTimeout:  120 * time.Second,
		// No WriteTimeout: websocket sessions are long-lived.
	}

	return s, nil
}

// Start starts the server. It blocks until the context is cancelled or an
// error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr,
			"max_page", s.catalog.MaxPage())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server and session hub.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	// Close reading sessions first so the HTTP server can drain.
	s.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Catalog returns the loaded content catalog.
func (s *Server) Catalog() *catechism.Catalog {
	return s.catalog
}

// Hub returns the session hub.
func (s *Server) Hub() *sessions.Hub {
	return s.hub
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := svcctx.WithServices(r.Context(), s.services)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable if the catalog or hub aren't ready.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.catalog == nil || s.hub == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
