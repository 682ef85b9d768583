// Package server wires the HTTP surface of stanza: routing, middleware,
// metrics, and the lifecycle of the prediction pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stanzahq/stanza/config"
	"github.com/stanzahq/stanza/server/handlers"
	"github.com/stanzahq/stanza/server/metrics"
	"github.com/stanzahq/stanza/server/middleware"
	"github.com/stanzahq/stanza/server/processing"
	"github.com/stanzahq/stanza/server/provider"
)

// Router handles HTTP routing for the server.
type Router struct {
	router chi.Router
}

// NewRouter creates the route tree with the full middleware stack. The
// prediction route gets a timeout matching the configured generation bound;
// health and metrics stay snappy without one.
func NewRouter(predict http.Handler, m *metrics.Metrics, logger *zap.Logger, cfg *config.Config) *Router {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTimer)
	r.Use(middleware.PanicRecovery)
	r.Use(middleware.CORS)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.PrometheusMetrics(m))

	r.With(middleware.Timeout(cfg.Generation.Timeout)).Get("/predict", predict.ServeHTTP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
			logger.Error("Failed to encode health response", zap.Error(err))
		}
	})

	r.Handle("/metrics", m.Handler())

	return &Router{router: r}
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Server represents the HTTP server and the components whose lifecycle it
// owns: the metrics registry, the prediction handler, and the subscription
// to configuration updates.
type Server struct {
	watcher    config.Watcher
	ownWatcher bool
	logger     *zap.Logger
	metrics    *metrics.Metrics
	predict    *handlers.PredictHandler
	httpServer *http.Server
}

// NewServer creates a server from a configuration file path, watching the
// file for changes.
func NewServer(configPath string, logger *zap.Logger) (*Server, error) {
	watcher, err := config.NewConfigWatcher(configPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	srv, err := NewServerWithWatcher(watcher, logger)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	srv.ownWatcher = true
	return srv, nil
}

// NewServerWithWatcher creates a server around an existing config watcher.
// The caller retains ownership of the watcher.
func NewServerWithWatcher(watcher config.Watcher, logger *zap.Logger) (*Server, error) {
	cfg := watcher.GetCurrentConfig()

	m := metrics.NewMetrics()

	processor, err := buildProcessor(cfg, m, logger)
	if err != nil {
		return nil, err
	}

	predict := handlers.NewPredictHandler(processor, logger)
	router := NewRouter(predict, m, logger, cfg)

	return &Server{
		watcher: watcher,
		logger:  logger,
		metrics: m,
		predict: predict,
		httpServer: &http.Server{
			Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:        router,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		},
	}, nil
}

// buildProcessor constructs the generation client and processing pipeline
// for the given configuration.
func buildProcessor(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*processing.Processor, error) {
	client := provider.NewReplicateClient(cfg.Generation, logger)
	processor, err := processing.NewProcessor(client, m, logger, cfg.Generation)
	if err != nil {
		return nil, fmt.Errorf("failed to create processor: %w", err)
	}
	return processor, nil
}

// applyConfig swaps in a new processing pipeline after a configuration
// reload. Server-level settings (port, HTTP timeouts) require a restart and
// are left untouched.
func (s *Server) applyConfig(cfg *config.Config) {
	processor, err := buildProcessor(cfg, s.metrics, s.logger)
	if err != nil {
		s.logger.Error("Failed to apply new configuration", zap.Error(err))
		return
	}
	s.predict.Update(processor)
	s.logger.Info("Applied new generation configuration",
		zap.String("endpoint", cfg.Generation.Endpoint),
		zap.Int("max_length", cfg.Generation.MaxLength),
	)
}

// Start runs the server until ctx is cancelled or the listener fails. On
// cancellation the server shuts down gracefully within the configured
// shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	if s.ownWatcher {
		defer s.watcher.Close()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Server started", zap.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		updates := s.watcher.Subscribe()
		for {
			select {
			case <-gctx.Done():
				return nil
			case cfg, ok := <-updates:
				if !ok {
					return nil
				}
				s.applyConfig(cfg)
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.watcher.GetCurrentConfig().Server.ShutdownTimeout)
		defer cancel()

		s.logger.Info("Shutting down server")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error during server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
