package server

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sundayezeilo/websitio/internal/config"
	"github.com/sundayezeilo/websitio/internal/httpx"
	"github.com/sundayezeilo/websitio/internal/siteconfig"
)

const readinessTimeout = 2 * time.Second

// CheckFunc reports whether a dependency can serve traffic.
type CheckFunc func(ctx context.Context) error

// Option configures optional Server behaviour.
type Option func(*Server)

// WithReadinessCheck adds a named dependency to GET /x/ready.
func WithReadinessCheck(name string, check CheckFunc) Option {
	return func(s *Server) {
		s.checks = append(s.checks, namedCheck{name: name, check: check})
	}
}

type namedCheck struct {
	name  string
	check CheckFunc
}

// Server serves the config API and the client site router.
type Server struct {
	config  *config.Config
	logger  *slog.Logger
	handler *siteconfig.Handler
	checks  []namedCheck
	server  *http.Server
}

func New(cfg *config.Config, logger *slog.Logger, handler *siteconfig.Handler, opts ...Option) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger,
		handler: handler,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start serves until ctx is cancelled or the process receives SIGINT/SIGTERM,
// then drains in-flight requests for up to ShutdownTimeout.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         net.JoinHostPort(s.config.Server.Host, s.config.Server.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server",
			"addr", s.server.Addr,
			"env", s.config.App.Environment,
		)
		serverErrors <- s.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		s.logger.Info("shutdown requested", "cause", context.Cause(ctx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		s.logger.Info("server stopped gracefully")
		return nil
	}
}

// Handler returns the routed handler with the full middleware stack.
func (s *Server) Handler() http.Handler {
	return s.applyMiddleware(s.setupRoutes())
}

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /x/health", s.healthCheckHandler)
	mux.HandleFunc("GET /x/ready", s.readinessHandler)

	mux.HandleFunc("GET /api/config", s.handler.GetDefault)
	mux.HandleFunc("POST /api/config", s.handler.CreateConfig)
	mux.HandleFunc("GET /api/config/{id}", s.handler.GetConfig)
	mux.HandleFunc("PUT /api/config/{id}", s.handler.UpdateConfig)
	mux.HandleFunc("DELETE /api/config/{id}", s.handler.DeleteConfig)

	mux.HandleFunc("GET /api/clients", s.handler.ListClients)
	mux.HandleFunc("GET /api/client-url/{clientId}", s.handler.GetClientURL)
	mux.HandleFunc("GET /api/validate-client-url/{urlSlug}", s.handler.ValidateClientURL)

	// Client sites live at the root: /drjuangarcia43
	mux.HandleFunc("GET /{slug}", s.handler.ResolveClient)

	return mux
}

func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	chained := httpx.Chain(
		httpx.Recovery(s.logger),
		httpx.RequestID,
		httpx.Logger(s.logger),
		httpx.CORS(s.config.Server.CORSOrigins),
	)(handler)

	// Outermost so spans cover the whole request.
	return otelhttp.NewHandler(chained, cmp.Or(s.config.Observability.ServiceName, "websitio"))
}

func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.config.Observability.ServiceName,
		"version": s.config.Observability.ServiceVersion,
	})
}

// readinessHandler runs every registered check and reports 503 if any fails.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for _, c := range s.checks {
		if err := c.check(ctx); err != nil {
			s.logger.WarnContext(ctx, "readiness check failed",
				"request_id", httpx.GetRequestID(ctx),
				"check", c.name,
				"error", err.Error(),
			)
			results[c.name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		results[c.name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "unavailable"
	}
	httpx.WriteJSON(w, status, map[string]any{
		"status": overall,
		"checks": results,
	})
}

// Shutdown stops accepting connections and waits for in-flight requests.
// If ctx expires first the remaining connections are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("shutdown timeout exceeded, forcing close")
			return s.server.Close()
		}
		return err
	}
	return nil
}
