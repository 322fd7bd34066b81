package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/RuinSim_Go/internal/config"
	"github.com/osse101/RuinSim_Go/internal/form"
	"github.com/osse101/RuinSim_Go/internal/handler"
	"github.com/osse101/RuinSim_Go/internal/logger"
	"github.com/osse101/RuinSim_Go/internal/metrics"
	"github.com/osse101/RuinSim_Go/internal/simulation"
)

type Server struct {
	httpServer *http.Server
}

// NewServer wires the router and middleware around the sweep service.
// checks gate /readyz.
func NewServer(cfg *config.Config, service simulation.Service, presets handler.PresetCatalog, checks ...handler.HealthChecker) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, service, presets, checks...),
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
	}
}

// NewRouter builds the HTTP routes. Exposed for tests.
func NewRouter(cfg *config.Config, service simulation.Service, presets handler.PresetCatalog, checks ...handler.HealthChecker) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	limiter := NewClientLimiter(cfg.RateLimitRequests, cfg.SweepStepBudget, cfg.RateLimitWindow)

	r.Use(SecurityHeadersMiddleware())
	if cfg.APIKey != "" {
		r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, limiter))
	} else {
		slog.Warn(LogMsgAuthDisabled)
	}
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, limiter))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(checks...))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	sweepHandler := handler.NewSweepHandler(service, presets, form.Limits{
		MaxGames:   cfg.MaxGames,
		MaxPlayers: cfg.MaxPlayers,
	}, limiter)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/presets", handler.HandleListPresets(presets))

		r.Route("/sweeps", func(r chi.Router) {
			r.Post("/", sweepHandler.HandleCreateSweep)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sweepHandler.HandleGetSweep)
				r.Get("/distribution", sweepHandler.HandleGetDistribution)
				r.Get("/report", sweepHandler.HandleGetReport)
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Honour a caller-supplied request ID so sweeps can be traced across services
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > 64 {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully, waiting for in-flight sweeps until ctx expires
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
