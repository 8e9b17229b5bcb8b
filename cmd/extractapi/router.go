// Package main provides the extraction API router setup, grounded on
// the teacher's NewRouter (cmd/knowledge-engine-api/router.go).
package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/freightlayer/extraction-engine/cmd/extractapi/handlers"
	"github.com/freightlayer/extraction-engine/internal/config"
	"github.com/freightlayer/extraction-engine/internal/observability"
	"github.com/freightlayer/extraction-engine/pkg/extraction"
)

// AppConfig holds the server-level settings not owned by config.Config.
type AppConfig struct {
	RequestTimeout time.Duration
}

// DefaultAppConfig returns the development defaults.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{RequestTimeout: 30 * time.Second}
}

// NewRouter builds the extraction API's chi router: one client per
// process, wired behind request-id/recoverer/timeout middleware and an
// otelhttp span per request.
func NewRouter(logger *observability.Logger, appCfg *AppConfig, engineCfg config.Config, apiKey string) (http.Handler, error) {
	client, err := extraction.NewClientWithConfig(engineCfg, apiKey)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(appCfg.RequestTimeout))
	r.Use(otelhttp.NewMiddleware("extractapi"))
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"extraction-engine"}`))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ready"}`))
	})

	extractHandler := handlers.NewExtractHandler(logger, client)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/extract", extractHandler.Extract)
	})

	return r, nil
}

// requestLogger emits one structured log line per request, mirroring
// the teacher's use of chimiddleware.Logger but through our own
// zerolog wrapper instead of chi's stdlib-backed default.
func requestLogger(logger *observability.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("http request")
		})
	}
}
