// Package httpapi exposes the query engine and catalog over HTTP.
// The routes mirror the dashboard API consumed by the frontend:
// entity listings, filtered flow listings, and the natural-language
// query endpoint.
package httpapi

import (
	"context"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driving"
	"github.com/flowatlas-labs/flowatlas-cli/internal/logger"
)

// Server serves the FlowAtlas HTTP API.
type Server struct {
	router  chi.Router
	query   driving.QueryService
	catalog driving.CatalogService
	limiter *rate.Limiter
}

// Options configures the server.
type Options struct {
	// RateLimit is the sustained request rate allowed on the query
	// endpoint, in requests per second. Zero disables limiting.
	RateLimit float64

	// RateBurst is the burst capacity of the limiter.
	RateBurst int
}

// NewServer wires the routes.
func NewServer(query driving.QueryService, catalog driving.CatalogService, opts Options) *Server {
	s := &Server{
		query:   query,
		catalog: catalog,
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/data-flows", s.handleListFlows)
		r.Get("/data-flows/{flowID}", s.handleGetFlow)
		r.Get("/systems", s.handleListSystems)
		r.Get("/formats", s.handleListFormats)
		r.Get("/transmission-methods", s.handleListMethods)
		r.Get("/interfaces", s.handleListInterfaces)
		r.With(s.rateLimitMiddleware).Post("/query", s.handleQuery)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler, useful for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// corsMiddleware allows the dashboard frontend to call the API from any
// origin, matching the permissive setup the deployment expects.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware rejects query bursts beyond the configured rate.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "query rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
