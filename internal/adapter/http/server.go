package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/volcano-analytics/internal/domain"
	"github.com/couchcryptid/volcano-analytics/internal/observability"
	"github.com/couchcryptid/volcano-analytics/internal/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analyzer is the query surface served over HTTP.
type Analyzer interface {
	report.Querier
	All() ([]domain.Eruption, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and read-only query endpoints.
type Server struct {
	httpServer *http.Server
	analyzer   Analyzer
	opts       report.Options
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and /v1 query routes.
// opts supplies the parameters for /v1/report.
func NewServer(addr string, a Analyzer, opts report.Options, logger *slog.Logger, metrics *observability.Metrics) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		analyzer: a,
		opts:     opts,
		logger:   logger,
		metrics:  metrics,
	}

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(a))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/eruptions", s.query("all", s.all))
		r.Get("/eruptions/count", s.query("count", s.count))
		r.Get("/eruptions/decade/{decade}", s.query("decade", s.decade))
		r.Get("/eruptions/high-magnitude", s.query("high_magnitude", s.highMagnitude))
		r.Get("/eruptions/most-deadly", s.query("most_deadly", s.mostDeadly))
		r.Get("/eruptions/criteria", s.query("criteria", s.criteria))
		r.Get("/eruptions/elevated", s.query("elevated_above", s.elevated))

		r.Get("/stats/tsunami-percentage", s.query("tsunami_percentage", s.tsunamiPercentage))
		r.Get("/stats/most-common-type", s.query("most_common_type", s.mostCommonType))
		r.Get("/stats/countries/{country}", s.query("count_by_country", s.countByCountry))
		r.Get("/stats/average-elevation", s.query("average_elevation", s.averageElevation))
		r.Get("/stats/types", s.query("distinct_types", s.distinctTypes))
		r.Get("/stats/northern-percentage", s.query("northern_percentage", s.northernPercentage))
		r.Get("/stats/top-agents", s.query("top_agents", s.topAgents))

		r.Get("/report", s.query("report", s.report))
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// badRequestError marks a malformed path or query parameter.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

type queryFunc func(r *http.Request) (any, error)

// query wraps a query handler with metrics and error mapping.
func (s *Server) query(name string, fn queryFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.Queries.WithLabelValues(name).Inc()

		v, err := fn(r)
		s.metrics.QueryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		if err != nil {
			s.metrics.QueryErrors.WithLabelValues(name).Inc()
			s.writeError(w, r, name, err)
			return
		}
		sharedobs.WriteJSON(w, http.StatusOK, v)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, name string, err error) {
	var (
		badReq *badRequestError
		perr   *domain.ParseError
	)
	switch {
	case errors.As(err, &badReq):
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotLoaded):
		sharedobs.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	case errors.As(err, &perr):
		s.logger.Error("query failed on malformed record",
			"query", name, "field", perr.Field, "value", perr.Value,
			"request_id", middleware.GetReqID(r.Context()), "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		s.logger.Error("query failed", "query", name,
			"request_id", middleware.GetReqID(r.Context()), "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
