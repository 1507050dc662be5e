package http

import (
	"math"
	"net/http"
	"strconv"

	"github.com/couchcryptid/volcano-analytics/internal/report"
	"github.com/go-chi/chi/v5"
)

func (s *Server) all(_ *http.Request) (any, error) {
	eruptions, err := s.analyzer.All()
	return map[string]any{"eruptions": eruptions}, err
}

func (s *Server) count(_ *http.Request) (any, error) {
	n, err := s.analyzer.Count()
	return map[string]int{"count": n}, err
}

func (s *Server) decade(r *http.Request) (any, error) {
	raw := chi.URLParam(r, "decade")
	decade, err := strconv.Atoi(raw)
	if err != nil || decade%10 != 0 {
		return nil, &badRequestError{msg: "decade must be a year divisible by 10, got " + strconv.Quote(raw)}
	}
	eruptions, err := s.analyzer.EruptedInDecade(decade)
	return map[string]any{"decade": decade, "eruptions": eruptions}, err
}

func (s *Server) highMagnitude(_ *http.Request) (any, error) {
	names, err := s.analyzer.HighMagnitude()
	return map[string]any{"names": names}, err
}

func (s *Server) mostDeadly(_ *http.Request) (any, error) {
	e, err := s.analyzer.MostDeadly()
	return map[string]any{"eruption": e}, err
}

func (s *Server) criteria(_ *http.Request) (any, error) {
	names, err := s.analyzer.FilteredByCriteria()
	return map[string]any{"names": names}, err
}

func (s *Server) elevated(r *http.Request) (any, error) {
	raw := r.URL.Query().Get("min")
	if raw == "" {
		return nil, &badRequestError{msg: "query parameter min is required"}
	}
	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, &badRequestError{msg: "min must be a finite number, got " + strconv.Quote(raw)}
	}
	names, err := s.analyzer.ElevatedAbove(threshold)
	return map[string]any{"min": threshold, "names": names}, err
}

func (s *Server) tsunamiPercentage(_ *http.Request) (any, error) {
	pct, err := s.analyzer.TsunamiPercentage()
	return map[string]float64{"percentage": pct}, err
}

func (s *Server) mostCommonType(_ *http.Request) (any, error) {
	t, err := s.analyzer.MostCommonType()
	return map[string]string{"type": t}, err
}

func (s *Server) countByCountry(r *http.Request) (any, error) {
	country := chi.URLParam(r, "country")
	n, err := s.analyzer.CountByCountry(country)
	return map[string]any{"country": country, "count": n}, err
}

func (s *Server) averageElevation(_ *http.Request) (any, error) {
	avg, err := s.analyzer.AverageElevation()
	return map[string]float64{"average_elevation": avg}, err
}

func (s *Server) distinctTypes(_ *http.Request) (any, error) {
	types, err := s.analyzer.DistinctTypes()
	return map[string]any{"types": types}, err
}

func (s *Server) northernPercentage(_ *http.Request) (any, error) {
	pct, err := s.analyzer.PercentNorthernHemisphere()
	return map[string]float64{"percentage": pct}, err
}

func (s *Server) topAgents(_ *http.Request) (any, error) {
	agents, err := s.analyzer.TopAgentsOfDeath()
	return map[string]any{"agents": agents}, err
}

func (s *Server) report(_ *http.Request) (any, error) {
	return report.Build(s.analyzer, s.opts)
}
