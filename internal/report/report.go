// Package report runs every analyzer query once and renders the results.
package report

import (
	"fmt"
	"time"

	"github.com/couchcryptid/volcano-analytics/internal/analyzer"
	"github.com/couchcryptid/volcano-analytics/internal/domain"
	"github.com/google/uuid"
)

// Querier is the query surface a report is built from. Both
// *analyzer.Analyzer and *analyzer.Cached satisfy it.
type Querier interface {
	Count() (int, error)
	EruptedInDecade(decade int) ([]domain.Eruption, error)
	HighMagnitude() ([]string, error)
	MostDeadly() (*domain.Eruption, error)
	TsunamiPercentage() (float64, error)
	MostCommonType() (string, error)
	TypeCounts() ([]analyzer.TypeCount, error)
	CountByCountry(country string) (int, error)
	AverageElevation() (float64, error)
	DistinctTypes() ([]string, error)
	PercentNorthernHemisphere() (float64, error)
	FilteredByCriteria() ([]string, error)
	ElevatedAbove(threshold float64) ([]string, error)
	TopAgentsOfDeath() ([]string, error)
}

// Options parameterizes the queries that take arguments.
type Options struct {
	Country            string  `json:"country"`
	ElevationThreshold float64 `json:"elevation_threshold"`
	Decade             int     `json:"decade"`
}

// DefaultOptions matches the service's default configuration.
func DefaultOptions() Options {
	return Options{Country: "Indonesia", ElevationThreshold: 3000, Decade: 1980}
}

// Report is a snapshot of every query result.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Options     Options   `json:"options"`

	Count              int                  `json:"count"`
	DecadeEruptions    []domain.Eruption    `json:"decade_eruptions"`
	HighMagnitude      []string             `json:"high_magnitude"`
	MostDeadly         *domain.Eruption     `json:"most_deadly"`
	TsunamiPercentage  float64              `json:"tsunami_percentage"`
	MostCommonType     string               `json:"most_common_type"`
	TypeCounts         []analyzer.TypeCount `json:"type_counts"`
	CountryCount       int                  `json:"country_count"`
	AverageElevation   float64              `json:"average_elevation"`
	DistinctTypes      []string             `json:"distinct_types"`
	NorthernPercentage float64              `json:"northern_percentage"`
	SouthernQuietVEI5  []string             `json:"southern_quiet_vei5"`
	ElevatedAbove      []string             `json:"elevated_above"`
	TopAgentsOfDeath   []string             `json:"top_agents_of_death"`
}

// Build runs every query against q. The first failing query aborts the build.
func Build(q Querier, opts Options) (Report, error) {
	r := Report{
		ID:          uuid.NewString(),
		GeneratedAt: clock.Now().UTC(),
		Options:     opts,
	}

	var err error
	if r.Count, err = q.Count(); err != nil {
		return Report{}, wrap("count", err)
	}
	if r.DecadeEruptions, err = q.EruptedInDecade(opts.Decade); err != nil {
		return Report{}, wrap("decade", err)
	}
	if r.HighMagnitude, err = q.HighMagnitude(); err != nil {
		return Report{}, wrap("high magnitude", err)
	}
	if r.MostDeadly, err = q.MostDeadly(); err != nil {
		return Report{}, wrap("most deadly", err)
	}
	if r.TsunamiPercentage, err = q.TsunamiPercentage(); err != nil {
		return Report{}, wrap("tsunami percentage", err)
	}
	if r.MostCommonType, err = q.MostCommonType(); err != nil {
		return Report{}, wrap("most common type", err)
	}
	if r.TypeCounts, err = q.TypeCounts(); err != nil {
		return Report{}, wrap("type counts", err)
	}
	if r.CountryCount, err = q.CountByCountry(opts.Country); err != nil {
		return Report{}, wrap("country count", err)
	}
	if r.AverageElevation, err = q.AverageElevation(); err != nil {
		return Report{}, wrap("average elevation", err)
	}
	if r.DistinctTypes, err = q.DistinctTypes(); err != nil {
		return Report{}, wrap("distinct types", err)
	}
	if r.NorthernPercentage, err = q.PercentNorthernHemisphere(); err != nil {
		return Report{}, wrap("northern percentage", err)
	}
	if r.SouthernQuietVEI5, err = q.FilteredByCriteria(); err != nil {
		return Report{}, wrap("criteria", err)
	}
	if r.ElevatedAbove, err = q.ElevatedAbove(opts.ElevationThreshold); err != nil {
		return Report{}, wrap("elevated above", err)
	}
	if r.TopAgentsOfDeath, err = q.TopAgentsOfDeath(); err != nil {
		return Report{}, wrap("top agents", err)
	}
	return r, nil
}

func wrap(step string, err error) error {
	return fmt.Errorf("build report: %s: %w", step, err)
}
