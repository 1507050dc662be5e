// Package analyzer answers read-only queries over a loaded eruption dataset.
//
// An Analyzer is loaded exactly once and is immutable afterwards, so any
// number of goroutines may query it without locking. Queries on an analyzer
// that has not been loaded return domain.ErrNotLoaded.
package analyzer

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/couchcryptid/volcano-analytics/internal/domain"
)

// ErrAlreadyLoaded is returned when Load is called on a loaded Analyzer.
var ErrAlreadyLoaded = errors.New("eruption dataset already loaded")

// HighMagnitudeVEI is the lowest VEI counted by HighMagnitude.
const HighMagnitudeVEI = 6

// TopAgentsSample is how many of the deadliest eruptions TopAgentsOfDeath inspects.
const TopAgentsSample = 10

// Analyzer holds an ordered, frozen slice of eruptions.
type Analyzer struct {
	mu      sync.Mutex // serializes Load
	loaded  atomic.Bool
	records []domain.Eruption
}

// TypeCount is the number of eruptions of one volcano type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CountryCount is the number of eruptions recorded for one country.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// New returns an Analyzer loaded with a copy of records.
func New(records []domain.Eruption) *Analyzer {
	a := &Analyzer{}
	_ = a.Load(records)
	return a
}

// Load performs the one-time initialization of an unloaded Analyzer. The
// records are copied; later changes to the caller's slice are not seen.
func (a *Analyzer) Load(records []domain.Eruption) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.loaded.Load() {
		return ErrAlreadyLoaded
	}
	a.records = append([]domain.Eruption(nil), records...)
	a.loaded.Store(true)
	return nil
}

// Loaded reports whether the dataset has been loaded.
func (a *Analyzer) Loaded() bool {
	return a != nil && a.loaded.Load()
}

// CheckReadiness returns nil once the dataset is loaded.
func (a *Analyzer) CheckReadiness(_ context.Context) error {
	if !a.Loaded() {
		return domain.ErrNotLoaded
	}
	return nil
}

func (a *Analyzer) data() ([]domain.Eruption, error) {
	if !a.Loaded() {
		return nil, domain.ErrNotLoaded
	}
	return a.records, nil
}

// Count returns the number of loaded eruptions.
func (a *Analyzer) Count() (int, error) {
	records, err := a.data()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// All returns every eruption in load order. The returned slice is a copy.
func (a *Analyzer) All() ([]domain.Eruption, error) {
	records, err := a.data()
	if err != nil {
		return nil, err
	}
	return append([]domain.Eruption{}, records...), nil
}

// Filter returns the eruptions matching p, in load order.
func (a *Analyzer) Filter(p Predicate) ([]domain.Eruption, error) {
	records, err := a.data()
	if err != nil {
		return nil, err
	}
	out := []domain.Eruption{}
	for _, e := range records {
		if p(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// NamesMatching returns the names of eruptions matching p, in load order.
func (a *Analyzer) NamesMatching(p Predicate) ([]string, error) {
	matched, err := a.Filter(p)
	if err != nil {
		return nil, err
	}
	return names(matched), nil
}

// EruptedInDecade returns eruptions with decade <= year <= decade+9.
func (a *Analyzer) EruptedInDecade(decade int) ([]domain.Eruption, error) {
	return a.Filter(YearBetween(decade, decade+9))
}

// EruptedInEighties returns eruptions from 1980 through 1989.
func (a *Analyzer) EruptedInEighties() ([]domain.Eruption, error) {
	return a.EruptedInDecade(1980)
}

// HighMagnitude returns the names of eruptions with VEI >= 6.
func (a *Analyzer) HighMagnitude() ([]string, error) {
	return a.NamesMatching(VEIAtLeast(HighMagnitudeVEI))
}

// FilteredByCriteria returns the names matching the SouthernQuietVEI5 preset.
func (a *Analyzer) FilteredByCriteria() ([]string, error) {
	return a.NamesMatching(SouthernQuietVEI5)
}

// ElevatedAbove returns the names of eruptions with elevation >= threshold.
func (a *Analyzer) ElevatedAbove(threshold float64) ([]string, error) {
	return a.NamesMatching(ElevationAtLeast(threshold))
}

// CountByCountry counts eruptions whose country equals country exactly.
func (a *Analyzer) CountByCountry(country string) (int, error) {
	matched, err := a.Filter(InCountry(country))
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

// CountsByCountry returns per-country counts in first-occurrence order.
func (a *Analyzer) CountsByCountry() ([]CountryCount, error) {
	records, err := a.data()
	if err != nil {
		return nil, err
	}
	index := make(map[string]int)
	out := []CountryCount{}
	for _, e := range records {
		i, ok := index[e.Country]
		if !ok {
			i = len(out)
			index[e.Country] = i
			out = append(out, CountryCount{Country: e.Country})
		}
		out[i].Count++
	}
	return out, nil
}

// MostDeadly returns the eruption with the highest death count. Ties keep
// the earliest record. Returns nil when the dataset is empty.
func (a *Analyzer) MostDeadly() (*domain.Eruption, error) {
	records, err := a.data()
	if err != nil {
		return nil, err
	}

	var best *domain.Eruption
	bestDeaths := 0
	for i := range records {
		n, err := records[i].DeathCount()
		if err != nil {
			return nil, err
		}
		if best == nil || n > bestDeaths {
			e := records[i]
			best = &e
			bestDeaths = n
		}
	}
	return best, nil
}

// TsunamiPercentage returns the share (0-100) of eruptions whose TSU is
// exactly "tsu". An empty dataset yields 0.
func (a *Analyzer) TsunamiPercentage() (float64, error) {
	records, err := a.data()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range records {
		if e.HasTsunami() {
			n++
		}
	}
	return percent(n, len(records)), nil
}

// PercentNorthernHemisphere returns the share (0-100) of eruptions with a
// positive latitude. An empty dataset yields 0.
func (a *Analyzer) PercentNorthernHemisphere() (float64, error) {
	records, err := a.data()
	if err != nil {
		return 0, err
	}
	north := NorthernHemisphere()
	n := 0
	for _, e := range records {
		if north(e) {
			n++
		}
	}
	return percent(n, len(records)), nil
}

// AverageElevation returns the mean elevation in metres, or 0 when empty.
func (a *Analyzer) AverageElevation() (float64, error) {
	records, err := a.data()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	var sum float64
	for _, e := range records {
		sum += e.Elevation
	}
	return sum / float64(len(records)), nil
}

// TypeCounts returns per-type counts in first-occurrence order.
func (a *Analyzer) TypeCounts() ([]TypeCount, error) {
	records, err := a.data()
	if err != nil {
		return nil, err
	}
	index := make(map[string]int)
	out := []TypeCount{}
	for _, e := range records {
		i, ok := index[e.Type]
		if !ok {
			i = len(out)
			index[e.Type] = i
			out = append(out, TypeCount{Type: e.Type})
		}
		out[i].Count++
	}
	return out, nil
}

// MostCommonType returns the most frequent volcano type. On a tie the type
// seen first in the dataset wins. Returns "" when empty.
func (a *Analyzer) MostCommonType() (string, error) {
	counts, err := a.TypeCounts()
	if err != nil {
		return "", err
	}
	best := TypeCount{}
	for _, tc := range counts {
		if tc.Count > best.Count {
			best = tc
		}
	}
	return best.Type, nil
}

// DistinctTypes returns each volcano type once, in first-occurrence order.
func (a *Analyzer) DistinctTypes() ([]string, error) {
	counts, err := a.TypeCounts()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(counts))
	for i, tc := range counts {
		out[i] = tc.Type
	}
	return out, nil
}

// TopDeadliest returns up to n eruptions ordered by death count, highest
// first. Equal counts keep load order. Every record's death count is parsed,
// so one bad value fails the whole query.
func (a *Analyzer) TopDeadliest(n int) ([]domain.Eruption, error) {
	records, err := a.data()
	if err != nil {
		return nil, err
	}

	type ranked struct {
		eruption domain.Eruption
		deaths   int
	}
	rs := make([]ranked, len(records))
	for i, e := range records {
		d, err := e.DeathCount()
		if err != nil {
			return nil, err
		}
		rs[i] = ranked{eruption: e, deaths: d}
	}

	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].deaths > rs[j].deaths
	})

	if n < 0 {
		n = 0
	}
	if n > len(rs) {
		n = len(rs)
	}
	out := make([]domain.Eruption, n)
	for i := range out {
		out[i] = rs[i].eruption
	}
	return out, nil
}

// TopAgentsOfDeath collects the causes of death of the ten deadliest
// eruptions. Agents are listed once each, in the order first seen; empty
// segments are dropped.
func (a *Analyzer) TopAgentsOfDeath() ([]string, error) {
	top, err := a.TopDeadliest(TopAgentsSample)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := []string{}
	for _, e := range top {
		for _, agent := range e.Agents() {
			if agent == "" || seen[agent] {
				continue
			}
			seen[agent] = true
			out = append(out, agent)
		}
	}
	return out, nil
}

func names(records []domain.Eruption) []string {
	out := make([]string, len(records))
	for i, e := range records {
		out[i] = e.Name
	}
	return out
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}
