package analyzer

import (
	"testing"

	"github.com/couchcryptid/volcano-analytics/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	e := domain.Eruption{Year: 1932, VEI: 5, Latitude: -35.6, Elevation: 3788, Country: "Chile"}

	tests := []struct {
		name string
		p    Predicate
		want bool
	}{
		{"year after", YearAfter(1800), true},
		{"year after is strict", YearAfter(1932), false},
		{"year between inclusive", YearBetween(1930, 1932), true},
		{"vei equals", VEIEquals(5), true},
		{"vei at least", VEIAtLeast(6), false},
		{"no tsunami", NoTsunami(), true},
		{"with tsunami", WithTsunami(), false},
		{"southern", SouthernHemisphere(), true},
		{"northern", NorthernHemisphere(), false},
		{"elevation at least inclusive", ElevationAtLeast(3788), true},
		{"country exact", InCountry("Chile"), true},
		{"country case sensitive", InCountry("CHILE"), false},
		{"all empty", All(), true},
		{"any empty", Any(), false},
		{"any one", Any(VEIEquals(1), VEIEquals(5)), true},
		{"not", Not(VEIEquals(5)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p(e))
		})
	}
}

func TestSouthernQuietVEI5(t *testing.T) {
	base := domain.Eruption{Year: 1886, VEI: 5, Latitude: -38.1}

	tests := []struct {
		name   string
		mutate func(*domain.Eruption)
		want   bool
	}{
		{"match", func(*domain.Eruption) {}, true},
		{"year 1800 excluded", func(e *domain.Eruption) { e.Year = 1800 }, false},
		{"tsunami excluded", func(e *domain.Eruption) { e.Tsu = "tsu" }, false},
		{"any TSU text excluded", func(e *domain.Eruption) { e.Tsu = " " }, false},
		{"equator excluded", func(e *domain.Eruption) { e.Latitude = 0 }, false},
		{"vei 6 excluded", func(e *domain.Eruption) { e.VEI = 6 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := base
			tt.mutate(&e)
			assert.Equal(t, tt.want, SouthernQuietVEI5(e))
		})
	}
}
