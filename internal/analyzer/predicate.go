package analyzer

import "github.com/couchcryptid/volcano-analytics/internal/domain"

// Predicate selects eruptions.
type Predicate func(domain.Eruption) bool

// SouthernQuietVEI5 matches VEI 5 eruptions after 1800 in the southern
// hemisphere with no recorded tsunami.
var SouthernQuietVEI5 = All(YearAfter(1800), NoTsunami(), SouthernHemisphere(), VEIEquals(5))

// All matches when every predicate matches. All() matches everything.
func All(ps ...Predicate) Predicate {
	return func(e domain.Eruption) bool {
		for _, p := range ps {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one predicate matches. Any() matches nothing.
func Any(ps ...Predicate) Predicate {
	return func(e domain.Eruption) bool {
		for _, p := range ps {
			if p(e) {
				return true
			}
		}
		return false
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(e domain.Eruption) bool { return !p(e) }
}

// YearAfter matches year > y.
func YearAfter(y int) Predicate {
	return func(e domain.Eruption) bool { return e.Year > y }
}

// YearBetween matches from <= year <= to.
func YearBetween(from, to int) Predicate {
	return func(e domain.Eruption) bool { return e.Year >= from && e.Year <= to }
}

// VEIEquals matches vei == v.
func VEIEquals(v int) Predicate {
	return func(e domain.Eruption) bool { return e.VEI == v }
}

// VEIAtLeast matches vei >= v.
func VEIAtLeast(v int) Predicate {
	return func(e domain.Eruption) bool { return e.VEI >= v }
}

// NoTsunami matches an empty TSU field. Any other value, including
// variants of "tsu", does not match.
func NoTsunami() Predicate {
	return func(e domain.Eruption) bool { return e.Tsu == "" }
}

// WithTsunami matches records flagged with TsunamiMarker.
func WithTsunami() Predicate {
	return func(e domain.Eruption) bool { return e.HasTsunami() }
}

// SouthernHemisphere matches latitude < 0.
func SouthernHemisphere() Predicate {
	return func(e domain.Eruption) bool { return e.Latitude < 0 }
}

// NorthernHemisphere matches latitude > 0. The equator matches neither.
func NorthernHemisphere() Predicate {
	return func(e domain.Eruption) bool { return e.Latitude > 0 }
}

// ElevationAtLeast matches elevation >= m meters.
func ElevationAtLeast(m float64) Predicate {
	return func(e domain.Eruption) bool { return e.Elevation >= m }
}

// InCountry matches the country exactly, case included.
func InCountry(country string) Predicate {
	return func(e domain.Eruption) bool { return e.Country == country }
}
