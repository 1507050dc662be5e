package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// NewEruption converts a validated raw record into an Eruption. Required
// pointer fields must be non-nil; the loader checks that before calling.
func NewEruption(rec RawEruption) Eruption {
	e := Eruption{
		Name:      deref(rec.Name),
		Country:   deref(rec.Country),
		Location:  rec.Location,
		Month:     rec.Month,
		Day:       rec.Day,
		Type:      deref(rec.Type),
		Longitude: rec.Longitude,
		Deaths:    rec.Deaths,
		Tsu:       rec.Tsu,
		EQ:        rec.EQ,
		Agent:     rec.Agent,
	}
	e.Year = deref(rec.Year)
	e.VEI = deref(rec.VEI)
	e.Elevation = deref(rec.Elevation)
	e.Latitude = deref(rec.Latitude)
	e.ID = generateID(e.Name, e.Country, e.Year, e.Latitude, e.Longitude)
	return e
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// DeathCount parses the DEATHS text as a base-10 integer.
func (e Eruption) DeathCount() (int, error) {
	n, err := strconv.Atoi(e.Deaths)
	if err != nil {
		return 0, &ParseError{Index: -1, Field: "DEATHS", Value: e.Deaths, Err: err}
	}
	return n, nil
}

// Agents splits the Agent field on commas. Segments are returned as-is,
// including empty ones.
func (e Eruption) Agents() []string {
	return strings.Split(e.Agent, ",")
}

// generateID produces a deterministic ID from the eruption's identifying fields.
func generateID(name, country string, year int, lat, lon float64) string {
	input := fmt.Sprintf("%s|%s|%d|%.4f|%.4f", name, country, year, lat, lon)
	hash := sha256.Sum256([]byte(input))
	return "eruption-" + hex.EncodeToString(hash[:8])
}
