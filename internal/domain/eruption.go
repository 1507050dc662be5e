package domain

// RawEruption mirrors one object of the dataset JSON array. Required fields
// are pointers so a missing key can be told apart from a zero or empty value.
type RawEruption struct {
	Year      *int     `json:"Year" validate:"required"`
	Month     int      `json:"Month"`
	Day       int      `json:"Day"`
	Tsu       string   `json:"TSU"`
	EQ        string   `json:"EQ"`
	Name      *string  `json:"Name" validate:"required"`
	Location  string   `json:"Location"`
	Country   *string  `json:"Country" validate:"required"`
	Latitude  *float64 `json:"Latitude" validate:"required"`
	Longitude float64  `json:"Longitude"`
	Elevation *float64 `json:"Elevation" validate:"required"`
	Type      *string  `json:"Type" validate:"required"`
	VEI       *int     `json:"VEI" validate:"required"`
	Agent     string   `json:"Agent"`
	Deaths    string   `json:"DEATHS"`
}

// Eruption is one eruption event. Values are copied out of the raw record
// unchanged; nothing is trimmed or normalized.
type Eruption struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Location  string  `json:"location,omitempty"`
	Year      int     `json:"year"`
	Month     int     `json:"month,omitempty"`
	Day       int     `json:"day,omitempty"`
	VEI       int     `json:"vei"`
	Type      string  `json:"type"`
	Elevation float64 `json:"elevation"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Deaths    string  `json:"deaths"`
	Tsu       string  `json:"tsu"`
	EQ        string  `json:"eq,omitempty"`
	Agent     string  `json:"agent"`
}

// TsunamiMarker is the exact TSU value that flags an associated tsunami.
const TsunamiMarker = "tsu"

// HasTsunami reports whether the TSU field is exactly "tsu".
func (e Eruption) HasTsunami() bool {
	return e.Tsu == TsunamiMarker
}
