// Package domain models volcanic eruption records from the NOAA/NGDC
// Significant Volcanic Eruptions dataset.
//
// # Data Source
//
// The bundled dataset is a JSON export of the NGDC significant eruptions table:
// one object per eruption, keys in the table's column spelling ("Year", "VEI",
// "DEATHS", "TSU", ...). encoding/json matches keys case-insensitively, so
// lower-case exports ("vei", "deaths") decode into the same fields.
//
// # Dataset Conventions
//
// Year:
//
//	Signed integer. Negative values are BCE (e.g. -4360 for Crater Lake).
//
// VEI (Volcanic Explosivity Index):
//
//	Logarithmic magnitude scale, 0 through 8 by convention. Not range checked.
//
// Deaths:
//
//	Stored as text ("DEATHS" column is exported as a string). Every consumer
//	parses it with [Eruption.DeathCount]; a non-numeric value is a
//	[ParseError], never silently zero.
//
// Tsunami and earthquake markers:
//
//	"TSU" is "tsu" when a tsunami was associated with the eruption and empty
//	otherwise. "EQ" follows the same convention with "eq". Comparison is exact.
//
// Agent:
//
//	Comma-separated cause-of-death codes, e.g. "P,T,W" or "ash,flow,tsunami".
//	Segments are not trimmed and may be empty.
//
// Latitude / Elevation:
//
//	Degrees north (negative = southern hemisphere) and metres above sea level
//	(negative for submarine vents).
//
// # ID Generation
//
// Eruption IDs are deterministic SHA-256 prefixes of name|country|year|lat|lon so
// the same record loaded twice gets the same ID. See [generateID].
package domain
