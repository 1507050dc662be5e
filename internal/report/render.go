package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteText writes a human-readable summary with numbers formatted for tag.
func WriteText(w io.Writer, r Report, tag language.Tag) error {
	p := message.NewPrinter(tag)
	var b strings.Builder

	p.Fprintf(&b, "Volcanic Eruptions Report %s (%s)\n\n", r.ID, r.GeneratedAt.Format(time.RFC3339))
	p.Fprintf(&b, "Eruptions recorded        : %d\n", r.Count)
	// Years are printed with strconv so the printer does not group their digits.
	p.Fprintf(&b, "Eruptions in the %-9s: %d\n", strconv.Itoa(r.Options.Decade)+"s", len(r.DecadeEruptions))
	if r.MostDeadly != nil {
		deaths, _ := r.MostDeadly.DeathCount()
		p.Fprintf(&b, "Most deadly               : %s, %s (%s) -- %d deaths\n",
			r.MostDeadly.Name, r.MostDeadly.Country, strconv.Itoa(r.MostDeadly.Year), deaths)
	}
	p.Fprintf(&b, "Caused a tsunami          : %.2f%%\n", r.TsunamiPercentage)
	p.Fprintf(&b, "Northern hemisphere       : %.2f%%\n", r.NorthernPercentage)
	p.Fprintf(&b, "Average elevation         : %.1f m\n", r.AverageElevation)
	p.Fprintf(&b, "Most common type          : %s\n", r.MostCommonType)
	p.Fprintf(&b, "Eruptions in %-12s : %d\n", r.Options.Country, r.CountryCount)
	p.Fprintf(&b, "\nHigh magnitude (VEI >= 6) : %s\n", strings.Join(r.HighMagnitude, ", "))
	p.Fprintf(&b, "Southern, quiet, VEI 5    : %s\n", strings.Join(r.SouthernQuietVEI5, ", "))
	p.Fprintf(&b, "At or above %.0f m        : %s\n", r.Options.ElevationThreshold, strings.Join(r.ElevatedAbove, ", "))
	p.Fprintf(&b, "Top agents of death       : %s\n", strings.Join(r.TopAgentsOfDeath, ", "))

	p.Fprintf(&b, "\nBy type:\n")
	for i, tc := range r.TypeCounts {
		p.Fprintf(&b, "%02d. %-20s %5d\n", i+1, tc.Type, tc.Count)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteXLSX writes r as a workbook with a Summary sheet and a sheet listing
// the eruptions of the report decade.
func WriteXLSX(w io.Writer, r Report) error {
	f := xlsx.NewFile()
	f.NewSheet(summarySheet)
	f.NewSheet(decadeSheet)
	f.DeleteSheet("Sheet1")

	summary := [][]interface{}{
		{"Report ID", r.ID},
		{"Generated At", r.GeneratedAt.Format(time.RFC3339)},
		{"Eruptions", r.Count},
		{"Tsunami %", r.TsunamiPercentage},
		{"Northern Hemisphere %", r.NorthernPercentage},
		{"Average Elevation (m)", r.AverageElevation},
		{"Most Common Type", r.MostCommonType},
		{"Eruptions in " + r.Options.Country, r.CountryCount},
		{"High Magnitude", strings.Join(r.HighMagnitude, ", ")},
		{"Southern Quiet VEI 5", strings.Join(r.SouthernQuietVEI5, ", ")},
		{"Elevated Above", strings.Join(r.ElevatedAbove, ", ")},
		{"Top Agents Of Death", strings.Join(r.TopAgentsOfDeath, ", ")},
	}
	if r.MostDeadly != nil {
		summary = append(summary, []interface{}{"Most Deadly", r.MostDeadly.Name})
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	decade := [][]interface{}{{"Name", "Country", "Year", "VEI", "Type", "Elevation", "Deaths"}}
	for _, e := range r.DecadeEruptions {
		decade = append(decade, []interface{}{e.Name, e.Country, e.Year, e.VEI, e.Type, e.Elevation, e.Deaths})
	}
	if err := writeRows(f, decadeSheet, decade); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

const (
	summarySheet = "Summary"
	decadeSheet  = "Decade"
)

func writeRows(f *xlsx.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := xlsx.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
