// Command report loads an eruption dataset, runs every analyzer query once,
// and writes the resulting report as JSON, localized text, or an XLSX workbook.
//
// Usage:
//
//	go run ./cmd/report -format text -lang de
//	go run ./cmd/report -data eruptions.json -format xlsx -out report.xlsx
//	go run ./cmd/report -at 2024-01-01T00:00:00Z -dump
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/volcano-analytics/internal/analyzer"
	"github.com/couchcryptid/volcano-analytics/internal/loader"
	"github.com/couchcryptid/volcano-analytics/internal/report"
	"github.com/davecgh/go-spew/spew"
	"github.com/jonboulle/clockwork"
	"golang.org/x/text/language"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	defaults := report.DefaultOptions()

	dataPath := flag.String("data", "", "dataset path (default: bundled volcano.json)")
	format := flag.String("format", "json", "output format: json, text, or xlsx")
	out := flag.String("out", "", "output file (default: stdout)")
	lang := flag.String("lang", "en", "BCP 47 language tag for text output")
	country := flag.String("country", defaults.Country, "country for the per-country count")
	minElevation := flag.Float64("min-elevation", defaults.ElevationThreshold, "elevation threshold in meters")
	decade := flag.Int("decade", defaults.Decade, "decade start year, divisible by 10")
	at := flag.String("at", "", "fixed RFC 3339 generation time for reproducible output")
	dump := flag.Bool("dump", false, "dump the deadliest eruptions to stderr")
	top := flag.Int("top", 5, "number of deadliest eruptions to dump")
	flag.Parse()

	if *decade%10 != 0 {
		return fmt.Errorf("invalid -decade %d: must be divisible by 10", *decade)
	}
	if math.IsNaN(*minElevation) || math.IsInf(*minElevation, 0) {
		return fmt.Errorf("invalid -min-elevation %v: must be finite", *minElevation)
	}
	tag, err := language.Parse(*lang)
	if err != nil {
		return fmt.Errorf("invalid -lang %q: %w", *lang, err)
	}
	render, ok := renderers(tag)[*format]
	if !ok {
		return fmt.Errorf("unknown -format %q", *format)
	}

	if *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("invalid -at %q: %w", *at, err)
		}
		report.SetClock(clockwork.NewFakeClockAt(t))
		defer report.SetClock(nil)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	records, err := loader.New(logger).Load(*dataPath)
	if err != nil {
		return err
	}
	a := analyzer.New(records)

	r, err := report.Build(a, report.Options{
		Country:            *country,
		ElevationThreshold: *minElevation,
		Decade:             *decade,
	})
	if err != nil {
		return err
	}

	if *dump {
		deadliest, err := a.TopDeadliest(*top)
		if err != nil {
			return err
		}
		spew.Fdump(os.Stderr, deadliest)
	}

	if *out == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := render(w, r); err != nil {
			return err
		}
		return w.Flush()
	}
	return writeFile(*out, r, render)
}

type renderFunc func(io.Writer, report.Report) error

func renderers(tag language.Tag) map[string]renderFunc {
	return map[string]renderFunc{
		"json": report.WriteJSON,
		"text": func(w io.Writer, r report.Report) error { return report.WriteText(w, r, tag) },
		"xlsx": report.WriteXLSX,
	}
}

func writeFile(path string, r report.Report, render renderFunc) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if err := render(f, r); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote report %s: %s", r.ID, path)
	return nil
}
