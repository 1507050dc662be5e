// Command validate checks the analyzer's query invariants against an eruption
// dataset: count consistency, decade filtering, magnitude selection, deadliest
// record, distinct types, agents of death, and determinism across two loads.
//
// Usage:
//
//	go run ./cmd/validate
//	go run ./cmd/validate -data eruptions.json -decade 1990
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/couchcryptid/volcano-analytics/internal/analyzer"
	"github.com/couchcryptid/volcano-analytics/internal/domain"
	"github.com/couchcryptid/volcano-analytics/internal/loader"
	"github.com/couchcryptid/volcano-analytics/internal/report"
	"github.com/google/go-cmp/cmp"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataPath := flag.String("data", "", "dataset path (default: bundled volcano.json)")
	decade := flag.Int("decade", 1980, "decade start year to check, divisible by 10")
	flag.Parse()

	if *decade%10 != 0 {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*dataPath, *decade))
}

func run(dataPath string, decade int) int {
	fmt.Println("=== Eruption Dataset Validation ===")
	fmt.Println()

	l := loader.New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	first, err := l.Load(dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}
	second, err := l.Load(dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: reload dataset: %v\n", err)
		return 1
	}

	a := analyzer.New(first)
	b := analyzer.New(second)

	phases := []*phase{
		validateCount(a),
		validateDecade(a, decade),
		validateHighMagnitude(a),
		validateDeaths(a),
		validateDistinctTypes(a),
		validateAgents(a),
		validateDeterminism(a, b, decade),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d\n", len(first))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validateCount(a *analyzer.Analyzer) *phase {
	p := &phase{name: "Count matches all records"}

	n, err := a.Count()
	if err != nil {
		p.errorf("count: %v", err)
		return p
	}
	all, err := a.All()
	if err != nil {
		p.errorf("all: %v", err)
		return p
	}
	if n != len(all) {
		p.errorf("count %d, all has %d records", n, len(all))
	}
	return p
}

func validateDecade(a *analyzer.Analyzer, decade int) *phase {
	p := &phase{name: fmt.Sprintf("Decade %ds is an ordered subsequence", decade)}

	got, err := a.EruptedInDecade(decade)
	if err != nil {
		p.errorf("decade: %v", err)
		return p
	}
	all, _ := a.All()

	next := 0
	for _, e := range got {
		if e.Year < decade || e.Year > decade+9 {
			p.errorf("%s (%d) outside %d-%d", e.Name, e.Year, decade, decade+9)
		}
		idx := slices.IndexFunc(all[next:], func(c domain.Eruption) bool { return c.ID == e.ID })
		if idx < 0 {
			p.errorf("%s out of dataset order", e.Name)
			continue
		}
		next += idx + 1
	}
	return p
}

func validateHighMagnitude(a *analyzer.Analyzer) *phase {
	p := &phase{name: fmt.Sprintf("High magnitude is exactly VEI >= %d", analyzer.HighMagnitudeVEI)}

	got, err := a.HighMagnitude()
	if err != nil {
		p.errorf("high magnitude: %v", err)
		return p
	}
	all, _ := a.All()

	var want []string
	for _, e := range all {
		if e.VEI >= analyzer.HighMagnitudeVEI {
			want = append(want, e.Name)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		p.errorf("mismatch (-want +got):\n%s", diff)
	}
	return p
}

func validateDeaths(a *analyzer.Analyzer) *phase {
	p := &phase{name: "Most deadly has the maximum death count"}

	all, err := a.All()
	if err != nil {
		p.errorf("all: %v", err)
		return p
	}

	maxDeaths := -1
	for _, e := range all {
		d, err := e.DeathCount()
		if err != nil {
			p.errorf("%s: %v", e.Name, err)
			continue
		}
		maxDeaths = max(maxDeaths, d)
	}
	if !p.passed() {
		return p
	}

	most, err := a.MostDeadly()
	if err != nil {
		p.errorf("most deadly: %v", err)
		return p
	}
	if most == nil {
		if len(all) > 0 {
			p.errorf("no record returned for %d eruptions", len(all))
		}
		return p
	}
	if d, _ := most.DeathCount(); d != maxDeaths {
		p.errorf("%s has %d deaths, maximum is %d", most.Name, d, maxDeaths)
	}
	return p
}

func validateDistinctTypes(a *analyzer.Analyzer) *phase {
	p := &phase{name: "Distinct types are unique in first-seen order"}

	got, err := a.DistinctTypes()
	if err != nil {
		p.errorf("distinct types: %v", err)
		return p
	}
	all, _ := a.All()

	seen := make(map[string]bool)
	var want []string
	for _, e := range all {
		if !seen[e.Type] {
			seen[e.Type] = true
			want = append(want, e.Type)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		p.errorf("mismatch (-want +got):\n%s", diff)
	}
	return p
}

func validateAgents(a *analyzer.Analyzer) *phase {
	p := &phase{name: "Agents of death are non-empty and unique"}

	agents, err := a.TopAgentsOfDeath()
	if err != nil {
		p.errorf("top agents: %v", err)
		return p
	}
	seen := make(map[string]bool, len(agents))
	for i, ag := range agents {
		if ag == "" {
			p.errorf("empty agent at position %d", i)
		}
		if seen[ag] {
			p.errorf("duplicate agent %q", ag)
		}
		seen[ag] = true
	}
	return p
}

func validateDeterminism(a, b *analyzer.Analyzer, decade int) *phase {
	p := &phase{name: "Two loads produce identical reports"}

	opts := report.DefaultOptions()
	opts.Decade = decade

	ra, err := report.Build(a, opts)
	if err != nil {
		p.errorf("first: %v", err)
		return p
	}
	rb, err := report.Build(b, opts)
	if err != nil {
		p.errorf("second: %v", err)
		return p
	}

	// ID and GeneratedAt identify the build, not the data.
	rb.ID, rb.GeneratedAt = ra.ID, ra.GeneratedAt
	if diff := cmp.Diff(ra, rb); diff != "" {
		p.errorf("reports differ (-first +second):\n%s", diff)
	}
	return p
}
