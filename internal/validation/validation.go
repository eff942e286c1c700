// Package validation runs the core's statistical-validity properties
// (section 8 of the design) as a reusable batch check over a sample of
// PlateAppearanceResults, computing observed rates with gonum/stat rather
// than hand-rolled accumulation loops.
package validation

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/baseball-sim/atbat-core/outcome"
	"github.com/baseball-sim/atbat-core/simulation"
)

// Report is the outcome of a batch statistical check: each named metric's
// observed value, the value it was compared against, and whether it fell
// within tolerance.
type Report struct {
	Checks []Check
}

// Check is one named pass/fail assertion.
type Check struct {
	Name     string
	Observed float64
	Expected float64
	Passed   bool
}

// Passed reports whether every check in the report passed.
func (r Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

func (r Report) String() string {
	out := ""
	for _, c := range r.Checks {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		out += fmt.Sprintf("[%s] %s: observed=%.4f expected=%.4f\n", status, c.Name, c.Observed, c.Expected)
	}
	return out
}

// StatisticalValidity runs section 8 property 8: over a batch of results
// drawn from a single matchup (same projected matchup probabilities for
// every call), the observed strikeout rate must be within relTol of the
// expected matchup strikeout probability, the observed home-run rate
// within absTolHR, and the observed batting average within relTol of
// hits_prob/(1-walk_prob-hbp_prob-sacfly_prob).
func StatisticalValidity(results []simulation.PlateAppearanceResult, relTol, absTolHR float64) Report {
	n := float64(len(results))
	if n == 0 {
		return Report{}
	}

	strikeouts := make([]float64, 0, len(results))
	homeRuns := make([]float64, 0, len(results))
	hits := 0
	atBats := 0

	expectedK := results[0].Matchup.Strikeout
	expectedHR := results[0].Matchup.HomeRun
	expectedWalk := results[0].Matchup.Walk
	expectedHBP := results[0].Matchup.HitByPitch
	expectedHits := results[0].Matchup.Single + results[0].Matchup.Double + results[0].Matchup.Triple + results[0].Matchup.HomeRun

	for _, r := range results {
		k := 0.0
		if r.Outcome.IsStrikeout() {
			k = 1.0
		}
		strikeouts = append(strikeouts, k)

		hr := 0.0
		if r.Outcome == outcome.HomeRun {
			hr = 1.0
		}
		homeRuns = append(homeRuns, hr)

		if r.Outcome.IsHit() {
			hits++
		}
		if r.Outcome != outcome.Walk && r.Outcome != outcome.HitByPitch && r.Outcome != outcome.SacrificeFly {
			atBats++
		}
	}

	observedK := stat.Mean(strikeouts, nil)
	observedHR := stat.Mean(homeRuns, nil)
	observedBA := 0.0
	if atBats > 0 {
		observedBA = float64(hits) / float64(atBats)
	}

	sacFlyRate := 0.0 // sac-fly share is not separated out of the matchup EventRates; treated as 0 for this expected ratio
	expectedBA := expectedHits / (1 - expectedWalk - expectedHBP - sacFlyRate)

	return Report{Checks: []Check{
		{Name: "strikeout_rate", Observed: observedK, Expected: expectedK, Passed: withinRelTol(observedK, expectedK, relTol)},
		{Name: "home_run_rate", Observed: observedHR, Expected: expectedHR, Passed: withinAbsTol(observedHR, expectedHR, absTolHR)},
		{Name: "batting_average", Observed: observedBA, Expected: expectedBA, Passed: withinRelTol(observedBA, expectedBA, relTol)},
	}}
}

func withinRelTol(observed, expected, relTol float64) bool {
	if expected == 0 {
		return observed == 0
	}
	diff := observed - expected
	if diff < 0 {
		diff = -diff
	}
	return diff <= expected*relTol
}

func withinAbsTol(observed, expected, absTol float64) bool {
	diff := observed - expected
	if diff < 0 {
		diff = -diff
	}
	return diff <= absTol
}
