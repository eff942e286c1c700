// Package advancement turns an outcome and a prior base state into a new
// base state and a runs-scored count. Hit advancement (single, double,
// triple) is probabilistic and keyed by historical play-by-play frequency;
// walk, hit-by-pitch, home-run, and the various out variants are
// deterministic and need no random draw at all.
package advancement

import (
	"fmt"

	"github.com/baseball-sim/atbat-core/basestate"
	"github.com/baseball-sim/atbat-core/outcome"
	"github.com/baseball-sim/atbat-core/random"
	"github.com/baseball-sim/atbat-core/simerr"
)

// Result is the outcome of advancing runners: the new base state, runs
// scored on the play, and how many outs the play added.
type Result struct {
	NewState basestate.State
	Runs     int
	OutDelta int
}

// row is one weighted possibility within a matrix entry: a resulting state,
// the runs that score on that branch, and its probability.
type row struct {
	state basestate.State
	runs  int
	prob  float64
}

// matrix maps a prior base state to its rows for one hit class. It is
// validated at package init: every row list must sum to 1 within epsilon.
type matrix map[basestate.State][]row

const epsilon = 1e-9

func sumTo1(rows []row) float64 {
	total := 0.0
	for _, r := range rows {
		total += r.prob
	}
	return total
}

func mustValidate(name string, m matrix) matrix {
	for state, rows := range m {
		sum := sumTo1(rows)
		if sum < 1-epsilon || sum > 1+epsilon {
			panic(simerr.New(simerr.KindInvalidAdvancementMatrix,
				fmt.Sprintf("%s[%s]", name, state.String()), sum, "summing to 1"))
		}
	}
	return m
}

// allStates enumerates the eight prior base-state tuples in a fixed order,
// used to build each matrix exhaustively.
var allStates = []basestate.State{
	basestate.New(false, false, false),
	basestate.New(true, false, false),
	basestate.New(false, true, false),
	basestate.New(false, false, true),
	basestate.New(true, true, false),
	basestate.New(true, false, true),
	basestate.New(false, true, true),
	basestate.New(true, true, true),
}

// singleMatrix embeds the glossary's anchor probabilities: a runner on
// second scores 57.6% of the time with the batter reaching first and the
// other runner holding at third 42.4% of the time; a runner on first
// advances to second 73.6% of the time on a single and to third 26.4% of
// the time. The two splits can't both apply independently when a runner
// is on first and second, so they are combined per prior state rather
// than applied independently everywhere.
var singleMatrix = mustValidate("single", matrix{
	basestate.New(false, false, false): {
		{basestate.New(true, false, false), 0, 1.0},
	},
	basestate.New(true, false, false): {
		// runner from first to second, batter to first
		{basestate.New(true, true, false), 0, 0.736},
		// runner from first to third, batter to first
		{basestate.New(true, false, true), 0, 0.264},
	},
	basestate.New(false, true, false): {
		// runner from second scores, batter to first
		{basestate.New(true, false, false), 1, 0.576},
		// runner from second holds at third, batter to first
		{basestate.New(true, false, true), 0, 0.424},
	},
	basestate.New(false, false, true): {
		{basestate.New(true, false, false), 1, 1.0},
	},
	basestate.New(true, true, false): {
		// runner on first to third, runner on second scores
		{basestate.New(true, false, true), 1, 0.576},
		// runner on first to second, runner on second holds at third
		{basestate.New(true, true, true), 0, 0.424},
	},
	basestate.New(true, false, true): {
		// runner on third scores, runner on first to second
		{basestate.New(true, true, false), 1, 0.736},
		// runner on third scores, runner on first to third
		{basestate.New(true, false, true), 1, 0.264},
	},
	basestate.New(false, true, true): {
		// both runners score
		{basestate.New(true, false, false), 2, 0.576},
		// runner on third scores, runner on second holds at third
		{basestate.New(true, false, true), 1, 0.424},
	},
	basestate.New(true, true, true): {
		// runner on third scores, runner on second scores, runner on first to second
		{basestate.New(true, true, false), 2, 0.576 * 0.736},
		// runner on third scores, runner on second scores, runner on first to third
		{basestate.New(true, false, true), 2, 0.576 * 0.264},
		// runner on third scores, runner on second holds at third, runner on first to second
		{basestate.New(true, true, true), 1, 0.424},
	},
})

// doubleMatrix: a runner on first advancing on a double scores 75% of the
// time and holds at third 25% of the time; runners on second or third
// always score.
var doubleMatrix = mustValidate("double", matrix{
	basestate.New(false, false, false): {
		{basestate.New(false, true, false), 0, 1.0},
	},
	basestate.New(true, false, false): {
		{basestate.New(false, true, false), 1, 0.75},
		{basestate.New(false, true, true), 0, 0.25},
	},
	basestate.New(false, true, false): {
		{basestate.New(false, true, false), 1, 1.0},
	},
	basestate.New(false, false, true): {
		{basestate.New(false, true, false), 1, 1.0},
	},
	basestate.New(true, true, false): {
		{basestate.New(false, true, false), 2, 0.75},
		{basestate.New(false, true, true), 1, 0.25},
	},
	basestate.New(true, false, true): {
		{basestate.New(false, true, false), 2, 0.75},
		{basestate.New(false, true, true), 1, 0.25},
	},
	basestate.New(false, true, true): {
		{basestate.New(false, true, false), 2, 1.0},
	},
	basestate.New(true, true, true): {
		{basestate.New(false, true, false), 3, 0.75},
		{basestate.New(false, true, true), 2, 0.25},
	},
})

// tripleMatrix: every occupied base scores; the batter reaches third.
var tripleMatrix = mustValidate("triple", func() matrix {
	m := matrix{}
	for _, s := range allStates {
		m[s] = []row{{basestate.New(false, false, true), s.Count(), 1.0}}
	}
	return m
}())

// Single advances runners on a single (outfield or infield; both use the
// same matrix), drawing one weighted choice from rng.
func Single(rng *random.Source, prior basestate.State) Result {
	return drawRow(rng, "single_advance", singleMatrix, prior)
}

// DoubleAdvance advances runners on a double.
func DoubleAdvance(rng *random.Source, prior basestate.State) Result {
	return drawRow(rng, "double_advance", doubleMatrix, prior)
}

// TripleAdvance advances runners on a triple. It is deterministic but still
// routed through the matrix machinery for a uniform code path.
func TripleAdvance(rng *random.Source, prior basestate.State) Result {
	return drawRow(rng, "triple_advance", tripleMatrix, prior)
}

func drawRow(rng *random.Source, ctx string, m matrix, prior basestate.State) Result {
	rows := m[prior]
	weights := make([]float64, len(rows))
	for i, r := range rows {
		weights[i] = r.prob
	}
	idx, err := rng.WeightedChoiceIndexCtx(ctx, weights)
	if err != nil {
		// Every row list is validated at init to sum to 1, and every
		// probability in the tables is positive; a failure here is a
		// programming error, not a caller input error.
		panic(err)
	}
	chosen := rows[idx]
	return Result{NewState: chosen.state, Runs: chosen.runs, OutDelta: 0}
}

// HomeRun always clears the bases; every runner plus the batter scores.
func HomeRun(prior basestate.State) Result {
	return Result{NewState: basestate.Empty, Runs: prior.Count() + 1, OutDelta: 0}
}

// Walk forces the batter to first and cascades forced advances only as far
// as occupied bases require. Hit-by-pitch uses the same rule.
func Walk(prior basestate.State) Result {
	first, second, third := prior.AsTuple()
	runs := 0

	newThird := third
	newSecond := second
	newFirst := true

	if first {
		if second {
			if third {
				runs++
			}
			newThird = true
		} else {
			newSecond = true
		}
	}

	return Result{NewState: basestate.New(newFirst, newSecond, newThird), Runs: runs, OutDelta: 0}
}

// HitByPitch advances runners under the same force rule as a walk.
func HitByPitch(prior basestate.State) Result {
	return Walk(prior)
}

// NoAdvance is the rule for groundout, flyout, lineout, popup, strikeout,
// and foul-out: the base state is unchanged, nobody scores, one out is
// recorded.
func NoAdvance(prior basestate.State) Result {
	return Result{NewState: prior, Runs: 0, OutDelta: 1}
}

// ReachedOnError is treated as a single for advancement purposes.
func ReachedOnError(rng *random.Source, prior basestate.State) Result {
	return Single(rng, prior)
}

// GroundIntoDoublePlay removes the runner on first (the force-out) and the
// batter (the relay-out), leaving any runner on third or second in place,
// and records two outs.
func GroundIntoDoublePlay(prior basestate.State) Result {
	_, second, third := prior.AsTuple()
	return Result{NewState: basestate.New(false, second, third), Runs: 0, OutDelta: 2}
}

// SacrificeFly scores the runner on third and records one out; runners on
// first and second are assumed to hold.
func SacrificeFly(prior basestate.State) Result {
	first, second, _ := prior.AsTuple()
	return Result{NewState: basestate.New(first, second, false), Runs: 1, OutDelta: 1}
}

// Resolve dispatches to the appropriate advancement rule for o, drawing
// from rng only for the probabilistic hit classes.
func Resolve(rng *random.Source, o outcome.Outcome, prior basestate.State) Result {
	switch o {
	case outcome.SingleOutfield, outcome.SingleInfield:
		return Single(rng, prior)
	case outcome.Double:
		return DoubleAdvance(rng, prior)
	case outcome.Triple:
		return TripleAdvance(rng, prior)
	case outcome.HomeRun:
		return HomeRun(prior)
	case outcome.Walk:
		return Walk(prior)
	case outcome.HitByPitch:
		return HitByPitch(prior)
	case outcome.ReachedOnError:
		return ReachedOnError(rng, prior)
	case outcome.GroundIntoDoublePlay:
		return GroundIntoDoublePlay(prior)
	case outcome.SacrificeFly:
		return SacrificeFly(prior)
	default:
		return NoAdvance(prior)
	}
}
