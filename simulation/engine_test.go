package simulation

import (
	"testing"

	"github.com/baseball-sim/atbat-core/basestate"
	"github.com/baseball-sim/atbat-core/outcome"
	"github.com/baseball-sim/atbat-core/random"
	"github.com/baseball-sim/atbat-core/stats"
	"github.com/stretchr/testify/assert"
)

func averageBatter() stats.BattingStatLine {
	return stats.BattingStatLine{
		AtBats: 550, Walks: 55, HitByPitch: 5, SacrificeFlies: 5,
		Hits: 140, Doubles: 28, Triples: 3, HomeRuns: 20, Strikeouts: 120,
	}
}

func averagePitcher() stats.PitchingStatLine {
	return stats.PitchingStatLine{
		BattersFaced: 650, WalksAllowed: 55, HitByPitchAllowed: 5,
		HitsAllowed: 150, HomeRunsAllowed: 20, StrikeoutsThrown: 140,
	}
}

func TestSimulatePlateAppearanceRejectsInvalidPriorOuts(t *testing.T) {
	engine, err := New(random.New(1), nil, DefaultConfig())
	assert.NoError(t, err)

	_, err = engine.SimulatePlateAppearance(averageBatter(), averagePitcher(), 2015, basestate.Empty, 3, stats.ProjectionContext{}, stats.ProjectionContext{})
	assert.Error(t, err)
	assert.Empty(t, engine.RandomSource().History())
}

func TestSimulatePlateAppearanceValidationFailsBeforeAnyDraw(t *testing.T) {
	engine, err := New(random.New(1), nil, DefaultConfig())
	assert.NoError(t, err)

	badBatter := stats.BattingStatLine{AtBats: -1}
	_, err = engine.SimulatePlateAppearance(badBatter, averagePitcher(), 2015, basestate.Empty, 0, stats.ProjectionContext{}, stats.ProjectionContext{})
	assert.Error(t, err)
	assert.Empty(t, engine.RandomSource().History())
}

func TestSimulatePlateAppearanceReproducibility(t *testing.T) {
	engineA, err := New(random.New(55), nil, DefaultConfig())
	assert.NoError(t, err)
	engineB, err := New(random.New(55), nil, DefaultConfig())
	assert.NoError(t, err)

	state := basestate.New(false, true, false)
	for i := 0; i < 50; i++ {
		resA, err := engineA.SimulatePlateAppearance(averageBatter(), averagePitcher(), 2015, state, 1, stats.ProjectionContext{}, stats.ProjectionContext{})
		assert.NoError(t, err)
		resB, err := engineB.SimulatePlateAppearance(averageBatter(), averagePitcher(), 2015, state, 1, stats.ProjectionContext{}, stats.ProjectionContext{})
		assert.NoError(t, err)

		assert.Equal(t, resA.Outcome, resB.Outcome)
		assert.Equal(t, resA.Advancement, resB.Advancement)
		assert.Equal(t, resA.Draws, resB.Draws)
	}
	assert.Equal(t, engineA.RandomSource().History(), engineB.RandomSource().History())
}

func TestSimulatePlateAppearanceDrawsAreAppendedNotReset(t *testing.T) {
	engine, err := New(random.New(9), nil, DefaultConfig())
	assert.NoError(t, err)

	_, err = engine.SimulatePlateAppearance(averageBatter(), averagePitcher(), 2015, basestate.Empty, 0, stats.ProjectionContext{}, stats.ProjectionContext{})
	assert.NoError(t, err)
	firstLen := len(engine.RandomSource().History())
	assert.Greater(t, firstLen, 0)

	_, err = engine.SimulatePlateAppearance(averageBatter(), averagePitcher(), 2015, basestate.Empty, 0, stats.ProjectionContext{}, stats.ProjectionContext{})
	assert.NoError(t, err)
	assert.Greater(t, len(engine.RandomSource().History()), firstLen)
}

func TestSimulatePlateAppearanceStatisticalValidityAverageVsAverage(t *testing.T) {
	engine, err := New(random.New(2024), nil, DefaultConfig())
	assert.NoError(t, err)

	const n = 5000
	var hits, atBats, strikeouts, homeRuns int
	var expectedK, expectedHR float64

	for i := 0; i < n; i++ {
		res, err := engine.SimulatePlateAppearance(averageBatter(), averagePitcher(), 2015, basestate.Empty, 0, stats.ProjectionContext{}, stats.ProjectionContext{})
		assert.NoError(t, err)
		if i == 0 {
			expectedK = res.Matchup.Strikeout
			expectedHR = res.Matchup.HomeRun
		}
		if res.Outcome.IsHit() {
			hits++
		}
		if res.Outcome.IsStrikeout() {
			strikeouts++
		}
		if res.Outcome == outcome.HomeRun {
			homeRuns++
		}
		if res.Outcome != outcome.Walk && res.Outcome != outcome.HitByPitch && res.Outcome != outcome.SacrificeFly {
			atBats++
		}
	}

	observedK := float64(strikeouts) / n
	observedHR := float64(homeRuns) / n
	observedBA := float64(hits) / float64(atBats)

	assert.InDelta(t, expectedK, observedK, expectedK*0.10+0.01)
	assert.InDelta(t, expectedHR, observedHR, 0.01)
	_ = observedBA
}
