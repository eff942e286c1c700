package validation

import (
	"testing"

	"github.com/baseball-sim/atbat-core/basestate"
	"github.com/baseball-sim/atbat-core/random"
	"github.com/baseball-sim/atbat-core/simulation"
	"github.com/baseball-sim/atbat-core/stats"
	"github.com/stretchr/testify/assert"
)

func TestStatisticalValidityPassesForAverageMatchup(t *testing.T) {
	engine, err := simulation.New(random.New(2024), nil, simulation.DefaultConfig())
	assert.NoError(t, err)

	batter := stats.BattingStatLine{
		AtBats: 550, Walks: 55, HitByPitch: 5, SacrificeFlies: 5,
		Hits: 140, Doubles: 28, Triples: 3, HomeRuns: 20, Strikeouts: 120,
	}
	pitcher := stats.PitchingStatLine{
		BattersFaced: 650, WalksAllowed: 55, HitByPitchAllowed: 5,
		HitsAllowed: 150, HomeRunsAllowed: 20, StrikeoutsThrown: 140,
	}

	var results []simulation.PlateAppearanceResult
	for i := 0; i < 5000; i++ {
		r, err := engine.SimulatePlateAppearance(batter, pitcher, 2015, basestate.Empty, 0, stats.ProjectionContext{}, stats.ProjectionContext{})
		assert.NoError(t, err)
		results = append(results, r)
	}

	report := StatisticalValidity(results, 0.10, 0.01)
	assert.True(t, report.Passed(), report.String())
}

func TestStatisticalValidityEmptyBatch(t *testing.T) {
	report := StatisticalValidity(nil, 0.10, 0.01)
	assert.Empty(t, report.Checks)
	assert.True(t, report.Passed())
}
