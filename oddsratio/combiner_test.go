package oddsratio

import (
	"math"
	"testing"

	"github.com/baseball-sim/atbat-core/league"
	"github.com/stretchr/testify/assert"
)

func TestCombineBoundaryEqualsBatterWhenPitcherEqualsLeague(t *testing.T) {
	got, err := Combine(0.30, 0.20, 0.20)
	assert.NoError(t, err)
	assert.InDelta(t, 0.30, got, 1e-9)
}

func TestCombineBoundaryEqualsPitcherWhenBatterEqualsLeague(t *testing.T) {
	got, err := Combine(0.20, 0.35, 0.20)
	assert.NoError(t, err)
	assert.InDelta(t, 0.35, got, 1e-9)
}

func TestCombineBoundaryZeroWhenBatterOrPitcherZero(t *testing.T) {
	got, err := Combine(0, 0.5, 0.2)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = Combine(0.5, 0, 0.2)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCombineBoundaryOneWhenBatterOrPitcherOne(t *testing.T) {
	got, err := Combine(1, 0.5, 0.2)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = Combine(0.5, 1, 0.2)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestCombineRejectsLeagueOutOfOpenInterval(t *testing.T) {
	_, err := Combine(0.3, 0.3, 0)
	assert.Error(t, err)
	_, err = Combine(0.3, 0.3, 1)
	assert.Error(t, err)
}

func TestCombineRejectsBatterOrPitcherOutOfRange(t *testing.T) {
	_, err := Combine(-0.1, 0.3, 0.2)
	assert.Error(t, err)
	_, err = Combine(0.3, 1.2, 0.2)
	assert.Error(t, err)
}

func TestCombineMonotonicInPitcher(t *testing.T) {
	l := 0.20
	b := 0.25
	p1, _ := Combine(b, 0.10, l)
	p2, _ := Combine(b, 0.30, l)
	assert.Less(t, p1, p2)
}

func TestCombineMonotonicInBatter(t *testing.T) {
	l := 0.20
	p := 0.25
	m1, _ := Combine(0.10, p, l)
	m2, _ := Combine(0.30, p, l)
	assert.Less(t, m1, m2)
}

func TestCombineDominanceOverNaiveAverage(t *testing.T) {
	// Elite pitcher (low p, say a low BA-allowed event), weak batter: the
	// combined probability must land further from league than (b+p)/2.
	l := 0.20
	b, p := 0.10, 0.30
	naive := (b + p) / 2
	got, err := Combine(b, p, l)
	assert.NoError(t, err)
	assert.Greater(t, math.Abs(got-l), math.Abs(naive-l))
	assert.Greater(t, got, naive)

	b, p = 0.05, 0.40
	naive = (b + p) / 2
	got, err = Combine(b, p, l)
	assert.NoError(t, err)
	assert.Greater(t, math.Abs(got-l), math.Abs(naive-l))
	assert.Greater(t, got, naive)
}

func TestCombineEventsResidualPreservation(t *testing.T) {
	batter := league.EventRates{Strikeout: 0.25, Walk: 0.07, HitByPitch: 0.01, Single: 0.14, Double: 0.03, Triple: 0.003, HomeRun: 0.02}
	pitcher := league.EventRates{Strikeout: 0.28, Walk: 0.06, HitByPitch: 0.01, Single: 0.13, Double: 0.03, Triple: 0.004, HomeRun: 0.03}
	baseline := league.DefaultBaselines().Baseline(2015)

	got, err := CombineEvents(batter, pitcher, baseline)
	assert.NoError(t, err)
	assert.Less(t, got.Sum(), 1.0)
	assert.Greater(t, got.Residual(), 0.0)
}

func TestCombineEventsNeverNormalizes(t *testing.T) {
	// A batter and pitcher both well above league average in every event
	// should NOT be rescaled to sum to 1; residual must shrink but stay
	// positive as long as every individual combine() result is < 1.
	batter := league.EventRates{Strikeout: 0.30, Walk: 0.15, HitByPitch: 0.02, Single: 0.20, Double: 0.08, Triple: 0.02, HomeRun: 0.06}
	pitcher := league.EventRates{Strikeout: 0.30, Walk: 0.15, HitByPitch: 0.02, Single: 0.20, Double: 0.08, Triple: 0.02, HomeRun: 0.06}
	baseline := league.DefaultBaselines().Baseline(2015)

	got, err := CombineEvents(batter, pitcher, baseline)
	assert.NoError(t, err)
	assert.Less(t, got.Sum(), 1.0)
}
