package resolver

import (
	"testing"

	"github.com/baseball-sim/atbat-core/league"
	"github.com/baseball-sim/atbat-core/outcome"
	"github.com/baseball-sim/atbat-core/random"
	"github.com/stretchr/testify/assert"
)

func avgMatchup() league.EventRates {
	return league.EventRates{
		Strikeout: 0.20, Walk: 0.08, HitByPitch: 0.01,
		Single: 0.15, Double: 0.045, Triple: 0.005, HomeRun: 0.03,
	}
}

func TestResolveRejectsInvalidConfig(t *testing.T) {
	rng := random.New(1)
	bad := DefaultConfig()
	bad.OutTypeDistribution = [4]float64{0.5, 0.5, 0.5, 0.5}
	_, err := Resolve(rng, avgMatchup(), bad, Context{})
	assert.Error(t, err)
}

func TestResolveIsDeterministicForFixedSeed(t *testing.T) {
	cfg := DefaultConfig()
	m := avgMatchup()

	a := random.New(77)
	b := random.New(77)

	var aOut, bOut []outcome.Outcome
	for i := 0; i < 200; i++ {
		o1, err := Resolve(a, m, cfg, Context{})
		assert.NoError(t, err)
		o2, err := Resolve(b, m, cfg, Context{})
		assert.NoError(t, err)
		aOut = append(aOut, o1)
		bOut = append(bOut, o2)
	}
	assert.Equal(t, aOut, bOut)
	assert.Equal(t, a.History(), b.History())
}

func TestResolveNeverReturnsOutOfDomainWhenProbabilitiesZero(t *testing.T) {
	// hit_by_pitch, walk, strikeout, home_run all zero: everything should
	// funnel into in-play outcomes without dividing by zero.
	m := league.EventRates{Single: 0.3, Double: 0.1, Triple: 0.01}
	cfg := DefaultConfig()
	rng := random.New(3)
	for i := 0; i < 500; i++ {
		o, err := Resolve(rng, m, cfg, Context{})
		assert.NoError(t, err)
		assert.NotEqual(t, outcome.HitByPitch, o)
		assert.NotEqual(t, outcome.Walk, o)
		assert.False(t, o.IsStrikeout())
		assert.NotEqual(t, outcome.HomeRun, o)
	}
}

func TestResolveDistributionApproximatesMatchup(t *testing.T) {
	cfg := DefaultConfig()
	m := avgMatchup()
	rng := random.New(99)

	n := 20000
	counts := map[outcome.Outcome]int{}
	for i := 0; i < n; i++ {
		o, err := Resolve(rng, m, cfg, Context{})
		assert.NoError(t, err)
		counts[o]++
	}

	kRate := float64(counts[outcome.StrikeoutSwinging]+counts[outcome.StrikeoutLooking]) / float64(n)
	assert.InDelta(t, m.Strikeout, kRate, 0.02)

	hrRate := float64(counts[outcome.HomeRun]) / float64(n)
	assert.InDelta(t, m.HomeRun, hrRate, 0.01)

	walkRate := float64(counts[outcome.Walk]) / float64(n)
	assert.InDelta(t, m.Walk, walkRate, 0.02)
}

func TestResolveStrikeoutModeSplit(t *testing.T) {
	cfg := DefaultConfig()
	m := league.EventRates{Strikeout: 1.0}
	rng := random.New(11)

	n := 10000
	swinging := 0
	for i := 0; i < n; i++ {
		o, err := Resolve(rng, m, cfg, Context{})
		assert.NoError(t, err)
		assert.True(t, o.IsStrikeout())
		if o == outcome.StrikeoutSwinging {
			swinging++
		}
	}
	assert.InDelta(t, 0.70, float64(swinging)/float64(n), 0.02)
}

func TestResolveGIDPOnlyWhenEligible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GIDPRateOnGroundout = 1.0
	cfg.ErrorRateOnInPlayOut = 0
	cfg.OutTypeDistribution = [4]float64{1, 0, 0, 0}
	m := league.EventRates{Single: 0.3, Double: 0.1, Triple: 0.01}

	rng := random.New(5)
	o, err := Resolve(rng, m, cfg, Context{PriorOuts: 0, RunnerOnFirst: true})
	assert.NoError(t, err)
	assert.Equal(t, outcome.GroundIntoDoublePlay, o)

	rng2 := random.New(5)
	o2, err := Resolve(rng2, m, cfg, Context{PriorOuts: 2, RunnerOnFirst: true})
	assert.NoError(t, err)
	assert.Equal(t, outcome.Groundout, o2)
}

func TestResolveSacFlyOnlyWhenEligible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SacFlyRateOnFlyout = 1.0
	cfg.ErrorRateOnInPlayOut = 0
	cfg.OutTypeDistribution = [4]float64{0, 1, 0, 0}
	m := league.EventRates{Single: 0.3, Double: 0.1, Triple: 0.01}

	rng := random.New(5)
	o, err := Resolve(rng, m, cfg, Context{PriorOuts: 1, RunnerOnThird: true})
	assert.NoError(t, err)
	assert.Equal(t, outcome.SacrificeFly, o)

	rng2 := random.New(5)
	o2, err := Resolve(rng2, m, cfg, Context{PriorOuts: 2, RunnerOnThird: true})
	assert.NoError(t, err)
	assert.Equal(t, outcome.Flyout, o2)
}

func TestResolveErrorConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ErrorRateOnInPlayOut = 1.0
	m := league.EventRates{Single: 0.3, Double: 0.1, Triple: 0.01}
	rng := random.New(1)

	o, err := Resolve(rng, m, cfg, Context{})
	assert.NoError(t, err)
	assert.Equal(t, outcome.ReachedOnError, o)
}

func TestResolvePopupFoulOutSplit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ErrorRateOnInPlayOut = 0
	cfg.OutTypeDistribution = [4]float64{0, 0, 0, 1}
	m := league.EventRates{}
	rng := random.New(41)

	n := 10000
	fouls := 0
	for i := 0; i < n; i++ {
		o, err := Resolve(rng, m, cfg, Context{})
		assert.NoError(t, err)
		if o == outcome.FoulOut {
			fouls++
		} else {
			assert.Equal(t, outcome.Popup, o)
		}
	}
	assert.InDelta(t, cfg.FoulOutShareOfPopup, float64(fouls)/float64(n), 0.02)
}

func TestResolveSingleTypeSplit(t *testing.T) {
	cfg := DefaultConfig()
	m := league.EventRates{Single: 1.0}
	rng := random.New(21)

	n := 10000
	infield := 0
	for i := 0; i < n; i++ {
		o, err := Resolve(rng, m, cfg, Context{})
		assert.NoError(t, err)
		if o == outcome.SingleInfield {
			infield++
		} else {
			assert.Equal(t, outcome.SingleOutfield, o)
		}
	}
	assert.InDelta(t, 0.15, float64(infield)/float64(n), 0.02)
}

func TestResolveTripleVsDoubleSplit(t *testing.T) {
	cfg := DefaultConfig()
	m := league.EventRates{Double: 0.80, Triple: 0.20}
	rng := random.New(31)

	n := 10000
	triples := 0
	for i := 0; i < n; i++ {
		o, err := Resolve(rng, m, cfg, Context{})
		assert.NoError(t, err)
		if o == outcome.Triple {
			triples++
		} else {
			assert.Equal(t, outcome.Double, o)
		}
	}
	assert.InDelta(t, 0.20, float64(triples)/float64(n), 0.02)
}
