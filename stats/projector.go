package stats

import (
	"github.com/baseball-sim/atbat-core/league"
	"github.com/baseball-sim/atbat-core/simerr"
)

// ProjectorConfig governs the thresholds and scaling the projector applies.
type ProjectorConfig struct {
	MinPlateAppearancesForDirectRates int
	ParkFactor                        int
}

// DefaultProjectorConfig returns the documented defaults: a 50-PA/BF floor
// and a neutral (100) park factor.
func DefaultProjectorConfig() ProjectorConfig {
	return ProjectorConfig{MinPlateAppearancesForDirectRates: 50, ParkFactor: 100}
}

// Validate checks the park factor lies in the documented 50..150 range.
func (c ProjectorConfig) Validate() error {
	if c.MinPlateAppearancesForDirectRates < 0 {
		return simerr.New(simerr.KindInvalidConfiguration, "min_plate_appearances_for_direct_rates", c.MinPlateAppearancesForDirectRates, ">= 0")
	}
	if c.ParkFactor < 50 || c.ParkFactor > 150 {
		return simerr.New(simerr.KindInvalidConfiguration, "park_factor", c.ParkFactor, "in [50, 150]")
	}
	return nil
}

// ProjectionContext carries the optional, default-neutral inputs a caller
// may supply in addition to the raw stat line. Its zero value reproduces
// the unmodified projector exactly.
type ProjectionContext struct {
	Weather ParkWeather
	Umpire  UmpireTendencies
}

// ProjectionResult is a projected EventRates plus a flag recording whether
// the league baseline was substituted in whole or in part, so callers can
// detect excessive fallback.
type ProjectionResult struct {
	Rates        league.EventRates
	UsedFallback bool
}

func applyParkFactor(rate float64, parkFactor int) float64 {
	multiplier := 1 + (float64(parkFactor)-100)/200
	return rate * multiplier
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ProjectBatter converts a BattingStatLine into per-PA event rates. Below
// the configured minimum PA, the league baseline for the given year is
// substituted wholesale and UsedFallback is set.
func ProjectBatter(line BattingStatLine, year int, baselines *league.Baselines, cfg ProjectorConfig, ctx ProjectionContext) (ProjectionResult, error) {
	if err := line.Validate(); err != nil {
		return ProjectionResult{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ProjectionResult{}, err
	}

	baseline := baselines.Baseline(year)
	pa := line.PlateAppearances()
	if pa < cfg.MinPlateAppearancesForDirectRates {
		return ProjectionResult{Rates: baseline, UsedFallback: true}, nil
	}

	f := float64(pa)
	rates := league.EventRates{
		Strikeout:  float64(line.Strikeouts) / f,
		Walk:       float64(line.Walks) / f,
		HitByPitch: float64(line.HitByPitch) / f,
		Single:     float64(line.Singles()) / f,
		Double:     float64(line.Doubles) / f,
		Triple:     float64(line.Triples) / f,
		HomeRun:    float64(line.HomeRuns) / f,
	}

	rates.Single = clamp01(applyParkFactor(rates.Single, cfg.ParkFactor) + ctx.Weather.HitRateDelta())
	rates.Double = clamp01(applyParkFactor(rates.Double, cfg.ParkFactor) + ctx.Weather.HitRateDelta())
	rates.Triple = clamp01(applyParkFactor(rates.Triple, cfg.ParkFactor) + ctx.Weather.HitRateDelta())
	rates.HomeRun = clamp01(applyParkFactor(rates.HomeRun, cfg.ParkFactor) + ctx.Weather.HitRateDelta())

	rates.Strikeout = clamp01(rates.Strikeout + ctx.Umpire.KRateDelta())
	rates.Walk = clamp01(rates.Walk + ctx.Umpire.BBRateDelta())

	return ProjectionResult{Rates: rates, UsedFallback: false}, nil
}

// ProjectPitcherAllowed converts a PitchingStatLine into per-BF allowed
// event rates, analogous to ProjectBatter with batters-faced as the
// denominator. When the line lacks an extra-base breakdown, hits allowed
// (excluding home runs) are distributed across single/double/triple using
// the league baseline's proportions for those events.
func ProjectPitcherAllowed(line PitchingStatLine, year int, baselines *league.Baselines, cfg ProjectorConfig, ctx ProjectionContext) (ProjectionResult, error) {
	if err := line.Validate(); err != nil {
		return ProjectionResult{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ProjectionResult{}, err
	}

	baseline := baselines.Baseline(year)
	bf := line.BattersFaced
	if bf < cfg.MinPlateAppearancesForDirectRates {
		return ProjectionResult{Rates: baseline, UsedFallback: true}, nil
	}

	f := float64(bf)
	homeRunRate := float64(line.HomeRunsAllowed) / f

	var singleRate, doubleRate, tripleRate float64
	if line.HasExtraBaseBreakdown {
		singles := line.HitsAllowed - line.DoublesAllowed - line.TriplesAllowed - line.HomeRunsAllowed
		singleRate = float64(singles) / f
		doubleRate = float64(line.DoublesAllowed) / f
		tripleRate = float64(line.TriplesAllowed) / f
	} else {
		nonHR := float64(line.HitsAllowed-line.HomeRunsAllowed) / f
		extraBaseTotal := baseline.Single + baseline.Double + baseline.Triple
		singleRate = nonHR * baseline.Single / extraBaseTotal
		doubleRate = nonHR * baseline.Double / extraBaseTotal
		tripleRate = nonHR * baseline.Triple / extraBaseTotal
	}

	rates := league.EventRates{
		Strikeout:  float64(line.StrikeoutsThrown) / f,
		Walk:       float64(line.WalksAllowed) / f,
		HitByPitch: float64(line.HitByPitchAllowed) / f,
		Single:     singleRate,
		Double:     doubleRate,
		Triple:     tripleRate,
		HomeRun:    homeRunRate,
	}

	rates.Single = clamp01(applyParkFactor(rates.Single, cfg.ParkFactor) + ctx.Weather.HitRateDelta())
	rates.Double = clamp01(applyParkFactor(rates.Double, cfg.ParkFactor) + ctx.Weather.HitRateDelta())
	rates.Triple = clamp01(applyParkFactor(rates.Triple, cfg.ParkFactor) + ctx.Weather.HitRateDelta())
	rates.HomeRun = clamp01(applyParkFactor(rates.HomeRun, cfg.ParkFactor) + ctx.Weather.HitRateDelta())

	rates.Strikeout = clamp01(rates.Strikeout + ctx.Umpire.KRateDelta())
	rates.Walk = clamp01(rates.Walk + ctx.Umpire.BBRateDelta())

	return ProjectionResult{Rates: rates, UsedFallback: false}, nil
}
