// Package resolver converts an unnormalized matchup league.EventRates into a
// single outcome.Outcome via the chained-binomial decision tree: a fixed
// sequence of independent uniform draws, each conditioned on the mass the
// prior draws did not already consume. The tree shape is load-bearing, not
// an implementation detail — it is what defines the joint distribution over
// outcomes, so the draw order below must never be reshuffled.
package resolver

import (
	"github.com/baseball-sim/atbat-core/league"
	"github.com/baseball-sim/atbat-core/outcome"
	"github.com/baseball-sim/atbat-core/random"
	"github.com/baseball-sim/atbat-core/simerr"
)

// Config holds the fixed constants governing sub-decisions within the main
// tree. All fields have defaults matching the core's documented
// configuration surface; callers override only what they need to.
type Config struct {
	StrikeoutSwingingShare float64
	InfieldSingleShare     float64

	// OutTypeDistribution is (groundout, flyout, lineout, popup), must sum to 1.
	OutTypeDistribution [4]float64

	ErrorRateOnInPlayOut float64
	GIDPRateOnGroundout  float64
	SacFlyRateOnFlyout   float64

	// FoulOutShareOfPopup is the fraction of popups reclassified as foul
	// outs. The source material allows implementers to omit foul-out
	// entirely; this implementation keeps it as a sub-roll inside the
	// popup branch rather than dropping the enum variant.
	FoulOutShareOfPopup float64
}

// DefaultConfig returns the documented default sub-decision constants.
func DefaultConfig() Config {
	return Config{
		StrikeoutSwingingShare: 0.70,
		InfieldSingleShare:     0.15,
		OutTypeDistribution:    [4]float64{0.44, 0.28, 0.21, 0.07},
		ErrorRateOnInPlayOut:   0.02,
		GIDPRateOnGroundout:    0.15,
		SacFlyRateOnFlyout:     0.20,
		FoulOutShareOfPopup:    0.10,
	}
}

// Validate checks that every share lies in [0,1] and OutTypeDistribution
// has non-negative entries summing to 1 within epsilon.
func (c Config) Validate() error {
	shares := map[string]float64{
		"strikeout_swinging_share": c.StrikeoutSwingingShare,
		"infield_single_share":     c.InfieldSingleShare,
		"error_rate_on_in_play_out": c.ErrorRateOnInPlayOut,
		"gidp_rate_on_groundout":   c.GIDPRateOnGroundout,
		"sac_fly_rate_on_flyout":   c.SacFlyRateOnFlyout,
		"foul_out_share_of_popup":  c.FoulOutShareOfPopup,
	}
	for name, v := range shares {
		if v < 0 || v > 1 {
			return simerr.New(simerr.KindInvalidConfiguration, name, v, "in [0, 1]")
		}
	}
	for _, v := range c.OutTypeDistribution {
		if v < 0 {
			return simerr.New(simerr.KindInvalidConfiguration, "out_type_distribution", v, ">= 0")
		}
	}
	sum := c.OutTypeDistribution[0] + c.OutTypeDistribution[1] + c.OutTypeDistribution[2] + c.OutTypeDistribution[3]
	const epsilon = 1e-9
	if sum < 1-epsilon || sum > 1+epsilon {
		return simerr.New(simerr.KindInvalidConfiguration, "out_type_distribution", sum, "summing to 1")
	}
	return nil
}

// Context carries the prior-state facts the resolver's sub-decisions
// depend on. It is read-only to the resolver.
type Context struct {
	PriorOuts     int
	RunnerOnFirst bool
	RunnerOnThird bool
}

func (c Context) gidpEligible() bool {
	return c.RunnerOnFirst && c.PriorOuts < 2
}

func (c Context) sacFlyEligible() bool {
	return c.RunnerOnThird && c.PriorOuts < 2
}

// safeDiv returns num/den clamped to [0,1], or 0 when den is non-positive.
// A non-positive denominator means a prior branch already consumed all the
// probability mass; the conditional event cannot happen, which is
// represented here as probability 0 rather than a division error.
func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	v := num / den
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Resolve runs the full decision tree against rng, consuming draws from it
// in the fixed order the tree defines, and returns exactly one outcome.
func Resolve(rng *random.Source, matchup league.EventRates, cfg Config, ctx Context) (outcome.Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	pHBP := matchup.HitByPitch
	if rng.UniformCtx("hit_by_pitch") < pHBP {
		return outcome.HitByPitch, nil
	}
	remAfterHBP := 1 - pHBP

	pWalk := safeDiv(matchup.Walk, remAfterHBP)
	if rng.UniformCtx("walk") < pWalk {
		return outcome.Walk, nil
	}
	remAfterWalk := remAfterHBP - matchup.Walk

	pK := safeDiv(matchup.Strikeout, remAfterWalk)
	if rng.UniformCtx("strikeout") < pK {
		return resolveStrikeout(rng, cfg), nil
	}
	pContact := remAfterWalk - matchup.Strikeout

	pHR := safeDiv(matchup.HomeRun, pContact)
	if rng.UniformCtx("home_run") < pHR {
		return outcome.HomeRun, nil
	}

	hitSum := matchup.Single + matchup.Double + matchup.Triple
	pAnyHit := safeDiv(hitSum, pContact-matchup.HomeRun)
	if rng.UniformCtx("in_play_hit") >= pAnyHit {
		return resolveInPlayOut(rng, cfg, ctx), nil
	}

	pExtraBase := safeDiv(matchup.Double+matchup.Triple, hitSum)
	if rng.UniformCtx("extra_base") < pExtraBase {
		pTriple := safeDiv(matchup.Triple, matchup.Double+matchup.Triple)
		if rng.UniformCtx("triple_split") < pTriple {
			return outcome.Triple, nil
		}
		return outcome.Double, nil
	}
	return resolveSingle(rng, cfg), nil
}

func resolveStrikeout(rng *random.Source, cfg Config) outcome.Outcome {
	if rng.UniformCtx("strikeout_mode") < cfg.StrikeoutSwingingShare {
		return outcome.StrikeoutSwinging
	}
	return outcome.StrikeoutLooking
}

func resolveSingle(rng *random.Source, cfg Config) outcome.Outcome {
	if rng.UniformCtx("single_type") < cfg.InfieldSingleShare {
		return outcome.SingleInfield
	}
	return outcome.SingleOutfield
}

func resolveInPlayOut(rng *random.Source, cfg Config, ctx Context) outcome.Outcome {
	idx, err := rng.WeightedChoiceIndexCtx("out_type", cfg.OutTypeDistribution[:])
	if err != nil {
		// OutTypeDistribution was validated to sum to 1 with non-negative
		// shares; a weighted-choice failure here would indicate a
		// programming error, not a caller input error.
		panic(err)
	}

	if rng.UniformCtx("error_conversion") < cfg.ErrorRateOnInPlayOut {
		return outcome.ReachedOnError
	}

	switch idx {
	case 0: // groundout
		if ctx.gidpEligible() && rng.UniformCtx("gidp") < cfg.GIDPRateOnGroundout {
			return outcome.GroundIntoDoublePlay
		}
		return outcome.Groundout
	case 1: // flyout
		if ctx.sacFlyEligible() && rng.UniformCtx("sac_fly") < cfg.SacFlyRateOnFlyout {
			return outcome.SacrificeFly
		}
		return outcome.Flyout
	case 2:
		return outcome.Lineout
	default: // popup
		if cfg.FoulOutShareOfPopup > 0 && rng.UniformCtx("foul_out") < cfg.FoulOutShareOfPopup {
			return outcome.FoulOut
		}
		return outcome.Popup
	}
}
