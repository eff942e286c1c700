// Package simulation is the façade that composes projection, combination,
// resolution, and advancement into a single plate-appearance operation.
package simulation

import (
	"github.com/baseball-sim/atbat-core/advancement"
	"github.com/baseball-sim/atbat-core/basestate"
	"github.com/baseball-sim/atbat-core/league"
	"github.com/baseball-sim/atbat-core/oddsratio"
	"github.com/baseball-sim/atbat-core/outcome"
	"github.com/baseball-sim/atbat-core/random"
	"github.com/baseball-sim/atbat-core/resolver"
	"github.com/baseball-sim/atbat-core/simerr"
	"github.com/baseball-sim/atbat-core/stats"
)

// Config is the set of per-engine knobs an embedder may override. Its zero
// value is not valid; use DefaultConfig.
type Config struct {
	Projector stats.ProjectorConfig
	Resolver  resolver.Config
}

// DefaultConfig returns the documented defaults for every sub-component.
func DefaultConfig() Config {
	return Config{
		Projector: stats.DefaultProjectorConfig(),
		Resolver:  resolver.DefaultConfig(),
	}
}

// Validate runs every sub-component's own validation.
func (c Config) Validate() error {
	if err := c.Projector.Validate(); err != nil {
		return err
	}
	return c.Resolver.Validate()
}

// Engine owns a RandomSource and a LeagueBaselines table and exposes the
// single plate-appearance operation the core promises. It is not safe for
// concurrent use; see the concurrency note on the random.Source type.
type Engine struct {
	rng       *random.Source
	baselines *league.Baselines
	cfg       Config
}

// New constructs an Engine. baselines may be nil, in which case
// league.DefaultBaselines() is used.
func New(rng *random.Source, baselines *league.Baselines, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if baselines == nil {
		baselines = league.DefaultBaselines()
	}
	return &Engine{rng: rng, baselines: baselines, cfg: cfg}, nil
}

// PlateAppearanceResult is the complete record of one simulated plate
// appearance: the outcome, the resulting advancement, the matchup
// probabilities that produced it, and the slice of RandomSource draws
// consumed while producing it.
type PlateAppearanceResult struct {
	Outcome     outcome.Outcome
	Advancement advancement.Result
	Matchup     league.EventRates
	Draws       []random.HistoryEntry
}

// SimulatePlateAppearance runs one plate appearance to completion:
// project → combine → resolve → advance. Every upstream validation failure
// (invalid stat lines, invalid configuration) surfaces before any draw is
// made, so a failed call never pollutes the RandomSource's history.
func (e *Engine) SimulatePlateAppearance(
	batter stats.BattingStatLine,
	pitcher stats.PitchingStatLine,
	year int,
	priorState basestate.State,
	priorOuts int,
	batterCtx, pitcherCtx stats.ProjectionContext,
) (PlateAppearanceResult, error) {
	if priorOuts < 0 || priorOuts > 2 {
		return PlateAppearanceResult{}, simerr.New(simerr.KindInvalidConfiguration, "prior_outs", priorOuts, "in [0, 2]")
	}

	batterProjection, err := stats.ProjectBatter(batter, year, e.baselines, e.cfg.Projector, batterCtx)
	if err != nil {
		return PlateAppearanceResult{}, err
	}
	pitcherProjection, err := stats.ProjectPitcherAllowed(pitcher, year, e.baselines, e.cfg.Projector, pitcherCtx)
	if err != nil {
		return PlateAppearanceResult{}, err
	}

	leagueBaseline := e.baselines.Baseline(year)
	matchup, err := oddsratio.CombineEvents(batterProjection.Rates, pitcherProjection.Rates, leagueBaseline)
	if err != nil {
		return PlateAppearanceResult{}, err
	}

	historyBefore := len(e.rng.History())

	resolveCtx := resolver.Context{
		PriorOuts:     priorOuts,
		RunnerOnFirst: priorState.First(),
		RunnerOnThird: priorState.Third(),
	}
	result, err := resolver.Resolve(e.rng, matchup, e.cfg.Resolver, resolveCtx)
	if err != nil {
		return PlateAppearanceResult{}, err
	}

	adv := advancement.Resolve(e.rng, result, priorState)

	draws := e.rng.History()[historyBefore:]

	return PlateAppearanceResult{
		Outcome:     result,
		Advancement: adv,
		Matchup:     matchup,
		Draws:       draws,
	}, nil
}

// RandomSource exposes the engine's owned source, e.g. so a caller can
// reset it between independent game simulations.
func (e *Engine) RandomSource() *random.Source {
	return e.rng
}
