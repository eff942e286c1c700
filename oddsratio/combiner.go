// Package oddsratio combines a batter's and a pitcher's independent
// per-event probabilities against a league anchor into a single matchup
// probability, without normalizing the result across events. Simple
// averaging of batter and pitcher rates is the most common way to get a
// matchup model catastrophically wrong: it flattens skill differences and
// ignores the multiplicative nature of opposed probabilities. The odds-ratio
// form below is what keeps an elite-pitcher-vs-weak-batter matchup further
// from league average than a naive average would put it.
package oddsratio

import (
	"github.com/baseball-sim/atbat-core/league"
	"github.com/baseball-sim/atbat-core/simerr"
)

// Combine computes the matchup probability for a single event given a
// batter probability b, a pitcher-allowed probability p, and a league
// baseline l. l must be strictly in (0,1); b and p must be in [0,1].
//
// matchup_odds = (b/(1-b)) * (p/(1-p)) / (l/(1-l))
// matchup_p    = matchup_odds / (1 + matchup_odds)
//
// which rearranges to the division-by-zero-safe form used here:
// matchup_p = (b*p*(1-l)) / (b*p*(1-l) + (1-b)*(1-p)*l)
func Combine(b, p, l float64) (float64, error) {
	if l <= 0 || l >= 1 {
		return 0, simerr.New(simerr.KindInvalidProbabilityInput, "l", l, "strictly in (0, 1)")
	}
	if b < 0 || b > 1 {
		return 0, simerr.New(simerr.KindInvalidProbabilityInput, "b", b, "in [0, 1]")
	}
	if p < 0 || p > 1 {
		return 0, simerr.New(simerr.KindInvalidProbabilityInput, "p", p, "in [0, 1]")
	}

	if b == 0 || p == 0 {
		return 0, nil
	}
	if b == 1 || p == 1 {
		return 1, nil
	}

	numerator := b * p * (1 - l)
	denominator := numerator + (1-b)*(1-p)*l
	return numerator / denominator, nil
}

// CombineEvents applies Combine event-by-event across the closed event set
// E, returning an unnormalized league.EventRates. The residual
// 1-Sum() represents "in-play out" mass: normalizing the result at this
// stage would silently inflate hit rates and is forbidden by the core's
// design (see the package doc).
func CombineEvents(batter, pitcher, leagueBaseline league.EventRates) (league.EventRates, error) {
	type event struct {
		name         string
		b, p, l      float64
		assign       func(*league.EventRates, float64)
	}
	var out league.EventRates
	events := []event{
		{"strikeout", batter.Strikeout, pitcher.Strikeout, leagueBaseline.Strikeout, func(r *league.EventRates, v float64) { r.Strikeout = v }},
		{"walk", batter.Walk, pitcher.Walk, leagueBaseline.Walk, func(r *league.EventRates, v float64) { r.Walk = v }},
		{"hit_by_pitch", batter.HitByPitch, pitcher.HitByPitch, leagueBaseline.HitByPitch, func(r *league.EventRates, v float64) { r.HitByPitch = v }},
		{"single", batter.Single, pitcher.Single, leagueBaseline.Single, func(r *league.EventRates, v float64) { r.Single = v }},
		{"double", batter.Double, pitcher.Double, leagueBaseline.Double, func(r *league.EventRates, v float64) { r.Double = v }},
		{"triple", batter.Triple, pitcher.Triple, leagueBaseline.Triple, func(r *league.EventRates, v float64) { r.Triple = v }},
		{"home_run", batter.HomeRun, pitcher.HomeRun, leagueBaseline.HomeRun, func(r *league.EventRates, v float64) { r.HomeRun = v }},
	}
	for _, e := range events {
		v, err := Combine(e.b, e.p, e.l)
		if err != nil {
			return league.EventRates{}, err
		}
		e.assign(&out, v)
	}
	return out, nil
}
