// Package stats holds seasonal statistical inputs (BattingStatLine,
// PitchingStatLine) and the projector that turns them into per-plate-
// appearance event rates.
package stats

import (
	"github.com/baseball-sim/atbat-core/simerr"
)

// BattingStatLine is one player's seasonal batting counts. Singles is
// derived, not stored: Hits − Doubles − Triples − HomeRuns.
type BattingStatLine struct {
	AtBats         int
	Walks          int
	HitByPitch     int
	SacrificeFlies int
	Hits           int
	Doubles        int
	Triples        int
	HomeRuns       int
	Strikeouts     int
}

// Singles returns the derived single count.
func (b BattingStatLine) Singles() int {
	return b.Hits - b.Doubles - b.Triples - b.HomeRuns
}

// PlateAppearances returns the derived PA denominator.
func (b BattingStatLine) PlateAppearances() int {
	return b.AtBats + b.Walks + b.HitByPitch + b.SacrificeFlies
}

// Validate enforces the section-3 invariants: no negative counts, and hits
// no smaller than the sum of its extra-base components.
func (b BattingStatLine) Validate() error {
	fields := map[string]int{
		"at_bats": b.AtBats, "walks": b.Walks, "hit_by_pitch": b.HitByPitch,
		"sacrifice_flies": b.SacrificeFlies, "hits": b.Hits, "doubles": b.Doubles,
		"triples": b.Triples, "home_runs": b.HomeRuns, "strikeouts": b.Strikeouts,
	}
	for name, v := range fields {
		if v < 0 {
			return simerr.New(simerr.KindInvalidStatLine, name, v, ">= 0")
		}
	}
	extraBase := b.Doubles + b.Triples + b.HomeRuns
	if b.Hits < extraBase {
		return simerr.New(simerr.KindInvalidStatLine, "hits", b.Hits, "at least doubles+triples+home_runs")
	}
	return nil
}

// PitchingStatLine is one pitcher's seasonal allowed counts. HasExtraBaseBreakdown
// reports whether DoublesAllowed/TriplesAllowed are populated; when false the
// projector distributes HitsAllowed using league-baseline proportions.
type PitchingStatLine struct {
	BattersFaced      int
	WalksAllowed      int
	HitByPitchAllowed int
	HitsAllowed       int
	DoublesAllowed    int
	TriplesAllowed    int
	HomeRunsAllowed   int
	StrikeoutsThrown  int

	HasExtraBaseBreakdown bool
}

// Validate mirrors BattingStatLine.Validate.
func (p PitchingStatLine) Validate() error {
	fields := map[string]int{
		"batters_faced": p.BattersFaced, "walks_allowed": p.WalksAllowed,
		"hit_by_pitch_allowed": p.HitByPitchAllowed, "hits_allowed": p.HitsAllowed,
		"doubles_allowed": p.DoublesAllowed, "triples_allowed": p.TriplesAllowed,
		"home_runs_allowed": p.HomeRunsAllowed, "strikeouts_thrown": p.StrikeoutsThrown,
	}
	for name, v := range fields {
		if v < 0 {
			return simerr.New(simerr.KindInvalidStatLine, name, v, ">= 0")
		}
	}
	if p.HasExtraBaseBreakdown {
		extraBase := p.DoublesAllowed + p.TriplesAllowed + p.HomeRunsAllowed
		if p.HitsAllowed < extraBase {
			return simerr.New(simerr.KindInvalidStatLine, "hits_allowed", p.HitsAllowed, "at least doubles+triples+home_runs allowed")
		}
	}
	return nil
}
