package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBattingStatLineSingles(t *testing.T) {
	b := BattingStatLine{Hits: 150, Doubles: 30, Triples: 5, HomeRuns: 20}
	assert.Equal(t, 95, b.Singles())
}

func TestBattingStatLinePlateAppearances(t *testing.T) {
	b := BattingStatLine{AtBats: 500, Walks: 60, HitByPitch: 5, SacrificeFlies: 3}
	assert.Equal(t, 568, b.PlateAppearances())
}

func TestBattingStatLineValidateRejectsNegative(t *testing.T) {
	b := BattingStatLine{AtBats: -1}
	assert.Error(t, b.Validate())
}

func TestBattingStatLineValidateRejectsHitsBelowExtraBase(t *testing.T) {
	b := BattingStatLine{Hits: 10, Doubles: 8, Triples: 2, HomeRuns: 2}
	assert.Error(t, b.Validate())
}

func TestBattingStatLineValidateAcceptsConsistentLine(t *testing.T) {
	b := BattingStatLine{AtBats: 500, Walks: 60, HitByPitch: 5, SacrificeFlies: 3, Hits: 150, Doubles: 30, Triples: 5, HomeRuns: 20, Strikeouts: 90}
	assert.NoError(t, b.Validate())
}

func TestPitchingStatLineValidateIgnoresBreakdownWhenAbsent(t *testing.T) {
	p := PitchingStatLine{BattersFaced: 600, HitsAllowed: 140, HomeRunsAllowed: 15}
	assert.NoError(t, p.Validate())
}

func TestPitchingStatLineValidateChecksBreakdownWhenPresent(t *testing.T) {
	p := PitchingStatLine{
		BattersFaced: 600, HitsAllowed: 10, DoublesAllowed: 8, TriplesAllowed: 2,
		HomeRunsAllowed: 2, HasExtraBaseBreakdown: true,
	}
	assert.Error(t, p.Validate())
}
