package outcome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHit(t *testing.T) {
	hits := []Outcome{SingleOutfield, SingleInfield, Double, Triple, HomeRun}
	for _, o := range hits {
		assert.True(t, o.IsHit(), o.String())
	}
	nonHits := []Outcome{Walk, HitByPitch, ReachedOnError, Groundout, StrikeoutSwinging}
	for _, o := range nonHits {
		assert.False(t, o.IsHit(), o.String())
	}
}

func TestIsOut(t *testing.T) {
	outs := []Outcome{StrikeoutSwinging, StrikeoutLooking, Groundout, Flyout, Lineout, Popup, FoulOut, GroundIntoDoublePlay, SacrificeFly}
	for _, o := range outs {
		assert.True(t, o.IsOut(), o.String())
	}
	notOuts := []Outcome{Walk, HitByPitch, SingleOutfield, Double, Triple, HomeRun, ReachedOnError}
	for _, o := range notOuts {
		assert.False(t, o.IsOut(), o.String())
	}
}

func TestIsOnBase(t *testing.T) {
	onBase := []Outcome{Walk, HitByPitch, SingleOutfield, SingleInfield, Double, Triple, HomeRun, ReachedOnError}
	for _, o := range onBase {
		assert.True(t, o.IsOnBase(), o.String())
	}
	notOnBase := []Outcome{StrikeoutSwinging, Groundout, Flyout, GroundIntoDoublePlay, SacrificeFly}
	for _, o := range notOnBase {
		assert.False(t, o.IsOnBase(), o.String())
	}
}

func TestBasesGained(t *testing.T) {
	assert.Equal(t, 1, SingleOutfield.BasesGained())
	assert.Equal(t, 1, SingleInfield.BasesGained())
	assert.Equal(t, 1, ReachedOnError.BasesGained())
	assert.Equal(t, 2, Double.BasesGained())
	assert.Equal(t, 3, Triple.BasesGained())
	assert.Equal(t, 4, HomeRun.BasesGained())
	assert.Equal(t, 0, Walk.BasesGained())
	assert.Equal(t, 0, Groundout.BasesGained())
}

func TestStringIsStable(t *testing.T) {
	assert.Equal(t, "single_outfield", SingleOutfield.String())
	assert.Equal(t, "ground_into_double_play", GroundIntoDoublePlay.String())
	assert.Equal(t, "unknown", Outcome(999).String())
}
