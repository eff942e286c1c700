package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEraOf(t *testing.T) {
	tests := []struct {
		year int
		want Era
	}{
		{1900, EraDeadball},
		{1919, EraDeadball},
		{1920, EraLiveball},
		{1960, EraLiveball},
		{1961, EraModern},
		{2024, EraModern},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EraOf(tt.year), "year %d", tt.year)
	}
}

func TestDefaultBaselinesAllStrictlyInUnitInterval(t *testing.T) {
	b := DefaultBaselines()
	for _, era := range []Era{EraDeadball, EraLiveball, EraModern} {
		r := b.Baseline(yearFor(era))
		for _, p := range []float64{r.Strikeout, r.Walk, r.HitByPitch, r.Single, r.Double, r.Triple, r.HomeRun} {
			assert.Greater(t, p, 0.0)
			assert.Less(t, p, 1.0)
		}
		residual := r.Residual()
		assert.Greater(t, residual, 0.0)
		assert.Less(t, residual, 1.0)
	}
}

func yearFor(era Era) int {
	switch era {
	case EraDeadball:
		return 1900
	case EraLiveball:
		return 1940
	default:
		return 2000
	}
}

func TestNewBaselinesRejectsOutOfRangeOverride(t *testing.T) {
	_, err := NewBaselines(map[Era]EventRates{
		EraModern: {Strikeout: 1.5, Walk: 0.08, HitByPitch: 0.01, Single: 0.15, Double: 0.045, Triple: 0.005, HomeRun: 0.03},
	})
	assert.Error(t, err)
}

func TestNewBaselinesRejectsResidualOutOfRange(t *testing.T) {
	_, err := NewBaselines(map[Era]EventRates{
		EraModern: {Strikeout: 0.5, Walk: 0.5, HitByPitch: 0.01, Single: 0.1, Double: 0.05, Triple: 0.01, HomeRun: 0.03},
	})
	assert.Error(t, err)
}

func TestBaselineValuesMatchGlossary(t *testing.T) {
	b := DefaultBaselines()

	deadball := b.Baseline(1900)
	assert.InDelta(t, 0.10, deadball.Strikeout, 1e-9)
	assert.InDelta(t, 0.08, deadball.Walk, 1e-9)
	assert.InDelta(t, 0.565, deadball.Residual(), 1e-9)

	liveball := b.Baseline(1945)
	assert.InDelta(t, 0.535, liveball.Residual(), 1e-9)

	modern := b.Baseline(2015)
	assert.InDelta(t, 0.20, modern.Strikeout, 1e-9)
	assert.InDelta(t, 0.480, modern.Residual(), 1e-9)
}
