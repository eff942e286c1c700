package random

import (
	"testing"

	"github.com/baseball-sim/atbat-core/simerr"
	"github.com/stretchr/testify/assert"
)

func TestReproducibility(t *testing.T) {
	a := New(42)
	b := New(42)

	var aVals, bVals []float64
	for i := 0; i < 100; i++ {
		aVals = append(aVals, a.Uniform())
		bVals = append(bVals, b.Uniform())
	}

	assert.Equal(t, aVals, bVals)
	assert.Equal(t, a.History(), b.History())
}

func TestResetRestoresSeedAndClearsHistory(t *testing.T) {
	s := New(7)
	first := s.Uniform()
	s.Uniform()
	assert.Len(t, s.History(), 2)

	s.Reset()
	assert.Empty(t, s.History())
	assert.Equal(t, first, s.Uniform())
}

func TestResetWithNewSeed(t *testing.T) {
	s := New(7)
	s.Uniform()
	s.Reset(99)
	assert.Equal(t, uint64(99), s.Seed())
	assert.Empty(t, s.History())
}

func TestUniformBounds(t *testing.T) {
	s := New(1)
	for i := 0; i < 10000; i++ {
		v := s.Uniform()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestWeightedChoiceIndexDistribution(t *testing.T) {
	s := New(123)
	counts := make([]int, 3)
	for i := 0; i < 30000; i++ {
		idx, err := s.WeightedChoiceIndex([]float64{1, 2, 1})
		assert.NoError(t, err)
		counts[idx]++
	}
	total := float64(counts[0] + counts[1] + counts[2])
	assert.InDelta(t, 0.25, float64(counts[0])/total, 0.02)
	assert.InDelta(t, 0.50, float64(counts[1])/total, 0.02)
	assert.InDelta(t, 0.25, float64(counts[2])/total, 0.02)
}

func TestWeightedChoiceIndexDoesNotMutateInput(t *testing.T) {
	s := New(1)
	weights := []float64{3, 1}
	cp := append([]float64(nil), weights...)
	_, err := s.WeightedChoiceIndex(weights)
	assert.NoError(t, err)
	assert.Equal(t, cp, weights)
}

func TestWeightedChoiceIndexRejectsNonPositiveTotal(t *testing.T) {
	s := New(1)
	_, err := s.WeightedChoiceIndex([]float64{0, 0})
	assert.Error(t, err)
	assert.True(t, simerr.Is(err, simerr.KindEmptyWeightedChoice))

	_, err = s.WeightedChoiceIndex([]float64{-1, 0.5})
	assert.Error(t, err)
	assert.True(t, simerr.Is(err, simerr.KindEmptyWeightedChoice))
}

func TestWeightedChoiceGeneric(t *testing.T) {
	s := New(5)
	options := []string{"a", "b", "c"}
	choice, err := WeightedChoice(s, options, []float64{0, 1, 0})
	assert.NoError(t, err)
	assert.Equal(t, "b", choice)
}

func TestHistoryRecordsContextAndWeights(t *testing.T) {
	s := New(1)
	s.UniformCtx("hbp")
	_, err := s.WeightedChoiceIndexCtx("out_type", []float64{4, 2})
	assert.NoError(t, err)

	h := s.History()
	assert.Len(t, h, 2)
	assert.Equal(t, KindUniform, h[0].Kind)
	assert.Equal(t, "hbp", h[0].Context)
	assert.Equal(t, KindWeightedChoice, h[1].Kind)
	assert.Equal(t, "out_type", h[1].Context)
	assert.Equal(t, []float64{2.0 / 3.0, 1.0 / 3.0}, h[1].Weights)
}

func TestHistoryViewIsACopy(t *testing.T) {
	s := New(1)
	s.Uniform()
	h := s.History()
	h[0].Value = 999
	assert.NotEqual(t, 999.0, s.History()[0].Value)
}
