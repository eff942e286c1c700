// Package random provides the seeded, audited pseudo-random source that
// every other package in the simulation core draws from. The algorithm is
// pinned to PCG (via the standard library's math/rand/v2), so a given seed
// and a given sequence of calls reproduce identical results on any platform
// running this implementation.
package random

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"

	"github.com/baseball-sim/atbat-core/simerr"
)

// Kind identifies the operation that produced a HistoryEntry.
type Kind string

const (
	// KindUniform marks an entry produced by Uniform or UniformCtx.
	KindUniform Kind = "uniform"
	// KindWeightedChoice marks an entry produced by WeightedChoiceIndex.
	KindWeightedChoice Kind = "weighted_choice"
)

// HistoryEntry is one append-only audit record: which kind of draw it was,
// the value produced, the caller-supplied context label (empty if none was
// given), and, for weighted choices, the (normalized) weight vector that was
// sampled against.
type HistoryEntry struct {
	Kind    Kind
	Value   float64
	Context string
	Weights []float64
}

// Source is a single-owner, seeded random generator with a monotonically
// growing audit history. It is not safe for concurrent use by design: the
// core's concurrency model requires external mutual exclusion if a Source is
// ever shared across goroutines. simulation.Engine, which owns one, carries
// the same restriction.
type Source struct {
	seed1, seed2 uint64
	rng          *mrand.Rand
	history      []HistoryEntry
}

// New creates a Source seeded deterministically from the given seed. The
// same seed always produces the same draw sequence.
func New(seed uint64) *Source {
	s := &Source{}
	s.reseed(seed)
	return s
}

// NewFromEntropy creates a Source seeded from the operating system's entropy
// pool, for callers that don't need reproducibility (e.g. a one-off CLI run
// with no --seed flag).
func NewFromEntropy() *Source {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively unrecoverable on any real
		// platform; fall back to a fixed seed rather than panicking so a
		// degraded environment still produces *a* sequence.
		return New(1)
	}
	return New(binary.LittleEndian.Uint64(buf[:]))
}

func (s *Source) reseed(seed uint64) {
	s.seed1 = seed
	// A fixed odd constant (the golden-ratio-derived splitmix64 increment)
	// decorrelates the PCG's two 64-bit seed words from a single input
	// without needing a second caller-supplied value.
	s.seed2 = seed ^ 0x9E3779B97F4A7C15
	s.rng = mrand.New(mrand.NewPCG(s.seed1, s.seed2))
	s.history = nil
}

// Seed returns the seed this Source was constructed (or last Reset) with.
func (s *Source) Seed() uint64 {
	return s.seed1
}

// Reset restores the Source to its initial seed (or a new one, if provided)
// and clears the history.
func (s *Source) Reset(seed ...uint64) {
	if len(seed) > 0 {
		s.reseed(seed[0])
		return
	}
	s.reseed(s.seed1)
}

// History returns an immutable view (a copy) of every draw made so far, in
// order.
func (s *Source) History() []HistoryEntry {
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// Uniform draws a single value in [0, 1) and records it with an empty
// context label.
func (s *Source) Uniform() float64 {
	return s.UniformCtx("")
}

// UniformCtx draws a single value in [0, 1) and records it tagged with ctx,
// so an audit trail can show which decision in the chained-binomial tree
// each draw corresponded to.
func (s *Source) UniformCtx(ctx string) float64 {
	v := s.rng.Float64()
	s.history = append(s.history, HistoryEntry{Kind: KindUniform, Value: v, Context: ctx})
	return v
}

// WeightedChoiceIndex draws an index in [0, len(weights)) via inverse-CDF
// sampling. Weights need not sum to 1; they are normalized internally
// without mutating the caller's slice. A non-positive total weight is a
// caller bug and returns an EmptyWeightedChoice error rather than a result.
func (s *Source) WeightedChoiceIndex(weights []float64) (int, error) {
	return s.WeightedChoiceIndexCtx("", weights)
}

// WeightedChoiceIndexCtx is WeightedChoiceIndex with an audit context label.
func (s *Source) WeightedChoiceIndexCtx(ctx string, weights []float64) (int, error) {
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return 0, simerr.New(simerr.KindEmptyWeightedChoice, "weights", weights, "all weights non-negative")
		}
		total += w
	}
	if total <= 0 {
		return 0, simerr.New(simerr.KindEmptyWeightedChoice, "weights", weights, "a positive total weight")
	}

	u := s.rng.Float64() * total
	normalized := make([]float64, len(weights))
	for i, w := range weights {
		normalized[i] = w / total
	}

	cumulative := 0.0
	chosen := len(weights) - 1
	for i, w := range weights {
		cumulative += w
		if u < cumulative {
			chosen = i
			break
		}
	}

	s.history = append(s.history, HistoryEntry{
		Kind:    KindWeightedChoice,
		Value:   float64(chosen),
		Context: ctx,
		Weights: normalized,
	})
	return chosen, nil
}

// WeightedChoice draws one of options via WeightedChoiceIndex. len(options)
// must equal len(weights).
func WeightedChoice[T any](s *Source, options []T, weights []float64) (T, error) {
	return WeightedChoiceCtx(s, "", options, weights)
}

// WeightedChoiceCtx is WeightedChoice with an audit context label.
func WeightedChoiceCtx[T any](s *Source, ctx string, options []T, weights []float64) (T, error) {
	var zero T
	if len(options) != len(weights) {
		return zero, simerr.New(simerr.KindEmptyWeightedChoice, "options", len(options), "len(options) == len(weights)")
	}
	idx, err := s.WeightedChoiceIndexCtx(ctx, weights)
	if err != nil {
		return zero, err
	}
	return options[idx], nil
}
