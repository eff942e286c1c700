// Package simerr defines the structured error kinds raised by the at-bat
// simulation core. Every error carries enough context (which field, which
// value, which expected range) for a caller to handle it programmatically
// rather than by matching on a message string.
package simerr

import "fmt"

// Kind identifies which of the error kinds described in the core's error
// handling design a ValidationError represents.
type Kind string

const (
	// KindInvalidStatLine covers negative counts, hits less than the sum of
	// extra-base types, or an implausible zero PA/BF denominator when no
	// fallback was requested.
	KindInvalidStatLine Kind = "invalid_stat_line"

	// KindInvalidLeagueBaseline covers a baseline probability outside (0,1)
	// or a residual out-rate outside (0,1).
	KindInvalidLeagueBaseline Kind = "invalid_league_baseline"

	// KindInvalidProbabilityInput covers an odds-ratio call with l outside
	// (0,1) or b/p outside [0,1].
	KindInvalidProbabilityInput Kind = "invalid_probability_input"

	// KindInvalidConfiguration covers a configuration option outside its
	// documented range.
	KindInvalidConfiguration Kind = "invalid_configuration"

	// KindEmptyWeightedChoice covers a weighted_choice call with a
	// non-positive total weight. This indicates a caller bug and is not
	// recoverable.
	KindEmptyWeightedChoice Kind = "empty_weighted_choice"

	// KindInvalidAdvancementMatrix covers a matrix row that does not sum to
	// 1 within epsilon, detected at initialization time.
	KindInvalidAdvancementMatrix Kind = "invalid_advancement_matrix"
)

// ValidationError is the concrete error type returned for every kind above.
type ValidationError struct {
	Kind     Kind
	Field    string
	Value    any
	Expected string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: field %q = %v, expected %s", e.Kind, e.Field, e.Value, e.Expected)
}

// New constructs a ValidationError of the given kind.
func New(kind Kind, field string, value any, expected string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Value: value, Expected: expected}
}

// Is reports whether err is a ValidationError of the given kind, so callers
// can branch with `simerr.Is(err, simerr.KindInvalidStatLine)` instead of
// matching on the message.
func Is(err error, kind Kind) bool {
	ve, ok := err.(*ValidationError)
	return ok && ve.Kind == kind
}
