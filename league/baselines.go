// Package league holds era-partitioned league-average event rates. These
// are the anchor ("l") values the odds-ratio combiner compares a batter and
// a pitcher against.
package league

import (
	"fmt"

	"github.com/baseball-sim/atbat-core/simerr"
)

// Era is one of the three fixed historical eras the core partitions years
// into.
type Era string

const (
	EraDeadball Era = "deadball"
	EraLiveball Era = "liveball"
	EraModern   Era = "modern"
)

// Era boundaries, fixed per the glossary: deadball < 1920, liveball
// 1920-1960 inclusive, modern >= 1961.
const (
	deadballEnd = 1920
	liveballEnd = 1960
)

// EraOf returns the fixed era a given year falls into.
func EraOf(year int) Era {
	switch {
	case year < deadballEnd:
		return EraDeadball
	case year <= liveballEnd:
		return EraLiveball
	default:
		return EraModern
	}
}

// EventRates is a probability over the closed event set E = {strikeout,
// walk, hit-by-pitch, single, double, triple, home-run}. The sum over E must
// be <= 1; the residual 1-sum is the implicit "in-play out" mass and must
// never be normalized away.
type EventRates struct {
	Strikeout  float64
	Walk       float64
	HitByPitch float64
	Single     float64
	Double     float64
	Triple     float64
	HomeRun    float64
}

// Sum returns the total probability mass assigned to explicit events.
func (r EventRates) Sum() float64 {
	return r.Strikeout + r.Walk + r.HitByPitch + r.Single + r.Double + r.Triple + r.HomeRun
}

// Residual returns the implicit in-play-out mass, 1 - Sum().
func (r EventRates) Residual() float64 {
	return 1 - r.Sum()
}

// Baselines is an injectable, immutable-after-construction table of
// per-era league baselines.
type Baselines struct {
	byEra map[Era]EventRates
}

// defaultRates are the glossary's default league baselines, unnormalized
// per PA.
func defaultRates() map[Era]EventRates {
	return map[Era]EventRates{
		EraDeadball: {Strikeout: 0.10, Walk: 0.08, HitByPitch: 0.01, Single: 0.18, Double: 0.04, Triple: 0.02, HomeRun: 0.005},
		EraLiveball: {Strikeout: 0.12, Walk: 0.09, HitByPitch: 0.01, Single: 0.17, Double: 0.04, Triple: 0.015, HomeRun: 0.02},
		EraModern:   {Strikeout: 0.20, Walk: 0.08, HitByPitch: 0.01, Single: 0.15, Double: 0.045, Triple: 0.005, HomeRun: 0.03},
	}
}

// NewBaselines constructs a Baselines table from caller-supplied rates (one
// per era; missing eras fall back to the default). Every probability in the
// resulting table must lie strictly in (0,1), including the implicit
// residual out rate; violating that is an InvalidLeagueBaseline error.
func NewBaselines(overrides map[Era]EventRates) (*Baselines, error) {
	rates := defaultRates()
	for era, r := range overrides {
		rates[era] = r
	}
	for era, r := range rates {
		if err := validate(era, r); err != nil {
			return nil, err
		}
	}
	return &Baselines{byEra: rates}, nil
}

// DefaultBaselines constructs the Baselines table from the glossary's
// hardcoded defaults. It panics if those constants are internally
// inconsistent, since that would be a programming error in this package,
// not a caller input error.
func DefaultBaselines() *Baselines {
	b, err := NewBaselines(nil)
	if err != nil {
		panic(fmt.Sprintf("league: built-in default baselines are invalid: %v", err))
	}
	return b
}

func validate(era Era, r EventRates) error {
	fields := map[string]float64{
		"strikeout":    r.Strikeout,
		"walk":         r.Walk,
		"hit_by_pitch": r.HitByPitch,
		"single":       r.Single,
		"double":       r.Double,
		"triple":       r.Triple,
		"home_run":     r.HomeRun,
	}
	for name, p := range fields {
		if p <= 0 || p >= 1 {
			return simerr.New(simerr.KindInvalidLeagueBaseline, fmt.Sprintf("%s.%s", era, name), p, "strictly in (0, 1)")
		}
	}
	residual := r.Residual()
	if residual <= 0 || residual >= 1 {
		return simerr.New(simerr.KindInvalidLeagueBaseline, fmt.Sprintf("%s.residual", era), residual, "strictly in (0, 1)")
	}
	return nil
}

// EraOf returns the era the given year belongs to in this table. Era
// boundaries are fixed constants, independent of which baselines were
// injected.
func (b *Baselines) EraOf(year int) Era {
	return EraOf(year)
}

// Baseline returns the league-average event rates for the era containing
// year.
func (b *Baselines) Baseline(year int) EventRates {
	return b.byEra[b.EraOf(year)]
}
