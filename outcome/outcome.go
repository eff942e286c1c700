// Package outcome enumerates the closed set of plate-appearance results the
// resolver can produce, along with the pure derived flags callers need
// (is_hit, is_out, is_on_base, bases_gained).
package outcome

// Outcome is a single plate-appearance result. It is a closed sum type:
// every branch of the resolver's decision tree terminates in exactly one
// of these variants.
type Outcome int

const (
	StrikeoutSwinging Outcome = iota
	StrikeoutLooking
	Walk
	HitByPitch
	SingleOutfield
	SingleInfield
	Double
	Triple
	HomeRun
	Groundout
	Flyout
	Lineout
	Popup
	FoulOut
	ReachedOnError
	GroundIntoDoublePlay
	SacrificeFly
)

var names = map[Outcome]string{
	StrikeoutSwinging:   "strikeout_swinging",
	StrikeoutLooking:    "strikeout_looking",
	Walk:                "walk",
	HitByPitch:          "hit_by_pitch",
	SingleOutfield:      "single_outfield",
	SingleInfield:       "single_infield",
	Double:              "double",
	Triple:              "triple",
	HomeRun:             "home_run",
	Groundout:           "groundout",
	Flyout:              "flyout",
	Lineout:             "lineout",
	Popup:               "popup",
	FoulOut:             "foul_out",
	ReachedOnError:      "reached_on_error",
	GroundIntoDoublePlay: "ground_into_double_play",
	SacrificeFly:        "sacrifice_fly",
}

func (o Outcome) String() string {
	if s, ok := names[o]; ok {
		return s
	}
	return "unknown"
}

// IsStrikeout reports whether o is either strikeout variant.
func (o Outcome) IsStrikeout() bool {
	return o == StrikeoutSwinging || o == StrikeoutLooking
}

// IsHit reports whether o is a clean hit (single through home run), excluding
// reached-on-error, which is an out converted to on-base but is not a hit.
func (o Outcome) IsHit() bool {
	switch o {
	case SingleOutfield, SingleInfield, Double, Triple, HomeRun:
		return true
	default:
		return false
	}
}

// IsOut reports whether o consumes an out under ordinary advancement rules.
// GroundIntoDoublePlay and SacrificeFly are also outs (with differing
// out-deltas handled by the advancement engine), so they report true here.
func (o Outcome) IsOut() bool {
	switch o {
	case StrikeoutSwinging, StrikeoutLooking, Groundout, Flyout, Lineout, Popup,
		FoulOut, GroundIntoDoublePlay, SacrificeFly:
		return true
	default:
		return false
	}
}

// IsOnBase reports whether the batter reaches base: hits, walk, HBP, and
// reached-on-error.
func (o Outcome) IsOnBase() bool {
	if o.IsHit() {
		return true
	}
	switch o {
	case Walk, HitByPitch, ReachedOnError:
		return true
	default:
		return false
	}
}

// BasesGained returns how many bases the batter is awarded on contact,
// independent of runner advancement. Non-hit, non-error outcomes return 0.
func (o Outcome) BasesGained() int {
	switch o {
	case SingleOutfield, SingleInfield, ReachedOnError:
		return 1
	case Double:
		return 2
	case Triple:
		return 3
	case HomeRun:
		return 4
	default:
		return 0
	}
}
