// Package basestate models which bases are occupied as a small, comparable
// value type. It carries no notion of who the runners are; the simulation
// facade owns runner identity and scoring.
package basestate

// State is the occupancy of first, second, and third base. The zero value
// is Empty.
type State struct {
	first, second, third bool
}

// Empty is the bases-empty state.
var Empty = State{}

// New constructs a State from explicit occupancy flags.
func New(first, second, third bool) State {
	return State{first: first, second: second, third: third}
}

// First reports whether first base is occupied.
func (s State) First() bool { return s.first }

// Second reports whether second base is occupied.
func (s State) Second() bool { return s.second }

// Third reports whether third base is occupied.
func (s State) Third() bool { return s.third }

// WithFirst returns a copy of s with first base occupancy set to v.
func (s State) WithFirst(v bool) State {
	s.first = v
	return s
}

// WithSecond returns a copy of s with second base occupancy set to v.
func (s State) WithSecond(v bool) State {
	s.second = v
	return s
}

// WithThird returns a copy of s with third base occupancy set to v.
func (s State) WithThird(v bool) State {
	s.third = v
	return s
}

// Count returns the number of occupied bases, 0-3.
func (s State) Count() int {
	n := 0
	if s.first {
		n++
	}
	if s.second {
		n++
	}
	if s.third {
		n++
	}
	return n
}

// IsEmpty reports whether no base is occupied.
func (s State) IsEmpty() bool {
	return !s.first && !s.second && !s.third
}

// Loaded reports whether all three bases are occupied.
func (s State) Loaded() bool {
	return s.first && s.second && s.third
}

// AsTuple returns the occupancy as (first, second, third) booleans, useful
// for table-driven tests and matrix lookups.
func (s State) AsTuple() (bool, bool, bool) {
	return s.first, s.second, s.third
}

// String renders the state as a compact three-character code for logging:
// the base number ('1', '2', '3') per occupied base and '_' per empty base,
// in first-second-third order, e.g. "1_3" for runners on first and third.
func (s State) String() string {
	b := [3]byte{'_', '_', '_'}
	if s.first {
		b[0] = '1'
	}
	if s.second {
		b[1] = '2'
	}
	if s.third {
		b[2] = '3'
	}
	return string(b[:])
}
