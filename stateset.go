package automaton

import (
	"slices"
	"strings"
)

var _ Hashable = StateSet{}

// StateSet is an immutable set of states. The members are kept sorted and
// unique, so two sets holding the same states are equal and hash alike no
// matter how they were built. After determinization every state of an
// automaton is a StateSet of the original states.
type StateSet struct {
	values   []State
	hashCode uint64
}

// NewStateSet returns the set of the given states. Duplicates are dropped.
func NewStateSet(states ...State) StateSet {
	values := slices.Clone(states)
	slices.Sort(values)
	return freeze(slices.Compact(values))
}

// freeze wraps values, which must already be sorted and unique.
func freeze(values []State) StateSet {
	if len(values) == 0 {
		return StateSet{}
	}
	hashCode := uint64(len(values))
	for _, v := range values {
		hashCode += mixState(v)
	}
	return StateSet{values: values, hashCode: hashCode}
}

// Hash Returns the precomputed hash, which ignores insertion order.
func (s StateSet) Hash() uint64 {
	return s.hashCode
}

// Equals Returns true if other is a StateSet with the same members.
func (s StateSet) Equals(other Hashable) bool {
	var o StateSet
	switch v := other.(type) {
	case StateSet:
		o = v
	case *StateSet:
		if v == nil {
			return false
		}
		o = *v
	default:
		return false
	}
	return s.hashCode == o.hashCode && slices.Equal(s.values, o.values)
}

// Members returns the states in ascending order.
func (s StateSet) Members() []State {
	return slices.Clone(s.values)
}

// Len How many states the set holds.
func (s StateSet) Len() int {
	return len(s.values)
}

// IsEmpty
// Returns true for the empty set, the destination of a missing move.
func (s StateSet) IsEmpty() bool {
	return len(s.values) == 0
}

// Contains Returns true if state is a member.
func (s StateSet) Contains(state State) bool {
	_, ok := slices.BinarySearch(s.values, state)
	return ok
}

// Union returns the set of states in s or other.
func (s StateSet) Union(other StateSet) StateSet {
	if other.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return other
	}
	values := make([]State, 0, len(s.values)+len(other.values))
	i, j := 0, 0
	for i < len(s.values) && j < len(other.values) {
		switch {
		case s.values[i] < other.values[j]:
			values = append(values, s.values[i])
			i++
		case s.values[i] > other.values[j]:
			values = append(values, other.values[j])
			j++
		default:
			values = append(values, s.values[i])
			i++
			j++
		}
	}
	values = append(values, s.values[i:]...)
	values = append(values, other.values[j:]...)
	return freeze(values)
}

// Intersects reports whether s and other share at least one state.
func (s StateSet) Intersects(other StateSet) bool {
	i, j := 0, 0
	for i < len(s.values) && j < len(other.values) {
		switch {
		case s.values[i] < other.values[j]:
			i++
		case s.values[i] > other.values[j]:
			j++
		default:
			return true
		}
	}
	return false
}

// IsSubsetOf reports whether every state of s is in other.
func (s StateSet) IsSubsetOf(other StateSet) bool {
	for _, v := range s.values {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// Key joins the members with commas. It is used for naming and ordering,
// never for identity.
func (s StateSet) Key() string {
	return strings.Join(s.strings(), ",")
}

func (s StateSet) String() string {
	return "{" + strings.Join(s.strings(), ", ") + "}"
}

func (s StateSet) strings() []string {
	out := make([]string, len(s.values))
	for i, v := range s.values {
		out[i] = string(v)
	}
	return out
}

// compareStateSets orders sets by their members, shorter prefixes first.
func compareStateSets(a, b StateSet) int {
	return slices.Compare(a.values, b.values)
}

func sortStateSets(sets []StateSet) {
	slices.SortFunc(sets, compareStateSets)
}
