package automaton

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// RunAutomaton is a deterministic automaton compiled to an integer table for
// repeated matching. State 0 is the initial state.
type RunAutomaton struct {
	alphabet []Symbol
	states   []StateSet
	accept   *bitset.BitSet
	// next[s*len(alphabet)+k] is the state reached from s on alphabet[k],
	// or -1.
	next []int
}

// NewRunAutomaton
// Compiles a, which must be deterministic, into a run table. Only states
// reachable from the initial state are kept.
func NewRunAutomaton(a *FiniteAutomaton) (*RunAutomaton, error) {
	if !IsDeterministic(a) {
		return nil, ErrNotDeterministic
	}
	d := a.snapshot()
	if len(d.states) == 0 {
		return nil, fmt.Errorf("no initial state: %w", ErrUndefinedState)
	}

	r := &RunAutomaton{
		alphabet: d.alphabet,
		accept:   bitset.New(uint(len(d.states))),
	}
	number := NewHashMap[int](WithCapacity(len(d.states)))
	add := func(s StateSet) int {
		if i, ok := number.Get(s); ok {
			return i
		}
		i := len(r.states)
		number.Set(s, i)
		r.states = append(r.states, s)
		r.accept.SetTo(uint(i), d.isFinal(s))
		r.next = append(r.next, slices.Repeat([]int{-1}, len(r.alphabet))...)
		return i
	}

	add(d.initState)
	for i := 0; i < len(r.states); i++ {
		s := r.states[i]
		for k, c := range r.alphabet {
			targets := d.resolve(d.transitions.Get(s, c))
			if len(targets) == 0 {
				continue
			}
			r.next[i*len(r.alphabet)+k] = add(targets[0])
		}
	}
	return r, nil
}

// NumStates How many reachable states the table has.
func (r *RunAutomaton) NumStates() int {
	return len(r.states)
}

// State Returns the automaton state numbered i.
func (r *RunAutomaton) State(i int) StateSet {
	return r.states[i]
}

// IsAccept Returns true if this state is an accept state.
func (r *RunAutomaton) IsAccept(state int) bool {
	return r.accept.Test(uint(state))
}

// Step
// Returns the state reached from state on symbol, or -1 if there is no such
// move.
func (r *RunAutomaton) Step(state int, symbol Symbol) int {
	k, ok := slices.BinarySearch(r.alphabet, symbol)
	if !ok || state < 0 {
		return -1
	}
	return r.next[state*len(r.alphabet)+k]
}

// Run reports whether word is accepted.
func (r *RunAutomaton) Run(word ...Symbol) bool {
	p := 0
	for _, c := range word {
		p = r.Step(p, c)
		if p == -1 {
			return false
		}
	}
	return r.IsAccept(p)
}
