package automaton

import (
	"fmt"
	"slices"
	"sync/atomic"
)

// State is an atomic state label.
type State string

// Symbol is an input symbol.
type Symbol string

// Epsilon labels a move that consumes no input. It is only ever a key of a
// transition row and never a member of an alphabet.
const Epsilon Symbol = "ε"

// FiniteAutomaton is the 5-tuple (Q, Σ, δ, q0, F). Every state is a
// StateSet: a nondeterministic automaton uses singletons, a determinized one
// uses the sets built by the subset construction.
//
// The tuple is held in an immutable snapshot. Determinize and Minimize build
// a complete new snapshot and publish it with a single pointer swap, so a
// reader sees either the old automaton or the new one, never a mix.
type FiniteAutomaton struct {
	def atomic.Pointer[definition]
}

type definition struct {
	states      []StateSet
	alphabet    []Symbol
	transitions *TransitionTable
	initState   StateSet
	finalStates []StateSet

	declared *HashMap[struct{}]
	final    *HashMap[struct{}]
}

// NewFiniteAutomaton builds an automaton from its five components. The
// arguments are copied. It fails with ErrEpsilonInAlphabet if the alphabet
// holds Epsilon and with ErrUndefinedState if a state is empty, if the
// initial state, a final state or a transition source is not one of states,
// or if a transition destination is neither one of states nor a set of
// declared singleton states. Epsilon moves may only leave single states;
// one leaving a composite state fails with ErrCompositeEpsilon.
func NewFiniteAutomaton(states []StateSet, alphabet []Symbol, transitions *TransitionTable, initState StateSet, finalStates []StateSet) (*FiniteAutomaton, error) {
	def, err := newDefinition(states, alphabet, transitions.Clone(), initState, finalStates)
	if err != nil {
		return nil, err
	}
	a := &FiniteAutomaton{}
	a.def.Store(def)
	return a, nil
}

func newDefinition(states []StateSet, alphabet []Symbol, transitions *TransitionTable, initState StateSet, finalStates []StateSet) (*definition, error) {
	def := &definition{
		transitions: transitions,
		initState:   initState,
		declared:    NewHashMap[struct{}](WithCapacity(len(states))),
		final:       NewHashMap[struct{}](WithCapacity(len(finalStates))),
	}

	def.alphabet = slices.Clone(alphabet)
	slices.Sort(def.alphabet)
	def.alphabet = slices.Compact(def.alphabet)
	if slices.Contains(def.alphabet, Epsilon) {
		return nil, ErrEpsilonInAlphabet
	}

	for _, s := range states {
		if s.IsEmpty() {
			return nil, fmt.Errorf("empty state set: %w", ErrUndefinedState)
		}
		if def.declared.Contains(s) {
			continue
		}
		def.declared.Set(s, struct{}{})
		def.states = append(def.states, s)
	}
	sortStateSets(def.states)

	if !def.declared.Contains(initState) {
		return nil, fmt.Errorf("initial state %s: %w", initState, ErrUndefinedState)
	}
	for _, f := range finalStates {
		if !def.declared.Contains(f) {
			return nil, fmt.Errorf("final state %s: %w", f, ErrUndefinedState)
		}
		if def.final.Contains(f) {
			continue
		}
		def.final.Set(f, struct{}{})
		def.finalStates = append(def.finalStates, f)
	}
	sortStateSets(def.finalStates)

	for _, from := range transitions.Sources() {
		if !def.declared.Contains(from) {
			return nil, fmt.Errorf("transition source %s: %w", from, ErrUndefinedState)
		}
		for _, symbol := range transitions.Symbols(from) {
			to := transitions.Get(from, symbol)
			if symbol == Epsilon && from.Len() > 1 && !to.IsEmpty() {
				return nil, fmt.Errorf("transition %s -%s-> %s: %w", from, symbol, to, ErrCompositeEpsilon)
			}
			if !def.resolvable(to) {
				return nil, fmt.Errorf("transition %s -%s-> %s: %w", from, symbol, to, ErrUndefinedState)
			}
		}
	}
	return def, nil
}

func (a *FiniteAutomaton) snapshot() *definition {
	if def := a.def.Load(); def != nil {
		return def
	}
	return &definition{
		transitions: NewTransitionTable(),
		declared:    NewHashMap[struct{}](),
		final:       NewHashMap[struct{}](),
	}
}

// States returns Q in ascending order.
func (a *FiniteAutomaton) States() []StateSet {
	return slices.Clone(a.snapshot().states)
}

// Alphabet returns Σ in ascending order.
func (a *FiniteAutomaton) Alphabet() []Symbol {
	return slices.Clone(a.snapshot().alphabet)
}

// Transitions returns a copy of δ.
func (a *FiniteAutomaton) Transitions() *TransitionTable {
	return a.snapshot().transitions.Clone()
}

// InitState Returns q0.
func (a *FiniteAutomaton) InitState() StateSet {
	return a.snapshot().initState
}

// FinalStates returns F in ascending order.
func (a *FiniteAutomaton) FinalStates() []StateSet {
	return slices.Clone(a.snapshot().finalStates)
}

// IsFinal Returns true if s is an accept state.
func (a *FiniteAutomaton) IsFinal(s StateSet) bool {
	return a.snapshot().final.Contains(s)
}

// HasState Returns true if s is one of the declared states.
func (a *FiniteAutomaton) HasState(s StateSet) bool {
	return a.snapshot().declared.Contains(s)
}

// NumStates How many states this automaton has.
func (a *FiniteAutomaton) NumStates() int {
	return len(a.snapshot().states)
}

// Move returns δ(from, symbol), which is empty when no move is recorded.
func (a *FiniteAutomaton) Move(from StateSet, symbol Symbol) StateSet {
	return a.snapshot().transitions.Get(from, symbol)
}

func (d *definition) isFinal(s StateSet) bool {
	return d.final.Contains(s)
}

// atoms returns every atomic state that belongs to some declared state.
func (d *definition) atoms() StateSet {
	var atoms StateSet
	for _, s := range d.states {
		atoms = atoms.Union(s)
	}
	return atoms
}

// resolvable reports whether a transition destination names declared
// states: either the destination itself is a state, or each of its members
// is a declared singleton.
func (d *definition) resolvable(to StateSet) bool {
	if to.IsEmpty() || d.declared.Contains(to) {
		return true
	}
	for _, atom := range to.values {
		if !d.declared.Contains(NewStateSet(atom)) {
			return false
		}
	}
	return true
}

// resolve maps a transition destination to the states it denotes.
func (d *definition) resolve(to StateSet) []StateSet {
	if to.IsEmpty() {
		return nil
	}
	if d.declared.Contains(to) {
		return []StateSet{to}
	}
	out := make([]StateSet, 0, to.Len())
	for _, atom := range to.values {
		out = append(out, NewStateSet(atom))
	}
	return out
}
