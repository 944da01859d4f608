package automaton

import (
	"fmt"
	"slices"
	"strconv"
)

// Automata builds small deterministic automata over a fixed alphabet.
type Automata struct {
	Alphabet []Symbol
}

var factoryInitial = NewStateSet("q0")

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language.
func (f *Automata) MakeEmpty() (*FiniteAutomaton, error) {
	return NewFiniteAutomaton([]StateSet{factoryInitial}, f.Alphabet, nil, factoryInitial, nil)
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (f *Automata) MakeEmptyString() (*FiniteAutomaton, error) {
	return NewFiniteAutomaton([]StateSet{factoryInitial}, f.Alphabet, nil, factoryInitial, []StateSet{factoryInitial})
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all strings over the
// alphabet: one accept state looping on every symbol.
func (f *Automata) MakeAnyString() (*FiniteAutomaton, error) {
	transitions := NewTransitionTable()
	for _, c := range f.Alphabet {
		transitions.Set(factoryInitial, c, factoryInitial)
	}
	return NewFiniteAutomaton([]StateSet{factoryInitial}, f.Alphabet, transitions, factoryInitial, []StateSet{factoryInitial})
}

// MakeString
// Returns a new (deterministic) automaton that accepts exactly word. Every
// symbol of word must belong to the alphabet.
func (f *Automata) MakeString(word ...Symbol) (*FiniteAutomaton, error) {
	states := []StateSet{factoryInitial}
	transitions := NewTransitionTable()
	for i, c := range word {
		if !slices.Contains(f.Alphabet, c) {
			return nil, fmt.Errorf("symbol %q: %w", c, ErrUndefinedSymbol)
		}
		next := NewStateSet(State("q" + strconv.Itoa(i+1)))
		transitions.Set(states[i], c, next)
		states = append(states, next)
	}
	last := states[len(states)-1]
	return NewFiniteAutomaton(states, f.Alphabet, transitions, factoryInitial, []StateSet{last})
}
