package automaton

import (
	"fmt"
	"strings"
)

// acceptStateName names the state that GrammarToAutomaton adds for
// productions B -> a that have no successor.
const acceptStateName = State("qf")

// NonTerminalName returns the grammar variable of a state: its members,
// upper-cased and joined with commas.
func NonTerminalName(s StateSet) string {
	return strings.ToUpper(s.Key())
}

// AutomatonToGrammar returns the right-regular grammar of a. For every state
// S there is a non-terminal N(S); every non-empty move S -a-> D gives
// N(S) -> a N(D), plus N(S) -> a when D is final; every final S gives
// N(S) -> ε. Moves to the empty set give no production. The start symbol is
// the non-terminal of the initial state. Automata with Epsilon moves have no
// such grammar and return ErrNotDeterministic; determinize them first.
func AutomatonToGrammar(a *FiniteAutomaton) (*RegularGrammar, error) {
	d := a.snapshot()
	for _, s := range d.states {
		if !d.transitions.Get(s, Epsilon).IsEmpty() {
			return nil, fmt.Errorf("state %s has an epsilon move: %w", s, ErrNotDeterministic)
		}
	}

	owner := make(map[string]StateSet, len(d.states))
	nonTerminals := make([]string, 0, len(d.states))
	for _, s := range d.states {
		nt := NonTerminalName(s)
		if other, ok := owner[nt]; ok {
			return nil, fmt.Errorf("states %s and %s are both %q: %w", other, s, nt, ErrNonTerminalCollision)
		}
		owner[nt] = s
		nonTerminals = append(nonTerminals, nt)
	}

	productions := make(map[string][]Production, len(d.states))
	for _, s := range d.states {
		nt := NonTerminalName(s)
		rhs := make([]Production, 0, len(d.alphabet)+1)
		if d.isFinal(s) {
			rhs = append(rhs, EpsilonProduction)
		}
		for _, c := range d.alphabet {
			for _, next := range d.resolve(d.transitions.Get(s, c)) {
				rhs = append(rhs, Production{Terminal: c, NonTerminal: NonTerminalName(next)})
				if d.isFinal(next) {
					rhs = append(rhs, Production{Terminal: c})
				}
			}
		}
		productions[nt] = rhs
	}

	return NewRegularGrammar(nonTerminals, d.alphabet, productions, NonTerminalName(d.initState))
}

// GrammarToAutomaton returns an automaton accepting the language of g. Each
// non-terminal P becomes the state lower(P); B -> aA adds lower(A) to the
// move of lower(B) on a; B -> ε makes lower(B) final. A production B -> a is
// already covered when some B -> aA has A -> ε; otherwise the move of
// lower(B) on a also reaches a shared final state without moves. A
// non-terminal with no productions becomes a state whose every move is
// empty.
//
// For grammars built by AutomatonToGrammar from a deterministic automaton
// the result is deterministic; other grammars may give a nondeterministic
// automaton, which Determinize accepts.
func GrammarToAutomaton(g *RegularGrammar) (*FiniteAutomaton, error) {
	stateOf := make(map[string]State, len(g.nonTerminals))
	taken := make(map[State]string, len(g.nonTerminals))
	for _, nt := range g.nonTerminals {
		s := State(strings.ToLower(nt))
		if other, ok := taken[s]; ok {
			return nil, fmt.Errorf("non-terminals %q and %q are both state %q: %w", other, nt, s, ErrNonTerminalCollision)
		}
		taken[s] = nt
		stateOf[nt] = s
	}

	accept := acceptStateName
	for {
		if _, ok := taken[accept]; !ok {
			break
		}
		accept += "'"
	}

	states := make([]StateSet, 0, len(g.nonTerminals)+1)
	var finals []StateSet
	transitions := NewTransitionTable()
	needAccept := false

	for _, nt := range g.nonTerminals {
		from := NewStateSet(stateOf[nt])
		states = append(states, from)

		rhs := g.productions[nt]
		if len(rhs) == 0 {
			for _, c := range g.terminals {
				transitions.Set(from, c, StateSet{})
			}
			continue
		}

		for _, p := range rhs {
			switch {
			case p.IsEpsilon():
				finals = append(finals, from)
			case p.NonTerminal != "":
				transitions.Add(from, p.Terminal, stateOf[p.NonTerminal])
			}
		}
		for _, p := range rhs {
			if p.IsEpsilon() || p.NonTerminal != "" || g.acceptsAfter(rhs, p.Terminal) {
				continue
			}
			transitions.Add(from, p.Terminal, accept)
			needAccept = true
		}
	}

	if needAccept {
		qf := NewStateSet(accept)
		states = append(states, qf)
		finals = append(finals, qf)
	}

	return NewFiniteAutomaton(states, g.terminals, transitions, NewStateSet(stateOf[g.initProduction]), finals)
}

// acceptsAfter reports whether one of rhs reads terminal and continues in a
// non-terminal that derives ε.
func (g *RegularGrammar) acceptsAfter(rhs []Production, terminal Symbol) bool {
	for _, p := range rhs {
		if p.Terminal == terminal && p.NonTerminal != "" && g.HasEpsilon(p.NonTerminal) {
			return true
		}
	}
	return false
}
