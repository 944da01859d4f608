package automaton

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Production is one right-hand side of a right-regular grammar: a terminal
// followed by a non-terminal (aB), a lone terminal (a), or the empty string
// (Terminal is Epsilon and NonTerminal is empty).
type Production struct {
	Terminal    Symbol
	NonTerminal string
}

// EpsilonProduction is the right-hand side ε.
var EpsilonProduction = Production{Terminal: Epsilon}

func (p Production) IsEpsilon() bool {
	return p.Terminal == Epsilon
}

func (p Production) String() string {
	if p.IsEpsilon() {
		return string(Epsilon)
	}
	return string(p.Terminal) + p.NonTerminal
}

func compareProductions(a, b Production) int {
	if c := cmp.Compare(a.Terminal, b.Terminal); c != 0 {
		return c
	}
	return cmp.Compare(a.NonTerminal, b.NonTerminal)
}

// RegularGrammar is the right-regular grammar (N, Σ, P, S).
type RegularGrammar struct {
	nonTerminals   []string
	terminals      []Symbol
	productions    map[string][]Production
	initProduction string
}

// NewRegularGrammar builds a grammar from its four components. The
// arguments are copied. Non-terminals that appear as keys of productions
// need not be repeated in nonTerminals.
func NewRegularGrammar(nonTerminals []string, terminals []Symbol, productions map[string][]Production, initProduction string) (*RegularGrammar, error) {
	g := &RegularGrammar{
		terminals:      slices.Clone(terminals),
		productions:    make(map[string][]Production, len(productions)),
		initProduction: initProduction,
	}

	slices.Sort(g.terminals)
	g.terminals = slices.Compact(g.terminals)
	if slices.Contains(g.terminals, Epsilon) {
		return nil, ErrEpsilonInAlphabet
	}

	g.nonTerminals = slices.Clone(nonTerminals)
	for nt := range productions {
		g.nonTerminals = append(g.nonTerminals, nt)
	}
	slices.Sort(g.nonTerminals)
	g.nonTerminals = slices.Compact(g.nonTerminals)

	if !g.isNonTerminal(initProduction) {
		return nil, fmt.Errorf("initial non-terminal %q: %w", initProduction, ErrUndefinedState)
	}

	for nt, rhs := range productions {
		ps := slices.Clone(rhs)
		for _, p := range ps {
			if err := g.check(nt, p); err != nil {
				return nil, err
			}
		}
		slices.SortFunc(ps, compareProductions)
		g.productions[nt] = slices.Compact(ps)
	}
	return g, nil
}

func (g *RegularGrammar) check(nt string, p Production) error {
	if p.IsEpsilon() {
		if p.NonTerminal != "" {
			return fmt.Errorf("production %s -> %s%s: %w", nt, Epsilon, p.NonTerminal, ErrEpsilonInAlphabet)
		}
		return nil
	}
	if _, ok := slices.BinarySearch(g.terminals, p.Terminal); !ok {
		return fmt.Errorf("production %s -> %s: %w", nt, p, ErrUndefinedSymbol)
	}
	if p.NonTerminal != "" && !g.isNonTerminal(p.NonTerminal) {
		return fmt.Errorf("production %s -> %s: %w", nt, p, ErrUndefinedState)
	}
	return nil
}

func (g *RegularGrammar) isNonTerminal(nt string) bool {
	_, ok := slices.BinarySearch(g.nonTerminals, nt)
	return ok
}

// NonTerminals returns N in ascending order.
func (g *RegularGrammar) NonTerminals() []string {
	return slices.Clone(g.nonTerminals)
}

// Terminals returns Σ in ascending order.
func (g *RegularGrammar) Terminals() []Symbol {
	return slices.Clone(g.terminals)
}

// Productions returns the right-hand sides of nt, ordered by terminal.
func (g *RegularGrammar) Productions(nt string) []Production {
	return slices.Clone(g.productions[nt])
}

func (g *RegularGrammar) InitProduction() string {
	return g.initProduction
}

// HasEpsilon reports whether nt -> ε is a production.
func (g *RegularGrammar) HasEpsilon(nt string) bool {
	return slices.Contains(g.productions[nt], EpsilonProduction)
}

func (g *RegularGrammar) String() string {
	var sb strings.Builder
	terminals := make([]string, len(g.terminals))
	for i, t := range g.terminals {
		terminals[i] = string(t)
	}
	fmt.Fprintf(&sb, "Non-terminals: %s\n", strings.Join(g.nonTerminals, ", "))
	fmt.Fprintf(&sb, "Terminals: %s\n", strings.Join(terminals, ", "))
	fmt.Fprintf(&sb, "Initial production: %s\n", g.initProduction)
	sb.WriteString("Grammar:")
	for _, nt := range g.nonTerminals {
		rhs := make([]string, len(g.productions[nt]))
		for i, p := range g.productions[nt] {
			rhs[i] = p.String()
		}
		fmt.Fprintf(&sb, "\n[%s] -> %s", nt, strings.Join(rhs, " | "))
	}
	return sb.String()
}
