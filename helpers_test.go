package automaton

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fixture struct {
	Name        string                         `yaml:"name"`
	Alphabet    []string                       `yaml:"alphabet"`
	States      []string                       `yaml:"states"`
	Start       string                         `yaml:"start"`
	Final       []string                       `yaml:"final"`
	Transitions map[string]map[string][]string `yaml:"transitions"`
	Accept      []string                       `yaml:"accept"`
	Reject      []string                       `yaml:"reject"`
}

func loadFixtures(t *testing.T) []fixture {
	t.Helper()
	data, err := os.ReadFile("testdata/automata.yaml")
	require.NoError(t, err)
	var fixtures []fixture
	require.NoError(t, yaml.Unmarshal(data, &fixtures))
	require.NotEmpty(t, fixtures)
	return fixtures
}

func loadFixture(t *testing.T, name string) fixture {
	t.Helper()
	for _, f := range loadFixtures(t) {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no fixture %q", name)
	return fixture{}
}

func (f fixture) build(t *testing.T) *FiniteAutomaton {
	t.Helper()
	states := make([]StateSet, len(f.States))
	for i, s := range f.States {
		states[i] = NewStateSet(State(s))
	}
	alphabet := make([]Symbol, len(f.Alphabet))
	for i, c := range f.Alphabet {
		alphabet[i] = Symbol(c)
	}
	finals := make([]StateSet, len(f.Final))
	for i, s := range f.Final {
		finals[i] = NewStateSet(State(s))
	}
	transitions := NewTransitionTable()
	for from, row := range f.Transitions {
		for symbol, to := range row {
			dest := make([]State, len(to))
			for i, s := range to {
				dest[i] = State(s)
			}
			transitions.Add(NewStateSet(State(from)), Symbol(symbol), dest...)
		}
	}
	a, err := NewFiniteAutomaton(states, alphabet, transitions, NewStateSet(State(f.Start)), finals)
	require.NoError(t, err)
	return a
}

// word splits s into one symbol per character.
func word(s string) []Symbol {
	out := make([]Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, Symbol(string(r)))
	}
	return out
}

// allWords returns every word over alphabet of length at most n.
func allWords(alphabet []Symbol, n int) [][]Symbol {
	words := [][]Symbol{{}}
	level := [][]Symbol{{}}
	for i := 0; i < n; i++ {
		var next [][]Symbol
		for _, w := range level {
			for _, c := range alphabet {
				next = append(next, append(w[:len(w):len(w)], c))
			}
		}
		words = append(words, next...)
		level = next
	}
	return words
}

// language returns the words of length at most n accepted by a.
func language(a *FiniteAutomaton, n int) map[string]bool {
	accepted := make(map[string]bool)
	for _, w := range allWords(a.Alphabet(), n) {
		if Run(a, w...) {
			accepted[wordString(w)] = true
		}
	}
	return accepted
}

func wordString(w []Symbol) string {
	s := ""
	for _, c := range w {
		s += string(c)
	}
	return s
}

func singletons(states ...State) []StateSet {
	out := make([]StateSet, len(states))
	for i, s := range states {
		out[i] = NewStateSet(s)
	}
	return out
}
