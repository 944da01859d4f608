package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomatonToGrammar(t *testing.T) {
	a := loadFixture(t, "missing-move").build(t)

	g, err := AutomatonToGrammar(a)
	require.NoError(t, err)

	assert.Equal(t, []string{"P", "Q"}, g.NonTerminals())
	assert.Equal(t, []Symbol{"a", "b"}, g.Terminals())
	assert.Equal(t, "P", g.InitProduction())
	assert.Equal(t, []Production{{Terminal: "a"}, {Terminal: "a", NonTerminal: "Q"}}, g.Productions("P"))
	assert.Equal(t, []Production{
		{Terminal: "a"},
		{Terminal: "a", NonTerminal: "Q"},
		{Terminal: "b", NonTerminal: "P"},
		EpsilonProduction,
	}, g.Productions("Q"))
	assert.False(t, g.HasEpsilon("P"))
	assert.True(t, g.HasEpsilon("Q"))
}

func TestAutomatonToGrammarComposite(t *testing.T) {
	a := loadFixture(t, "nondeterministic").build(t)
	require.NoError(t, Determinize(a))

	g, err := AutomatonToGrammar(a)
	require.NoError(t, err)
	assert.Equal(t, "S", g.InitProduction())
	assert.Contains(t, g.NonTerminals(), "A,C,D")
	assert.Contains(t, g.Productions("S"), Production{Terminal: "a", NonTerminal: "A,C,D"})
	assert.Contains(t, g.Productions("S"), Production{Terminal: "a"})
}

func TestAutomatonToGrammarErrors(t *testing.T) {
	t.Run("collision", func(t *testing.T) {
		transitions := NewTransitionTable()
		transitions.Add(NewStateSet("a"), "x", "A")
		a, err := NewFiniteAutomaton(singletons("a", "A"), []Symbol{"x"}, transitions, NewStateSet("a"), singletons("A"))
		require.NoError(t, err)

		_, err = AutomatonToGrammar(a)
		assert.ErrorIs(t, err, ErrNonTerminalCollision)
	})

	t.Run("epsilon moves", func(t *testing.T) {
		a := loadFixture(t, "epsilon-nfa").build(t)

		_, err := AutomatonToGrammar(a)
		assert.ErrorIs(t, err, ErrNotDeterministic)
	})
}

func TestGrammarToAutomaton(t *testing.T) {
	tests := []struct {
		name         string
		nonTerminals []string
		productions  map[string][]Production
		accept       []string
		reject       []string
		states       int
	}{
		{
			name: "a star b",
			productions: map[string][]Production{
				"S": {{Terminal: "a", NonTerminal: "S"}, {Terminal: "b"}},
			},
			accept: []string{"b", "ab", "aaab"},
			reject: []string{"", "a", "ba", "bb"},
			states: 2,
		},
		{
			name:         "dead non-terminal",
			nonTerminals: []string{"D"},
			productions: map[string][]Production{
				"S": {{Terminal: "a", NonTerminal: "S"}, {Terminal: "a", NonTerminal: "D"}, {Terminal: "b"}},
			},
			accept: []string{"b", "ab", "aab"},
			reject: []string{"", "a", "aa", "bb"},
			states: 3,
		},
		{
			name: "terminal covered by final successor",
			productions: map[string][]Production{
				"S": {{Terminal: "a", NonTerminal: "A"}, {Terminal: "a"}},
				"A": {{Terminal: "b", NonTerminal: "S"}, EpsilonProduction},
			},
			accept: []string{"a", "aba", "ababa"},
			reject: []string{"", "b", "ab", "aa"},
			states: 2,
		},
		{
			name: "epsilon start",
			productions: map[string][]Production{
				"S": {EpsilonProduction, {Terminal: "a", NonTerminal: "S"}},
			},
			accept: []string{"", "a", "aaa"},
			reject: []string{"b", "ab"},
			states: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewRegularGrammar(tt.nonTerminals, []Symbol{"a", "b"}, tt.productions, "S")
			require.NoError(t, err)

			a, err := GrammarToAutomaton(g)
			require.NoError(t, err)
			assert.Equal(t, tt.states, a.NumStates())
			assert.Equal(t, NewStateSet("s"), a.InitState())
			for _, w := range tt.accept {
				assert.Truef(t, Run(a, word(w)...), "word %q", w)
			}
			for _, w := range tt.reject {
				assert.Falsef(t, Run(a, word(w)...), "word %q", w)
			}
		})
	}
}

func TestGrammarToAutomatonDeadState(t *testing.T) {
	g, err := NewRegularGrammar([]string{"D"}, []Symbol{"a", "b"}, map[string][]Production{
		"S": {{Terminal: "a", NonTerminal: "D"}},
	}, "S")
	require.NoError(t, err)

	a, err := GrammarToAutomaton(g)
	require.NoError(t, err)
	dead := NewStateSet("d")
	require.True(t, a.HasState(dead))
	_, recorded := a.Transitions().Lookup(dead, "a")
	assert.True(t, recorded)
	assert.True(t, a.Move(dead, "a").IsEmpty())
	assert.True(t, a.Move(dead, "b").IsEmpty())
	assert.True(t, IsEmpty(a))
}

func TestGrammarToAutomatonFreshAcceptState(t *testing.T) {
	g, err := NewRegularGrammar(nil, []Symbol{"a"}, map[string][]Production{
		"S":  {{Terminal: "a", NonTerminal: "QF"}},
		"QF": {{Terminal: "a"}},
	}, "S")
	require.NoError(t, err)

	a, err := GrammarToAutomaton(g)
	require.NoError(t, err)
	assert.True(t, a.HasState(NewStateSet("qf")))
	assert.True(t, a.HasState(NewStateSet("qf'")))
	assert.True(t, a.IsFinal(NewStateSet("qf'")))
	assert.False(t, a.IsFinal(NewStateSet("qf")))
	assert.True(t, Run(a, word("aa")...))
	assert.False(t, Run(a, word("a")...))
}

func TestGrammarToAutomatonCollision(t *testing.T) {
	g, err := NewRegularGrammar([]string{"a", "A"}, []Symbol{"x"}, nil, "A")
	require.NoError(t, err)

	_, err = GrammarToAutomaton(g)
	assert.ErrorIs(t, err, ErrNonTerminalCollision)
}

func TestGrammarRoundTrip(t *testing.T) {
	for _, f := range loadFixtures(t) {
		t.Run(f.Name, func(t *testing.T) {
			a := f.build(t)
			want := language(a, 6)
			require.NoError(t, Determinize(a))

			g, err := AutomatonToGrammar(a)
			require.NoError(t, err)
			back, err := GrammarToAutomaton(g)
			require.NoError(t, err)

			assert.True(t, IsDeterministic(back))
			assert.Equal(t, want, language(back, 6))
			assert.Equal(t, a.NumStates(), back.NumStates())
		})
	}
}

func TestGrammarRoundTripAnyString(t *testing.T) {
	factory := &Automata{Alphabet: []Symbol{"a", "b"}}
	a, err := factory.MakeAnyString()
	require.NoError(t, err)

	g, err := AutomatonToGrammar(a)
	require.NoError(t, err)
	assert.Equal(t, []Production{
		{Terminal: "a"},
		{Terminal: "a", NonTerminal: "Q0"},
		{Terminal: "b"},
		{Terminal: "b", NonTerminal: "Q0"},
		EpsilonProduction,
	}, g.Productions("Q0"))

	back, err := GrammarToAutomaton(g)
	require.NoError(t, err)
	assert.Equal(t, 1, back.NumStates())
	for _, w := range allWords(back.Alphabet(), 4) {
		assert.Truef(t, Run(back, w...), "word %q", wordString(w))
	}
}
