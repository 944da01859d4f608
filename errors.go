package automaton

import "errors"

var (
	// ErrUndefinedState is returned when a transition, the initial state, a
	// final state or a production names a state that was never declared.
	ErrUndefinedState = errors.New("undefined state")

	// ErrUndefinedSymbol is returned when a production or a word uses a
	// terminal that is not declared.
	ErrUndefinedSymbol = errors.New("undefined symbol")

	// ErrEpsilonInAlphabet is returned when Epsilon is declared as an input
	// symbol or grammar terminal.
	ErrEpsilonInAlphabet = errors.New("epsilon is not an alphabet symbol")

	// ErrCompositeEpsilon is returned when an Epsilon move leaves a state
	// made of several atomic states. Closures are computed per atomic state.
	ErrCompositeEpsilon = errors.New("epsilon move from a composite state")

	// ErrNonTerminatingRefinement means partition refinement ran for more
	// passes than there are states without reaching a fixed point.
	ErrNonTerminatingRefinement = errors.New("partition refinement did not converge")

	// ErrTooComplexToDeterminize is returned when the subset construction
	// creates more states than the configured work limit.
	ErrTooComplexToDeterminize = errors.New("automaton too complex to determinize")

	// ErrNonTerminalCollision is returned when two states of an automaton
	// map to the same grammar non-terminal.
	ErrNonTerminalCollision = errors.New("non-terminal name collision")

	// ErrNotDeterministic is returned by operations that need a
	// deterministic automaton without Epsilon moves.
	ErrNotDeterministic = errors.New("automaton is not deterministic")
)
