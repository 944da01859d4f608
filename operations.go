package automaton

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Determinize replaces a with an equivalent deterministic automaton using
// the subset construction. Every state of the result is the Epsilon closure
// of a set of states of a, every (state, symbol) pair of the result has an
// entry, possibly the empty set, and only states reachable from the new
// initial state are kept. Applying it to an automaton that is already
// deterministic and has no Epsilon moves yields the same automaton.
//
// On error a is left unchanged.
func Determinize(a *FiniteAutomaton, opts ...Option) error {
	o := newOptions(opts...)
	def, err := determinize(a.snapshot(), o)
	if err != nil {
		return err
	}
	a.def.Store(def)
	return nil
}

func determinize(d *definition, o *options) (*definition, error) {
	idx, closures, err := d.epsilonClosures()
	if err != nil {
		return nil, err
	}

	// closeSet returns the union of the closures of the members of s.
	closeSet := func(s StateSet) (*bitset.BitSet, error) {
		b := bitset.New(idx.len())
		for _, atom := range s.values {
			i, ok := idx.index[atom]
			if !ok {
				return nil, fmt.Errorf("state %q: %w", atom, ErrUndefinedState)
			}
			b.InPlaceUnion(closures[i])
		}
		return b, nil
	}

	startBits, err := closeSet(d.initState)
	if err != nil {
		return nil, err
	}
	start := idx.stateSet(startBits)

	transitions := NewTransitionTable()
	opened := []StateSet{start}
	seen := NewHashMap[struct{}](WithCapacity(len(d.states)))
	seen.Set(start, struct{}{})
	closed := make([]StateSet, 0, len(d.states))

	for len(opened) > 0 {
		s := opened[0]
		opened = opened[1:]
		closed = append(closed, s)
		if len(closed) > o.workLimit {
			return nil, fmt.Errorf("more than %d states: %w", o.workLimit, ErrTooComplexToDeterminize)
		}

		known := d.transitions.Has(s)
		for _, c := range d.alphabet {
			var dest *bitset.BitSet
			if known {
				if dest, err = closeSet(d.transitions.Get(s, c)); err != nil {
					return nil, err
				}
			} else {
				dest = bitset.New(idx.len())
				for _, atom := range s.values {
					b, err := closeSet(d.transitions.Get(NewStateSet(atom), c))
					if err != nil {
						return nil, err
					}
					dest.InPlaceUnion(b)
				}
			}

			to := idx.stateSet(dest)
			transitions.Set(s, c, to)
			if !to.IsEmpty() && !seen.Contains(to) {
				seen.Set(to, struct{}{})
				opened = append(opened, to)
			}
		}
	}

	finals, err := subsetFinals(d, idx, closed)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("determinized",
		"states_before", len(d.states),
		"states_after", len(closed),
		"final", len(finals))

	return newDefinition(closed, d.alphabet, transitions, start, finals)
}

// subsetFinals returns the members of states that contain a final state of
// d. For an automaton whose final states are singletons this is the usual
// "shares a final state" rule, and for one that is already determinized it
// keeps the finality of each state as it was.
func subsetFinals(d *definition, idx *atomIndex, states []StateSet) ([]StateSet, error) {
	finalBits := make([]*bitset.BitSet, 0, len(d.finalStates))
	for _, f := range d.finalStates {
		b, err := idx.bits(f)
		if err != nil {
			return nil, err
		}
		finalBits = append(finalBits, b)
	}

	var finals []StateSet
	for _, s := range states {
		b, err := idx.bits(s)
		if err != nil {
			return nil, err
		}
		for _, f := range finalBits {
			if b.IsSuperSet(f) {
				finals = append(finals, s)
				break
			}
		}
	}
	return finals, nil
}

// IsDeterministic reports whether a has no Epsilon moves and every move
// leads to at most one state.
func IsDeterministic(a *FiniteAutomaton) bool {
	d := a.snapshot()
	for _, from := range d.transitions.Sources() {
		for _, symbol := range d.transitions.Symbols(from) {
			to := d.transitions.Get(from, symbol)
			if to.IsEmpty() {
				continue
			}
			if symbol == Epsilon || len(d.resolve(to)) > 1 {
				return false
			}
		}
	}
	return true
}

// IsEmpty reports whether a accepts no word at all.
func IsEmpty(a *FiniteAutomaton) bool {
	d := a.snapshot()
	if len(d.states) == 0 {
		return true
	}
	symbols := append(d.alphabet[:len(d.alphabet):len(d.alphabet)], Epsilon)
	reachable := d.reachable(symbols)
	for i, s := range d.states {
		if reachable.Test(uint(i)) && d.isFinal(s) {
			return false
		}
	}
	return true
}

// positions maps every state of d to its index in d.states.
func (d *definition) positions() *HashMap[int] {
	position := NewHashMap[int](WithCapacity(len(d.states)))
	for i, s := range d.states {
		position.Set(s, i)
	}
	return position
}

// reachable marks, by position in d.states, the states reachable from the
// initial state through moves on the given symbols.
func (d *definition) reachable(symbols []Symbol) *bitset.BitSet {
	position := d.positions()

	live := bitset.New(uint(len(d.states)))
	start, ok := position.Get(d.initState)
	if !ok {
		return live
	}
	live.Set(uint(start))
	workList := []StateSet{d.initState}

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for _, c := range symbols {
			for _, next := range d.resolve(d.transitions.Get(s, c)) {
				i, ok := position.Get(next)
				if !ok || live.Test(uint(i)) {
					continue
				}
				live.Set(uint(i))
				workList = append(workList, next)
			}
		}
	}
	return live
}

// coreachable marks, by position in d.states, the states from which a final
// state can be reached through moves on the given symbols.
func (d *definition) coreachable(symbols []Symbol) *bitset.BitSet {
	position := d.positions()

	// into[j] lists the states with a move to states[j].
	into := make([][]int, len(d.states))
	for i, s := range d.states {
		for _, c := range symbols {
			for _, next := range d.resolve(d.transitions.Get(s, c)) {
				if j, ok := position.Get(next); ok {
					into[j] = append(into[j], i)
				}
			}
		}
	}

	live := bitset.New(uint(len(d.states)))
	var workList []int
	for i, s := range d.states {
		if d.isFinal(s) {
			live.Set(uint(i))
			workList = append(workList, i)
		}
	}
	for len(workList) > 0 {
		j := workList[0]
		workList = workList[1:]
		for _, i := range into[j] {
			if !live.Test(uint(i)) {
				live.Set(uint(i))
				workList = append(workList, i)
			}
		}
	}
	return live
}

// removeDeadStates returns d restricted to its live states, those reachable
// from the initial state that can still reach a final state, together with
// the number of states dropped. Moves into dropped states become empty. When
// no final state is reachable only the initial state is kept.
func removeDeadStates(d *definition) (*definition, int, error) {
	live := d.reachable(d.alphabet).Intersection(d.coreachable(d.alphabet))
	if live.Count() == uint(len(d.states)) {
		return d, 0, nil
	}

	position := d.positions()
	if start, ok := position.Get(d.initState); ok && !live.Test(uint(start)) {
		live = bitset.New(uint(len(d.states))).Set(uint(start))
	}

	states := make([]StateSet, 0, live.Count())
	var finals []StateSet
	transitions := NewTransitionTable()
	for i, s := range d.states {
		if !live.Test(uint(i)) {
			continue
		}
		states = append(states, s)
		if d.isFinal(s) {
			finals = append(finals, s)
		}
		for _, c := range d.alphabet {
			to, ok := d.transitions.Lookup(s, c)
			if !ok {
				continue
			}
			var kept StateSet
			for _, next := range d.resolve(to) {
				if j, ok := position.Get(next); ok && live.Test(uint(j)) {
					kept = kept.Union(next)
				}
			}
			transitions.Set(s, c, kept)
		}
	}

	pruned, err := newDefinition(states, d.alphabet, transitions, d.initState, finals)
	if err != nil {
		return nil, 0, err
	}
	return pruned, len(d.states) - len(states), nil
}
