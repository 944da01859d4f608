package automaton

import "slices"

// Run reports whether a accepts word. It simulates every path at once, so it
// works on nondeterministic automata with Epsilon moves as well as on
// determinized ones. Symbols outside the alphabet are rejected.
func Run(a *FiniteAutomaton, word ...Symbol) bool {
	d := a.snapshot()
	if len(d.states) == 0 {
		return false
	}

	current := d.epsilonReach([]StateSet{d.initState})
	for _, c := range word {
		if _, ok := slices.BinarySearch(d.alphabet, c); !ok {
			return false
		}
		var next []StateSet
		for _, s := range current {
			next = append(next, d.resolve(d.transitions.Get(s, c))...)
		}
		current = d.epsilonReach(next)
		if len(current) == 0 {
			return false
		}
	}

	for _, s := range current {
		if d.isFinal(s) {
			return true
		}
	}
	return false
}

// epsilonReach returns the distinct states reachable from from through
// Epsilon moves, from included.
func (d *definition) epsilonReach(from []StateSet) []StateSet {
	seen := NewHashMap[struct{}](WithCapacity(len(from)))
	out := make([]StateSet, 0, len(from))
	workList := slices.Clone(from)
	for len(workList) > 0 {
		s := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		if seen.Contains(s) {
			continue
		}
		seen.Set(s, struct{}{})
		out = append(out, s)
		workList = append(workList, d.resolve(d.transitions.Get(s, Epsilon))...)
	}
	return out
}
