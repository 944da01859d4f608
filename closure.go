package automaton

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// atomIndex numbers the atomic states of an automaton so that sets of them
// can be held in bitsets.
type atomIndex struct {
	atoms []State
	index map[State]uint
}

func newAtomIndex(atoms StateSet) *atomIndex {
	x := &atomIndex{
		atoms: atoms.Members(),
		index: make(map[State]uint, atoms.Len()),
	}
	for i, atom := range x.atoms {
		x.index[atom] = uint(i)
	}
	return x
}

func (x *atomIndex) len() uint {
	return uint(len(x.atoms))
}

func (x *atomIndex) bits(s StateSet) (*bitset.BitSet, error) {
	b := bitset.New(x.len())
	for _, atom := range s.values {
		i, ok := x.index[atom]
		if !ok {
			return nil, fmt.Errorf("state %q: %w", atom, ErrUndefinedState)
		}
		b.Set(i)
	}
	return b, nil
}

func (x *atomIndex) stateSet(b *bitset.BitSet) StateSet {
	values := make([]State, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		values = append(values, x.atoms[i])
	}
	// atoms are sorted, so values are too
	return freeze(values)
}

// EpsilonClosure returns, for every atomic state of a, the set of states
// reachable from it through zero or more Epsilon moves. A state without an
// Epsilon entry has an empty Epsilon target set.
func EpsilonClosure(a *FiniteAutomaton) (map[State]StateSet, error) {
	idx, closures, err := a.snapshot().epsilonClosures()
	if err != nil {
		return nil, err
	}
	result := make(map[State]StateSet, len(closures))
	for i, c := range closures {
		result[idx.atoms[i]] = idx.stateSet(c)
	}
	return result, nil
}

// epsilonClosures computes the closure of every atom by fixed point
// iteration: start from the atom itself and union in the Epsilon targets of
// every member until a pass adds nothing.
func (d *definition) epsilonClosures() (*atomIndex, []*bitset.BitSet, error) {
	idx := newAtomIndex(d.atoms())
	n := idx.len()

	targets := make([]*bitset.BitSet, n)
	for i, atom := range idx.atoms {
		b, err := idx.bits(d.transitions.Get(NewStateSet(atom), Epsilon))
		if err != nil {
			return nil, nil, fmt.Errorf("epsilon move of %q: %w", atom, err)
		}
		targets[i] = b
	}

	closures := make([]*bitset.BitSet, n)
	for i := range closures {
		closure := bitset.New(n).Set(uint(i))
		for {
			previous := closure.Clone()
			for j, ok := previous.NextSet(0); ok; j, ok = previous.NextSet(j + 1) {
				closure.InPlaceUnion(targets[j])
			}
			if closure.Equal(previous) {
				break
			}
		}
		closures[i] = closure
	}
	return idx, closures, nil
}
