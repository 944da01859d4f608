package automaton

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/bits-and-blooms/bitset"
)

// Minimize replaces a with the minimal deterministic automaton accepting the
// same language. The automaton is determinized first, states that cannot
// reach a final state are dropped, and the remaining states are merged by
// partition refinement until no block can be split any more. Each merged
// state is named after the smallest state of its block.
//
// On error a is left unchanged.
func Minimize(a *FiniteAutomaton, opts ...Option) error {
	o := newOptions(opts...)

	d, err := determinize(a.snapshot(), o)
	if err != nil {
		return err
	}
	// determinize only builds reachable states, so this drops the states
	// from which no final state can be reached.
	d, pruned, err := removeDeadStates(d)
	if err != nil {
		return err
	}
	if pruned > 0 {
		o.logger.Debug("removed dead states", "count", pruned)
	}

	d, err = minimize(d, o)
	if err != nil {
		return err
	}
	a.def.Store(d)
	return nil
}

// noBlock marks a move to the empty set. It only agrees with itself.
const noBlock = -1

func minimize(d *definition, o *options) (*definition, error) {
	n := len(d.states)
	position := NewHashMap[int](WithCapacity(n))
	for i, s := range d.states {
		position.Set(s, i)
	}

	// dest[i][k] is the position of δ(states[i], alphabet[k]), or noBlock.
	dest := make([][]int, n)
	final := bitset.New(uint(n))
	for i, s := range d.states {
		if d.isFinal(s) {
			final.Set(uint(i))
		}
		dest[i] = make([]int, len(d.alphabet))
		for k, c := range d.alphabet {
			to := d.transitions.Get(s, c)
			if to.IsEmpty() {
				dest[i][k] = noBlock
				continue
			}
			j, ok := position.Get(to)
			if !ok {
				return nil, fmt.Errorf("move %s -%s-> %s: %w", s, c, to, ErrUndefinedState)
			}
			dest[i][k] = j
		}
	}

	// The first partition separates final from non-final states. Blocks are
	// numbered in order of their first state, so an unchanged partition
	// yields an identical slice.
	initial := make([]int, n)
	for i := range initial {
		if final.Test(uint(i)) {
			initial[i] = 1
		}
	}
	block := renumber(n, func(i int) string { return strconv.Itoa(initial[i]) })

	passes := 0
	for {
		if passes > n {
			return nil, fmt.Errorf("%d passes over %d states: %w", passes, n, ErrNonTerminatingRefinement)
		}
		passes++
		next := refine(block, dest)
		if slices.Equal(next, block) {
			break
		}
		block = next
	}

	numBlocks := 0
	for _, b := range block {
		numBlocks = max(numBlocks, b+1)
	}
	members := make([]*bitset.BitSet, numBlocks)
	representative := make([]int, numBlocks)
	for i := n - 1; i >= 0; i-- {
		b := block[i]
		if members[b] == nil {
			members[b] = bitset.New(uint(n))
		}
		members[b].Set(uint(i))
		representative[b] = i
	}

	label := func(b int) StateSet {
		return d.states[representative[b]]
	}

	states := make([]StateSet, numBlocks)
	var finals []StateSet
	transitions := NewTransitionTable()
	for b := range numBlocks {
		states[b] = label(b)
		if final.IsSuperSet(members[b]) {
			finals = append(finals, states[b])
		}
		for k, c := range d.alphabet {
			j := dest[representative[b]][k]
			if j == noBlock {
				transitions.Set(states[b], c, StateSet{})
				continue
			}
			transitions.Set(states[b], c, label(block[j]))
		}
	}

	start, ok := position.Get(d.initState)
	if !ok {
		return nil, fmt.Errorf("initial state %s: %w", d.initState, ErrUndefinedState)
	}

	o.logger.Debug("minimized",
		"states_before", n,
		"states_after", numBlocks,
		"passes", passes)

	return newDefinition(states, d.alphabet, transitions, label(block[start]), finals)
}

// refine splits every block so that two states stay together only if, for
// every symbol, their moves lead into the same block of the current
// partition or both lead nowhere.
func refine(block []int, dest [][]int) []int {
	return renumber(len(block), func(i int) string {
		key := make([]byte, 0, 4*(len(dest[i])+1))
		key = strconv.AppendInt(key, int64(block[i]), 10)
		for _, j := range dest[i] {
			key = append(key, ',')
			if j == noBlock {
				key = strconv.AppendInt(key, noBlock, 10)
				continue
			}
			key = strconv.AppendInt(key, int64(block[j]), 10)
		}
		return string(key)
	})
}

// renumber gives states with equal signatures the same block number,
// numbering blocks in order of their first state.
func renumber(n int, signature func(i int) string) []int {
	ids := make(map[string]int)
	block := make([]int, n)
	for i := range block {
		sig := signature(i)
		id, ok := ids[sig]
		if !ok {
			id = len(ids)
			ids[sig] = id
		}
		block[i] = id
	}
	return block
}
