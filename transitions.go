package automaton

import "slices"

// TransitionTable maps (state, symbol) pairs to the set of destination
// states. It is total: a pair without an entry moves to the empty set.
type TransitionTable struct {
	rows *HashMap[map[Symbol]StateSet]
}

func NewTransitionTable() *TransitionTable {
	return &TransitionTable{rows: NewHashMap[map[Symbol]StateSet](WithCapacity(8))}
}

// Add adds the given destinations to the move of from on symbol.
func (t *TransitionTable) Add(from StateSet, symbol Symbol, to ...State) {
	row := t.row(from)
	row[symbol] = row[symbol].Union(NewStateSet(to...))
}

// Set replaces the move of from on symbol. An empty to is stored as an
// explicit entry, which keeps from listed as a source.
func (t *TransitionTable) Set(from StateSet, symbol Symbol, to StateSet) {
	t.row(from)[symbol] = to
}

func (t *TransitionTable) row(from StateSet) map[Symbol]StateSet {
	row, ok := t.rows.Get(from)
	if !ok {
		row = make(map[Symbol]StateSet)
		t.rows.Set(from, row)
	}
	return row
}

// Get returns the destinations of from on symbol, or the empty set.
func (t *TransitionTable) Get(from StateSet, symbol Symbol) StateSet {
	if t == nil {
		return StateSet{}
	}
	row, ok := t.rows.Get(from)
	if !ok {
		return StateSet{}
	}
	return row[symbol]
}

// Has reports whether from has a row, even one whose moves are all empty.
func (t *TransitionTable) Has(from StateSet) bool {
	return t != nil && t.rows.Contains(from)
}

// Lookup is Get with an indication of whether the entry was recorded.
func (t *TransitionTable) Lookup(from StateSet, symbol Symbol) (StateSet, bool) {
	if t == nil {
		return StateSet{}, false
	}
	row, ok := t.rows.Get(from)
	if !ok {
		return StateSet{}, false
	}
	to, ok := row[symbol]
	return to, ok
}

// Sources returns every state with a row, in ascending order.
func (t *TransitionTable) Sources() []StateSet {
	if t == nil {
		return nil
	}
	sources := make([]StateSet, 0, t.rows.Size())
	for key := range t.rows.Iterator() {
		sources = append(sources, key.(StateSet))
	}
	sortStateSets(sources)
	return sources
}

// Symbols returns the symbols recorded for from, in ascending order.
// Explicit empty entries are included.
func (t *TransitionTable) Symbols(from StateSet) []Symbol {
	if t == nil {
		return nil
	}
	row, _ := t.rows.Get(from)
	symbols := make([]Symbol, 0, len(row))
	for symbol := range row {
		symbols = append(symbols, symbol)
	}
	slices.Sort(symbols)
	return symbols
}

func (t *TransitionTable) Len() int {
	if t == nil {
		return 0
	}
	return t.rows.Size()
}

func (t *TransitionTable) Clone() *TransitionTable {
	c := NewTransitionTable()
	if t == nil {
		return c
	}
	for key, row := range t.rows.Iterator() {
		dup := make(map[Symbol]StateSet, len(row))
		for symbol, to := range row {
			dup[symbol] = to
		}
		c.rows.Set(key, dup)
	}
	return c
}
