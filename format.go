package automaton

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Render writes a human readable description of a to w: the components
// followed by the transition table. The initial state is marked with "->"
// and final states with "*".
func (a *FiniteAutomaton) Render(w io.Writer) error {
	d := a.snapshot()

	alphabet := make([]string, len(d.alphabet))
	for i, c := range d.alphabet {
		alphabet[i] = string(c)
	}
	if _, err := fmt.Fprintf(w, "States: %s\nAlphabet: %s\nInitial state: %s\nFinal states: %s\n",
		joinStateSets(d.states), strings.Join(alphabet, ", "), d.initState, joinStateSets(d.finalStates)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("From", "Symbol", "To")
	for _, s := range d.states {
		from := s.String()
		if d.isFinal(s) {
			from = "*" + from
		}
		if s.Equals(d.initState) {
			from = "->" + from
		}
		for _, c := range d.transitions.Symbols(s) {
			if err := table.Append([]string{from, string(c), d.transitions.Get(s, c).String()}); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

func (a *FiniteAutomaton) String() string {
	var sb strings.Builder
	if err := a.Render(&sb); err != nil {
		return fmt.Sprintf("automaton: %v", err)
	}
	return sb.String()
}

func joinStateSets(sets []StateSet) string {
	out := make([]string, len(sets))
	for i, s := range sets {
		out[i] = s.String()
	}
	return strings.Join(out, ", ")
}
