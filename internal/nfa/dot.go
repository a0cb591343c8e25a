package nfa

import (
	"fmt"
	"io"
	"strings"
)

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// WriteDot writes the automaton as a Graphviz digraph. The start state is
// drawn as an octagon and the accept state with a double border.
func (n *NFA) WriteDot(w io.Writer, graphName, graphTitle string) error {
	if _, err := fmt.Fprintf(w, "digraph %v {\n\trankdir=LR;\n", graphName); err != nil {
		return err
	}

	for i := range n.states {
		id := StateID(i)
		var shape string
		switch {
		case id == n.start && id == n.accept:
			shape = "doubleoctagon"
		case id == n.start:
			shape = "octagon"
		case id == n.accept:
			shape = "doublecircle"
		default:
			shape = "ellipse"
		}
		if _, err := fmt.Fprintf(w, "\ts%d [shape=%s];\n", id, shape); err != nil {
			return err
		}
	}

	for i := range n.states {
		st := &n.states[i]
		for _, to := range [...]StateID{st.Edge1, st.Edge2} {
			if to == NoState {
				continue
			}
			label := dotEscaper.Replace(st.Label.String())
			if _, err := fmt.Fprintf(w, "\ts%d -> s%d [label=\"%s\"];\n", i, to, label); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "\tlabelloc=\"t\";\n\tlabel=\"%v: %v\";\n}\n", graphName, dotEscaper.Replace(graphTitle))
	return err
}
