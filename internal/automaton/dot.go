package automaton

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT prints a Graphviz view of the reachable part of a to w. Edges
// sharing endpoints are merged into one comma-labelled edge. Machine outputs
// follow a slash: "q0/y1" for Moore states, "x/y1" for Mealy edges.
func WriteDOT(w io.Writer, a *Automaton) error {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("    rankdir=LR;\n")

	order := a.Reachable()
	for _, id := range order {
		shape := "circle"
		if a.IsFinal(id) {
			shape = "doublecircle"
		}
		if out := a.Output(id); out != "" {
			fmt.Fprintf(&b, "    %q [shape=%s, label=%q];\n", a.Name(id), shape, a.Name(id)+"/"+out)
			continue
		}
		fmt.Fprintf(&b, "    %q [shape=%s];\n", a.Name(id), shape)
	}
	for _, id := range order {
		labels := make(map[StateID][]string)
		var targets []StateID
		for _, sym := range append(a.Symbols(id), Epsilon) {
			for _, t := range a.get(id).trans[sym] {
				if _, ok := labels[t]; !ok {
					targets = append(targets, t)
				}
				label := string(sym)
				if out, ok := a.get(id).emit[sym]; ok {
					label += "/" + out
				}
				labels[t] = append(labels[t], label)
			}
		}
		for _, t := range targets {
			fmt.Fprintf(&b, "    %q -> %q [label=%q];\n", a.Name(id), a.Name(t), strings.Join(labels[t], ","))
		}
	}
	if a.Start() != NoState {
		fmt.Fprintf(&b, "    _start [shape=point]; _start -> %q;\n", a.Name(a.Start()))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
