package table

import (
	"strconv"
	"strings"

	"automata/internal/automaton"
)

const (
	finalRow  = 0
	headerRow = 1

	// FinalMarker marks a final state in row 0.
	FinalMarker = "F"
	// NoTransition is the canonical empty-cell sentinel.
	NoTransition = "-"
	// EpsilonLabel labels the epsilon row on write.
	EpsilonLabel = "e"
	// OutputSeparator splits a Mealy cell into target state and output.
	OutputSeparator = "/"
)

// layout describes where a table keeps states, markers and outputs.
type layout struct {
	// header is the index of the state name row. Row 0 holds finality
	// markers or Moore outputs when header is 1.
	header int
	// epsilon allows one epsilon row and multi-target cells.
	epsilon bool
	// mark applies a row 0 cell to its state.
	mark func(a *automaton.Automaton, id automaton.StateID, cell string)
	// mealy cells read "target/output".
	mealy bool
}

var (
	acceptorLayout = layout{
		header:  headerRow,
		epsilon: true,
		mark: func(a *automaton.Automaton, id automaton.StateID, cell string) {
			if cell == FinalMarker {
				a.MarkFinal(id)
			}
		},
	}
	mooreLayout = layout{
		header: headerRow,
		mark:   (*automaton.Automaton).SetOutput,
	}
	mealyLayout = layout{mealy: true}
)

// IsEpsilonLabel reports whether a first-column cell names the epsilon row.
func IsEpsilonLabel(cell string) bool {
	return strings.EqualFold(cell, EpsilonLabel) || cell == string(automaton.Epsilon)
}

// Decode builds an automaton from a grid. The first named column is the start
// state. Every named column becomes one state, in column order.
func Decode(g Grid) (*automaton.Automaton, error) { return decode(g, acceptorLayout) }

// DecodeMoore reads a Moore machine: row 0 holds the output of each state,
// row 1 the state names, every further row one input symbol with a single
// target per cell.
func DecodeMoore(g Grid) (*automaton.Automaton, error) { return decode(g, mooreLayout) }

// DecodeMealy reads a Mealy machine: row 0 holds the state names, every
// further row one input symbol with "target/output" cells. A cell without a
// separator has an empty output.
func DecodeMealy(g Grid) (*automaton.Automaton, error) { return decode(g, mealyLayout) }

func decode(g Grid, l layout) (*automaton.Automaton, error) {
	if len(g) < l.header+1 {
		return nil, &FormatError{Row: -1, Column: -1, Msg: "missing state header row"}
	}
	width := len(g[l.header])
	if l.header > 0 && len(g[finalRow]) > width {
		return nil, &FormatError{Row: finalRow, Column: -1, Msg: "more markers than header columns"}
	}

	a := automaton.New()
	ids := make(map[string]automaton.StateID)
	columns := make(map[int]automaton.StateID)
	for col := 1; col < width; col++ {
		name := g[l.header][col]
		if name == "" {
			continue
		}
		if _, dup := ids[name]; dup {
			return nil, &FormatError{Row: l.header, Column: col, Msg: "duplicate state name " + name}
		}
		id := a.NewNamedState(name)
		ids[name] = id
		columns[col] = id
		if l.header > 0 && col < len(g[finalRow]) {
			l.mark(a, id, g[finalRow][col])
		}
	}
	if len(ids) == 0 {
		return nil, &FormatError{Row: l.header, Column: -1, Msg: "no state names"}
	}

	epsilonSeen := false
	symbols := make(map[string]int)
	for row := l.header + 1; row < len(g); row++ {
		cells := g[row]
		if len(cells) != width {
			return nil, &FormatError{Row: row, Column: -1, Msg: "column count differs from the state header"}
		}
		label := cells[0]
		sym := automaton.Symbol(label)
		switch {
		case label == "":
			return nil, &FormatError{Row: row, Column: 0, Msg: "missing transition symbol"}
		case l.epsilon && IsEpsilonLabel(label):
			if epsilonSeen {
				return nil, &FormatError{Row: row, Column: 0, Msg: "second epsilon row"}
			}
			epsilonSeen = true
			sym = automaton.Epsilon
		default:
			if prev, dup := symbols[label]; dup {
				return nil, &FormatError{Row: row, Column: 0, Msg: "symbol " + label + " already used in row " + strconv.Itoa(prev+1)}
			}
			symbols[label] = row
		}

		for col := 1; col < width; col++ {
			cell := cells[col]
			output, hasOutput := "", false
			if l.mealy {
				cell, output, hasOutput = strings.Cut(cell, OutputSeparator)
				cell = strings.TrimSpace(cell)
			}
			targets := splitCell(cell)
			from, named := columns[col]
			if !named {
				if len(targets) > 0 {
					return nil, &FormatError{Row: row, Column: col, Msg: "transition in a column without a state name"}
				}
				continue
			}
			if !l.epsilon && len(targets) > 1 {
				return nil, &FormatError{Row: row, Column: col, Msg: "machine cell lists several targets"}
			}
			if hasOutput && len(targets) == 0 {
				return nil, &FormatError{Row: row, Column: col, Msg: "output without a target state"}
			}
			for _, name := range targets {
				to, ok := ids[name]
				if !ok {
					return nil, &UnknownStateError{Row: row, Column: col, Name: name}
				}
				a.AddTransition(from, sym, to)
				if l.mealy {
					a.SetTransitionOutput(from, sym, strings.TrimSpace(output))
				}
			}
		}
	}
	return a, nil
}

// splitCell returns the state names listed in a cell; "" and "-" hold none.
func splitCell(cell string) []string {
	if cell == "" || cell == NoTransition {
		return nil
	}
	var out []string
	for _, part := range strings.Split(cell, ",") {
		if part = strings.TrimSpace(part); part != "" && part != NoTransition {
			out = append(out, part)
		}
	}
	return out
}
