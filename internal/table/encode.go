package table

import (
	"fmt"
	"sort"
	"strings"

	"automata/internal/automaton"
)

type encoder struct {
	sentinel string
	order    []automaton.StateID
}

// Option configures Encode.
type Option func(*encoder)

// WithSentinel sets the cell written for an absent transition: "-" or "".
// Decode reads both.
func WithSentinel(s string) Option { return func(e *encoder) { e.sentinel = s } }

// WithOrder sets the column order. States missing from order are not written.
func WithOrder(order []automaton.StateID) Option {
	return func(e *encoder) { e.order = order }
}

// CheckSentinel rejects absent-transition cells that Decode would not read
// back as "no transition".
func CheckSentinel(s string) error {
	if s != NoTransition && s != "" {
		return fmt.Errorf("%w: sentinel %q must be %q or empty", ErrTableFormat, s, NoTransition)
	}
	return nil
}

// Encode renders a into a grid: finality row, name row, one row per alphabet
// symbol and, for automata with epsilon transitions, a trailing epsilon row.
// By default only states reachable from the start state are written, start
// first.
//
// Without epsilon transitions, symbols such as "e" are written as ordinary
// rows; Decode reads such a row back as the epsilon row.
func Encode(a *automaton.Automaton, opts ...Option) (Grid, error) {
	return encode(a, acceptorLayout, opts)
}

// EncodeMoore renders a Moore machine: output row, name row, one row per
// input symbol.
func EncodeMoore(m *automaton.Automaton, opts ...Option) (Grid, error) {
	return encode(m, mooreLayout, opts)
}

// EncodeMealy renders a Mealy machine: name row, then one row per input
// symbol with "target/output" cells.
func EncodeMealy(m *automaton.Automaton, opts ...Option) (Grid, error) {
	return encode(m, mealyLayout, opts)
}

func encode(a *automaton.Automaton, l layout, opts []Option) (Grid, error) {
	e := &encoder{sentinel: NoTransition}
	for _, opt := range opts {
		opt(e)
	}
	if err := CheckSentinel(e.sentinel); err != nil {
		return nil, err
	}
	if !l.epsilon && !a.IsDeterministic() {
		return nil, fmt.Errorf("%w: machine tables hold one target per cell", automaton.ErrNondeterministic)
	}
	order := e.order
	if order == nil {
		order = a.Reachable()
	}
	if len(order) == 0 {
		return nil, &FormatError{Row: -1, Column: -1, Msg: "automaton has no states to write"}
	}

	written := make(map[automaton.StateID]bool, len(order))
	names := make(map[string]bool, len(order))
	markers := []string{""}
	header := []string{""}
	for _, id := range order {
		name := a.Name(id)
		if names[name] {
			return nil, &FormatError{Row: l.header, Column: -1, Msg: "duplicate state name " + name}
		}
		if !writable(name) || (l.mealy && strings.Contains(name, OutputSeparator)) {
			return nil, &FormatError{Row: l.header, Column: -1, Msg: "state name " + name + " cannot be written"}
		}
		names[name] = true
		written[id] = true
		header = append(header, name)
		switch {
		case l.epsilon && a.IsFinal(id):
			markers = append(markers, FinalMarker)
		case l.epsilon:
			markers = append(markers, "")
		default:
			out := a.Output(id)
			if strings.Contains(out, Delimiter) {
				return nil, fmt.Errorf("%w: output %q of %s contains %q", ErrTableFormat, out, name, Delimiter)
			}
			markers = append(markers, out)
		}
	}

	g := Grid{header}
	if l.header > 0 {
		g = Grid{markers, header}
	}
	hasEpsilons := a.HasEpsilons()
	for _, sym := range a.Alphabet() {
		if hasEpsilons && IsEpsilonLabel(string(sym)) {
			return nil, fmt.Errorf("%w: symbol %q would read back as the epsilon row", ErrTableFormat, sym)
		}
		if !writable(string(sym)) {
			return nil, fmt.Errorf("%w: symbol %q cannot be written as a row label", ErrTableFormat, sym)
		}
		row, err := e.row(a, l, string(sym), sym, order, written)
		if err != nil {
			return nil, err
		}
		g = append(g, row)
	}
	if hasEpsilons {
		row, err := e.row(a, l, EpsilonLabel, automaton.Epsilon, order, written)
		if err != nil {
			return nil, err
		}
		g = append(g, row)
	}
	return g, nil
}

func writable(s string) bool {
	return !strings.ContainsAny(s, Delimiter+",") && s != NoTransition
}

func (e *encoder) row(a *automaton.Automaton, l layout, label string, sym automaton.Symbol, order []automaton.StateID, written map[automaton.StateID]bool) ([]string, error) {
	row := []string{label}
	for _, id := range order {
		var names []string
		for _, t := range a.TransitionsOn(id, sym) {
			if !written[t] {
				return nil, fmt.Errorf("%w: %s -%s-> %s leaves the written states", ErrTableFormat, a.Name(id), sym, a.Name(t))
			}
			names = append(names, a.Name(t))
		}
		if len(names) == 0 {
			row = append(row, e.sentinel)
			continue
		}
		sort.Strings(names)
		cell := strings.Join(names, ",")
		if l.mealy {
			out := a.TransitionOutput(id, sym)
			if strings.Contains(out, Delimiter) {
				return nil, fmt.Errorf("%w: output %q on %s -%s-> contains %q", ErrTableFormat, out, a.Name(id), sym, Delimiter)
			}
			cell += OutputSeparator + out
		}
		row = append(row, cell)
	}
	return row, nil
}
