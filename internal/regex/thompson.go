package regex

import (
	"fmt"

	"automata/internal/automaton"
)

type fragment struct {
	start, accept automaton.StateID
}

// Build compiles a syntax tree into an epsilon-NFA by Thompson's construction.
// The result has exactly one final state, its Accept state.
func Build(root *Node) *automaton.Automaton {
	a := automaton.New()
	f := build(a, root)
	a.SetStart(f.start)
	a.SetAccept(f.accept)
	return a
}

// Compile parses pattern and builds its NFA. No automaton is created when the
// pattern does not parse.
func Compile(pattern string) (*automaton.Automaton, error) {
	root, err := Parse(pattern)
	if err != nil {
		return nil, err
	}
	return Build(root), nil
}

func build(a *automaton.Automaton, n *Node) fragment {
	switch n.Kind {
	case Literal:
		s, t := a.NewState(), a.NewState()
		a.AddTransition(s, n.Sym, t)
		return fragment{s, t}
	case Sequence:
		l := build(a, n.Left)
		r := build(a, n.Right)
		a.AddEpsilon(l.accept, r.start)
		return fragment{l.start, r.accept}
	case Choice:
		s := a.NewState()
		l := build(a, n.Left)
		r := build(a, n.Right)
		t := a.NewState()
		a.AddEpsilon(s, l.start)
		a.AddEpsilon(s, r.start)
		a.AddEpsilon(l.accept, t)
		a.AddEpsilon(r.accept, t)
		return fragment{s, t}
	case Star, Plus, Optional:
		s := a.NewState()
		x := build(a, n.Left)
		t := a.NewState()
		a.AddEpsilon(s, x.start)
		if n.Kind != Plus {
			a.AddEpsilon(s, t)
		}
		if n.Kind != Optional {
			a.AddEpsilon(x.accept, x.start)
		}
		a.AddEpsilon(x.accept, t)
		return fragment{s, t}
	}
	panic(fmt.Sprintf("regex: unknown node kind %d", n.Kind))
}
