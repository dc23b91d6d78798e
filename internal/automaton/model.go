package automaton

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Symbol is an atomic input symbol.
type Symbol string

// Epsilon marks a transition that consumes no input.
const Epsilon Symbol = "ε"

// StateID addresses a state inside the automaton that created it.
type StateID int

// NoState is used where an automaton has no designated state (e.g. the accept
// state of a DFA).
const NoState StateID = -1

type state struct {
	name   string
	final  bool
	output string
	trans  map[Symbol][]StateID
	emit   map[Symbol]string
}

// Automaton is an arena of states connected by (possibly nondeterministic)
// transitions. States are addressed by StateID and never outlive the arena.
//
// An Automaton doubles as a Moore machine (one output per state) or a Mealy
// machine (one output per transition); acceptors leave every output empty.
type Automaton struct {
	states []*state
	start  StateID
	accept StateID
}

var fLogger logrus.FieldLogger = logrus.NewEntry(logrus.New())

// SetLogger configures a logrus.FieldLogger for the package.
func SetLogger(l logrus.FieldLogger) { fLogger = l }

// New returns an empty automaton.
func New() *Automaton {
	return &Automaton{start: NoState, accept: NoState}
}

// NewState allocates a non-final state without transitions. The first state
// allocated becomes the start state.
func (a *Automaton) NewState() StateID {
	return a.NewNamedState("")
}

// NewNamedState is NewState with a display name.
func (a *Automaton) NewNamedState(name string) StateID {
	id := StateID(len(a.states))
	a.states = append(a.states, &state{name: name, trans: make(map[Symbol][]StateID)})
	if a.start == NoState {
		a.start = id
	}
	return id
}

func (a *Automaton) get(id StateID) *state {
	if id < 0 || int(id) >= len(a.states) {
		panic(fmt.Sprintf("automaton: unknown state id %d", id))
	}
	return a.states[id]
}

// AddTransition appends to as a target of from on sym. Adding an existing
// target is a no-op.
func (a *Automaton) AddTransition(from StateID, sym Symbol, to StateID) {
	a.get(to)
	s := a.get(from)
	if slices.Contains(s.trans[sym], to) {
		return
	}
	s.trans[sym] = append(s.trans[sym], to)
}

// AddEpsilon appends an epsilon transition.
func (a *Automaton) AddEpsilon(from, to StateID) { a.AddTransition(from, Epsilon, to) }

// MarkFinal sets finality of a state.
func (a *Automaton) MarkFinal(id StateID) { a.get(id).final = true }

// IsFinal reports whether id is a final state.
func (a *Automaton) IsFinal(id StateID) bool { return a.get(id).final }

// TransitionsOn returns the targets of id on sym in insertion order.
func (a *Automaton) TransitionsOn(id StateID, sym Symbol) []StateID {
	return slices.Clone(a.get(id).trans[sym])
}

// Epsilons returns the epsilon targets of id.
func (a *Automaton) Epsilons(id StateID) []StateID { return a.TransitionsOn(id, Epsilon) }

// Symbols returns the sorted non-epsilon symbols id has transitions on.
func (a *Automaton) Symbols(id StateID) []Symbol {
	out := make([]Symbol, 0, len(a.get(id).trans))
	for _, sym := range sortedKeys(a.get(id).trans) {
		if sym != Epsilon {
			out = append(out, sym)
		}
	}
	return out
}

// HasEpsilons reports whether any state has an epsilon transition.
func (a *Automaton) HasEpsilons() bool {
	for _, s := range a.states {
		if len(s.trans[Epsilon]) > 0 {
			return true
		}
	}
	return false
}

// Alphabet returns every non-epsilon symbol used by any transition, sorted.
func (a *Automaton) Alphabet() []Symbol {
	set := make(map[Symbol]struct{})
	for _, s := range a.states {
		for sym := range s.trans {
			if sym != Epsilon {
				set[sym] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// Name returns the display name of id, or q<id> when unnamed.
func (a *Automaton) Name(id StateID) string {
	if n := a.get(id).name; n != "" {
		return n
	}
	return "q" + strconv.Itoa(int(id))
}

// SetOutput sets the Moore output of id.
func (a *Automaton) SetOutput(id StateID, out string) { a.get(id).output = out }

// Output returns the Moore output of id.
func (a *Automaton) Output(id StateID) string { return a.get(id).output }

// SetTransitionOutput sets the Mealy output of the transition of from on sym.
// The transition itself is added separately.
func (a *Automaton) SetTransitionOutput(from StateID, sym Symbol, out string) {
	s := a.get(from)
	if s.emit == nil {
		s.emit = make(map[Symbol]string)
	}
	s.emit[sym] = out
}

// TransitionOutput returns the Mealy output of the transition of from on sym.
func (a *Automaton) TransitionOutput(from StateID, sym Symbol) string {
	return a.get(from).emit[sym]
}

// Start returns the start state, NoState for an empty automaton.
func (a *Automaton) Start() StateID { return a.start }

// SetStart designates the start state.
func (a *Automaton) SetStart(id StateID) {
	a.get(id)
	a.start = id
}

// Accept returns the designated accept state of a Thompson NFA.
func (a *Automaton) Accept() StateID { return a.accept }

// SetAccept designates the single accept state and marks it final.
func (a *Automaton) SetAccept(id StateID) {
	a.MarkFinal(id)
	a.accept = id
}

// Len returns the number of states.
func (a *Automaton) Len() int { return len(a.states) }

// States returns all ids in allocation order.
func (a *Automaton) States() []StateID {
	out := make([]StateID, len(a.states))
	for i := range out {
		out[i] = StateID(i)
	}
	return out
}

// Finals returns the final states in allocation order.
func (a *Automaton) Finals() []StateID {
	var out []StateID
	for i, s := range a.states {
		if s.final {
			out = append(out, StateID(i))
		}
	}
	return out
}

// IsDeterministic reports whether there are no epsilon transitions and at most
// one target per (state, symbol).
func (a *Automaton) IsDeterministic() bool {
	for _, s := range a.states {
		for sym, targets := range s.trans {
			if sym == Epsilon || len(targets) > 1 {
				return false
			}
		}
	}
	return true
}

// Reachable lists the states reachable from the start state in BFS order,
// following symbols in sorted order and epsilon edges last.
func (a *Automaton) Reachable() []StateID {
	if a.start == NoState {
		return nil
	}
	seen := map[StateID]bool{a.start: true}
	order := []StateID{a.start}
	for i := 0; i < len(order); i++ {
		cur := order[i]
		syms := append(a.Symbols(cur), Epsilon)
		for _, sym := range syms {
			for _, t := range a.get(cur).trans[sym] {
				if !seen[t] {
					seen[t] = true
					order = append(order, t)
				}
			}
		}
	}
	return order
}

// Prune returns a copy holding only the reachable states, renumbered in
// Reachable order. Names, finality, outputs and the accept designation are
// kept.
func (a *Automaton) Prune() *Automaton {
	order := a.Reachable()
	remap := make(map[StateID]StateID, len(order))
	out := New()
	for _, id := range order {
		remap[id] = out.NewNamedState(a.Name(id))
		if a.get(id).final {
			out.MarkFinal(remap[id])
		}
		out.SetOutput(remap[id], a.get(id).output)
	}
	for _, id := range order {
		s := a.get(id)
		for _, sym := range sortedKeys(s.trans) {
			for _, t := range s.trans[sym] {
				out.AddTransition(remap[id], sym, remap[t])
			}
			if o, ok := s.emit[sym]; ok {
				out.SetTransitionOutput(remap[id], sym, o)
			}
		}
	}
	if nid, ok := remap[a.accept]; ok {
		out.accept = nid
	}
	return out
}

func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
