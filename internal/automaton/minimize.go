package automaton

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNondeterministic is returned when a DFA operation meets epsilon edges or
// several targets for one symbol.
var ErrNondeterministic = errors.New("automaton is not deterministic")

// noTransition is the class of an absent transition. It never equals a block
// index, so a missing edge and a present edge are never merged.
const noTransition = -1

// classifier keys the initial partition: states with different keys are
// never equivalent.
type classifier func(d *Automaton, id StateID, alpha []Symbol) string

// Minimize merges Myhill-Nerode equivalent states of dfa by partition
// refinement, starting from the final / non-final split. Unreachable states
// are dropped first. The result names its states S0, S1, ... in BFS order
// from the start state.
func Minimize(dfa *Automaton, opts ...Option) (*Automaton, error) {
	return minimize(dfa, byFinality, newOptions(opts))
}

// MinimizeMoore merges equivalent states of a Moore machine: states start out
// grouped by their output. Outputs survive on the merged states.
func MinimizeMoore(m *Automaton, opts ...Option) (*Automaton, error) {
	return minimize(m, byStateOutput, newOptions(opts))
}

// MinimizeMealy merges equivalent states of a Mealy machine: states start out
// grouped by the outputs of their transitions, symbol by symbol. Transition
// outputs survive on the merged machine.
func MinimizeMealy(m *Automaton, opts ...Option) (*Automaton, error) {
	return minimize(m, byTransitionOutputs, newOptions(opts))
}

func byFinality(d *Automaton, id StateID, _ []Symbol) string {
	if d.IsFinal(id) {
		return "F"
	}
	return ""
}

func byStateOutput(d *Automaton, id StateID, _ []Symbol) string { return d.Output(id) }

func byTransitionOutputs(d *Automaton, id StateID, alpha []Symbol) string {
	var b strings.Builder
	for _, sym := range alpha {
		if len(d.get(id).trans[sym]) == 0 {
			b.WriteString("-")
		} else {
			b.WriteString(strconv.Quote(d.TransitionOutput(id, sym)))
		}
		b.WriteByte('|')
	}
	return b.String()
}

func minimize(dfa *Automaton, classify classifier, o *options) (*Automaton, error) {
	if !dfa.IsDeterministic() {
		return nil, ErrNondeterministic
	}
	if dfa.Start() == NoState {
		return New(), nil
	}

	d := dfa.Prune()
	alpha := d.Alphabet()
	n := d.Len()

	// Blocks are numbered as their first member is met, so empty blocks never
	// get an index.
	block := make([]int, n)
	classes := make(map[string]int)
	for i := 0; i < n; i++ {
		key := classify(d, StateID(i), alpha)
		id, ok := classes[key]
		if !ok {
			id = len(classes)
			classes[key] = id
		}
		block[i] = id
	}
	count := len(classes)

	for round := 1; ; round++ {
		next := make([]int, n)
		signatures := make(map[string]int)
		for i := 0; i < n; i++ {
			sig := signature(d, StateID(i), block, alpha)
			id, ok := signatures[sig]
			if !ok {
				id = len(signatures)
				signatures[sig] = id
			}
			next[i] = id
		}
		block = next
		o.logger.Debugf("minimize round %d: %d blocks", round, len(signatures))
		if len(signatures) == count {
			break
		}
		count = len(signatures)
	}

	return quotient(d, block, count, alpha), nil
}

// signature encodes the current block of id followed by the block reached on
// every symbol. Two states stay together iff their signatures match.
func signature(d *Automaton, id StateID, block []int, alpha []Symbol) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(block[id]))
	for _, sym := range alpha {
		b.WriteByte('|')
		target := noTransition
		if ts := d.get(id).trans[sym]; len(ts) > 0 {
			target = block[ts[0]]
		}
		b.WriteString(strconv.Itoa(target))
	}
	return b.String()
}

// quotient builds one state per block, numbered in BFS order from the block of
// the start state.
func quotient(d *Automaton, block []int, count int, alpha []Symbol) *Automaton {
	// Any member represents its block; finality and targets are uniform.
	rep := make([]StateID, count)
	for i := range rep {
		rep[i] = NoState
	}
	for i := 0; i < d.Len(); i++ {
		if rep[block[i]] == NoState {
			rep[block[i]] = StateID(i)
		}
	}

	out := New()
	ids := make(map[int]StateID, count)
	queue := []int{block[d.Start()]}
	visit := func(b int) StateID {
		id, ok := ids[b]
		if !ok {
			id = out.NewNamedState("S" + strconv.Itoa(len(ids)))
			if d.IsFinal(rep[b]) {
				out.MarkFinal(id)
			}
			out.SetOutput(id, d.Output(rep[b]))
			ids[b] = id
		}
		return id
	}
	visit(queue[0])
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		from := ids[b]
		for _, sym := range alpha {
			ts := d.get(rep[b]).trans[sym]
			if len(ts) == 0 {
				continue
			}
			tb := block[ts[0]]
			if _, seen := ids[tb]; !seen {
				queue = append(queue, tb)
			}
			to := visit(tb)
			out.AddTransition(from, sym, to)
			if o, ok := d.get(rep[b]).emit[sym]; ok {
				out.SetTransitionOutput(from, sym, o)
			}
		}
	}
	return out
}
