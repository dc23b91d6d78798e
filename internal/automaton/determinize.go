package automaton

import (
	"strconv"

	"github.com/davecgh/go-spew/spew"
)

// Determinize runs the subset construction on nfa. DFA states are named S0,
// S1, ... in discovery order and the i-th returned StateSet is the NFA subset
// behind DFA state i. A DFA state is final iff its subset holds a final NFA
// state.
func Determinize(nfa *Automaton, opts ...Option) (*Automaton, []StateSet) {
	o := newOptions(opts)
	dfa := New()
	if nfa.Start() == NoState {
		return dfa, nil
	}

	alpha := nfa.Alphabet()
	initial := Closure(nfa, NewStateSet(nfa.Start()))

	index := map[string]StateID{}
	var subsets []StateSet
	add := func(set StateSet) StateID {
		id := dfa.NewNamedState("S" + strconv.Itoa(len(subsets)))
		if ContainsFinal(nfa, set) {
			dfa.MarkFinal(id)
		}
		index[set.Key()] = id
		subsets = append(subsets, set)
		return id
	}
	add(initial)

	// subsets doubles as the worklist: entries past i are unprocessed.
	for i := 0; i < len(subsets); i++ {
		cur := subsets[i]
		for _, sym := range alpha {
			moved := Move(nfa, cur, sym)
			if moved.Empty() {
				continue
			}
			target := Closure(nfa, moved)
			id, ok := index[target.Key()]
			if !ok {
				id = add(target)
			}
			dfa.AddTransition(StateID(i), sym, id)
		}
	}

	o.logger.Debugf("subset construction: %d NFA states -> %d DFA states", nfa.Len(), dfa.Len())
	if debugEnabled(o.logger) {
		o.logger.Debugf("subsets: %s", spew.Sdump(subsets))
	}
	return dfa, subsets
}
