package automaton_test

import (
	"testing"

	"automata/internal/automaton"
)

func TestDeterminizeStarThenLiteral(t *testing.T) {
	dfa, subsets := automaton.Determinize(compile(t, "a*b"))
	if dfa.Len() != 3 || len(subsets) != 3 {
		t.Fatalf("len = %d, subsets = %d, want 3", dfa.Len(), len(subsets))
	}
	for i, want := range []string{"S0", "S1", "S2"} {
		if got := dfa.Name(automaton.StateID(i)); got != want {
			t.Errorf("state %d named %q, want %q", i, got, want)
		}
	}
	if dfa.Start() != 0 {
		t.Errorf("start = %d", dfa.Start())
	}
	if f := dfa.Finals(); len(f) != 1 || f[0] != 2 {
		t.Errorf("finals = %v", f)
	}
}

func TestDeterminizeIsDeterministic(t *testing.T) {
	for _, pattern := range []string{"a", "a*b", "(a|b)+", "(ab|a)*b?", "a?b?c?", "((a|b)*c)+"} {
		nfa := compile(t, pattern)
		dfa, subsets := automaton.Determinize(nfa)
		if !dfa.IsDeterministic() {
			t.Errorf("%q: result is not deterministic", pattern)
		}
		if dfa.HasEpsilons() {
			t.Errorf("%q: result has epsilon edges", pattern)
		}

		seen := make(map[string]bool)
		for _, s := range subsets {
			if seen[s.Key()] {
				t.Errorf("%q: subset %v appears twice", pattern, s)
			}
			seen[s.Key()] = true
		}
		for i, s := range subsets {
			if dfa.IsFinal(automaton.StateID(i)) != automaton.ContainsFinal(nfa, s) {
				t.Errorf("%q: finality of S%d does not follow its subset", pattern, i)
			}
		}
		sameLanguage(t, nfa, dfa, "abc")
	}
}

func TestDeterminizeStartIsClosureOfStart(t *testing.T) {
	nfa := compile(t, "(a|b)*c")
	_, subsets := automaton.Determinize(nfa)
	want := automaton.Closure(nfa, automaton.NewStateSet(nfa.Start()))
	if !subsets[0].Equal(want) {
		t.Fatalf("S0 = %v, want %v", subsets[0], want)
	}
}
