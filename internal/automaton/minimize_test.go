package automaton_test

import (
	"errors"
	"testing"

	"automata/internal/automaton"
)

func minimal(t *testing.T, pattern string) *automaton.Automaton {
	t.Helper()
	dfa, _ := automaton.Determinize(compile(t, pattern))
	min, err := automaton.Minimize(dfa)
	if err != nil {
		t.Fatalf("Minimize(%q): %v", pattern, err)
	}
	return min
}

func TestMinimizeStateCounts(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
	}{
		{"a", 2},
		{"a*b", 2},
		{"(a|b)+", 2},
		{"a|b", 2},
		{"(a|b)*abb", 4},
		{"a*", 1},
		{"ab|ac", 3},
	}
	for _, tt := range tests {
		if got := minimal(t, tt.pattern).Len(); got != tt.states {
			t.Errorf("%q: %d states, want %d", tt.pattern, got, tt.states)
		}
	}
}

func TestMinimizeStarThenLiteral(t *testing.T) {
	min := minimal(t, "a*b")
	if min.Name(min.Start()) != "S0" || min.IsFinal(min.Start()) {
		t.Fatalf("start %s final=%v", min.Name(min.Start()), min.IsFinal(min.Start()))
	}
	if got := min.TransitionsOn(min.Start(), "a"); len(got) != 1 || got[0] != min.Start() {
		t.Errorf("a from start -> %v, want self loop", got)
	}
	b := min.TransitionsOn(min.Start(), "b")
	if len(b) != 1 || !min.IsFinal(b[0]) || min.Name(b[0]) != "S1" {
		t.Errorf("b from start -> %v", b)
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	for _, pattern := range []string{"a*b", "(a|b)*abb", "(ab|a)*b?", "((a|b)*c)+"} {
		once := minimal(t, pattern)
		twice, err := automaton.Minimize(once)
		if err != nil {
			t.Fatal(err)
		}
		if once.Len() != twice.Len() {
			t.Errorf("%q: %d states then %d", pattern, once.Len(), twice.Len())
		}
		sameLanguage(t, once, twice, "abc")
		sameLanguage(t, compile(t, pattern), once, "abc")
	}
}

// Two final states differ when only one of them has an outgoing edge.
func TestMinimizeKeepsMissingTransitionDistinct(t *testing.T) {
	d := automaton.New()
	s0, s1, s2 := d.NewState(), d.NewState(), d.NewState()
	d.AddTransition(s0, "a", s1)
	d.AddTransition(s1, "a", s2)
	d.MarkFinal(s1)
	d.MarkFinal(s2)

	min, err := automaton.Minimize(d)
	if err != nil {
		t.Fatal(err)
	}
	if min.Len() != 3 {
		t.Fatalf("len = %d, want 3", min.Len())
	}
	for _, w := range []string{"a", "aa"} {
		if !accepts(min, w) {
			t.Errorf("rejects %q", w)
		}
	}
	if accepts(min, "aaa") || accepts(min, "") {
		t.Error("accepts outside {a, aa}")
	}
}

func TestMinimizeDropsUnreachable(t *testing.T) {
	d := automaton.New()
	s0, s1, lost := d.NewState(), d.NewState(), d.NewState()
	d.AddTransition(s0, "a", s1)
	d.AddTransition(lost, "b", s0)
	d.MarkFinal(s1)

	min, err := automaton.Minimize(d)
	if err != nil {
		t.Fatal(err)
	}
	if min.Len() != 2 {
		t.Fatalf("len = %d, want 2", min.Len())
	}
	if len(min.Alphabet()) != 1 {
		t.Errorf("alphabet = %v", min.Alphabet())
	}
}

func TestMinimizeRejectsNFA(t *testing.T) {
	_, err := automaton.Minimize(compile(t, "a|b"))
	if !errors.Is(err, automaton.ErrNondeterministic) {
		t.Fatalf("err = %v", err)
	}
}
