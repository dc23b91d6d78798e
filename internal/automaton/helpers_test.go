package automaton_test

import (
	"testing"

	"automata/internal/automaton"
	"automata/internal/regex"
)

// accepts reports whether a reaches a final state on input, one rune per
// symbol.
func accepts(a *automaton.Automaton, input string) bool {
	cur := automaton.Closure(a, automaton.NewStateSet(a.Start()))
	for _, r := range input {
		cur = automaton.Closure(a, automaton.Move(a, cur, automaton.Symbol(string(r))))
		if cur.Empty() {
			return false
		}
	}
	return automaton.ContainsFinal(a, cur)
}

// words lists every string over alphabet up to length n.
func words(alphabet string, n int) []string {
	out := []string{""}
	level := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range level {
			for _, r := range alphabet {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}

func compile(t *testing.T, pattern string) *automaton.Automaton {
	t.Helper()
	nfa, err := regex.Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return nfa
}

func sameLanguage(t *testing.T, want, got *automaton.Automaton, alphabet string) {
	t.Helper()
	for _, w := range words(alphabet, 5) {
		if accepts(want, w) != accepts(got, w) {
			t.Errorf("disagree on %q: want %v", w, accepts(want, w))
		}
	}
}
