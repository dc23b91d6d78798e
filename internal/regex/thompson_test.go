package regex

import (
	"errors"
	"testing"

	"automata/internal/automaton"
)

func accepts(a *automaton.Automaton, input string) bool {
	cur := automaton.Closure(a, automaton.NewStateSet(a.Start()))
	for _, r := range input {
		cur = automaton.Closure(a, automaton.Move(a, cur, automaton.Symbol(string(r))))
	}
	return automaton.ContainsFinal(a, cur)
}

func TestBuildShape(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
	}{
		{"a", 2},
		{"ab", 4},
		{"a|b", 6},
		{"a*", 4},
		{"a+", 4},
		{"a?", 4},
		{"a*b", 6},
	}
	for _, tt := range tests {
		nfa, err := Compile(tt.pattern)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tt.pattern, err)
		}
		if nfa.Len() != tt.states {
			t.Errorf("%q: %d states, want %d", tt.pattern, nfa.Len(), tt.states)
		}
		finals := nfa.Finals()
		if len(finals) != 1 || finals[0] != nfa.Accept() {
			t.Errorf("%q: finals = %v, accept = %d", tt.pattern, finals, nfa.Accept())
		}
		if len(nfa.Symbols(nfa.Accept())) != 0 || len(nfa.Epsilons(nfa.Accept())) != 0 {
			t.Errorf("%q: accept state has outgoing edges", tt.pattern)
		}
	}
}

func TestBuildPlusHasNoBypass(t *testing.T) {
	nfa, err := Compile("a+")
	if err != nil {
		t.Fatal(err)
	}
	if eps := nfa.Epsilons(nfa.Start()); len(eps) != 1 {
		t.Fatalf("start epsilons = %v, want one", eps)
	}
	if accepts(nfa, "") {
		t.Fatal("a+ accepts the empty string")
	}
}

func TestBuildLanguages(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"a*b", []string{"b", "ab", "aab", "aaab"}, []string{"", "a", "ba", "abb"}},
		{"(a|b)+", []string{"a", "b", "abba"}, []string{"", "c", "abc"}},
		{"a?b?", []string{"", "a", "b", "ab"}, []string{"ba", "aa"}},
		{"(ab)*", []string{"", "ab", "abab"}, []string{"a", "aba"}},
		{`\(\)`, []string{"()"}, []string{"", "("}},
		{"ab|cd", []string{"ab", "cd"}, []string{"ad", "abcd"}},
	}
	for _, tt := range tests {
		nfa, err := Compile(tt.pattern)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tt.pattern, err)
		}
		for _, w := range tt.accept {
			if !accepts(nfa, w) {
				t.Errorf("%q rejects %q", tt.pattern, w)
			}
		}
		for _, w := range tt.reject {
			if accepts(nfa, w) {
				t.Errorf("%q accepts %q", tt.pattern, w)
			}
		}
	}
}

func TestCompileStarThenLiteralEndToEnd(t *testing.T) {
	nfa, err := Compile("a*b")
	if err != nil {
		t.Fatal(err)
	}
	dfa, _ := automaton.Determinize(nfa)
	min, err := automaton.Minimize(dfa)
	if err != nil {
		t.Fatal(err)
	}
	if min.Len() != 2 {
		t.Fatalf("minimal DFA has %d states, want 2", min.Len())
	}
	start := min.Start()
	if got := min.TransitionsOn(start, "a"); len(got) != 1 || got[0] != start {
		t.Errorf("start -a-> %v, want self loop", got)
	}
	fin := min.TransitionsOn(start, "b")
	if len(fin) != 1 || !min.IsFinal(fin[0]) {
		t.Errorf("start -b-> %v, want final", fin)
	}
}

func TestCompilePlusOfChoiceEndToEnd(t *testing.T) {
	nfa, err := Compile("(a|b)+")
	if err != nil {
		t.Fatal(err)
	}
	dfa, _ := automaton.Determinize(nfa)
	if dfa.IsFinal(dfa.Start()) {
		t.Error("start state accepts the empty string")
	}
	for _, w := range []string{"a", "ab", "bbb"} {
		if !accepts(dfa, w) {
			t.Errorf("rejects %q", w)
		}
	}
	if accepts(dfa, "") || accepts(dfa, "c") {
		t.Error("accepts outside (a|b)+")
	}
}

func TestCompileSyntaxErrorBuildsNothing(t *testing.T) {
	nfa, err := Compile("*ab")
	if nfa != nil {
		t.Fatal("automaton returned for invalid pattern")
	}
	var ute *UnexpectedTokenError
	if !errors.As(err, &ute) || ute.Token != "*" {
		t.Fatalf("err = %v", err)
	}
}
