// Package grammar reads regular grammars and turns them into NFAs.
//
// A grammar has one rule per line:
//
//	<S> -> a <A> | b
//	<A> -> a <A> | ε
//
// Lines without "->" continue the previous rule. Alternatives are ε, a
// terminal, a terminal followed by a nonterminal (right-linear), a nonterminal
// followed by a terminal (left-linear) or a single nonterminal.
package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"automata/internal/automaton"
)

// Grammar errors.
var (
	ErrEmptyGrammar = errors.New("grammar has no rules")
	ErrNotRegular   = errors.New("alternative is not regular")
	ErrMixedGrammar = errors.New("grammar mixes left- and right-linear rules")
)

// Kind tells which side of a production the nonterminal sits on.
type Kind int

const (
	RightLinear Kind = iota
	LeftLinear
)

func (k Kind) String() string {
	if k == LeftLinear {
		return "left-linear"
	}
	return "right-linear"
}

// Production is one alternative. Either field may be empty; both empty is ε.
type Production struct {
	Terminal    automaton.Symbol
	NonTerminal string
}

// Rule is the set of alternatives of one nonterminal.
type Rule struct {
	Head         string
	Alternatives []Production
}

// Grammar is a parsed regular grammar. The head of the first rule is the
// start symbol.
type Grammar struct {
	Kind  Kind
	Rules []Rule
}

type ruleAST struct {
	Head         string            `parser:"@NonTerminal Arrow"`
	Alternatives []*alternativeAST `parser:"@@ ( Pipe @@ )*"`
}

type alternativeAST struct {
	Epsilon bool       `parser:"  @Epsilon"`
	Items   []*itemAST `parser:"| @@+"`
}

type itemAST struct {
	NonTerminal string `parser:"  @NonTerminal"`
	Terminal    string `parser:"| @Terminal"`
}

var ruleParser = participle.MustBuild[ruleAST](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Arrow", Pattern: `->`},
		{Name: "Pipe", Pattern: `\|`},
		{Name: "NonTerminal", Pattern: `<[^<>\s|]+>`},
		{Name: "Epsilon", Pattern: `ε`},
		{Name: "Terminal", Pattern: `[^\s<>|]+`},
	})),
	participle.Elide("Whitespace"),
)

// Parse reads a grammar from src.
func Parse(src string) (*Grammar, error) {
	var lines []string
	var lineNos []int
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case strings.Contains(line, "->") || len(lines) == 0:
			lines = append(lines, line)
			lineNos = append(lineNos, i+1)
		default:
			lines[len(lines)-1] += " " + line
		}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyGrammar
	}

	g := &Grammar{}
	index := make(map[string]int)
	sawLeft, sawRight := false, false
	for i, line := range lines {
		ast, err := ruleParser.ParseString("", line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNos[i], err)
		}
		head := trimBrackets(ast.Head)
		pos, ok := index[head]
		if !ok {
			pos = len(g.Rules)
			index[head] = pos
			g.Rules = append(g.Rules, Rule{Head: head})
		}
		for _, alt := range ast.Alternatives {
			p, kind, err := production(alt)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", lineNos[i], head, err)
			}
			switch kind {
			case "left":
				sawLeft = true
			case "right":
				sawRight = true
			}
			g.Rules[pos].Alternatives = append(g.Rules[pos].Alternatives, p)
		}
	}
	if sawLeft && sawRight {
		return nil, ErrMixedGrammar
	}
	if sawLeft {
		g.Kind = LeftLinear
	}
	return g, nil
}

// production classifies one alternative; kind is "left", "right" or "" when
// the alternative fits both forms.
func production(alt *alternativeAST) (Production, string, error) {
	if alt.Epsilon {
		return Production{}, "", nil
	}
	items := alt.Items
	switch len(items) {
	case 1:
		if items[0].NonTerminal != "" {
			return Production{NonTerminal: trimBrackets(items[0].NonTerminal)}, "", nil
		}
		return Production{Terminal: automaton.Symbol(items[0].Terminal)}, "", nil
	case 2:
		first, second := items[0], items[1]
		switch {
		case first.Terminal != "" && second.NonTerminal != "":
			return Production{Terminal: automaton.Symbol(first.Terminal), NonTerminal: trimBrackets(second.NonTerminal)}, "right", nil
		case first.NonTerminal != "" && second.Terminal != "":
			return Production{Terminal: automaton.Symbol(second.Terminal), NonTerminal: trimBrackets(first.NonTerminal)}, "left", nil
		}
	}
	return Production{}, "", ErrNotRegular
}

func trimBrackets(s string) string { return strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">") }

// NFA builds the automaton recognising the language of g. A right-linear
// grammar gets one state per nonterminal plus a final state F; a left-linear
// grammar gets an initial state H and its start symbol becomes final.
func (g *Grammar) NFA() (*automaton.Automaton, error) {
	if len(g.Rules) == 0 {
		return nil, ErrEmptyGrammar
	}
	a := automaton.New()
	states := make(map[string]automaton.StateID)
	taken := make(map[string]bool)
	for _, r := range g.Rules {
		taken[r.Head] = true
		for _, p := range r.Alternatives {
			if p.NonTerminal != "" {
				taken[p.NonTerminal] = true
			}
		}
	}
	base := "F"
	if g.Kind == LeftLinear {
		base = "H"
	}
	extra := a.NewNamedState(freshName(base, taken))

	state := func(name string) automaton.StateID {
		id, ok := states[name]
		if !ok {
			id = a.NewNamedState(name)
			states[name] = id
		}
		return id
	}
	for _, r := range g.Rules {
		state(r.Head)
	}

	for _, r := range g.Rules {
		head := state(r.Head)
		for _, p := range r.Alternatives {
			from, to := head, extra
			if p.NonTerminal != "" {
				to = state(p.NonTerminal)
			}
			if g.Kind == LeftLinear {
				from, to = to, from
			}
			if p.Terminal == "" {
				a.AddEpsilon(from, to)
			} else {
				a.AddTransition(from, p.Terminal, to)
			}
		}
	}

	startSymbol := state(g.Rules[0].Head)
	if g.Kind == LeftLinear {
		a.SetStart(extra)
		a.MarkFinal(startSymbol)
	} else {
		a.SetStart(startSymbol)
		a.MarkFinal(extra)
	}
	return a, nil
}

func freshName(base string, taken map[string]bool) string {
	name := base
	for taken[name] {
		name += "'"
	}
	return name
}
