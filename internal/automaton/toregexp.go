package automaton

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInexpressible is returned by ToRegexp when the language has no pattern
// in the supported syntax: the empty language, the language holding only the
// empty string, or symbols longer than one character.
var ErrInexpressible = errors.New("language cannot be written as a pattern")

const metachars = `()|*+?\`

// expr is a pattern fragment; set=false means "no path", s=="" with set=true
// means the empty string.
type expr struct {
	s   string
	set bool
}

var epsilonExpr = expr{set: true}

// ToRegexp converts an automaton into an equivalent pattern by state
// elimination over a generalized automaton with one extra initial and one
// extra final state.
func ToRegexp(a *Automaton) (string, error) {
	d := a.Prune()
	n := d.Len()
	if n == 0 {
		return "", ErrInexpressible
	}
	initial, final := n, n+1

	r := make([][]expr, n+2)
	for i := range r {
		r[i] = make([]expr, n+2)
	}
	for i := 0; i < n; i++ {
		id := StateID(i)
		for _, sym := range append(d.Symbols(id), Epsilon) {
			lit := epsilonExpr
			if sym != Epsilon {
				s, err := escapeSymbol(sym)
				if err != nil {
					return "", err
				}
				lit = expr{s: s, set: true}
			}
			for _, t := range d.get(id).trans[sym] {
				r[i][t] = alt(r[i][t], lit)
			}
		}
		if d.IsFinal(id) {
			r[i][final] = alt(r[i][final], epsilonExpr)
		}
	}
	r[initial][d.Start()] = epsilonExpr

	eliminated := make([]bool, n+2)
	for k := 0; k < n; k++ {
		loop := star(r[k][k])
		for i := 0; i < n+2; i++ {
			if i == k || eliminated[i] || !r[i][k].set {
				continue
			}
			for j := 0; j < n+2; j++ {
				if j == k || eliminated[j] || !r[k][j].set {
					continue
				}
				r[i][j] = alt(r[i][j], cat(cat(r[i][k], loop), r[k][j]))
			}
		}
		eliminated[k] = true
	}

	res := r[initial][final]
	if !res.set || res.s == "" {
		return "", ErrInexpressible
	}
	return res.s, nil
}

func escapeSymbol(sym Symbol) (string, error) {
	s := string(sym)
	if utf8.RuneCountInString(s) != 1 {
		return "", fmt.Errorf("%w: symbol %q", ErrInexpressible, s)
	}
	if strings.Contains(metachars, s) {
		return `\` + s, nil
	}
	return s, nil
}

func alt(a, b expr) expr {
	switch {
	case !a.set:
		return b
	case !b.set:
		return a
	case a.s == b.s:
		return a
	case a.s == "":
		return expr{s: group(b.s) + "?", set: true}
	case b.s == "":
		return expr{s: group(a.s) + "?", set: true}
	}
	return expr{s: a.s + "|" + b.s, set: true}
}

func cat(a, b expr) expr {
	if !a.set || !b.set {
		return expr{}
	}
	left, right := a.s, b.s
	if hasTopLevelAlt(left) {
		left = "(" + left + ")"
	}
	if hasTopLevelAlt(right) {
		right = "(" + right + ")"
	}
	return expr{s: left + right, set: true}
}

// star of "no path" and of the empty string are both the empty string.
func star(a expr) expr {
	if !a.set || a.s == "" {
		return epsilonExpr
	}
	return expr{s: group(a.s) + "*", set: true}
}

func group(s string) string {
	if atomic(s) {
		return s
	}
	return "(" + s + ")"
}

func atomic(s string) bool {
	switch utf8.RuneCountInString(s) {
	case 1:
		return true
	case 2:
		if s[0] == '\\' {
			return true
		}
	}
	if !strings.HasPrefix(s, "(") {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}

func hasTopLevelAlt(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
		case '|':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}
