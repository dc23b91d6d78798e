package regex

import (
	"strings"

	"automata/internal/automaton"
)

// Kind tags a syntax tree node.
type Kind int

const (
	Literal Kind = iota
	Sequence
	Choice
	Star
	Plus
	Optional
)

// Node is an immutable syntax tree node. Left is the only child of the unary
// kinds; Sym is set for Literal only.
type Node struct {
	Kind  Kind
	Sym   automaton.Symbol
	Left  *Node
	Right *Node
}

func literal(r rune) *Node { return &Node{Kind: Literal, Sym: automaton.Symbol(string(r))} }

// String prints the tree in prefix form, e.g. seq(star(a),b).
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	switch n.Kind {
	case Literal:
		b.WriteString(string(n.Sym))
		return
	case Sequence:
		b.WriteString("seq(")
	case Choice:
		b.WriteString("alt(")
	case Star:
		b.WriteString("star(")
	case Plus:
		b.WriteString("plus(")
	case Optional:
		b.WriteString("opt(")
	}
	n.Left.write(b)
	if n.Right != nil {
		b.WriteByte(',')
		n.Right.write(b)
	}
	b.WriteByte(')')
}

// Alphabet returns the distinct literal symbols of the tree in first-seen
// order.
func (n *Node) Alphabet() []automaton.Symbol {
	var out []automaton.Symbol
	seen := map[automaton.Symbol]bool{}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil {
			continue
		}
		if cur.Kind == Literal && !seen[cur.Sym] {
			seen[cur.Sym] = true
			out = append(out, cur.Sym)
		}
		stack = append(stack, cur.Right, cur.Left)
	}
	return out
}
