package regex

import (
	"automata/internal/automaton"
)

// parser is a recursive-descent parser over a token slice:
//
//	expr     := sequence ('|' sequence)*
//	sequence := element+
//	element  := simple ('*' | '+' | '?')?
//	simple   := LITERAL | '(' expr ')'
type parser struct {
	toks  []token
	pos   int
	opens []int // offsets of unclosed '('
}

// Parse builds the syntax tree of pattern. It fails with
// *MismatchedParenthesesError or *UnexpectedTokenError.
func Parse(pattern string) (*Node, error) {
	toks, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.look(); t.typ != tEOF {
		if t.typ == tRParen {
			return nil, &MismatchedParenthesesError{Pos: t.pos}
		}
		return nil, p.unexpected(t)
	}
	return n, nil
}

func (p *parser) look() token { return p.toks[p.pos] }

func (p *parser) scan() token {
	t := p.toks[p.pos]
	if t.typ != tEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseExpr() (*Node, error) {
	left, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	for p.look().typ == tUnion {
		p.scan()
		right, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: Choice, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseSequence() (*Node, error) {
	left, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	for startsSimple(p.look().typ) {
		right, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: Sequence, Left: left, Right: right}
	}
	return left, nil
}

func startsSimple(t tokenType) bool { return t == tLiteral || t == tLParen }

func (p *parser) parseElement() (*Node, error) {
	n, err := p.parseSimple()
	if err != nil {
		return nil, err
	}
	switch p.look().typ {
	case tStar:
		p.scan()
		n = &Node{Kind: Star, Left: n}
	case tPlus:
		p.scan()
		n = &Node{Kind: Plus, Left: n}
	case tQMark:
		p.scan()
		n = &Node{Kind: Optional, Left: n}
	}
	return n, nil
}

func (p *parser) parseSimple() (*Node, error) {
	t := p.scan()
	switch t.typ {
	case tLiteral:
		if automaton.Symbol(string(t.ch)) == automaton.Epsilon {
			return nil, &UnexpectedTokenError{Token: t.text(), Pos: t.pos, Reason: "epsilon is reserved"}
		}
		return literal(t.ch), nil
	case tLParen:
		p.opens = append(p.opens, t.pos)
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		switch c := p.look(); c.typ {
		case tRParen:
			p.scan()
			p.opens = p.opens[:len(p.opens)-1]
			return inner, nil
		case tEOF:
			return nil, &MismatchedParenthesesError{Pos: t.pos, Open: true}
		default:
			return nil, p.unexpected(c)
		}
	case tRParen:
		if len(p.opens) == 0 {
			return nil, &MismatchedParenthesesError{Pos: t.pos}
		}
		return nil, &UnexpectedTokenError{Token: t.text(), Pos: t.pos, Reason: "empty group or alternative"}
	case tEOF:
		if len(p.opens) > 0 {
			return nil, &MismatchedParenthesesError{Pos: p.opens[len(p.opens)-1], Open: true}
		}
	}
	return nil, p.unexpected(t)
}

func (p *parser) unexpected(t token) error {
	reason := ""
	switch t.typ {
	case tStar, tPlus, tQMark:
		reason = "operator has no operand"
	case tUnion:
		reason = "empty alternative"
	case tEOF:
		reason = "expression expected"
	}
	return &UnexpectedTokenError{Token: t.text(), Pos: t.pos, Reason: reason}
}
