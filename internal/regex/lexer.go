package regex

import (
	"errors"
	"sync"
	"unicode/utf8"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type tokenType int

const (
	tEOF     tokenType = iota
	tLiteral           // plain or escaped symbol
	tLParen            // (
	tRParen            // )
	tUnion             // |
	tStar              // *
	tPlus              // +
	tQMark             // ?
	tEscape            // \ (scanner only, folded into tLiteral)
)

func (t tokenType) String() string {
	switch t {
	case tEOF:
		return "end of input"
	case tLiteral:
		return "literal"
	case tLParen:
		return "'('"
	case tRParen:
		return "')'"
	case tUnion:
		return "'|'"
	case tStar:
		return "'*'"
	case tPlus:
		return "'+'"
	case tQMark:
		return "'?'"
	case tEscape:
		return `'\'`
	}
	return "unknown"
}

type token struct {
	typ tokenType
	ch  rune
	pos int // byte offset in the pattern
}

// text renders the token as it appeared in the pattern.
func (t token) text() string {
	switch t.typ {
	case tEOF:
		return ""
	case tLiteral:
		return string(t.ch)
	}
	return t.typ.String()[1:2]
}

// piece is one raw scanner match: a metacharacter or a run of plain bytes.
type piece struct {
	typ   tokenType
	bytes []byte
	pos   int
}

var (
	scannerOnce sync.Once
	scannerDef  *lexmachine.Lexer
	scannerErr  error
)

func patternLexer() (*lexmachine.Lexer, error) {
	scannerOnce.Do(func() {
		lx := lexmachine.NewLexer()
		lx.Add([]byte(`[(]`), pieceAction(tLParen))
		lx.Add([]byte(`[)]`), pieceAction(tRParen))
		lx.Add([]byte(`[|]`), pieceAction(tUnion))
		lx.Add([]byte(`[*]`), pieceAction(tStar))
		lx.Add([]byte(`[+]`), pieceAction(tPlus))
		lx.Add([]byte(`[?]`), pieceAction(tQMark))
		lx.Add([]byte(`\\`), pieceAction(tEscape))
		lx.Add([]byte(`[^()|*+?\\]+`), pieceAction(tLiteral))
		if err := lx.Compile(); err != nil {
			scannerErr = err
			return
		}
		scannerDef = lx
	})
	return scannerDef, scannerErr
}

func pieceAction(typ tokenType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return piece{typ: typ, bytes: m.Bytes, pos: m.TC}, nil
	}
}

// tokenize splits pattern into tokens, resolving escapes and splitting
// literal runs into single-rune literals. The result always ends with tEOF.
func tokenize(pattern string) ([]token, error) {
	lx, err := patternLexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lx.Scanner([]byte(pattern))
	if err != nil {
		return nil, err
	}

	var pieces []piece
	for tok, err, eos := scanner.Next(); !eos; tok, err, eos = scanner.Next() {
		if err != nil {
			var ui *machines.UnconsumedInput
			if errors.As(err, &ui) {
				r, _ := utf8.DecodeRuneInString(pattern[ui.FailTC:])
				return nil, &UnexpectedTokenError{Token: string(r), Pos: ui.FailTC}
			}
			return nil, err
		}
		pieces = append(pieces, tok.(piece))
	}

	var out []token
	escaped := false
	escapePos := 0
	for _, p := range pieces {
		if escaped {
			r, size := utf8.DecodeRune(p.bytes)
			if r == utf8.RuneError && size == 1 {
				return nil, invalidUTF8(p.bytes, p.pos)
			}
			out = append(out, token{typ: tLiteral, ch: r, pos: escapePos})
			escaped = false
			if p.typ != tLiteral {
				continue
			}
			p.bytes = p.bytes[size:]
			p.pos += size
		}
		switch p.typ {
		case tEscape:
			escaped = true
			escapePos = p.pos
		case tLiteral:
			for off := 0; off < len(p.bytes); {
				r, size := utf8.DecodeRune(p.bytes[off:])
				if r == utf8.RuneError && size == 1 {
					return nil, invalidUTF8(p.bytes[off:], p.pos+off)
				}
				out = append(out, token{typ: tLiteral, ch: r, pos: p.pos + off})
				off += size
			}
		default:
			out = append(out, token{typ: p.typ, pos: p.pos})
		}
	}
	if escaped {
		return nil, &UnexpectedTokenError{Token: `\`, Pos: escapePos, Reason: "dangling escape"}
	}
	return append(out, token{typ: tEOF, pos: len(pattern)}), nil
}

func invalidUTF8(b []byte, pos int) error {
	return &UnexpectedTokenError{Token: string(b[:1]), Pos: pos, Reason: "invalid UTF-8"}
}
