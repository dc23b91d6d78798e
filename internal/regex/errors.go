package regex

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched (via errors.Is) by every parse error.
var ErrSyntax = errors.New("syntax error")

// MismatchedParenthesesError reports a ')' without '(' or a group left open at
// the end of input.
type MismatchedParenthesesError struct {
	Pos  int
	Open bool // true: input ended inside a group opened at Pos
}

func (e *MismatchedParenthesesError) Error() string {
	if e.Open {
		return fmt.Sprintf("%v: mismatched parentheses: '(' at offset %d is never closed", ErrSyntax, e.Pos)
	}
	return fmt.Sprintf("%v: mismatched parentheses: ')' at offset %d has no matching '('", ErrSyntax, e.Pos)
}

func (e *MismatchedParenthesesError) Is(target error) bool { return target == ErrSyntax }

// UnexpectedTokenError reports a token that cannot appear where it was found.
// An empty Token means end of input.
type UnexpectedTokenError struct {
	Token  string
	Pos    int
	Reason string
}

func (e *UnexpectedTokenError) Error() string {
	tok := fmt.Sprintf("%q", e.Token)
	if e.Token == "" {
		tok = "end of input"
	}
	msg := fmt.Sprintf("%v: unexpected %s at offset %d", ErrSyntax, tok, e.Pos)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *UnexpectedTokenError) Is(target error) bool { return target == ErrSyntax }
