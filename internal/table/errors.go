package table

import (
	"errors"
	"fmt"
)

// Decoding errors.
var (
	ErrTableFormat  = errors.New("malformed table")
	ErrUnknownState = errors.New("unknown state reference")
)

// FormatError locates a structural problem in a grid. Row and Column are
// zero-based; -1 means the whole row or column.
type FormatError struct {
	Row, Column int
	Msg         string
}

func (e *FormatError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("%v: %s", ErrTableFormat, e.Msg)
	case e.Column < 0:
		return fmt.Sprintf("%v: row %d: %s", ErrTableFormat, e.Row+1, e.Msg)
	}
	return fmt.Sprintf("%v: row %d, column %d: %s", ErrTableFormat, e.Row+1, e.Column+1, e.Msg)
}

func (e *FormatError) Is(target error) bool { return target == ErrTableFormat }

// UnknownStateError reports a transition cell naming a state that is not in
// the header row.
type UnknownStateError struct {
	Row, Column int
	Name        string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("%v: row %d, column %d: %q is not a state name", ErrUnknownState, e.Row+1, e.Column+1, e.Name)
}

func (e *UnknownStateError) Is(target error) bool { return target == ErrUnknownState }
