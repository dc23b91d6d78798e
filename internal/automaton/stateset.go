package automaton

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// StateSet is an immutable set of state ids. Two sets are equal iff they hold
// the same ids; names play no part.
type StateSet struct {
	ids []StateID
}

// NewStateSet builds a set from ids, ignoring duplicates.
func NewStateSet(ids ...StateID) StateSet {
	c := slices.Clone(ids)
	slices.Sort(c)
	return StateSet{ids: slices.Compact(c)}
}

// IDs returns the members in ascending order.
func (s StateSet) IDs() []StateID { return slices.Clone(s.ids) }

// Len returns the number of members.
func (s StateSet) Len() int { return len(s.ids) }

// Empty reports whether the set has no members.
func (s StateSet) Empty() bool { return len(s.ids) == 0 }

// Contains reports membership of id.
func (s StateSet) Contains(id StateID) bool {
	_, ok := slices.BinarySearch(s.ids, id)
	return ok
}

// Equal compares by member ids.
func (s StateSet) Equal(o StateSet) bool { return slices.Equal(s.ids, o.ids) }

// Key is a canonical map key for the set.
func (s StateSet) Key() string {
	var b strings.Builder
	for i, id := range s.ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}

func (s StateSet) String() string { return "{" + s.Key() + "}" }
