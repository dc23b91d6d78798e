package automaton

// Closure returns every state reachable from set through epsilon transitions,
// set included.
func Closure(a *Automaton, set StateSet) StateSet {
	seen := make(map[StateID]struct{}, set.Len())
	stack := make([]StateID, 0, set.Len())
	for _, id := range set.ids {
		a.get(id)
		seen[id] = struct{}{}
		stack = append(stack, id)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range a.get(cur).trans[Epsilon] {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				stack = append(stack, t)
			}
		}
	}
	return NewStateSet(sortedKeys(seen)...)
}

// Move returns the union of the sym-targets of every member of set. No
// closure is applied.
func Move(a *Automaton, set StateSet, sym Symbol) StateSet {
	var out []StateID
	for _, id := range set.ids {
		out = append(out, a.get(id).trans[sym]...)
	}
	return NewStateSet(out...)
}

// ContainsFinal reports whether any member of set is final.
func ContainsFinal(a *Automaton, set StateSet) bool {
	for _, id := range set.ids {
		if a.get(id).final {
			return true
		}
	}
	return false
}
