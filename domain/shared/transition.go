package shared

// Transitions is a status whitelist: each key lists the statuses it may move to.
// A status without an entry is terminal.
type Transitions[S comparable] map[S][]S

// Allows reports whether from → to is in the whitelist.
func (t Transitions[S]) Allows(from, to S) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s accepts no transition at all.
func (t Transitions[S]) IsTerminal(s S) bool {
	return len(t[s]) == 0
}
