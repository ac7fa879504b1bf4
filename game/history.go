package game

import "github.com/cheesec4ke/conway/model"

// History records the first generation at which each board state was
// observed, keyed by grid fingerprint.
type History struct {
	seen map[string]int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{seen: make(map[string]int)}
}

// Classify looks up the grid's fingerprint. A first occurrence is
// recorded and reported as no cycle; any later occurrence reports the
// generation originally stored. A repeat never overwrites the
// first-seen entry.
func (h *History) Classify(g *model.Grid, generation int) (int, bool) {
	fp := g.Fingerprint()
	if start, ok := h.seen[fp]; ok {
		return start, true
	}
	h.seen[fp] = generation
	return 0, false
}

// Reset discards every recorded state.
func (h *History) Reset() {
	h.seen = make(map[string]int)
}

// Len returns the number of distinct states recorded.
func (h *History) Len() int {
	return len(h.seen)
}
