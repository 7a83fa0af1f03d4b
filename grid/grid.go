// Package grid implements the grid builder (component C3) and the
// Viterbi walker (component C4): an ordered sequence of readings with
// a cursor, the DAG of candidate nodes it spans, and the
// maximum-likelihood path search over that DAG.
package grid

import (
	"github.com/boxesandglue/bopomofo/lm"
)

// DefaultMaxNodeSpan bounds how many consecutive readings a single
// node may join, keeping node materialization and the O(W²) walk
// bounded even at the maximum composing-buffer width (spec §5).
const DefaultMaxNodeSpan = 8

// Grid is the C3 grid builder: readings, a cursor, and the DAG of
// nodes they produce.
type Grid struct {
	readings []string
	cursor   int
	nodesAt  [][]*Node
	maxSpan  int
	source   lm.Source
}

// New returns an empty grid backed by source, which is queried for
// unigrams whenever new nodes must be materialized.
func New(source lm.Source) *Grid {
	return &Grid{source: source, maxSpan: DefaultMaxNodeSpan}
}

// SetMaxNodeSpan overrides DefaultMaxNodeSpan; it clamps to >= 1.
func (g *Grid) SetMaxNodeSpan(n int) {
	if n < 1 {
		n = 1
	}
	g.maxSpan = n
}

// Length is the grid width W, in readings.
func (g *Grid) Length() int { return len(g.readings) }

// Readings returns the grid's reading keys, left to right. The
// returned slice must not be mutated.
func (g *Grid) Readings() []string { return g.readings }

// CursorIndex returns the current cursor, in [0, Length()].
func (g *Grid) CursorIndex() int { return g.cursor }

// SetCursorIndex clamps i to [0, Length()] and sets the cursor.
func (g *Grid) SetCursorIndex(i int) {
	if i < 0 {
		i = 0
	}
	if w := g.Length(); i > w {
		i = w
	}
	g.cursor = i
}

// InsertReadingAtCursor inserts key as a new reading at the cursor,
// advances the cursor past it, and rebuilds the nodes whose span
// could possibly have changed.
func (g *Grid) InsertReadingAtCursor(key string) {
	p := g.cursor
	g.readings = insertString(g.readings, p, key)
	g.nodesAt = insertNodes(g.nodesAt, p, nil)
	g.dropNodesCrossing(p)
	g.cursor = p + 1
	g.rebuildBand(p)
}

// DeleteReadingBeforeCursor deletes the reading immediately before the
// cursor (Backspace in the grid), returning false if the cursor is
// already at the start.
func (g *Grid) DeleteReadingBeforeCursor() bool {
	if g.cursor == 0 {
		return false
	}
	p := g.cursor - 1
	g.removeAt(p)
	g.cursor = p
	g.rebuildBand(p)
	return true
}

// DeleteReadingAfterCursor deletes the reading immediately after the
// cursor (Delete), returning false if the cursor is already at the
// end.
func (g *Grid) DeleteReadingAfterCursor() bool {
	if g.cursor == g.Length() {
		return false
	}
	g.removeAt(g.cursor)
	g.rebuildBand(g.cursor)
	return true
}

// RemoveHeadReadings evicts the first n readings (spec §3: "excess
// readings are evicted from the head"). Because Node never stores an
// absolute start position, the surviving nodes need no repair beyond
// the slice shift: their span and candidates are unaffected by what
// came before them.
func (g *Grid) RemoveHeadReadings(n int) {
	if n <= 0 {
		return
	}
	if n > len(g.readings) {
		n = len(g.readings)
	}
	g.readings = append([]string(nil), g.readings[n:]...)
	g.nodesAt = append([][]*Node(nil), g.nodesAt[n:]...)
	g.cursor -= n
	if g.cursor < 0 {
		g.cursor = 0
	}
}

// NodesCrossingOrEndingAt returns every node whose span [start,
// start+Length) touches grid index i, i.e. start <= i <= start+Length.
func (g *Grid) NodesCrossingOrEndingAt(i int) []*Node {
	var out []*Node
	for start := 0; start <= i && start < len(g.nodesAt); start++ {
		for _, n := range g.nodesAt[start] {
			if start+n.Length >= i {
				out = append(out, n)
			}
		}
	}
	return out
}

// removeAt deletes the reading at position p and drops every node
// whose span crosses it, without touching nodes fully to either side.
func (g *Grid) removeAt(p int) {
	g.readings = append(g.readings[:p], g.readings[p+1:]...)
	g.nodesAt = append(g.nodesAt[:p], g.nodesAt[p+1:]...)
	g.dropNodesCrossing(p)
}

// dropNodesCrossing removes, from every start before p, any node
// whose span reaches past p: such a node's join key described
// readings that have since shifted and is no longer valid.
func (g *Grid) dropNodesCrossing(p int) {
	for start := 0; start < p && start < len(g.nodesAt); start++ {
		kept := g.nodesAt[start][:0]
		for _, n := range g.nodesAt[start] {
			if start+n.Length <= p {
				kept = append(kept, n)
			}
		}
		g.nodesAt[start] = kept
	}
}

// rebuildBand recomputes the reachable node set for every start
// position whose candidates could have changed because of an edit at
// p: the maxSpan-1 positions before p, through p itself. A node that
// was already Pinned is never discarded by this pass — only a node
// whose span was dropped by dropNodesCrossing (because the edit fell
// inside it) can lose a pin. Positions outside the band — in
// particular everything the fix-pinned-candidates pass (spec §4.6.1)
// has pinned far from the cursor — are left completely untouched.
func (g *Grid) rebuildBand(p int) {
	lo := p - g.maxSpan + 1
	if lo < 0 {
		lo = 0
	}
	hi := p
	if w := g.Length(); hi > w-1 {
		hi = w - 1
	}
	for start := lo; start <= hi; start++ {
		g.nodesAt[start] = g.buildNodesAt(start, g.nodesAt[start])
	}
}

// buildNodesAt materializes every node starting at start, for every
// span length the current grid width allows, querying the language
// model for each. A pinned node already present in preserve is kept
// by reference instead of being recomputed, so a deliberate selection
// survives a rebuild of its own start position.
func (g *Grid) buildNodesAt(start int, preserve []*Node) []*Node {
	w := g.Length()
	maxLen := g.maxSpan
	if w-start < maxLen {
		maxLen = w - start
	}
	pinnedByLength := make(map[int]*Node, len(preserve))
	for _, n := range preserve {
		if n.Pinned {
			pinnedByLength[n.Length] = n
		}
	}

	var out []*Node
	for length := 1; length <= maxLen; length++ {
		if pinned, ok := pinnedByLength[length]; ok {
			out = append(out, pinned)
			continue
		}
		key := lm.JoinReadings(g.readings[start : start+length])
		unigrams := g.source.UnigramsFor(key)
		if len(unigrams) == 0 {
			if length == 1 {
				out = append(out, newNode(1, []lm.Unigram{{Key: key, Value: key, Score: literalFallbackScore}}))
			}
			continue
		}
		out = append(out, newNode(length, unigrams))
	}
	return out
}

func insertString(s []string, p int, v string) []string {
	s = append(s, "")
	copy(s[p+1:], s[p:])
	s[p] = v
	return s
}

func insertNodes(s [][]*Node, p int, v []*Node) [][]*Node {
	s = append(s, nil)
	copy(s[p+1:], s[p:])
	s[p] = v
	return s
}
