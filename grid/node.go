package grid

import "github.com/boxesandglue/bopomofo/lm"

// literalFallbackScore is the score given to the synthetic (key, key)
// unigram used when a unit-length node has no dictionary entries at
// all, so every grid position always has at least one traversable
// node (spec §4.3).
const literalFallbackScore = -99.0

// pinnedScore is the walk score of a Pinned node. It lies far above any
// dictionary log-probability, so the walker does not route around a
// pinned node in favour of unpinned ones.
const pinnedScore = 99.0

// Node is a candidate list spanning Length consecutive grid readings.
// Its absolute start position is never stored on the node itself —
// it is always implicit from where the Grid holds it (nodesAt[start])
// — so a node that survives a grid mutation elsewhere never goes
// stale (see grid.go's eviction logic).
type Node struct {
	Length     int
	Candidates []lm.Unigram
	Selected   int

	// Pinned marks a candidate chosen deliberately (Tab, a
	// ChoosingCandidate pick, or the fix-pinned-candidates pass) as
	// opposed to merely being the highest-scoring unigram by default.
	// A pinned node's selection survives future re-walks, and the
	// walker scores the node with pinnedScore.
	Pinned bool

	// overrideScore is a one-shot score that forces this node's
	// candidate to win the next walk; the walker clears it once read.
	overrideScore *float64
}

func newNode(length int, candidates []lm.Unigram) *Node {
	return &Node{Length: length, Candidates: candidates}
}

// CurrentValue is the value of the currently selected candidate.
func (n *Node) CurrentValue() string {
	if len(n.Candidates) == 0 {
		return ""
	}
	return n.Candidates[n.Selected].Value
}

// CurrentScore is the score of the currently selected candidate.
func (n *Node) CurrentScore() float64 {
	if len(n.Candidates) == 0 {
		return literalFallbackScore
	}
	return n.Candidates[n.Selected].Score
}

// SelectCandidateByValue sets the node's selection to the candidate
// whose value matches, marks it Pinned, and returns whether a match
// was found. A caller still decides whether to record the pin in the
// user-override cache (spec §4.6.5); this only touches node state.
func (n *Node) SelectCandidateByValue(value string) bool {
	for i, c := range n.Candidates {
		if c.Value == value {
			n.Selected = i
			n.Pinned = true
			return true
		}
	}
	return false
}

// SetOverrideScore installs a one-shot score used by the very next
// walk only.
func (n *Node) SetOverrideScore(score float64) {
	n.overrideScore = &score
}

// effectiveScore returns (and consumes) the node's score for a single
// walk: pinnedScore for a Pinned node, else the one-shot override if
// set, else the selected candidate's score. A pending override is
// consumed either way.
func (n *Node) effectiveScore() float64 {
	s := n.CurrentScore()
	if n.overrideScore != nil {
		s = *n.overrideScore
		n.overrideScore = nil
	}
	if n.Pinned {
		s = pinnedScore
	}
	return s
}
