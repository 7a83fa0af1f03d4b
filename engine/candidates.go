package engine

import "strings"

// CandidateController is the C7 candidate controller: it paginates a
// flat candidate list over a configurable hotkey set and maps
// navigation keys to page/item movement, flipping which axis is
// "page" and which is "item" when the candidate window is drawn
// vertically (spec §4.7).
type CandidateController struct {
	keys       []rune
	vertical   bool
	candidates []Candidate
	selected   int

	// associated holds the secondary, associated-phrase page surfaced
	// after a commit (SPEC_FULL §D.1) — a single-hop lookahead list,
	// not paginated alongside the primary candidate list.
	associated []Candidate
}

// NewCandidateController returns an empty controller using keys as
// the hotkey set. keys must already be a valid 4-15 unique lowercase
// set; Config.SetCandidateKeys enforces that before it reaches here.
func NewCandidateController(keys string) *CandidateController {
	return &CandidateController{keys: []rune(keys)}
}

func (c *CandidateController) SetVertical(v bool) { c.vertical = v }

// SetCandidates installs a fresh candidate list and resets selection
// to the first entry.
func (c *CandidateController) SetCandidates(cands []Candidate) {
	c.candidates = cands
	c.selected = 0
}

func (c *CandidateController) PageSize() int {
	if len(c.keys) == 0 {
		return len(defaultCandidateKeys)
	}
	return len(c.keys)
}

// CurrentPage returns the slice of candidates on the page containing
// the current selection.
func (c *CandidateController) CurrentPage() []Candidate {
	if len(c.candidates) == 0 {
		return nil
	}
	size := c.PageSize()
	start := (c.selected / size) * size
	end := start + size
	if end > len(c.candidates) {
		end = len(c.candidates)
	}
	return c.candidates[start:end]
}

func (c *CandidateController) pageStart() int {
	return (c.selected / c.PageSize()) * c.PageSize()
}

// PageDown moves to the first entry of the next page, clamped at the
// last page. Returns false if already on the last page.
func (c *CandidateController) PageDown() bool {
	next := c.pageStart() + c.PageSize()
	if next >= len(c.candidates) {
		return false
	}
	c.selected = next
	return true
}

// PageUp moves to the first entry of the previous page. Returns false
// if already on the first page.
func (c *CandidateController) PageUp() bool {
	if c.pageStart() == 0 {
		return false
	}
	c.selected = c.pageStart() - c.PageSize()
	return true
}

func (c *CandidateController) itemNext() bool {
	if c.selected+1 >= len(c.candidates) {
		return false
	}
	c.selected++
	return true
}

func (c *CandidateController) itemPrev() bool {
	if c.selected == 0 {
		return false
	}
	c.selected--
	return true
}

// Home jumps to the first candidate overall.
func (c *CandidateController) Home() bool {
	if c.selected == 0 {
		return false
	}
	c.selected = 0
	return true
}

// Last jumps to the final candidate overall.
func (c *CandidateController) Last() bool {
	if len(c.candidates) == 0 || c.selected == len(c.candidates)-1 {
		return false
	}
	c.selected = len(c.candidates) - 1
	return true
}

// MoveByArrow maps an arrow keystroke to a page or item move,
// flipping the axis when the window is vertical: in a vertical
// window Up/Down walk items and Left/Right turn pages, in a
// horizontal one it's the reverse.
func (c *CandidateController) MoveByArrow(name KeyName) bool {
	switch name {
	case UP:
		if c.vertical {
			return c.itemPrev()
		}
		return c.PageUp()
	case DOWN:
		if c.vertical {
			return c.itemNext()
		}
		return c.PageDown()
	case LEFT:
		if c.vertical {
			return c.PageUp()
		}
		return c.itemPrev()
	case RIGHT:
		if c.vertical {
			return c.PageDown()
		}
		return c.itemNext()
	default:
		return false
	}
}

// SelectedCandidate returns the currently highlighted candidate.
func (c *CandidateController) SelectedCandidate() (Candidate, bool) {
	if c.selected < 0 || c.selected >= len(c.candidates) {
		return Candidate{}, false
	}
	return c.candidates[c.selected], true
}

// SelectedCandidateWithKey returns the candidate at the page slot
// mapped to ch, if ch is one of the configured hotkeys and that slot
// is occupied on the current page.
func (c *CandidateController) SelectedCandidateWithKey(ch rune) (Candidate, bool) {
	slot := strings.IndexRune(string(c.keys), ch)
	if slot < 0 {
		return Candidate{}, false
	}
	page := c.CurrentPage()
	if slot >= len(page) {
		return Candidate{}, false
	}
	return page[slot], true
}

// PageEntries returns the current page as (candidate, keyCap,
// selected) triples, the shape the host UI contract wants (spec §6).
func (c *CandidateController) PageEntries() []PageEntry {
	page := c.CurrentPage()
	start := c.pageStart()
	out := make([]PageEntry, len(page))
	for i, cand := range page {
		out[i] = PageEntry{
			Candidate: cand,
			KeyCap:    c.keys[i],
			Selected:  start+i == c.selected,
		}
	}
	return out
}

// PageEntry is one rendered row of a candidate page.
type PageEntry struct {
	Candidate Candidate
	KeyCap    rune
	Selected  bool
}

// SetAssociatedCandidates installs the secondary associated-phrase
// page (SPEC_FULL §D.1), replacing whatever the previous commit left
// behind.
func (c *CandidateController) SetAssociatedCandidates(cands []Candidate) {
	c.associated = cands
}

// AssociatedCandidates returns the lookahead phrases that commonly
// follow the most recent commit, or nil if the language model doesn't
// expose any for that key.
func (c *CandidateController) AssociatedCandidates() []Candidate {
	return c.associated
}
