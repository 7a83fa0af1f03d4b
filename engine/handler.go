// Package engine implements the key handler (component C6) and
// candidate controller (component C7): the finite-state actor that
// consumes a keystroke and the handler's current state and emits a
// new state, orchestrating the syllable assembler, grid, walker and
// user-override cache underneath it. This is the big orchestrator the
// way harfbuzz/ot_shaper.go is for a shaping engine: every other
// package answers a narrow question, this one sequences them.
package engine

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/boxesandglue/bopomofo/grid"
	"github.com/boxesandglue/bopomofo/lm"
	"github.com/boxesandglue/bopomofo/override"
	"github.com/boxesandglue/bopomofo/syllable"
)

// debugMode gates the handler's diagnostic print (the override trace
// in rewalkAndOverride), matching harfbuzz's
// if-debugMode-println convention rather than pulling in a logging
// dependency this library has no business owning.
const debugMode = false

// punctuationListKey is the LM namespace backing the backtick
// punctuation palette (SPEC_FULL §D.3).
const punctuationListKey = "_punctuation_list_"

// pinDistanceFromRight is spec §4.6.1/scenario 5's
// kMaxComposingBufferNeedsToWalkSize: an anchor whose left edge sits
// further than this many positions from the grid's right end is
// pinned so later re-walks cannot silently rewrite old history.
const pinDistanceFromRight = 10

// overrideEpsilon is added to the top unigram score at a position
// when applying a user-override suggestion, so the suggested
// candidate's node wins ties against the otherwise-best decomposition
// without needing to touch every other node's score.
const overrideEpsilon = 0.001

// Handler is the C6 key handler. Construct with NewHandler and wire
// StateCallback/ErrorCallback before calling Handle.
type Handler struct {
	// LM answers unigram lookups for every grid mutation. It may also
	// implement lm.UserPhraseAdder to accept phrases learned via
	// Marking (spec §4.6.4) — a plain lm.Source works too; Enter on
	// an acceptable marking then leaves the model unchanged.
	LM lm.Source

	Config *Config

	// StateCallback receives every state the handler emits. Must not
	// call back into Handle (spec §5: handle() runs to completion
	// before state callbacks are allowed to trigger another key).
	StateCallback func(State)

	// ErrorCallback receives every non-fatal condition from §7,
	// always paired with a state re-emission via StateCallback.
	ErrorCallback func(ErrorKind)

	// Now supplies the time source for override-cache decay. Defaults
	// to time.Now; tests inject a deterministic clock (spec §9).
	Now func() time.Time

	assembler   *syllable.Assembler
	grid        *grid.Grid
	overrides   *override.Cache
	candidates  *CandidateController
	maxNodeSpan int

	// markStart is the grid cursor where Shift+arrow marking began,
	// or -1 when not marking.
	markStart int

	choosingCandidates   bool
	candidateCursorIndex int

	// lastCommittedKey is the joined reading key of the most recently
	// committed buffer, or "" before any commit — the association
	// anchor for SPEC_FULL §D.1's single-hop lookahead.
	lastCommittedKey string
}

// NewHandler returns a ready handler over model, configured by cfg (a
// nil cfg uses NewConfig's defaults).
func NewHandler(model lm.Source, cfg *Config) *Handler {
	if cfg == nil {
		cfg = NewConfig()
	}
	h := &Handler{
		LM:          model,
		Config:      cfg,
		overrides:   override.New(),
		candidates:  NewCandidateController(cfg.CandidateKeys()),
		markStart:   -1,
		maxNodeSpan: grid.DefaultMaxNodeSpan,
	}
	h.assembler = syllable.New(cfg.Layout())
	h.grid = grid.New(model)
	h.grid.SetMaxNodeSpan(h.maxNodeSpan)
	return h
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) emit(s State) {
	if h.StateCallback != nil {
		h.StateCallback(s)
	}
}

func (h *Handler) signalError(e ErrorKind) {
	if h.ErrorCallback != nil {
		h.ErrorCallback(e)
	}
}

// Handle consumes one keystroke and emits zero or more states via
// StateCallback, returning whether the key was consumed (spec §7:
// only an unhandled key on a wholly-Empty state returns false).
func (h *Handler) Handle(k Key) bool {
	if h.choosingCandidates {
		return h.handleCandidateKey(k)
	}
	switch {
	case k.Ctrl:
		return h.handleUnhandled()
	case k.Name == ASCII && h.assembler.IsValidKey(k.Char):
		return h.handleReadingKey(k.Char)
	case k.Name == SPACE && k.Shift:
		return h.handleShiftSpace()
	case k.Name == SPACE && !k.Shift && !h.assembler.IsEmpty() && !h.assembler.HasToneMarkerOnly():
		// Space itself carries no symbol — it only finalizes a
		// pending syllable that has no tone marker at all (tone 1),
		// so feed nothing through CombineKey and compose directly.
		return h.composeSyllable()
	case (k.Name == SPACE || k.Name == DOWN) && !k.Shift && h.assembler.IsEmpty() && h.grid.Length() > 0:
		h.openCandidatesState(h.actualCandidateCursorIndex())
		return true
	case k.Name == ESC:
		return h.handleEsc()
	case k.Name == TAB:
		return h.handleTab(k.Shift)
	case k.Name == LEFT || k.Name == RIGHT || k.Name == HOME || k.Name == END:
		return h.handleCursorMove(k.Name, k.Shift)
	case k.Name == BACKSPACE:
		return h.handleBackspaceDelete(true)
	case k.Name == DELETE:
		return h.handleBackspaceDelete(false)
	case k.Name == RETURN:
		return h.handleEnter()
	case k.Name == ASCII && k.Char == '`':
		return h.handleBacktick()
	case k.Name == ASCII:
		return h.handleOtherASCII(k.Char)
	default:
		return h.handleUnhandled()
	}
}

func (h *Handler) handleUnhandled() bool {
	if h.grid.Length() == 0 && h.assembler.IsEmpty() {
		return false
	}
	h.signalError(ErrInvalidKey)
	h.emitInputting("")
	return true
}

// --- rule 1: reading-legal keys -------------------------------------

func (h *Handler) handleReadingKey(ch rune) bool {
	if !h.assembler.CombineKey(ch) {
		return h.handleUnhandled()
	}
	if !h.assembler.HasToneMarker() {
		h.emitInputting("")
		return true
	}
	return h.composeSyllable()
}

func (h *Handler) composeSyllable() bool {
	key := h.assembler.ComposedString()
	h.assembler.Clear()

	if !h.LM.HasUnigramsFor(key) {
		h.signalError(ErrNoUnigrams)
		if h.grid.Length() == 0 {
			h.emit(emptyIgnoringPreviousState())
		} else {
			h.emitInputting("")
		}
		return true
	}

	h.grid.InsertReadingAtCursor(key)
	evicted := h.evictIfNeeded()
	h.rewalkAndOverride()
	h.fixPinnedCandidates()

	if h.Config.TraditionalMode() {
		i := h.actualCandidateCursorIndex()
		cands := h.candidatesAt(i)
		if len(cands) == 1 {
			h.commitSingleCandidateTraditional(i, cands[0].Value)
			return true
		}
		h.openCandidatesState(i)
		return true
	}

	h.emitInputting(evicted)
	return true
}

// evictIfNeeded drops head readings once the grid exceeds the
// configured composing-buffer size, returning the text of the anchor
// that occupied the freed head position before eviction.
func (h *Handler) evictIfNeeded() string {
	limit := h.Config.ComposingBufferSize()
	if h.grid.Length() <= limit {
		return ""
	}
	path := grid.Walk(h.grid)
	var evicted string
	if len(path) > 0 {
		evicted = path[0].Node.CurrentValue()
	}
	h.grid.RemoveHeadReadings(h.grid.Length() - limit)
	return evicted
}

// rewalkAndOverride consults the user-override cache for the node at
// the candidate cursor and, if it suggests a value this node can
// produce, selects it and installs a one-shot score boost so the next
// walk prefers it (spec §4.6 rule 1, §4.5).
func (h *Handler) rewalkAndOverride() {
	i := h.actualCandidateCursorIndex()
	a, ok := h.anchorAt(i)
	if !ok {
		return
	}
	suggestion, ok := h.overrides.Suggest(h.contextKeyAt(i), h.now())
	if !ok {
		return
	}
	if !selectNodeCandidateUnpinned(a.Node, suggestion) {
		return
	}
	a.Node.SetOverrideScore(maxUnigramScore(a.Node.Candidates) + overrideEpsilon)
	if debugMode {
		fmt.Println("override applied:", suggestion, "at", i)
	}
}

// fixPinnedCandidates pins every walked anchor that has settled far
// enough from the grid's right end that it should never again change under the
// user's feet (spec §4.6.1).
func (h *Handler) fixPinnedCandidates() {
	path := grid.Walk(h.grid)
	w := h.grid.Length()
	for _, a := range path {
		if w-a.Start > pinDistanceFromRight && !a.Node.Pinned {
			a.Node.Pinned = true
		}
	}
}

func selectNodeCandidateUnpinned(n *grid.Node, value string) bool {
	for i, c := range n.Candidates {
		if c.Value == value {
			n.Selected = i
			return true
		}
	}
	return false
}

// phraseKnown reports whether value is already one of key's unigrams
// — a marked span is only acceptable to learn when the specific value
// it spells out is new, not merely when the reading key has never
// been seen at all (spec §4.6.4).
func phraseKnown(m lm.Source, key, value string) bool {
	for _, u := range m.UnigramsFor(key) {
		if u.Value == value {
			return true
		}
	}
	return false
}

func maxUnigramScore(cands []lm.Unigram) float64 {
	best := math.Inf(-1)
	for _, c := range cands {
		if c.Score > best {
			best = c.Score
		}
	}
	return best
}

// --- rule 2: shift+space ---------------------------------------------

func (h *Handler) handleShiftSpace() bool {
	if h.Config.PutLowercaseLettersInBuffer() {
		h.grid.InsertReadingAtCursor(" ")
		evicted := h.evictIfNeeded()
		h.rewalkAndOverride()
		h.fixPinnedCandidates()
		h.emitInputting(evicted)
		return true
	}
	readingKey := lm.JoinReadings(h.grid.Readings())
	buffer, _, _ := h.buildComposingBuffer()
	h.recordCommit(readingKey, buffer+" ")
	h.reset()
	h.emit(committingState(buffer + " "))
	return true
}

// --- rule 4: ESC -------------------------------------------------------

func (h *Handler) handleEsc() bool {
	if h.grid.Length() == 0 && h.assembler.IsEmpty() {
		return false
	}
	if h.Config.EscClearsEntireBuffer() {
		h.reset()
		h.emit(emptyIgnoringPreviousState())
		return true
	}
	if !h.assembler.IsEmpty() {
		h.assembler.Clear()
	}
	if h.grid.Length() == 0 {
		h.emit(emptyIgnoringPreviousState())
		return true
	}
	h.emitInputting("")
	return true
}

// --- rule 5: Tab --------------------------------------------------------

func (h *Handler) handleTab(shift bool) bool {
	if !(h.assembler.IsEmpty() && h.grid.Length() > 0) {
		return h.handleUnhandled()
	}
	i := h.actualCandidateCursorIndex()
	a, ok := h.anchorAt(i)
	if !ok || len(a.Node.Candidates) == 0 {
		h.signalError(ErrInvalidKey)
		h.emitInputting("")
		return true
	}
	n := a.Node
	switch {
	case !n.Pinned && !shift:
		target := 0
		if n.Candidates[0].Value == n.CurrentValue() {
			target = 1 % len(n.Candidates)
		}
		n.Selected = target
	case !n.Pinned && shift:
		target := len(n.Candidates) - 1
		if n.Candidates[target].Value == n.CurrentValue() {
			target = (target - 1 + len(n.Candidates)) % len(n.Candidates)
		}
		n.Selected = target
	case shift:
		n.Selected = (n.Selected - 1 + len(n.Candidates)) % len(n.Candidates)
	default:
		n.Selected = (n.Selected + 1) % len(n.Candidates)
	}
	n.Pinned = true
	h.emitInputting("")
	return true
}

// --- rule 6: cursor movement / marking ---------------------------------

func (h *Handler) handleCursorMove(name KeyName, shift bool) bool {
	if h.grid.Length() == 0 {
		return h.handleUnhandled()
	}
	prev := h.grid.CursorIndex()
	ok := true
	switch name {
	case LEFT:
		if prev == 0 {
			ok = false
		} else {
			h.grid.SetCursorIndex(prev - 1)
		}
	case RIGHT:
		if prev == h.grid.Length() {
			ok = false
		} else {
			h.grid.SetCursorIndex(prev + 1)
		}
	case HOME:
		h.grid.SetCursorIndex(0)
	case END:
		h.grid.SetCursorIndex(h.grid.Length())
	}
	if !ok {
		h.signalError(ErrCursorBoundary)
		h.emitInputting("")
		return true
	}
	if shift {
		if h.markStart < 0 {
			h.markStart = prev
		}
		if h.markStart != h.grid.CursorIndex() {
			h.emitMarking()
			return true
		}
	} else {
		h.markStart = -1
	}
	h.emitInputting("")
	return true
}

func (h *Handler) emitMarking() {
	lo, hi := h.markStart, h.grid.CursorIndex()
	if lo > hi {
		lo, hi = hi, lo
	}
	path := grid.Walk(h.grid)
	var b strings.Builder
	for _, a := range path {
		b.WriteString(a.Node.CurrentValue())
	}
	buffer := b.String()
	headEnd := h.gridIndexToUTF8Offset(path, lo)
	markEnd := h.gridIndexToUTF8Offset(path, hi)
	runes := []rune(buffer)
	head := string(runes[:headEnd])
	marked := string(runes[headEnd:markEnd])
	tail := string(runes[markEnd:])

	readings := h.grid.Readings()
	readingSlice := readings[lo:hi]
	readingKey := lm.JoinReadings(readingSlice)
	acceptable := len(readingSlice) >= 2 && len(readingSlice) <= 6 && !phraseKnown(h.LM, readingKey, marked)

	cursor := h.gridIndexToUTF8Offset(path, h.grid.CursorIndex())
	h.emit(markingState(buffer, cursor, h.tooltipAt(path, h.grid.CursorIndex()), h.markStart, head, marked, tail, strings.Join(readingSlice, " "), acceptable))
}

// --- rule 7: backspace / delete -----------------------------------------

func (h *Handler) handleBackspaceDelete(isBackspace bool) bool {
	if h.assembler.HasToneMarkerOnly() {
		h.assembler.Backspace()
		h.emitInputting("")
		return true
	}
	if !h.assembler.IsEmpty() {
		if !isBackspace {
			h.signalError(ErrDeleteWithReadingActive)
			h.emitInputting("")
			return true
		}
		h.assembler.Backspace()
		h.emitInputting("")
		return true
	}

	var ok bool
	if isBackspace {
		ok = h.grid.DeleteReadingBeforeCursor()
	} else {
		ok = h.grid.DeleteReadingAfterCursor()
	}
	if !ok {
		h.signalError(ErrDeleteBoundary)
		h.emitInputting("")
		return true
	}
	if h.grid.Length() == 0 {
		h.emit(emptyIgnoringPreviousState())
		return true
	}
	h.emitInputting("")
	return true
}

// --- rule 8: Enter -------------------------------------------------------

func (h *Handler) handleEnter() bool {
	if h.markStart >= 0 {
		return h.handleEnterWhileMarking()
	}
	if h.grid.Length() == 0 && h.assembler.IsEmpty() {
		return false
	}
	readingKey := lm.JoinReadings(h.grid.Readings())
	buffer, _, _ := h.buildComposingBuffer()
	h.recordCommit(readingKey, buffer)
	h.reset()
	h.emit(committingState(buffer))
	return true
}

func (h *Handler) handleEnterWhileMarking() bool {
	lo, hi := h.markStart, h.grid.CursorIndex()
	if lo > hi {
		lo, hi = hi, lo
	}
	readings := h.grid.Readings()
	readingSlice := readings[lo:hi]
	readingKey := lm.JoinReadings(readingSlice)

	path := grid.Walk(h.grid)
	var b strings.Builder
	for _, a := range path {
		b.WriteString(a.Node.CurrentValue())
	}
	buffer := b.String()
	runes := []rune(buffer)
	phrase := string(runes[h.gridIndexToUTF8Offset(path, lo):h.gridIndexToUTF8Offset(path, hi)])

	acceptable := len(readingSlice) >= 2 && len(readingSlice) <= 6 && !phraseKnown(h.LM, readingKey, phrase)
	if !acceptable {
		h.signalError(ErrMarkingNotAcceptable)
		h.emitMarking()
		return true
	}

	if adder, ok := h.LM.(lm.UserPhraseAdder); ok {
		adder.AddUserPhrase(readingKey, phrase)
	}
	h.markStart = -1
	h.emitInputting("")
	return true
}

// --- rule 9: backtick / punctuation palette ------------------------------

func (h *Handler) handleBacktick() bool {
	if !h.assembler.IsEmpty() {
		h.signalError(ErrInvalidKey)
		h.emitInputting("")
		return true
	}
	if !h.LM.HasUnigramsFor(punctuationListKey) {
		h.signalError(ErrInvalidKey)
		if h.grid.Length() == 0 {
			h.emit(emptyIgnoringPreviousState())
		} else {
			h.emitInputting("")
		}
		return true
	}
	h.grid.InsertReadingAtCursor(punctuationListKey)
	h.evictIfNeeded()
	h.rewalkAndOverride()
	h.fixPinnedCandidates()
	h.openCandidatesState(h.actualCandidateCursorIndex())
	return true
}

// --- rule 10: other ASCII -------------------------------------------------

func (h *Handler) handleOtherASCII(ch rune) bool {
	layoutName := h.assembler.Kind().String()
	for _, key := range []string{
		fmt.Sprintf("_punctuation_%s_%c", layoutName, ch),
		fmt.Sprintf("_punctuation_%c", ch),
	} {
		if h.LM.HasUnigramsFor(key) {
			return h.insertSingleKeyReading(key)
		}
	}
	if ch >= 'A' && ch <= 'Z' {
		if h.Config.PutLowercaseLettersInBuffer() {
			return h.insertSingleKeyReading(fmt.Sprintf("_letter_%c", ch))
		}
		readingKey := lm.JoinReadings(h.grid.Readings())
		buffer, _, _ := h.buildComposingBuffer()
		h.recordCommit(readingKey, buffer+string(ch))
		h.reset()
		h.emit(committingState(buffer + string(ch)))
		return true
	}
	return h.handleUnhandled()
}

func (h *Handler) insertSingleKeyReading(key string) bool {
	h.grid.InsertReadingAtCursor(key)
	evicted := h.evictIfNeeded()
	h.rewalkAndOverride()
	h.fixPinnedCandidates()
	h.emitInputting(evicted)
	return true
}

// --- candidate-window navigation (C7) -------------------------------------

func (h *Handler) openCandidatesState(i int) {
	cands := h.candidatesAt(i)
	h.candidates.SetCandidates(cands)
	h.choosingCandidates = true
	h.candidateCursorIndex = i
	buffer, cursor, _ := h.buildComposingBuffer()
	h.emit(choosingCandidateState(buffer, cursor, cands))
}

func (h *Handler) handleCandidateKey(k Key) bool {
	switch k.Name {
	case ESC:
		h.choosingCandidates = false
		h.candidates.SetCandidates(nil)
		h.emitInputting("")
		return true
	case UP, DOWN, LEFT, RIGHT:
		if !h.candidates.MoveByArrow(k.Name) {
			h.signalError(ErrCursorBoundary)
		}
		h.emitChoosingCandidate()
		return true
	case PAGE_UP:
		if !h.candidates.PageUp() {
			h.signalError(ErrCursorBoundary)
		}
		h.emitChoosingCandidate()
		return true
	case PAGE_DOWN:
		if !h.candidates.PageDown() {
			h.signalError(ErrCursorBoundary)
		}
		h.emitChoosingCandidate()
		return true
	case HOME:
		h.candidates.Home()
		h.emitChoosingCandidate()
		return true
	case END:
		h.candidates.Last()
		h.emitChoosingCandidate()
		return true
	case RETURN:
		if cand, ok := h.candidates.SelectedCandidate(); ok {
			h.selectCandidate(cand.Value)
		}
		return true
	case ASCII:
		if cand, ok := h.candidates.SelectedCandidateWithKey(k.Char); ok {
			h.selectCandidate(cand.Value)
			return true
		}
		h.signalError(ErrInvalidKey)
		h.emitChoosingCandidate()
		return true
	default:
		h.signalError(ErrInvalidKey)
		h.emitChoosingCandidate()
		return true
	}
}

func (h *Handler) emitChoosingCandidate() {
	buffer, cursor, _ := h.buildComposingBuffer()
	h.emit(choosingCandidateState(buffer, cursor, h.candidates.CurrentPage()))
}

// selectCandidate implements pin_node (spec §4.6.5): fix the chosen
// candidate on its node, record an override observation unless the
// score is garbage, re-walk, and optionally move the cursor.
func (h *Handler) selectCandidate(value string) {
	h.pinNode(h.candidateCursorIndex, value)
	h.choosingCandidates = false
	h.candidates.SetCandidates(nil)
	h.emitInputting("")
}

func (h *Handler) pinNode(i int, value string) {
	a, ok := h.anchorAt(i)
	if !ok || !a.Node.SelectCandidateByValue(value) {
		return
	}
	if a.Node.CurrentScore() > override.NeverRecordScore {
		h.overrides.Observe(h.contextKeyAt(i), value, a.Node.CurrentScore(), h.now())
	}
	if h.Config.MoveCursorAfterSelection() {
		for _, anchor := range grid.Walk(h.grid) {
			if anchor.Node == a.Node {
				h.grid.SetCursorIndex(anchor.Start + anchor.Length)
				break
			}
		}
	}
}

func (h *Handler) commitSingleCandidateTraditional(i int, value string) {
	h.pinNode(i, value)
	readingKey := lm.JoinReadings(h.grid.Readings())
	buffer, _, _ := h.buildComposingBuffer()
	h.recordCommit(readingKey, buffer)
	h.reset()
	h.emit(committingState(buffer))
}

// recordCommit updates the associated-phrase bookkeeping for a commit
// (SPEC_FULL §D.1): it tells the language model that text followed
// whatever key was committed last, then refreshes the candidate
// controller's secondary page with the lookahead for this commit's own
// key, ready for the next one.
func (h *Handler) recordCommit(readingKey, text string) {
	if h.lastCommittedKey != "" {
		if rec, ok := h.LM.(lm.AssociationRecorder); ok {
			rec.RecordAssociation(h.lastCommittedKey, text)
		}
	}
	h.lastCommittedKey = readingKey

	var page []Candidate
	if src, ok := h.LM.(lm.AssociatedPhraseSource); ok {
		for _, phrase := range src.AssociatedPhrasesFor(readingKey) {
			page = append(page, Candidate{Value: phrase, Reading: readingKey})
		}
	}
	h.candidates.SetAssociatedCandidates(page)
}

// AssociatedCandidates returns the lookahead phrases that commonly
// follow the most recent commit (SPEC_FULL §D.1), or nil if the
// language model exposes none for that key.
func (h *Handler) AssociatedCandidates() []Candidate {
	return h.candidates.AssociatedCandidates()
}

// --- shared helpers --------------------------------------------------------

func (h *Handler) reset() {
	h.assembler.Clear()
	h.grid = grid.New(h.LM)
	h.grid.SetMaxNodeSpan(h.maxNodeSpan)
	h.candidates.SetCandidates(nil)
	h.choosingCandidates = false
	h.markStart = -1
}

func (h *Handler) emitInputting(evicted string) {
	buffer, cursor, tooltip := h.buildComposingBuffer()
	h.emit(inputtingState(buffer, cursor, tooltip, evicted))
}

// buildComposingBuffer implements spec §4.6.3: concatenate the walked
// path's values, derive the UTF-8 cursor by walking codepoint counts
// up to the grid cursor, and note a tooltip when the cursor falls
// inside a node whose value is shorter (in codepoints) than its
// reading span.
func (h *Handler) buildComposingBuffer() (buffer string, cursor int, tooltip string) {
	path := grid.Walk(h.grid)
	var b strings.Builder
	for _, a := range path {
		b.WriteString(a.Node.CurrentValue())
	}
	buffer = b.String()
	cursor = h.gridIndexToUTF8Offset(path, h.grid.CursorIndex())
	tooltip = h.tooltipAt(path, h.grid.CursorIndex())
	return buffer, cursor, tooltip
}

func (h *Handler) gridIndexToUTF8Offset(path []grid.Anchor, i int) int {
	offset, idx := 0, 0
	for _, a := range path {
		val := a.Node.CurrentValue()
		cps := utf8.RuneCountInString(val)
		if idx+a.Length <= i {
			offset += cps
			idx += a.Length
			continue
		}
		if idx >= i {
			break
		}
		distance := i - idx
		take := distance
		if cps < take {
			take = cps
		}
		offset += take
		break
	}
	return offset
}

func (h *Handler) tooltipAt(path []grid.Anchor, i int) string {
	readings := h.grid.Readings()
	idx := 0
	for _, a := range path {
		if i > idx && i < idx+a.Length {
			cps := utf8.RuneCountInString(a.Node.CurrentValue())
			if cps < a.Length && i-1 >= 0 && i < len(readings) {
				return fmt.Sprintf("cursor between syllables %s and %s", readings[i-1], readings[i])
			}
			return ""
		}
		idx += a.Length
	}
	return ""
}

// actualCandidateCursorIndex implements spec §4.6.2.
func (h *Handler) actualCandidateCursorIndex() int {
	cursor := h.grid.CursorIndex()
	w := h.grid.Length()
	if h.Config.SelectPhraseAfterCursor() {
		if cursor < w {
			cursor++
		}
	} else if cursor == 0 && w > 0 {
		cursor++
	}
	return cursor
}

// anchorAt returns the walked anchor whose span touches grid index i.
func (h *Handler) anchorAt(i int) (grid.Anchor, bool) {
	for _, a := range grid.Walk(h.grid) {
		if i >= a.Start && i <= a.Start+a.Length {
			return a, true
		}
	}
	return grid.Anchor{}, false
}

func (h *Handler) candidatesAt(i int) []Candidate {
	a, ok := h.anchorAt(i)
	if !ok {
		return nil
	}
	out := make([]Candidate, len(a.Node.Candidates))
	for idx, c := range a.Node.Candidates {
		out[idx] = Candidate{Value: c.Value, Reading: c.Key}
	}
	return out
}

func (h *Handler) contextKeyAt(i int) string {
	path := grid.Walk(h.grid)
	var prev, cur, next string
	for idx, a := range path {
		if i >= a.Start && i <= a.Start+a.Length {
			cur = a.Node.CurrentValue()
			if idx > 0 {
				prev = path[idx-1].Node.CurrentValue()
			}
			if idx+1 < len(path) {
				next = path[idx+1].Node.CurrentValue()
			}
			break
		}
	}
	return override.ContextKey(prev, cur, next)
}
