// Package syllable implements the syllable assembler (component C1):
// it accumulates keystrokes into a Bopomofo (or Hanyu Pinyin) syllable
// until a tone marker or space triggers composition. It is pure
// keyboard logic — it never looks at the grid.
package syllable

import (
	"strings"

	"github.com/boxesandglue/bopomofo/syllable/layout"
)

// Assembler wraps a keyboard Layout and accumulates a partial
// syllable one keystroke at a time.
type Assembler struct {
	l        layout.Layout
	syllable layout.Syllable
}

// New returns an empty assembler for the given layout kind.
func New(kind layout.Kind) *Assembler {
	return &Assembler{l: layout.ForKind(kind)}
}

// Kind reports the underlying layout's kind.
func (a *Assembler) Kind() layout.Kind { return a.l.Kind() }

// IsValidKey reports whether ch is a legal keystroke given what has
// already been accumulated, without mutating the assembler.
func (a *Assembler) IsValidKey(ch rune) bool {
	_, ok := a.l.Resolve(ch, a.syllable)
	return ok
}

// CombineKey appends ch to the partial syllable if legal, returning
// false without effect otherwise.
func (a *Assembler) CombineKey(ch rune) bool {
	sym, ok := a.l.Resolve(ch, a.syllable)
	if !ok {
		return false
	}
	a.syllable = a.syllable.Put(sym)
	return true
}

// HasToneMarker reports whether a tone has been placed.
func (a *Assembler) HasToneMarker() bool {
	return a.syllable.Tone.Text != ""
}

// HasToneMarkerOnly reports whether the tone is the only symbol
// placed so far (the user pressed a tone marker without typing an
// initial/medial/final first).
func (a *Assembler) HasToneMarkerOnly() bool {
	return a.syllable.ToneOnly()
}

// IsEmpty reports whether nothing has been accumulated.
func (a *Assembler) IsEmpty() bool {
	return a.syllable.Empty()
}

// ComposedString is the absolute-order key for the completed
// syllable: initial, then medial, then final, then tone, concatenated
// in that fixed order regardless of the order the user typed them in
// (this is what makes the key independent of the originating layout
// and of keystroke order within a layout, per spec §3/§6).
func (a *Assembler) ComposedString() string {
	var b strings.Builder
	b.WriteString(a.syllable.Initial.Text)
	b.WriteString(a.syllable.Medial.Text)
	b.WriteString(a.syllable.Final.Text)
	b.WriteString(a.syllable.Tone.Text)
	return b.String()
}

// Clear resets the assembler to empty.
func (a *Assembler) Clear() {
	a.syllable = layout.Syllable{}
}

// Backspace removes one filled slot, taking them in the reverse of the
// order ComposedString concatenates them: tone, final, medial, then
// initial. This is not necessarily the slot filled last.
func (a *Assembler) Backspace() {
	switch {
	case a.syllable.Tone.Text != "":
		a.syllable.Tone = layout.Symbol{}
	case a.syllable.Final.Text != "":
		a.syllable.Final = layout.Symbol{}
	case a.syllable.Medial.Text != "":
		a.syllable.Medial = layout.Symbol{}
	case a.syllable.Initial.Text != "":
		a.syllable.Initial = layout.Symbol{}
	}
}
