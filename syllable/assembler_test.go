package syllable

import (
	"testing"

	"github.com/boxesandglue/bopomofo/syllable/layout"
)

func TestStandardNi3(t *testing.T) {
	a := New(layout.Standard)
	for _, ch := range "su3" {
		if !a.CombineKey(ch) {
			t.Fatalf("key %q should be legal", ch)
		}
	}
	if !a.HasToneMarker() {
		t.Fatal("expected a tone marker after su3")
	}
	if got, want := a.ComposedString(), "ㄋㄧˇ"; got != want {
		t.Fatalf("composed string = %q, want %q", got, want)
	}
}

func TestStandardHao3(t *testing.T) {
	a := New(layout.Standard)
	for _, ch := range "cl3" {
		a.CombineKey(ch)
	}
	if got, want := a.ComposedString(), "ㄏㄠˇ"; got != want {
		t.Fatalf("composed string = %q, want %q", got, want)
	}
}

func TestBackspaceRemovesToneFirst(t *testing.T) {
	a := New(layout.Standard)
	for _, ch := range "su3" {
		a.CombineKey(ch)
	}
	a.Backspace()
	if a.HasToneMarker() {
		t.Fatal("backspace should have removed the tone marker first")
	}
	if got, want := a.ComposedString(), "ㄋㄧ"; got != want {
		t.Fatalf("composed string after backspace = %q, want %q", got, want)
	}
}

func TestHasToneMarkerOnly(t *testing.T) {
	a := New(layout.Standard)
	a.CombineKey('3')
	if !a.HasToneMarkerOnly() {
		t.Fatal("a bare tone key should count as tone-marker-only")
	}
}

func TestRoundTripAcrossLayouts(t *testing.T) {
	for _, kind := range []layout.Kind{layout.Standard, layout.ETen, layout.Hsu, layout.ETen26, layout.IBM} {
		a := New(kind)
		// Drive every legal key once, in some order, to get a non-empty
		// syllable, independent of which layout is in play.
		for _, ch := range "abcdefghijklmnopqrstuvwxyz0123456789-;,./" {
			a.CombineKey(ch)
		}
		key := a.ComposedString()
		if key == "" {
			continue // a layout that accepted nothing from this scan has nothing to round-trip
		}
		b := New(kind)
		for _, ch := range "abcdefghijklmnopqrstuvwxyz0123456789-;,./" {
			b.CombineKey(ch)
		}
		if got := b.ComposedString(); got != key {
			t.Errorf("%s: re-parsing the same keystrokes produced %q, want %q", kind, got, key)
		}
	}
}

func TestIsValidKeyDoesNotMutate(t *testing.T) {
	a := New(layout.Standard)
	if !a.IsValidKey('s') {
		t.Fatal("'s' should be valid on an empty Standard syllable")
	}
	if !a.IsEmpty() {
		t.Fatal("IsValidKey must not mutate the assembler")
	}
}

func TestClear(t *testing.T) {
	a := New(layout.Standard)
	a.CombineKey('s')
	a.Clear()
	if !a.IsEmpty() {
		t.Fatal("Clear should empty the assembler")
	}
}
