package grid

import (
	"testing"

	"github.com/boxesandglue/bopomofo/lm"
)

func fixtureSource() lm.Source {
	return lm.NewStaticDictionary(map[string][]lm.Unigram{
		"ni3":      {{Value: "你", Score: -1}, {Value: "妳", Score: -2}},
		"hao3":     {{Value: "好", Score: -1}},
		"ni3-hao3": {{Value: "你好", Score: -0.5}},
	})
}

func TestWalkPartitionsGrid(t *testing.T) {
	g := New(fixtureSource())
	g.InsertReadingAtCursor("ni3")
	g.InsertReadingAtCursor("hao3")

	path := Walk(g)
	total := 0
	for _, a := range path {
		total += a.Length
	}
	if total != g.Length() {
		t.Fatalf("path covers %d positions, want %d", total, g.Length())
	}
}

func TestWalkPrefersPhraseOverTwoUnigrams(t *testing.T) {
	g := New(fixtureSource())
	g.InsertReadingAtCursor("ni3")
	g.InsertReadingAtCursor("hao3")

	path := Walk(g)
	if len(path) != 1 {
		t.Fatalf("expected the 2-syllable phrase to win as a single anchor, got %d anchors", len(path))
	}
	if got := path[0].Node.CurrentValue(); got != "你好" {
		t.Fatalf("expected 你好, got %q", got)
	}
}

func TestLiteralFallbackWhenNoUnigrams(t *testing.T) {
	g := New(lm.NewStaticDictionary(nil))
	g.InsertReadingAtCursor("zzz")
	path := Walk(g)
	if len(path) != 1 || path[0].Node.CurrentValue() != "zzz" {
		t.Fatalf("expected literal fallback node, got %+v", path)
	}
}

func TestDeleteReadingBeforeCursorAtBoundary(t *testing.T) {
	g := New(fixtureSource())
	if g.DeleteReadingBeforeCursor() {
		t.Fatal("deleting before cursor on an empty grid must fail")
	}
}

func TestRemoveHeadReadingsPreservesSurvivingNodes(t *testing.T) {
	g := New(fixtureSource())
	g.InsertReadingAtCursor("ni3")
	g.InsertReadingAtCursor("hao3")
	before := Walk(g)
	var beforeValue string
	for _, a := range before {
		beforeValue += a.Node.CurrentValue()
	}

	g.RemoveHeadReadings(1)
	if g.Length() != 1 {
		t.Fatalf("expected length 1 after evicting head, got %d", g.Length())
	}
	after := Walk(g)
	if len(after) != 1 || after[0].Node.CurrentValue() != "好" {
		t.Fatalf("expected 好 to survive eviction, got %+v", after)
	}
}

func TestPinSurvivesRewalkAfterFarEdit(t *testing.T) {
	g := New(fixtureSource())
	g.InsertReadingAtCursor("ni3")
	path := Walk(g)
	node := path[0].Node
	if !node.SelectCandidateByValue("妳") {
		t.Fatal("expected 妳 to be a candidate")
	}

	// Editing far away (appending more syllables well beyond maxSpan)
	// must not disturb the pinned node.
	for i := 0; i < g.maxSpan+3; i++ {
		g.InsertReadingAtCursor("hao3")
	}
	path = Walk(g)
	if path[0].Node != node {
		t.Fatal("far-away edits must not rebuild an already-pinned node")
	}
	if path[0].Node.CurrentValue() != "妳" {
		t.Fatalf("pin should survive, got %q", path[0].Node.CurrentValue())
	}
}

func TestSetCursorIndexClamps(t *testing.T) {
	g := New(fixtureSource())
	g.InsertReadingAtCursor("ni3")
	g.SetCursorIndex(-5)
	if g.CursorIndex() != 0 {
		t.Fatalf("expected clamp to 0, got %d", g.CursorIndex())
	}
	g.SetCursorIndex(100)
	if g.CursorIndex() != g.Length() {
		t.Fatalf("expected clamp to %d, got %d", g.Length(), g.CursorIndex())
	}
}
