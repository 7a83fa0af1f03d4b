package engine

import (
	"testing"
	"time"

	"github.com/boxesandglue/bopomofo/grid"
	"github.com/boxesandglue/bopomofo/lm"
)

// fixtureModel backs every scenario test: "su3" under the Standard
// layout composes to absolute-order key "ㄋㄧˇ" (你/妳), "cl3" composes
// to "ㄏㄠˇ" (好). There is deliberately no two-syllable phrase entry
// for "你好" — the walked path assembles it from two one-syllable
// anchors instead, which keeps the marking scenario's "phrase not
// already known" condition true without a second fixture.
func fixtureModel() *lm.Facade {
	static := lm.NewStaticDictionary(map[string][]lm.Unigram{
		"ㄋㄧˇ":              {{Value: "你", Score: -1}, {Value: "妳", Score: -2}},
		"ㄋㄧ":               {{Value: "妮", Score: -1}},
		"ㄏㄠˇ":              {{Value: "好", Score: -1}},
		punctuationListKey: {{Value: "，", Score: -1}, {Value: "。", Score: -1}},
	})
	return &lm.Facade{Static: static, User: lm.NewUserPhrases()}
}

func typeKeys(h *Handler, s string) {
	for _, r := range s {
		h.Handle(AsciiKey(r))
	}
}

func newTestHandler() (*Handler, *State) {
	h := NewHandler(fixtureModel(), NewConfig())
	t0 := time.Unix(1_700_000_000, 0)
	h.Now = func() time.Time { return t0 }
	var last State
	h.StateCallback = func(s State) { last = s }
	return h, &last
}

func TestSu3EntersInputtingThenCandidates(t *testing.T) {
	h, last := newTestHandler()
	typeKeys(h, "su3")
	if last.Kind != Inputting || last.Buffer != "你" || last.Cursor != 1 {
		t.Fatalf("after su3: %+v", last)
	}

	h.Handle(Key{Name: SPACE})
	if last.Kind != ChoosingCandidate {
		t.Fatalf("expected ChoosingCandidate, got %+v", last)
	}
	values := map[string]bool{}
	for _, c := range last.Candidates {
		values[c.Value] = true
	}
	if !values["你"] || !values["妳"] {
		t.Fatalf("expected 你 and 妳 among candidates, got %+v", last.Candidates)
	}
}

func TestSu3Cl3BackspacesToEmptyIgnoringPrevious(t *testing.T) {
	h, last := newTestHandler()
	typeKeys(h, "su3cl3")
	if last.Kind != Inputting || last.Buffer != "你好" || last.Cursor != 2 {
		t.Fatalf("after su3cl3: %+v", last)
	}

	h.Handle(Key{Name: BACKSPACE})
	if last.Kind != Inputting || last.Buffer != "你" || last.Cursor != 1 {
		t.Fatalf("after first backspace: %+v", last)
	}

	h.Handle(Key{Name: BACKSPACE})
	if last.Kind != EmptyIgnoringPrevious {
		t.Fatalf("after second backspace: %+v", last)
	}
}

func TestBacktickOpensPunctuationPalette(t *testing.T) {
	h, last := newTestHandler()
	h.Handle(AsciiKey('`'))
	if last.Kind != ChoosingCandidate {
		t.Fatalf("expected ChoosingCandidate from backtick, got %+v", last)
	}
	if len(last.Candidates) != 2 {
		t.Fatalf("expected the 2-entry punctuation palette, got %+v", last.Candidates)
	}
}

func TestSelectingCandidateRecordsOverride(t *testing.T) {
	h, last := newTestHandler()
	typeKeys(h, "su3")
	h.Handle(Key{Name: SPACE})
	if last.Kind != ChoosingCandidate {
		t.Fatalf("expected ChoosingCandidate, got %+v", last)
	}

	h.Handle(AsciiKey('2')) // hotkey slot 1: 妳
	if last.Kind != Inputting || last.Buffer != "妳" {
		t.Fatalf("expected 妳 selected, got %+v", last)
	}

	ctx := h.contextKeyAt(h.actualCandidateCursorIndex())
	got, ok := h.overrides.Suggest(ctx, h.now())
	if !ok || got != "妳" {
		t.Fatalf("expected override suggestion 妳, got %q, %v", got, ok)
	}
}

func TestElevenReadingsPinTheLeftEdge(t *testing.T) {
	h, _ := newTestHandler()
	h.Config.SetComposingBufferSize(20)
	for i := 0; i < 11; i++ {
		typeKeys(h, "su3")
	}
	if h.grid.Length() != 11 {
		t.Fatalf("expected grid width 11, got %d", h.grid.Length())
	}
	path := grid.Walk(h.grid)
	if len(path) == 0 || !path[0].Node.Pinned {
		t.Fatalf("expected the leftmost anchor to be pinned once width exceeds 10, got %+v", path)
	}
}

func TestPlainSpaceFinalizesToneOneSyllable(t *testing.T) {
	h, last := newTestHandler()
	typeKeys(h, "su")
	if last.Kind != Inputting || last.Buffer != "" {
		t.Fatalf("after su (no tone yet): %+v", last)
	}

	h.Handle(Key{Name: SPACE})
	if last.Kind != Inputting || last.Buffer != "妮" || last.Cursor != 1 {
		t.Fatalf("expected plain space to finalize the tone-1 syllable to 妮, got %+v", last)
	}
}

func TestMarkingAcceptsNewValueUnderKnownReadingKey(t *testing.T) {
	// The reading key already has an entry, but for a different value
	// than what's marked — acceptability is per-value, not per-key.
	static := lm.NewStaticDictionary(map[string][]lm.Unigram{
		"ㄋㄧˇ":              {{Value: "你", Score: -1}, {Value: "妳", Score: -2}},
		"ㄏㄠˇ":              {{Value: "好", Score: -1}},
		"ㄋㄧˇ-ㄏㄠˇ":          {{Value: "您好", Score: -3}},
		punctuationListKey: {{Value: "，", Score: -1}, {Value: "。", Score: -1}},
	})
	model := &lm.Facade{Static: static, User: lm.NewUserPhrases()}

	h := NewHandler(model, NewConfig())
	t0 := time.Unix(1_700_000_000, 0)
	h.Now = func() time.Time { return t0 }
	var last State
	h.StateCallback = func(s State) { last = s }

	typeKeys(h, "su3cl3")
	h.Handle(Key{Name: HOME})
	h.Handle(Key{Name: RIGHT, Shift: true})
	h.Handle(Key{Name: RIGHT, Shift: true})

	if last.Kind != Marking || !last.Acceptable {
		t.Fatalf("expected marking 你好 to remain acceptable despite ㄋㄧˇㄏㄠˇ already mapping to 您好, got %+v", last)
	}
}

func TestMarkingAddsUserPhrase(t *testing.T) {
	h, last := newTestHandler()
	typeKeys(h, "su3cl3")
	h.Handle(Key{Name: HOME})
	h.Handle(Key{Name: RIGHT, Shift: true})
	h.Handle(Key{Name: RIGHT, Shift: true})

	if last.Kind != Marking {
		t.Fatalf("expected Marking, got %+v", last)
	}
	if !last.Acceptable {
		t.Fatalf("expected marking to be acceptable, got %+v", last)
	}
	if last.Reading == "" {
		t.Fatalf("expected a non-empty reading slice, got %+v", last)
	}

	h.Handle(Key{Name: RETURN})
	if last.Kind != Inputting {
		t.Fatalf("expected Inputting after confirming the mark, got %+v", last)
	}

	key := lm.JoinReadings([]string{"ㄋㄧˇ", "ㄏㄠˇ"})
	if !h.LM.HasUnigramsFor(key) {
		t.Fatal("expected the marked phrase to have been learned")
	}
}
