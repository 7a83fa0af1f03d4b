package lm

import (
	"strings"
	"testing"
)

func TestFacadeUserWinsOverStatic(t *testing.T) {
	static := NewStaticDictionary(map[string][]Unigram{
		"k": {{Key: "k", Value: "A", Score: -1}, {Key: "k", Value: "B", Score: -2}},
	})
	user := NewUserPhrases()
	if err := user.AddUserPhrase("k", "A"); err != nil {
		t.Fatal(err)
	}

	f := &Facade{Static: static, User: user}
	got := f.UnigramsFor("k")
	if len(got) != 2 {
		t.Fatalf("expected 2 unigrams, got %d: %+v", len(got), got)
	}
	if got[0].Value != "A" || got[0].Score != 0 {
		t.Errorf("expected user entry %q/score 0 first, got %+v", "A", got[0])
	}
	if got[1].Value != "B" {
		t.Errorf("expected static-only entry B second, got %+v", got[1])
	}
}

func TestFacadeIdentityKey(t *testing.T) {
	f := &Facade{}
	got := f.UnigramsFor(" ")
	if len(got) != 1 || got[0].Value != " " {
		t.Fatalf("identity key should yield a single space unigram, got %+v", got)
	}
	if !f.HasUnigramsFor(" ") {
		t.Errorf("HasUnigramsFor(\" \") should always be true")
	}
}

func TestFacadeOutputConverter(t *testing.T) {
	static := NewStaticDictionary(map[string][]Unigram{"k": {{Key: "k", Value: "國", Score: -1}}})
	f := &Facade{Static: static, OutputConverter: NewRuneMapConverter(map[rune]rune{'國': '国'})}
	got := f.UnigramsFor("k")
	if len(got) != 1 || got[0].Value != "国" {
		t.Fatalf("expected converted value 国, got %+v", got)
	}
}

func TestFacadeRecordAssociationForwardsToUserOverlay(t *testing.T) {
	user := NewUserPhrases()
	f := &Facade{User: user}
	f.RecordAssociation("k", "followup")

	got := f.AssociatedPhrasesFor("k")
	if len(got) != 1 || got[0] != "followup" {
		t.Fatalf("expected [followup], got %+v", got)
	}
}

func TestJoinSplitProtectsLiteralHyphen(t *testing.T) {
	readings := []string{"_punctuation_Hsu_-", "ㄋㄧˇ"}
	joined := JoinReadings(readings)
	back := SplitKey(joined)
	if len(back) != 2 || back[0] != readings[0] || back[1] != readings[1] {
		t.Fatalf("round trip broken: got %v", back)
	}
}

func TestMaybeAbsoluteOrderKeyProtectsUnderscoreSegments(t *testing.T) {
	decode := func(string) (string, error) {
		t.Fatal("decodeSyllable must not be called on a _-prefixed segment")
		return "", nil
	}
	got, err := MaybeAbsoluteOrderKey("_punctuation_Hsu_-", decode)
	if err != nil {
		t.Fatal(err)
	}
	if got != "_punctuation_Hsu_-" {
		t.Fatalf("expected verbatim passthrough, got %q", got)
	}
}

func TestStaticDictionaryOrderedByScoreDescending(t *testing.T) {
	d := NewStaticDictionary(map[string][]Unigram{
		"k": {{Value: "low", Score: -5}, {Value: "high", Score: -1}},
	})
	got := d.UnigramsFor("k")
	if got[0].Value != "high" || got[1].Value != "low" {
		t.Fatalf("expected descending score order, got %+v", got)
	}
}

func TestLoadStaticDictionary(t *testing.T) {
	src := "ㄋㄧˇ 你 -1 妳 -2\nㄏㄠˇ 好 -1\n"
	d, err := LoadStaticDictionary(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if !d.HasUnigramsFor("ㄋㄧˇ") {
		t.Errorf("expected entries for ㄋㄧˇ")
	}
	got := d.UnigramsFor("ㄋㄧˇ")
	if len(got) != 2 || got[0].Value != "你" {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestLoadStaticDictionaryRejectsMalformedLine(t *testing.T) {
	if _, err := LoadStaticDictionary(strings.NewReader("k v\n")); err == nil {
		t.Fatal("expected an error for an odd value/score pairing")
	}
}
