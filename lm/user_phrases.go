package lm

// UserPhrases is a mutable overlay of user-learned phrases, keyed by
// reading key, each carrying a fixed score of 0. The facade lists
// these entries before static-dictionary ones and drops a static entry
// whose value a user entry already has (§4.2). It implements Source, UserPhraseAdder,
// AssociatedPhraseSource, and AssociationRecorder.
type UserPhrases struct {
	byKey map[string][]string

	// OnChange, if set, is invoked after a phrase is added, once the
	// in-memory overlay has already been updated. A host wires this to
	// its persistence layer (an external collaborator per spec §1).
	OnChange func(key, phrase string)

	// associations tracks, for each committed key, the phrases the
	// user chose to type immediately afterwards (SPEC_FULL §D.1).
	associations map[string][]string
}

var (
	_ Source                 = (*UserPhrases)(nil)
	_ UserPhraseAdder        = (*UserPhrases)(nil)
	_ AssociatedPhraseSource = (*UserPhrases)(nil)
	_ AssociationRecorder    = (*UserPhrases)(nil)
)

// NewUserPhrases returns an empty overlay ready for use.
func NewUserPhrases() *UserPhrases {
	return &UserPhrases{
		byKey:        make(map[string][]string),
		associations: make(map[string][]string),
	}
}

func (u *UserPhrases) UnigramsFor(key string) []Unigram {
	phrases := u.byKey[key]
	if len(phrases) == 0 {
		return nil
	}
	out := make([]Unigram, len(phrases))
	for i, p := range phrases {
		out[i] = Unigram{Key: key, Value: p, Score: 0}
	}
	return out
}

func (u *UserPhrases) HasUnigramsFor(key string) bool {
	return len(u.byKey[key]) > 0
}

// AddUserPhrase prepends phrase for key, deduplicating so a phrase
// already present simply moves to the front rather than appearing
// twice, then notifies OnChange.
func (u *UserPhrases) AddUserPhrase(key, phrase string) error {
	existing := u.byKey[key]
	filtered := existing[:0:0]
	for _, p := range existing {
		if p != phrase {
			filtered = append(filtered, p)
		}
	}
	u.byKey[key] = append([]string{phrase}, filtered...)

	if u.OnChange != nil {
		u.OnChange(key, phrase)
	}
	return nil
}

// RecordAssociation records that phrase followed the commit of key,
// for later retrieval by AssociatedPhrasesFor. The most recent phrase
// is returned first; a bounded number of distinct follow-ups is kept
// per key to bound memory.
const maxAssociationsPerKey = 8

func (u *UserPhrases) RecordAssociation(key, phrase string) {
	existing := u.associations[key]
	filtered := existing[:0:0]
	for _, p := range existing {
		if p != phrase {
			filtered = append(filtered, p)
		}
	}
	combined := append([]string{phrase}, filtered...)
	if len(combined) > maxAssociationsPerKey {
		combined = combined[:maxAssociationsPerKey]
	}
	u.associations[key] = combined
}

func (u *UserPhrases) AssociatedPhrasesFor(key string) []string {
	out := u.associations[key]
	if out == nil {
		return nil
	}
	cp := make([]string, len(out))
	copy(cp, out)
	return cp
}
