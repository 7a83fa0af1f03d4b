// Package lm implements the language-model facade (component C2): it
// answers unigrams_for/has_unigrams_for by merging a static dictionary
// with a user-phrase overlay and an optional output converter.
package lm

// Unigram is a (key, value, score) triple. Score is a log-probability,
// typically negative; higher is more likely.
type Unigram struct {
	Key   string
	Value string
	Score float64
}

// identityKey is the reserved reading key that always composes to a
// literal space.
const identityKey = " "

// Source is the duck-typed capability every language-model backend
// must implement. Static dictionaries, user-phrase overlays, and
// converter-wrapped sources all satisfy it by delegation.
type Source interface {
	UnigramsFor(key string) []Unigram
	HasUnigramsFor(key string) bool
}

// UserPhraseAdder is an optional extension capability: a Source may
// also accept newly-learned phrases from the marking flow (§4.6.4).
type UserPhraseAdder interface {
	AddUserPhrase(key, phrase string) error
}

// AssociatedPhraseSource is an optional extension capability
// (SPEC_FULL §D.1): a source may expose a short lookahead list of
// phrases that commonly follow a just-committed key.
type AssociatedPhraseSource interface {
	AssociatedPhrasesFor(key string) []string
}

// AssociationRecorder is an optional extension capability
// (SPEC_FULL §D.1): a source may remember that phrase was typed
// immediately after key was committed, to later surface phrase as an
// AssociatedPhraseSource lookahead entry for key.
type AssociationRecorder interface {
	RecordAssociation(key, phrase string)
}

// Converter is a narrow output/input conversion capability, e.g.
// Traditional<->Simplified Chinese. The core only ever calls Convert;
// it never inspects how the mapping was built.
type Converter interface {
	Convert(s string) string
}

// Facade merges a static dictionary with a user-phrase overlay,
// optionally re-writing every returned value through a Converter.
// It is the concrete object most hosts construct and pass to the
// key handler (engine.Handler) as its LM.
type Facade struct {
	Static Source
	User   Source

	// OutputConverter, if set, rewrites every Value returned by
	// UnigramsFor (e.g. Traditional -> Simplified).
	OutputConverter Converter
	// InputConverter, if set, rewrites a phrase before it is handed
	// to User.AddUserPhrase (e.g. Simplified -> Traditional storage).
	InputConverter Converter
}

// UnigramsFor merges user-phrase entries (score 0) before static
// entries, deduplicating by value with user entries winning. For the
// reserved key " " it returns a single identity unigram regardless of
// what either source holds.
func (f *Facade) UnigramsFor(key string) []Unigram {
	if key == identityKey {
		return []Unigram{{Key: identityKey, Value: identityKey, Score: 0}}
	}

	seen := make(map[string]bool)
	var out []Unigram

	if f.User != nil {
		for _, u := range f.User.UnigramsFor(key) {
			if seen[u.Value] {
				continue
			}
			seen[u.Value] = true
			out = append(out, f.convert(u))
		}
	}
	if f.Static != nil {
		for _, u := range f.Static.UnigramsFor(key) {
			if seen[u.Value] {
				continue
			}
			seen[u.Value] = true
			out = append(out, f.convert(u))
		}
	}
	return out
}

func (f *Facade) convert(u Unigram) Unigram {
	if f.OutputConverter == nil {
		return u
	}
	u.Value = f.OutputConverter.Convert(u.Value)
	return u
}

// HasUnigramsFor reports whether either source yields an entry for
// key, or key is the reserved identity key.
func (f *Facade) HasUnigramsFor(key string) bool {
	if key == identityKey {
		return true
	}
	if f.User != nil && f.User.HasUnigramsFor(key) {
		return true
	}
	if f.Static != nil && f.Static.HasUnigramsFor(key) {
		return true
	}
	return false
}

// AddUserPhrase prepends phrase for key in the user overlay, applying
// InputConverter first if configured. It is a no-op returning an error
// if the user overlay doesn't support learning.
func (f *Facade) AddUserPhrase(key, phrase string) error {
	adder, ok := f.User.(UserPhraseAdder)
	if !ok {
		return errUserPhrasesUnsupported
	}
	if f.InputConverter != nil {
		phrase = f.InputConverter.Convert(phrase)
	}
	return adder.AddUserPhrase(key, phrase)
}

// AssociatedPhrasesFor returns the lookahead list for key (SPEC_FULL
// §D.1), merging user and static sources if both expose the optional
// capability. Returns nil if neither does.
func (f *Facade) AssociatedPhrasesFor(key string) []string {
	var out []string
	if src, ok := f.User.(AssociatedPhraseSource); ok {
		out = append(out, src.AssociatedPhrasesFor(key)...)
	}
	if src, ok := f.Static.(AssociatedPhraseSource); ok {
		out = append(out, src.AssociatedPhrasesFor(key)...)
	}
	return out
}

// RecordAssociation forwards to the user overlay if it implements
// AssociationRecorder (SPEC_FULL §D.1); a no-op otherwise.
func (f *Facade) RecordAssociation(key, phrase string) {
	if rec, ok := f.User.(AssociationRecorder); ok {
		rec.RecordAssociation(key, phrase)
	}
}
