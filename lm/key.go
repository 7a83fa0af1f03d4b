package lm

import "strings"

// hyphenPlaceholder stands in for a protected literal "_-" sequence
// while a key is being split or joined on "-", then is restored
// afterwards. It must never occur in real reading keys.
const hyphenPlaceholder = "\x00_HYPHEN_\x00"

func protectHyphens(s string) string {
	return strings.ReplaceAll(s, "_-", hyphenPlaceholder)
}

func restoreHyphens(s string) string {
	return strings.ReplaceAll(s, hyphenPlaceholder, "_-")
}

// JoinReadings builds the multi-syllable key used to look up a phrase
// spanning several grid readings, guarding any literal "_-" segment
// (e.g. "_punctuation_Hsu_-") against the join separator.
func JoinReadings(readings []string) string {
	protected := make([]string, len(readings))
	for i, r := range readings {
		protected[i] = protectHyphens(r)
	}
	return restoreHyphens(strings.Join(protected, "-"))
}

// SplitKey is the inverse of JoinReadings: it splits a joined key back
// into its per-syllable segments without being fooled by a literal
// "_-" inside a segment.
func SplitKey(key string) []string {
	protected := protectHyphens(key)
	parts := strings.Split(protected, "-")
	for i := range parts {
		parts[i] = restoreHyphens(parts[i])
	}
	return parts
}

// MaybeAbsoluteOrderKey applies the absolute-order transform described
// in spec §6 to a user-level key: each hyphen-separated segment that
// begins with "_" is kept verbatim (it names punctuation, a control
// key, or a literal letter); every other segment is decoded as a
// Bopomofo syllable via decodeSyllable and replaced by its
// absolute-order string.
func MaybeAbsoluteOrderKey(key string, decodeSyllable func(string) (string, error)) (string, error) {
	segments := SplitKey(key)
	out := make([]string, len(segments))
	for i, seg := range segments {
		if strings.HasPrefix(seg, "_") {
			out[i] = seg
			continue
		}
		abs, err := decodeSyllable(seg)
		if err != nil {
			return "", err
		}
		out[i] = abs
	}
	return JoinReadings(out), nil
}
