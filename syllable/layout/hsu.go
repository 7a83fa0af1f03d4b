package layout

// hsuLayout is a simplified rendition of the Hsu (許氏) keyboard, the
// one layout in this table that is genuinely context-sensitive: most
// keys mean an initial when the syllable doesn't have one yet, and a
// medial/final once it does (so e.g. "d" starts a syllable as ㄉ but
// finishes one as ㄤ). This is why Hsu needs its own Resolve instead
// of the shared tableLayout.
type hsuLayout struct {
	whenEmpty map[rune]Symbol
	whenAfter map[rune]Symbol
	tones     map[rune]Symbol
}

func (hsuLayout) Kind() Kind { return Hsu }

func (h hsuLayout) Resolve(ch rune, soFar Syllable) (Symbol, bool) {
	if sym, ok := h.tones[ch]; ok {
		return sym, true
	}
	if !soFar.has(CategoryInitial) && !soFar.has(CategoryMedial) {
		if sym, ok := h.whenEmpty[ch]; ok {
			return sym, true
		}
	}
	if sym, ok := h.whenAfter[ch]; ok {
		return sym, true
	}
	// Fall back to the empty-position mapping so a key that has no
	// distinct "after" meaning still resolves.
	sym, ok := h.whenEmpty[ch]
	return sym, ok
}

func newHsuLayout() hsuLayout {
	return hsuLayout{
		whenEmpty: map[rune]Symbol{
			'b': initial("ㄅ"), 'p': initial("ㄆ"), 'm': initial("ㄇ"), 'f': initial("ㄈ"),
			'd': initial("ㄉ"), 't': initial("ㄊ"), 'n': initial("ㄋ"), 'l': initial("ㄌ"),
			'g': initial("ㄍ"), 'k': initial("ㄎ"), 'h': initial("ㄏ"),
			'j': initial("ㄐ"), 'v': initial("ㄑ"), 'c': initial("ㄒ"),
			'z': initial("ㄓ"), 'w': medial("ㄨ"), 'x': initial("ㄙ"),
			'u': initial("ㄗ"), 'a': final("ㄚ"), 's': initial("ㄕ"),
			'e': final("ㄝ"), 'r': final("ㄜ"), 'y': medial("ㄧ"), 'i': final("ㄞ"),
			'o': final("ㄛ"),
		},
		whenAfter: map[rune]Symbol{
			'd': final("ㄤ"), 't': final("ㄦ"), 'n': final("ㄣ"), 'l': final("ㄥ"),
			'g': final("ㄜ"), 'k': final("ㄤ"), 'h': final("ㄏ"),
			'm': final("ㄇ"), 'b': final("ㄅ"), 'f': medial("ㄩ"),
		},
		tones: map[rune]Symbol{
			'2': tone(Tone2), '3': tone(Tone3), '4': tone(Tone4), '5': tone(Tone5),
		},
	}
}
