package layout

// tableLayout is the common implementation for layouts where every
// key maps to exactly one symbol regardless of context (Standard,
// ETen, ETen26, IBM). Hsu needs context (the same key can mean
// different things depending on what's already in the syllable) and
// HanyuPinyin accumulates literal Latin runs, so those get their own
// Resolve.
type tableLayout struct {
	kind  Kind
	table map[rune]Symbol
}

func (t tableLayout) Kind() Kind { return t.kind }

func (t tableLayout) Resolve(ch rune, _ Syllable) (Symbol, bool) {
	sym, ok := t.table[ch]
	return sym, ok
}

func initial(s string) Symbol { return Symbol{Text: s, Category: CategoryInitial} }
func medial(s string) Symbol  { return Symbol{Text: s, Category: CategoryMedial} }
func final(s string) Symbol   { return Symbol{Text: s, Category: CategoryFinal} }
func tone(s string) Symbol    { return Symbol{Text: s, Category: CategoryTone} }

// Tone marker text. Tone 1 (high level) has no glyph of its own; the
// space bar and the bare absence of a marker both denote it.
const (
	Tone2 = "ˊ"
	Tone3 = "ˇ"
	Tone4 = "ˋ"
	Tone5 = "˙"
)

// standardLayout is the classic Zhuyin "standard" (a.k.a. "big
// keyboard") layout used by the reference McBopomofo/Windows/macOS
// Bopomofo IMEs.
type standardLayout struct{ tableLayout }

var standardTable = map[rune]Symbol{
	'1': initial("ㄅ"), '2': initial("ㄉ"), '3': tone(Tone3), '4': tone(Tone4),
	'5': initial("ㄓ"), '6': tone(Tone2), '7': tone(Tone5), '8': final("ㄚ"),
	'9': final("ㄞ"), '0': final("ㄢ"), '-': final("ㄦ"),

	'q': initial("ㄆ"), 'w': initial("ㄊ"), 'e': initial("ㄍ"), 'r': initial("ㄐ"),
	't': initial("ㄔ"), 'y': initial("ㄗ"), 'u': medial("ㄧ"), 'i': final("ㄛ"),
	'o': final("ㄟ"), 'p': final("ㄣ"),

	'a': initial("ㄇ"), 's': initial("ㄋ"), 'd': initial("ㄎ"), 'f': initial("ㄑ"),
	'g': initial("ㄕ"), 'h': initial("ㄘ"), 'j': medial("ㄨ"), 'k': final("ㄜ"),
	'l': final("ㄠ"), ';': final("ㄤ"),

	'z': initial("ㄈ"), 'x': initial("ㄌ"), 'c': initial("ㄏ"), 'v': initial("ㄒ"),
	'b': initial("ㄖ"), 'n': initial("ㄙ"), 'm': medial("ㄩ"), ',': final("ㄝ"),
	'.': final("ㄡ"), '/': final("ㄥ"),
}

func newStandardLayout() standardLayout {
	return standardLayout{tableLayout{kind: Standard, table: standardTable}}
}
