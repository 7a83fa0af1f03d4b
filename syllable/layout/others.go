package layout

// etenLayout, eten26Layout and ibmLayout are simplified renditions of
// the historical ETen, ETen 26-key, and IBM Bopomofo keyboard tables:
// every key still maps to exactly one symbol, but the key assignments
// are this module's own simplified layout, not a byte-for-byte replay
// of a vendor's table (the historical tables are an external
// collaborator per spec §1 — a host that needs the exact legacy
// mapping supplies its own table through the same Layout interface).

type etenLayout struct{ tableLayout }

var etenTable = map[rune]Symbol{
	'1': initial("ㄅ"), '2': initial("ㄆ"), '3': initial("ㄇ"), '4': initial("ㄈ"),
	'5': initial("ㄉ"), '6': initial("ㄊ"), '7': initial("ㄋ"), '8': initial("ㄌ"),
	'9': initial("ㄍ"), '0': initial("ㄎ"), '-': initial("ㄏ"),

	'q': initial("ㄐ"), 'w': initial("ㄑ"), 'e': initial("ㄒ"), 'r': initial("ㄓ"),
	't': initial("ㄔ"), 'y': initial("ㄕ"), 'u': initial("ㄖ"), 'i': medial("ㄧ"),
	'o': medial("ㄨ"), 'p': medial("ㄩ"),

	'a': final("ㄚ"), 's': final("ㄛ"), 'd': final("ㄜ"), 'f': final("ㄝ"),
	'g': final("ㄞ"), 'h': final("ㄟ"), 'j': final("ㄠ"), 'k': final("ㄡ"),
	'l': final("ㄢ"), ';': final("ㄣ"),

	'z': final("ㄤ"), 'x': final("ㄥ"), 'c': final("ㄦ"), 'v': tone(Tone2),
	'b': tone(Tone3), 'n': tone(Tone4), 'm': tone(Tone5),
}

func newETenLayout() etenLayout { return etenLayout{tableLayout{kind: ETen, table: etenTable}} }

type eten26Layout struct{ tableLayout }

var eten26Table = map[rune]Symbol{
	'a': initial("ㄇ"), 'b': final("ㄝ"), 'c': initial("ㄏ"), 'd': initial("ㄉ"),
	'e': medial("ㄧ"), 'f': initial("ㄈ"), 'g': initial("ㄍ"), 'h': final("ㄦ"),
	'i': final("ㄞ"), 'j': initial("ㄐ"), 'k': initial("ㄎ"), 'l': final("ㄤ"),
	'm': initial("ㄇ"), 'n': initial("ㄋ"), 'o': final("ㄛ"), 'p': initial("ㄆ"),
	'q': initial("ㄑ"), 'r': initial("ㄖ"), 's': initial("ㄙ"), 't': initial("ㄊ"),
	'u': medial("ㄨ"), 'v': medial("ㄩ"), 'w': final("ㄢ"), 'x': initial("ㄒ"),
	'y': final("ㄧ"), 'z': initial("ㄗ"),

	'1': tone(Tone5), '2': tone(Tone2), '3': tone(Tone3), '4': tone(Tone4),
}

func newETen26Layout() eten26Layout {
	return eten26Layout{tableLayout{kind: ETen26, table: eten26Table}}
}

type ibmLayout struct{ tableLayout }

var ibmTable = map[rune]Symbol{
	'1': initial("ㄅ"), '2': initial("ㄆ"), '3': initial("ㄇ"), '4': initial("ㄈ"),
	'5': initial("ㄉ"), '6': initial("ㄊ"), '7': initial("ㄋ"), '8': initial("ㄌ"),
	'9': initial("ㄍ"), '0': initial("ㄎ"),

	'q': initial("ㄏ"), 'w': initial("ㄐ"), 'e': initial("ㄑ"), 'r': initial("ㄒ"),
	't': initial("ㄓ"), 'y': initial("ㄔ"), 'u': initial("ㄕ"), 'i': initial("ㄖ"),
	'o': initial("ㄗ"), 'p': initial("ㄘ"),

	'a': initial("ㄙ"), 's': medial("ㄧ"), 'd': medial("ㄨ"), 'f': medial("ㄩ"),
	'g': final("ㄚ"), 'h': final("ㄛ"), 'j': final("ㄜ"), 'k': final("ㄝ"),
	'l': final("ㄞ"), ';': final("ㄟ"),

	'z': final("ㄠ"), 'x': final("ㄡ"), 'c': final("ㄢ"), 'v': final("ㄣ"),
	'b': final("ㄤ"), 'n': final("ㄥ"), 'm': final("ㄦ"),
	',': tone(Tone2), '.': tone(Tone3), '/': tone(Tone4),
}

func newIBMLayout() ibmLayout { return ibmLayout{tableLayout{kind: IBM, table: ibmTable}} }
