package lm

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// RuneMapConverter is a Converter backed by a simple per-rune mapping
// table (e.g. Traditional -> Simplified). It also satisfies
// transform.Transformer so a host can chain it with other x/text
// transforms (NFC, width-folding, ...) in a single transform.Chain,
// matching the x/text ecosystem convention for streaming text
// rewrites. Convert NFC-normalizes its result whenever the table is
// non-empty, so a converted value that introduces a combining
// sequence does not desync the UTF-8 cursor math in §4.6.3; Transform
// maps runes only and does not normalize.
type RuneMapConverter struct {
	table map[rune]rune
}

var (
	_ Converter             = (*RuneMapConverter)(nil)
	_ transform.Transformer = (*RuneMapConverter)(nil)
)

// NewRuneMapConverter builds a converter from a rune->rune table. An
// empty or nil table makes Convert the identity function.
func NewRuneMapConverter(table map[rune]rune) *RuneMapConverter {
	return &RuneMapConverter{table: table}
}

// Convert rewrites every rune in s found in the table, then
// NFC-normalizes the result.
func (c *RuneMapConverter) Convert(s string) string {
	if len(c.table) == 0 {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if mapped, ok := c.table[r]; ok {
			out = append(out, mapped)
		} else {
			out = append(out, r)
		}
	}
	return norm.NFC.String(string(out))
}

// Transform implements transform.Transformer over whole runes at a
// time; it never consumes a partial rune from src.
func (c *RuneMapConverter) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := decodeRune(src[nSrc:])
		if size == 0 {
			if !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			break
		}
		if mapped, ok := c.table[r]; ok {
			r = mapped
		}
		n := copyRune(dst[nDst:], r)
		if n == 0 {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += n
		nSrc += size
	}
	return nDst, nSrc, nil
}

// Reset implements transform.Transformer; RuneMapConverter is stateless.
func (c *RuneMapConverter) Reset() {}

func decodeRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return 0, 0
	}
	return r, size
}

func copyRune(dst []byte, r rune) int {
	need := utf8.RuneLen(r)
	if need < 0 || len(dst) < need {
		return 0
	}
	return utf8.EncodeRune(dst, r)
}

// WidthConverter folds or widens ASCII punctuation/digits against
// their fullwidth CJK counterparts (spec §6's optional punctuation
// fullwidth/halfwidth toggle), delegating entirely to x/text/width
// rather than a hand-rolled rune table.
type WidthConverter struct {
	widen bool
}

var _ Converter = WidthConverter{}

// NewWidthConverter returns a converter that widens ASCII to
// fullwidth forms when widen is true, or folds fullwidth forms back
// to halfwidth ASCII when widen is false.
func NewWidthConverter(widen bool) WidthConverter {
	return WidthConverter{widen: widen}
}

func (c WidthConverter) Convert(s string) string {
	if c.widen {
		return width.Widen.String(s)
	}
	return width.Narrow.String(s)
}
