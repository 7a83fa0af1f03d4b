package engine

import (
	"strings"

	"github.com/boxesandglue/bopomofo/syllable/layout"
)

// defaultCandidateKeys is the hotkey set used when none is configured.
const defaultCandidateKeys = "123456789"

// Config holds every per-instance setting of the key handler (spec
// §4.6, "per-instance config"). It is a plain struct with clamped
// setters, built then handed to NewHandler, the same planner-then-
// compile convention the teacher uses for its shaping plans.
type Config struct {
	layout                      layout.Kind
	composingBufferSize         int
	traditionalMode             bool
	selectPhraseAfterCursor     bool
	moveCursorAfterSelection    bool
	putLowercaseLettersInBuffer bool
	escClearsEntireBuffer       bool
	languageCode                string
	candidateKeys               string
	chineseConversion           bool
}

// NewConfig returns a Config with every field at its documented
// default: Standard layout, a 20-reading buffer, select-before-cursor,
// uppercase letters committed directly, ESC clears only the active
// reading, and the digit-row hotkeys.
func NewConfig() *Config {
	c := &Config{
		layout:              layout.Standard,
		composingBufferSize: 20,
		candidateKeys:       defaultCandidateKeys,
		languageCode:        "zh-Hant",
	}
	return c
}

func (c *Config) Layout() layout.Kind { return c.layout }

func (c *Config) SetLayout(k layout.Kind) { c.layout = k }

// ComposingBufferSize is clamped to [4, 100] (spec §3).
func (c *Config) ComposingBufferSize() int {
	if c.composingBufferSize == 0 {
		return 20
	}
	return c.composingBufferSize
}

func (c *Config) SetComposingBufferSize(n int) {
	switch {
	case n < 4:
		n = 4
	case n > 100:
		n = 100
	}
	c.composingBufferSize = n
}

func (c *Config) TraditionalMode() bool       { return c.traditionalMode }
func (c *Config) SetTraditionalMode(v bool)   { c.traditionalMode = v }
func (c *Config) ChineseConversion() bool     { return c.chineseConversion }
func (c *Config) SetChineseConversion(v bool) { c.chineseConversion = v }

func (c *Config) SelectPhraseAfterCursor() bool     { return c.selectPhraseAfterCursor }
func (c *Config) SetSelectPhraseAfterCursor(v bool) { c.selectPhraseAfterCursor = v }

func (c *Config) MoveCursorAfterSelection() bool     { return c.moveCursorAfterSelection }
func (c *Config) SetMoveCursorAfterSelection(v bool) { c.moveCursorAfterSelection = v }

func (c *Config) PutLowercaseLettersInBuffer() bool     { return c.putLowercaseLettersInBuffer }
func (c *Config) SetPutLowercaseLettersInBuffer(v bool) { c.putLowercaseLettersInBuffer = v }

func (c *Config) EscClearsEntireBuffer() bool     { return c.escClearsEntireBuffer }
func (c *Config) SetEscClearsEntireBuffer(v bool) { c.escClearsEntireBuffer = v }

func (c *Config) LanguageCode() string     { return c.languageCode }
func (c *Config) SetLanguageCode(s string) { c.languageCode = s }

// CandidateKeys returns the configured hotkey set, or the default if
// none was set.
func (c *Config) CandidateKeys() string {
	if c.candidateKeys == "" {
		return defaultCandidateKeys
	}
	return c.candidateKeys
}

// SetCandidateKeys lowercases and deduplicates keys and accepts the
// result only if it has 4-15 unique characters (spec §6). An input
// that can't be reduced to a valid set is rejected (false is returned)
// and the previous value kept.
func (c *Config) SetCandidateKeys(keys string) bool {
	keys = strings.ToLower(keys)
	seen := make(map[rune]bool, len(keys))
	var uniq []rune
	for _, r := range keys {
		if seen[r] {
			continue
		}
		seen[r] = true
		uniq = append(uniq, r)
	}
	if len(uniq) < 4 || len(uniq) > 15 {
		return false
	}
	c.candidateKeys = string(uniq)
	return true
}
