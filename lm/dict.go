package lm

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// StaticDictionary is an in-memory, read-only mapping from an
// absolute-order reading key to its unigrams, as loaded from the
// external dictionary file format (spec §6): each line is
//
//	key value score value score ...
//
// Entries for a key are kept sorted by descending score so the first
// entry returned is always the highest-likelihood candidate, matching
// the grid builder's assumption in §4.3 that a node's initial
// selected candidate is the highest-score unigram.
type StaticDictionary struct {
	entries map[string][]Unigram
}

var _ Source = (*StaticDictionary)(nil)

// LoadStaticDictionary parses the dictionary file format from r. A
// malformed line (odd value/score pairing, unparsable score) is
// reported with its 1-based line number; the loader does not attempt
// partial recovery, matching spec §7 ("a corrupt dictionary is the
// loader's problem, not the core's").
func LoadStaticDictionary(r io.Reader) (*StaticDictionary, error) {
	d := &StaticDictionary{entries: make(map[string][]Unigram)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 || len(fields)%2 != 1 {
			return nil, fmt.Errorf("lm: dictionary line %d: expected \"key value score ...\", got %q", lineNo, line)
		}
		key := fields[0]
		rest := fields[1:]
		for i := 0; i < len(rest); i += 2 {
			value := rest[i]
			score, err := strconv.ParseFloat(rest[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("lm: dictionary line %d: invalid score %q: %w", lineNo, rest[i+1], err)
			}
			d.entries[key] = append(d.entries[key], Unigram{Key: key, Value: value, Score: score})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lm: reading dictionary: %w", err)
	}

	for key, unigrams := range d.entries {
		sort.SliceStable(unigrams, func(i, j int) bool { return unigrams[i].Score > unigrams[j].Score })
		d.entries[key] = unigrams
	}
	return d, nil
}

// NewStaticDictionary builds a StaticDictionary directly from a map,
// primarily for tests and small embedded fixtures; production use
// should go through LoadStaticDictionary against the real dictionary
// file (an external collaborator per spec §1).
func NewStaticDictionary(entries map[string][]Unigram) *StaticDictionary {
	d := &StaticDictionary{entries: make(map[string][]Unigram, len(entries))}
	for key, unigrams := range entries {
		cp := make([]Unigram, len(unigrams))
		copy(cp, unigrams)
		sort.SliceStable(cp, func(i, j int) bool { return cp[i].Score > cp[j].Score })
		d.entries[key] = cp
	}
	return d
}

func (d *StaticDictionary) UnigramsFor(key string) []Unigram {
	return d.entries[key]
}

func (d *StaticDictionary) HasUnigramsFor(key string) bool {
	return len(d.entries[key]) > 0
}
