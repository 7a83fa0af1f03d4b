// Package override implements the user-override cache (component C5):
// a fixed-capacity, recency+decay weighted cache that suggests a
// previously chosen candidate for a grid position given its
// surrounding context.
package override

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golang/groupcache/lru"
)

// Capacity is the fixed size of the cache (spec §4.5).
const Capacity = 500

// HalfLife is the decay half-life of an observation's weight.
const HalfLife = 5400 * time.Second

// SuggestThreshold is the minimum effective weight
// (count * exp(-ln2 * age/HalfLife)) an observation must have for
// Suggest to return it. spec §4.5 only says "a small threshold"; we
// fix it well below the weight of a single fresh observation (1.0) so
// that one selection is already enough to be suggested back, but a
// long-decayed single observation eventually stops being offered.
const SuggestThreshold = 0.1

// NeverRecordScore is the ceiling at or below which an override is
// never recorded at all, to keep garbage choices out of the cache.
const NeverRecordScore = -8.0

// Clock is an injectable time source; tests use a deterministic one
// (spec §9, "pass a time source into the handler").
type Clock func() time.Time

type record struct {
	chosen    string
	timestamp time.Time
	count     int
}

// Cache is the bounded, LRU-backed override cache. It holds no clock
// of its own — per spec §9 the time source lives in the key handler
// (component C6) and is passed in explicitly, so tests can inject a
// deterministic one.
type Cache struct {
	lru *lru.Cache
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{lru: lru.New(Capacity)}
}

// Observe records that chosen was picked in contextKey's context, with
// score being the score of the chosen candidate (used only to veto
// garbage per NeverRecordScore — the cache itself always stores
// count/timestamp, never the score). A repeated observation of the
// same (contextKey, chosen) pair bumps its count and refreshes its
// timestamp instead of being treated as a new entry.
func (c *Cache) Observe(contextKey, chosen string, score float64, now time.Time) {
	if score <= NeverRecordScore {
		return
	}
	if v, ok := c.lru.Get(contextKey); ok {
		r := v.(record)
		if r.chosen == chosen {
			r.count++
		} else {
			r = record{chosen: chosen, count: 1}
		}
		r.timestamp = now
		c.lru.Add(contextKey, r)
		return
	}
	c.lru.Add(contextKey, record{chosen: chosen, timestamp: now, count: 1})
}

// Suggest returns the previously observed choice for contextKey, if
// its effective weight at time now still exceeds SuggestThreshold.
func (c *Cache) Suggest(contextKey string, now time.Time) (string, bool) {
	v, ok := c.lru.Get(contextKey)
	if !ok {
		return "", false
	}
	r := v.(record)
	if weight(r, now) <= SuggestThreshold {
		return "", false
	}
	return r.chosen, true
}

func weight(r record, now time.Time) float64 {
	age := now.Sub(r.timestamp)
	if age < 0 {
		age = 0
	}
	decay := math.Exp(-math.Ln2 * age.Seconds() / HalfLife.Seconds())
	return float64(r.count) * decay
}

// Len reports the number of distinct contexts currently cached.
func (c *Cache) Len() int { return c.lru.Len() }

// ContextKey builds the lookup key for the node at a grid position
// from the value currently selected at that node and its immediate
// left/right neighbor values (spec §4.5). A missing neighbor (grid
// edge) is passed as "".
func ContextKey(prev, current, next string) string {
	return fmt.Sprintf("%s\x1f%s\x1f%s", escape(prev), escape(current), escape(next))
}

// escape guards against a neighbor value itself containing the field
// separator (astronomically unlikely for Han text, but cheap to rule
// out).
func escape(s string) string {
	return strings.ReplaceAll(s, "\x1f", "\x1f\x1f")
}
