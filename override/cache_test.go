package override

import (
	"testing"
	"time"
)

func TestObserveThenSuggest(t *testing.T) {
	c := New()
	t0 := time.Unix(0, 0)
	ctx := ContextKey("你", "好", "")
	c.Observe(ctx, "好", -1.0, t0)

	got, ok := c.Suggest(ctx, t0)
	if !ok || got != "好" {
		t.Fatalf("Suggest = %q, %v; want 好, true", got, ok)
	}
}

func TestNeverRecordGarbageScore(t *testing.T) {
	c := New()
	t0 := time.Unix(0, 0)
	ctx := ContextKey("a", "b", "c")
	c.Observe(ctx, "b", NeverRecordScore, t0)
	if _, ok := c.Suggest(ctx, t0); ok {
		t.Fatal("a score at or below NeverRecordScore must not be recorded")
	}
}

func TestDecayHalvesAfterHalfLife(t *testing.T) {
	c := New()
	t0 := time.Unix(0, 0)
	ctx := ContextKey("a", "b", "c")
	// count=4 so the weight is 4.0 at t0 and 2.0 after one half-life.
	// weightAt reads the raw weight, so SuggestThreshold plays no part
	// in this check.
	for i := 0; i < 4; i++ {
		c.Observe(ctx, "b", -1.0, t0)
	}
	wBefore := weightAt(c, ctx, t0)
	wAfter := weightAt(c, ctx, t0.Add(HalfLife))
	if wBefore <= 0 {
		t.Fatalf("expected positive weight before decay, got %v", wBefore)
	}
	ratio := wAfter / wBefore
	if ratio < 0.49 || ratio > 0.51 {
		t.Fatalf("expected weight to halve after one half-life, ratio=%v", ratio)
	}
}

func weightAt(c *Cache, ctx string, at time.Time) float64 {
	v, ok := c.lru.Get(ctx)
	if !ok {
		return 0
	}
	return weight(v.(record), at)
}

func TestLRUEvictionAtCapacity(t *testing.T) {
	c := New()
	t0 := time.Unix(0, 0)
	for i := 0; i < Capacity+10; i++ {
		ctx := ContextKey("a", string(rune('a'+i%26)), string(rune(i)))
		c.Observe(ctx, "x", -1.0, t0)
	}
	if c.Len() > Capacity {
		t.Fatalf("cache grew beyond capacity: %d", c.Len())
	}
}

func TestContextKeyEscapesSeparator(t *testing.T) {
	a := ContextKey("x\x1fy", "z", "")
	b := ContextKey("x", "y\x1fz", "")
	if a == b {
		t.Fatal("distinct neighbor splits must not collide after escaping")
	}
}
