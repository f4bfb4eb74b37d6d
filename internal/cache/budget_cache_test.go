package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	c := New[string, string](Limits{})

	if !c.Set("gen1", 1, 31, "In the beginning") {
		t.Fatal("Set() = false, want true")
	}
	got, ok := c.Get("gen1")
	if !ok || got != "In the beginning" {
		t.Errorf("Get() = %q, %v; want %q, true", got, ok, "In the beginning")
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) ok = true")
	}
	if c.Usage(1) != 31 {
		t.Errorf("Usage(1) = %d, want 31", c.Usage(1))
	}
}

func TestConsecutiveLimit(t *testing.T) {
	c := New[string, string](Limits{ConsecutiveVerses: 10})

	if c.Set("long", 1, 11, "x") {
		t.Error("Set() over consecutive limit = true, want false")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if !c.Set("exact", 1, 10, "x") {
		t.Error("Set() at consecutive limit = false, want true")
	}
}

func TestDefaultLimits(t *testing.T) {
	c := New[string, int](Limits{})
	if c.Set("a", 1, DefaultVerseLimit+1, 0) {
		t.Error("Set() over default limit = true, want false")
	}
	if !c.Set("b", 1, DefaultVerseLimit, 0) {
		t.Error("Set() at default limit = false, want true")
	}
}

func TestBookEviction(t *testing.T) {
	c := New[string, int](Limits{DefaultBook: 100, PerBook: map[int]int{19: 50}})

	c.Set("a", 1, 40, 1)
	c.Set("b", 1, 40, 2)
	c.Set("other", 2, 90, 3)
	c.Set("c", 1, 40, 4) // 120 > 100: evicts a

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry a was not evicted")
	}
	for _, k := range []string{"b", "c", "other"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %s evicted, want kept", k)
		}
	}
	if got := c.Usage(1); got != 80 {
		t.Errorf("Usage(1) = %d, want 80", got)
	}

	// Psalms has its own budget.
	c.Set("ps1", 19, 30, 5)
	c.Set("ps2", 19, 30, 6)
	if _, ok := c.Get("ps1"); ok {
		t.Error("ps1 not evicted under Psalms budget")
	}
	if got := c.Usage(19); got != 30 {
		t.Errorf("Usage(19) = %d, want 30", got)
	}
}

func TestStats(t *testing.T) {
	c := New[string, int](Limits{DefaultBook: 10})
	c.Set("a", 1, 6, 1)
	c.Get("a")
	c.Get("nope")
	c.Set("b", 1, 6, 2) // evicts a
	c.Get("a")

	want := Stats{Hits: 1, Misses: 2, Evictions: 1, Size: 1}
	if got := c.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestEntryLargerThanBookBudget(t *testing.T) {
	c := New[string, int](Limits{ConsecutiveVerses: 500, DefaultBook: 20})
	c.Set("small", 1, 5, 1)
	if c.Set("big", 1, 30, 2) {
		t.Error("Set() larger than book budget = true, want false")
	}
	if c.Len() != 0 || c.Usage(1) != 0 {
		t.Errorf("Len() = %d, Usage = %d; want both 0", c.Len(), c.Usage(1))
	}
}

func TestReplaceKey(t *testing.T) {
	c := New[string, string](Limits{DefaultBook: 100})
	c.Set("k", 1, 60, "old")
	c.Set("k", 1, 60, "new")

	if got, _ := c.Get("k"); got != "new" {
		t.Errorf("Get() = %q, want new", got)
	}
	if got := c.Usage(1); got != 60 {
		t.Errorf("Usage(1) = %d, want 60 after replacing", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestTTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[string, int](Limits{TTL: time.Minute})
	c.now = func() time.Time { return now }

	c.Set("k", 1, 1, 42)
	now = now.Add(59 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry expired early")
	}
	now = now.Add(time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("entry not expired after TTL")
	}
	if c.Len() != 0 || c.Usage(1) != 0 {
		t.Error("expired entry still counted")
	}
}

func TestDeleteAndInvalidate(t *testing.T) {
	c := New[string, int](Limits{})
	c.Set("a", 1, 10, 1)
	c.Set("b", 2, 10, 2)

	c.Delete("a")
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Delete() left entry")
	}
	if c.Usage(1) != 0 {
		t.Errorf("Usage(1) = %d, want 0", c.Usage(1))
	}

	c.Invalidate()
	if c.Len() != 0 || c.Usage(2) != 0 {
		t.Error("Invalidate() left entries")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[string, int](Limits{DefaultBook: 50})
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			c.Set(key, i%3+1, 5, i)
			c.Get(key)
		}(i)
	}
	wg.Wait()

	for book := 1; book <= 3; book++ {
		if u := c.Usage(book); u > 50 {
			t.Errorf("Usage(%d) = %d exceeds budget", book, u)
		}
	}
}
