package otel

import (
	"sync"
	"testing"
)

func fill(r *RingBuffer, n int) {
	for i := 0; i < n; i++ {
		r.Push(Event{Kind: KindFetchStart, Count: i})
	}
}

func counts(evs []Event) []int {
	out := make([]int, len(evs))
	for i, e := range evs {
		out[i] = e.Count
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRingOrdering(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		pushed int
		last   int
		want   []int
	}{
		{"partial snapshot", 8, 5, -1, []int{0, 1, 2, 3, 4}},
		{"wrapped snapshot", 4, 8, -1, []int{4, 5, 6, 7}},
		{"last of full", 8, 8, 3, []int{5, 6, 7}},
		{"last across wrap", 4, 6, 2, []int{4, 5}},
		{"last more than stored", 8, 2, 100, []int{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRingBuffer(tt.size)
			fill(r, tt.pushed)
			var got []Event
			if tt.last < 0 {
				got = r.Snapshot()
			} else {
				got = r.Last(tt.last)
			}
			if !equalInts(counts(got), tt.want) {
				t.Errorf("got %v, want %v", counts(got), tt.want)
			}
		})
	}
}

func TestRingEmptyAndNonPositive(t *testing.T) {
	r := NewRingBuffer(8)
	if r.Snapshot() != nil {
		t.Error("empty ring snapshot should be nil")
	}
	r.Push(Event{Kind: KindStartup})
	if r.Last(0) != nil || r.Last(-1) != nil {
		t.Error("Last with n <= 0 should be nil")
	}
}

func TestRingLenAndCap(t *testing.T) {
	r := NewRingBuffer(4)
	if r.Len() != 0 || r.Cap() != 4 {
		t.Fatalf("new ring: len=%d cap=%d", r.Len(), r.Cap())
	}
	fill(r, 10)
	if r.Len() != 4 {
		t.Errorf("expected len capped at 4, got %d", r.Len())
	}
	if NewRingBuffer(0).Cap() != DefaultRingSize {
		t.Errorf("expected default capacity %d", DefaultRingSize)
	}
}

func TestRingStats(t *testing.T) {
	r := NewRingBuffer(16)
	for _, k := range []EventKind{KindFetchStart, KindFetchStart, KindFetchComplete, KindFetchStale, KindFetchStale, KindFetchStale} {
		r.Push(Event{Kind: k})
	}
	stats := r.Stats()
	if stats[KindFetchStart] != 2 || stats[KindFetchComplete] != 1 || stats[KindFetchStale] != 3 {
		t.Errorf("unexpected stats: %v", stats)
	}
}

func TestRingLastOf(t *testing.T) {
	r := NewRingBuffer(4)
	r.Push(Event{Kind: KindFetchError, Err: "old"})
	r.Push(Event{Kind: KindFetchError, Err: "new"})
	r.Push(Event{Kind: KindFetchStart})

	e, ok := r.LastOf(KindFetchError)
	if !ok || e.Err != "new" {
		t.Errorf("LastOf = %+v, %v; want newest fetch.error", e, ok)
	}
	if _, ok := r.LastOf(KindDetailsError); ok {
		t.Error("LastOf should report false for an absent kind")
	}
}

func TestRingCopiesExtra(t *testing.T) {
	r := NewRingBuffer(4)
	extra := map[string]any{"window": "week"}
	r.Push(Event{Kind: KindFetchStart, Extra: extra})
	extra["window"] = "day"

	if got := r.Snapshot()[0].Extra["window"]; got != "week" {
		t.Errorf("extra was aliased: got %v", got)
	}
}

func TestRingConcurrentAccess(t *testing.T) {
	r := NewRingBuffer(128)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			fill(r, 100)
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = r.Snapshot()
				_ = r.Last(10)
				_ = r.Stats()
			}
		}()
	}
	wg.Wait()
	if r.Len() != 128 {
		t.Errorf("expected full ring, got %d", r.Len())
	}
}
