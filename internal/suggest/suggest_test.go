package suggest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu      sync.Mutex
	queries []string
	calls   chan string
}

func newRecorder() *recorder { return &recorder{calls: make(chan string, 16)} }

func (r *recorder) fetch(results []string, err error) FetchFunc[string] {
	return func(_ context.Context, q string) ([]string, error) {
		r.mu.Lock()
		r.queries = append(r.queries, q)
		r.mu.Unlock()
		r.calls <- q
		return results, err
	}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queries)
}

func testConfig() Config {
	return Config{MinLength: 2, Delay: 20 * time.Millisecond, BlurGrace: 20 * time.Millisecond, Limit: 3}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestSingleCharacterNeverFetches(t *testing.T) {
	rec := newRecorder()
	s := New(testConfig(), rec.fetch([]string{"Acme"}, nil), nil)
	defer s.Stop()

	s.Input("a")
	time.Sleep(80 * time.Millisecond)
	if rec.count() != 0 {
		t.Fatalf("expected no lookup for 1 char, got %d", rec.count())
	}
	if st := s.Snapshot(); st.Visible || len(st.Results) != 0 {
		t.Fatalf("list should be hidden and empty: %+v", st)
	}
}

func TestLastInputWinsAfterDelay(t *testing.T) {
	rec := newRecorder()
	s := New(testConfig(), rec.fetch([]string{"Acme Traders"}, nil), nil)
	defer s.Stop()

	s.Input("ac")
	s.Input("acm")
	s.Input("acme")

	select {
	case q := <-rec.calls:
		if q != "acme" {
			t.Fatalf("expected lookup for the last input, got %q", q)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("lookup never fired")
	}
	time.Sleep(60 * time.Millisecond)
	if rec.count() != 1 {
		t.Fatalf("expected exactly one lookup, got %d", rec.count())
	}
	waitFor(t, func() bool { return s.Snapshot().Visible })
	if got := s.Snapshot().Results; len(got) != 1 || got[0] != "Acme Traders" {
		t.Fatalf("unexpected results %v", got)
	}
}

func TestShortInputCancelsPendingLookup(t *testing.T) {
	rec := newRecorder()
	s := New(testConfig(), rec.fetch(nil, nil), nil)
	defer s.Stop()

	s.Input("ac")
	s.Input("a")
	time.Sleep(80 * time.Millisecond)
	if rec.count() != 0 {
		t.Fatalf("pending lookup should have been cancelled, got %d calls", rec.count())
	}
}

func TestResultsTruncatedToLimit(t *testing.T) {
	rec := newRecorder()
	s := New(testConfig(), rec.fetch([]string{"a1", "a2", "a3", "a4", "a5"}, nil), nil)
	defer s.Stop()

	s.Input("a1")
	waitFor(t, func() bool { return s.Snapshot().Visible })
	if n := len(s.Snapshot().Results); n != 3 {
		t.Fatalf("expected 3 results got %d", n)
	}
}

func TestFetchErrorHidesList(t *testing.T) {
	rec := newRecorder()
	boom := errors.New("offline")
	s := New(testConfig(), rec.fetch([]string{"x"}, boom), nil)
	defer s.Stop()

	s.Input("xy")
	<-rec.calls
	waitFor(t, func() bool { return s.Snapshot().Err != nil })
	st := s.Snapshot()
	if st.Visible || len(st.Results) != 0 || !errors.Is(st.Err, boom) {
		t.Fatalf("unexpected state after error: %+v", st)
	}
}

func TestSelectFillsAndHides(t *testing.T) {
	rec := newRecorder()
	var mu sync.Mutex
	var changes int
	s := New(testConfig(), rec.fetch([]string{"Acme", "Acorn"}, nil), func(State[string]) {
		mu.Lock()
		changes++
		mu.Unlock()
	})
	defer s.Stop()

	s.Input("ac")
	waitFor(t, func() bool { return s.Snapshot().Visible })
	s.Blur()
	s.Select("Acorn")

	got, ok := s.Selected()
	if !ok || got != "Acorn" {
		t.Fatalf("expected Acorn selected, got %q %v", got, ok)
	}
	st := s.Snapshot()
	if st.Visible || len(st.Results) != 0 {
		t.Fatalf("list should be cleared after select: %+v", st)
	}
	mu.Lock()
	defer mu.Unlock()
	if changes == 0 {
		t.Fatalf("onChange never called")
	}
}

func TestBlurHidesAfterGrace(t *testing.T) {
	rec := newRecorder()
	s := New(testConfig(), rec.fetch([]string{"Acme"}, nil), nil)
	defer s.Stop()

	s.Input("ac")
	waitFor(t, func() bool { return s.Snapshot().Visible })
	s.Blur()
	if !s.Snapshot().Visible {
		t.Fatalf("blur must not hide before the grace delay")
	}
	waitFor(t, func() bool { return !s.Snapshot().Visible })
}

func TestDismissHidesImmediately(t *testing.T) {
	rec := newRecorder()
	s := New(testConfig(), rec.fetch([]string{"Acme"}, nil), nil)
	defer s.Stop()

	s.Input("ac")
	waitFor(t, func() bool { return s.Snapshot().Visible })
	s.Dismiss()
	if s.Snapshot().Visible {
		t.Fatalf("dismiss should hide the list")
	}
}

func TestEditingClearsSelection(t *testing.T) {
	s := New(testConfig(), func(context.Context, string) ([]string, error) { return nil, nil }, nil)
	defer s.Stop()
	s.Select("Acme")
	s.Input("Ac")
	if _, ok := s.Selected(); ok {
		t.Fatalf("typing again should drop the previous selection")
	}
}

func TestDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	if c.MinLength != 2 || c.Delay != 300*time.Millisecond || c.Limit != DefaultLimit {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if (Config{}).Eligible("a") || !(Config{}).Eligible("ab") {
		t.Fatalf("eligibility threshold should be 2 characters")
	}
}

// gatedFetch blocks every lookup until release is closed.
func gatedFetch(started chan<- string, release <-chan struct{}, results []string) FetchFunc[string] {
	return func(_ context.Context, q string) ([]string, error) {
		started <- q
		<-release
		return results, nil
	}
}

func TestStaleResponseAfterShortInputIsDropped(t *testing.T) {
	started := make(chan string, 1)
	release := make(chan struct{})
	s := New(testConfig(), gatedFetch(started, release, []string{"Acme"}), nil)
	defer s.Stop()

	s.Input("ab")
	if q := <-started; q != "ab" {
		t.Fatalf("lookup for %q", q)
	}
	s.Input("a")
	close(release)
	time.Sleep(60 * time.Millisecond)

	st := s.Snapshot()
	if st.Query != "a" || st.Visible || len(st.Results) != 0 || st.Loading {
		t.Fatalf("stale response applied: %+v", st)
	}
}

func TestStaleResponseAfterSelectIsDropped(t *testing.T) {
	started := make(chan string, 1)
	release := make(chan struct{})
	s := New(testConfig(), gatedFetch(started, release, []string{"x"}), nil)
	defer s.Stop()

	s.Input("ab")
	<-started
	s.Select("Acme")
	close(release)
	time.Sleep(60 * time.Millisecond)

	st := s.Snapshot()
	if st.Visible || len(st.Results) != 0 {
		t.Fatalf("list reopened after select: %+v", st)
	}
	if v, ok := s.Selected(); !ok || v != "Acme" {
		t.Fatalf("selection lost: %q %v", v, ok)
	}
}

func TestInFlightResponseForLatestQueryApplies(t *testing.T) {
	started := make(chan string, 1)
	release := make(chan struct{})
	s := New(testConfig(), gatedFetch(started, release, []string{"Acme"}), nil)
	defer s.Stop()

	s.Input("ac")
	<-started
	close(release)
	waitFor(t, func() bool { return s.Snapshot().Visible })
	if st := s.Snapshot(); len(st.Results) != 1 || st.Loading {
		t.Fatalf("state = %+v", st)
	}
}
