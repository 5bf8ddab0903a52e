// Package suggest provides the debounced remote lookup used by every
// autocomplete field: customer names, product names and invoice numbers.
//
// Each keystroke restarts the delay timer, so only the last input issued within
// the window reaches the network. Lookups already in flight are not cancelled
// when a newer one starts, but a response is only applied while its query is
// still the latest input and nothing has been picked since.
package suggest

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// FetchFunc performs one remote lookup for a partial query.
type FetchFunc[T any] func(ctx context.Context, query string) ([]T, error)

// Config tunes a Searcher. Zero fields take the defaults below.
type Config struct {
	MinLength int
	Delay     time.Duration
	BlurGrace time.Duration
	Limit     int
}

const (
	DefaultMinLength = 2
	DefaultDelay     = 300 * time.Millisecond
	DefaultBlurGrace = 150 * time.Millisecond
	DefaultLimit     = 8
)

func (c Config) withDefaults() Config {
	if c.MinLength <= 0 {
		c.MinLength = DefaultMinLength
	}
	if c.Delay <= 0 {
		c.Delay = DefaultDelay
	}
	if c.BlurGrace <= 0 {
		c.BlurGrace = DefaultBlurGrace
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	return c
}

// Eligible reports whether query is long enough to be looked up.
func (c Config) Eligible(query string) bool {
	c = c.withDefaults()
	return utf8.RuneCountInString(strings.TrimSpace(query)) >= c.MinLength
}

// State is what a suggestion list currently shows.
type State[T any] struct {
	Query   string
	Results []T
	Visible bool
	Loading bool
	Err     error
}

// Searcher owns the timers and list state of one autocomplete field.
type Searcher[T any] struct {
	cfg      Config
	fetch    FetchFunc[T]
	onChange func(State[T])
	ctx      context.Context
	cancel   context.CancelFunc

	mu        sync.Mutex
	timer     *time.Timer
	blurTimer *time.Timer
	state     State[T]
	gen       uint64
	selected  T
	picked    bool
	stopped   bool
}

// New creates a Searcher. onChange, when non-nil, is called after every state
// change, outside the internal lock and possibly from a timer goroutine.
func New[T any](cfg Config, fetch FetchFunc[T], onChange func(State[T])) *Searcher[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Searcher[T]{
		cfg:      cfg.withDefaults(),
		fetch:    fetch,
		onChange: onChange,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Config returns the effective configuration.
func (s *Searcher[T]) Config() Config { return s.cfg }

// Input records a new value of the bound field. Short queries clear and hide
// the list right away; longer ones schedule a single lookup after the delay.
func (s *Searcher[T]) Input(query string) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopTimersLocked()
	s.gen++
	s.picked = false
	s.state.Query = query
	s.state.Err = nil
	if !s.cfg.Eligible(query) {
		s.state.Results = nil
		s.state.Visible = false
		s.state.Loading = false
		st := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(st)
		return
	}
	gen := s.gen
	s.timer = time.AfterFunc(s.cfg.Delay, func() { s.run(query, gen) })
	s.mu.Unlock()
}

// currentLocked reports whether a lookup issued at gen may still touch the list.
func (s *Searcher[T]) currentLocked(gen uint64) bool {
	return !s.stopped && !s.picked && gen == s.gen
}

func (s *Searcher[T]) run(query string, gen uint64) {
	s.mu.Lock()
	if !s.currentLocked(gen) {
		s.mu.Unlock()
		return
	}
	s.state.Loading = true
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)

	results, err := s.fetch(s.ctx, query)

	s.mu.Lock()
	if !s.currentLocked(gen) {
		s.mu.Unlock()
		return
	}
	s.state.Loading = false
	if err != nil {
		s.state.Results = nil
		s.state.Visible = false
		s.state.Err = err
	} else {
		if len(results) > s.cfg.Limit {
			results = results[:s.cfg.Limit]
		}
		s.state.Results = results
		s.state.Visible = true
		s.state.Err = nil
	}
	st = s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
}

// Select fills the bound value with item, then clears and hides the list.
func (s *Searcher[T]) Select(item T) {
	s.mu.Lock()
	s.stopTimersLocked()
	s.gen++
	s.selected = item
	s.picked = true
	s.state.Results = nil
	s.state.Visible = false
	s.state.Loading = false
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
}

// Selected returns the last chosen item, if the field has not been edited since.
func (s *Searcher[T]) Selected() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.picked
}

// Dismiss hides the list immediately, as a click outside it does.
func (s *Searcher[T]) Dismiss() {
	s.mu.Lock()
	if s.blurTimer != nil {
		s.blurTimer.Stop()
		s.blurTimer = nil
	}
	s.state.Visible = false
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
}

// Blur hides the list after the grace delay, leaving room for a pending Select.
func (s *Searcher[T]) Blur() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.blurTimer != nil {
		s.blurTimer.Stop()
	}
	s.blurTimer = time.AfterFunc(s.cfg.BlurGrace, s.Dismiss)
}

// Snapshot returns a copy of the current list state.
func (s *Searcher[T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Stop cancels timers and ignores any response still in flight.
func (s *Searcher[T]) Stop() {
	s.mu.Lock()
	s.stopTimersLocked()
	s.stopped = true
	s.mu.Unlock()
	s.cancel()
}

func (s *Searcher[T]) stopTimersLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.blurTimer != nil {
		s.blurTimer.Stop()
		s.blurTimer = nil
	}
}

func (s *Searcher[T]) snapshotLocked() State[T] {
	st := s.state
	if st.Results != nil {
		st.Results = append([]T(nil), st.Results...)
	}
	return st
}

func (s *Searcher[T]) notify(st State[T]) {
	if s.onChange != nil {
		s.onChange(st)
	}
}
