package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/suggest"
)

type fakeFetch struct {
	mu      sync.Mutex
	queries []string
	results []string
}

func (f *fakeFetch) fetch(_ context.Context, q string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.results, nil
}

func (f *fakeFetch) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func typeText(m *LookupModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// pump feeds searcher updates into the model until cond holds.
func pump(t *testing.T, m *LookupModel, cond func(suggest.State[string]) bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond(m.state) {
		select {
		case st := <-m.updates:
			m.Update(stateMsg(st))
		case <-deadline:
			t.Fatalf("timed out, state = %+v", m.state)
		}
	}
}

func newTestLookup(f *fakeFetch) *LookupModel {
	return NewLookup("Customer", suggest.Config{Delay: 10 * time.Millisecond}, f.fetch)
}

func TestLookupSelectsHighlightedResult(t *testing.T) {
	f := &fakeFetch{results: []string{"Acme Mills", "Acorn Traders"}}
	m := newTestLookup(f)

	typeText(m, "ac")
	pump(t, m, func(s suggest.State[string]) bool { return s.Visible && len(s.Results) == 2 })
	if got := f.calls(); len(got) != 1 || got[0] != "ac" {
		t.Fatalf("queries = %v", got)
	}
	if !strings.Contains(m.View(), "Acorn Traders") {
		t.Fatalf("results not rendered: %s", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	v, ok := m.Result()
	if !ok || v != "Acorn Traders" {
		t.Fatalf("result = %q %v", v, ok)
	}
}

func TestLookupSingleCharacterDoesNotSearch(t *testing.T) {
	f := &fakeFetch{results: []string{"x"}}
	m := newTestLookup(f)
	typeText(m, "a")
	time.Sleep(50 * time.Millisecond)
	if n := len(f.calls()); n != 0 {
		t.Fatalf("fetches = %d", n)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if v, ok := m.Result(); !ok || v != "a" {
		t.Fatalf("typed value should be returned as is, got %q %v", v, ok)
	}
}

func TestLookupEscClosesListThenCancels(t *testing.T) {
	f := &fakeFetch{results: []string{"INV-001"}}
	m := newTestLookup(f)
	typeText(m, "IN")
	pump(t, m, func(s suggest.State[string]) bool { return s.Visible })

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state.Visible {
		t.Fatalf("esc should hide the list")
	}
	if m.done || m.cancelled {
		t.Fatalf("first esc should not leave the screen")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.Result(); ok {
		t.Fatalf("cancelled lookup returned a value")
	}
}
