// Package tui holds the interactive screens of the terminal client.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/suggest"
)

// stateMsg carries a suggestion list update from the searcher's goroutines.
type stateMsg suggest.State[string]

// LookupModel is a single autocomplete field: type to search, arrows to move,
// enter to choose.
type LookupModel struct {
	title    string
	input    textinput.Model
	searcher *suggest.Searcher[string]
	updates  chan suggest.State[string]
	state    suggest.State[string]
	cursor   int

	chosen    string
	done      bool
	cancelled bool
}

// NewLookup builds a lookup screen over fetch.
func NewLookup(title string, cfg suggest.Config, fetch suggest.FetchFunc[string]) *LookupModel {
	ti := textinput.New()
	ti.Placeholder = "start typing…"
	ti.Prompt = "› "
	ti.Focus()

	m := &LookupModel{
		title:   title,
		input:   ti,
		updates: make(chan suggest.State[string], 1),
	}
	m.searcher = suggest.New(cfg, fetch, m.publish)
	return m
}

// publish keeps only the newest state in the channel.
func (m *LookupModel) publish(st suggest.State[string]) {
	select {
	case <-m.updates:
	default:
	}
	select {
	case m.updates <- st:
	default:
	}
}

func (m *LookupModel) wait() tea.Cmd {
	return func() tea.Msg { return stateMsg(<-m.updates) }
}

func (m *LookupModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.wait())
}

func (m *LookupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = suggest.State[string](msg)
		if m.cursor >= len(m.state.Results) {
			m.cursor = 0
		}
		return m, m.wait()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			m.cancelled = true
			return m, m.quit()
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.state.Results)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, DefaultKeyMap.Select):
			if m.state.Visible && len(m.state.Results) > 0 {
				item := m.state.Results[m.cursor]
				m.searcher.Select(item)
				m.input.SetValue(item)
				m.chosen = item
			} else {
				m.chosen = strings.TrimSpace(m.input.Value())
			}
			m.done = true
			return m, m.quit()
		case key.Matches(msg, DefaultKeyMap.Back):
			if m.state.Visible {
				m.searcher.Dismiss()
				m.state.Visible = false
				return m, nil
			}
			m.cancelled = true
			return m, m.quit()
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.cursor = 0
		m.searcher.Input(v)
	}
	return m, cmd
}

func (m *LookupModel) quit() tea.Cmd {
	m.searcher.Stop()
	return tea.Quit
}

func (m *LookupModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n\n")
	b.WriteString(m.input.View() + "\n")

	switch {
	case m.state.Loading:
		b.WriteString(mutedStyle.Render("  searching…") + "\n")
	case m.state.Err != nil:
		b.WriteString(errorStyle.Render("  "+m.state.Err.Error()) + "\n")
	case m.state.Visible && len(m.state.Results) == 0:
		b.WriteString(mutedStyle.Render("  no matches") + "\n")
	case m.state.Visible:
		var list strings.Builder
		for i, r := range m.state.Results {
			if i == m.cursor {
				list.WriteString(selectedStyle.Render("› "+r) + "\n")
				continue
			}
			list.WriteString("  " + r + "\n")
		}
		b.WriteString(boxStyle.Render(strings.TrimRight(list.String(), "\n")) + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("enter choose · esc close · ctrl+c quit"))
	return b.String()
}

// Result returns the chosen value, or false when the screen was cancelled.
func (m *LookupModel) Result() (string, bool) {
	return m.chosen, m.done && !m.cancelled && m.chosen != ""
}

// RunLookup shows a lookup screen on the terminal and returns the chosen value.
func RunLookup(ctx context.Context, title string, cfg suggest.Config, fetch suggest.FetchFunc[string]) (string, bool, error) {
	m := NewLookup(title, cfg, fetch)
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		m.searcher.Stop()
		return "", false, fmt.Errorf("lookup: %w", err)
	}
	v, ok := final.(*LookupModel).Result()
	return v, ok, nil
}
