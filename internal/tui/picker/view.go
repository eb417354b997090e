// Package picker is the live-typing search surface: a text input on top of
// a flat, capped list of matches that refreshes as the user types.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agsearch/ag-tui/internal/present"
	"github.com/agsearch/ag-tui/internal/ui"
)

type Model struct {
	input     textinput.Model
	entries   []present.Entry
	cursor    int
	offset    int // first visible entry row
	width     int
	height    int
	searching bool
	note      string // inline placeholder: search error, hint, ...
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 256
	ti.Focus()
	return Model{input: ti}
}

// Value returns the current search term.
func (m Model) Value() string {
	return m.input.Value()
}

// Selected returns the entry under the cursor. Informational rows are not
// selectable.
func (m Model) Selected() (present.Entry, bool) {
	if m.cursor >= len(m.entries) {
		return present.Entry{}, false
	}
	e := m.entries[m.cursor]
	if e.Kind == present.EntryInfo {
		return present.Entry{}, false
	}
	return e, true
}

// SetEntries replaces the list and resets the cursor.
func (m *Model) SetEntries(entries []present.Entry) {
	m.entries = entries
	m.cursor = 0
	m.offset = 0
	m.note = ""
}

// SetSearching toggles the in-flight indicator.
func (m *Model) SetSearching(v bool) {
	m.searching = v
}

// SetNote clears the list and shows an inert placeholder row instead.
// Failures during live typing degrade to this; they never escape the UI.
func (m *Model) SetNote(note string) {
	m.entries = nil
	m.cursor = 0
	m.offset = 0
	m.note = note
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ui.Keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				m.scrollToCursor()
			}
			return m, nil
		case key.Matches(msg, ui.Keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.scrollToCursor()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6
		m.scrollToCursor()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// listHeight is the number of entry rows that fit under the input line.
func (m Model) listHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) scrollToCursor() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString("  > " + m.input.View() + "\n")

	if m.searching {
		b.WriteString(ui.StyleMuted.Render("  searching...") + "\n")
		return b.String()
	}
	if m.note != "" {
		b.WriteString(ui.StyleMuted.Render("  "+m.note) + "\n")
		return b.String()
	}

	end := m.offset + m.listHeight()
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderEntry(i) + "\n")
	}
	return b.String()
}

func (m Model) renderEntry(i int) string {
	e := m.entries[i]
	var line string
	switch e.Kind {
	case present.EntryMatch:
		line = fmt.Sprintf("  %s  %s", e.Label, ui.StyleMuted.Render(e.Detail))
	case present.EntryMore:
		line = fmt.Sprintf("  %s  %s", ui.StyleMuted.Render(e.Label), ui.StyleInfo.Render(e.Detail))
	case present.EntryInfo:
		line = "  " + ui.StyleWarning.Render(e.Label)
	}
	if i == m.cursor {
		line = ui.StyleCursorLine.Render("> " + strings.TrimPrefix(line, "  "))
	}
	return line
}
