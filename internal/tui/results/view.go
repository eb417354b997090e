// Package results is the grouped results surface: one section per file,
// one row per match, in the order the tool reported them.
package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agsearch/ag-tui/internal/model"
	"github.com/agsearch/ag-tui/internal/present"
	"github.com/agsearch/ag-tui/internal/ui"
)

// row maps one rendered line back to its source.
type row struct {
	group int // index into groups
	match int // index into group.Matches, -1 for the file header
}

type Model struct {
	viewport viewport.Model
	groups   []present.FileGroup
	rows     []row
	cursor   int // index into rows, parked on match rows
	width    int
	height   int
	ready    bool
}

func New() Model {
	return Model{}
}

// SetGroups replaces the tree content and resets the cursor to the first
// match row.
func (m *Model) SetGroups(groups []present.FileGroup) {
	m.groups = groups
	m.rows = m.rows[:0]
	for gi, g := range groups {
		m.rows = append(m.rows, row{group: gi, match: -1})
		for mi := range g.Matches {
			m.rows = append(m.rows, row{group: gi, match: mi})
		}
	}
	m.cursor = 0
	if first := m.nearestMatch(0, 1); first >= 0 {
		m.cursor = first
	}
	if m.ready {
		m.viewport.SetContent(m.render())
		m.viewport.GotoTop()
	}
}

// Selected returns the match under the cursor.
func (m Model) Selected() (model.Match, bool) {
	if m.cursor >= len(m.rows) {
		return model.Match{}, false
	}
	r := m.rows[m.cursor]
	if r.match < 0 {
		return model.Match{}, false
	}
	return m.groups[r.group].Matches[r.match], true
}

// nearestMatch scans from the given row in the given direction and returns
// the first match row, or -1. Header rows are skipped, so stepping up past
// a file's first match lands on the previous file's last match.
func (m Model) nearestMatch(from, dir int) int {
	for i := from; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].match >= 0 {
			return i
		}
	}
	return -1
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ui.Keys.Down):
			if next := m.nearestMatch(m.cursor+1, 1); next >= 0 {
				m.cursor = next
				m.syncViewport()
			}
			return m, nil
		case key.Matches(msg, ui.Keys.Up):
			if prev := m.nearestMatch(m.cursor-1, -1); prev >= 0 {
				m.cursor = prev
				m.syncViewport()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
		m.viewport.SetContent(m.render())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.render())
	// Keep the cursor row visible.
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	}
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m Model) render() string {
	if len(m.rows) == 0 {
		return "  No matches"
	}
	var b strings.Builder
	for i, r := range m.rows {
		g := m.groups[r.group]
		var line string
		if r.match < 0 {
			line = fmt.Sprintf("%s %s", ui.StyleFile.Render(g.Path), ui.StyleMuted.Render(fmt.Sprintf("(%d)", g.Count)))
		} else {
			match := g.Matches[r.match]
			label := fmt.Sprintf("%d:%d", match.Line, match.Column)
			line = fmt.Sprintf("    %s  %s", label, ui.StyleMuted.Render(match.Excerpt))
			if i == m.cursor {
				line = ui.StyleCursorLine.Render(fmt.Sprintf("  > %s  %s", label, match.Excerpt))
			}
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) View() string {
	total := 0
	for _, g := range m.groups {
		total += g.Count
	}
	header := fmt.Sprintf("  %d matches in %d files", total, len(m.groups))
	hints := ui.StyleMuted.Render("  enter:preview  ctrl+o:editor  tab/esc:back")
	if !m.ready {
		return header + "\n"
	}
	return header + hints + "\n" + m.viewport.View()
}
