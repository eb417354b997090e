// Package preview shows the file around a selected match with the matched
// line highlighted.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agsearch/ag-tui/internal/model"
	"github.com/agsearch/ag-tui/internal/ui"
)

type Model struct {
	viewport  viewport.Model
	path      string
	lines     []string
	startLine int // 1-based number of lines[0]
	match     model.Match
	width     int
	height    int
	ready     bool
}

func New() Model {
	return Model{}
}

// SetWindow loads a window of file content centered on the match and
// scrolls the matched line into view.
func (m *Model) SetWindow(path string, lines []string, startLine int, match model.Match) {
	m.path = path
	m.lines = lines
	m.startLine = startLine
	m.match = match
	if m.ready {
		m.viewport.SetContent(m.render())
		m.gotoMatch()
	}
}

func (m *Model) gotoMatch() {
	offset := m.match.Line - m.startLine - m.viewport.Height/2
	if offset < 0 {
		offset = 0
	}
	m.viewport.SetYOffset(offset)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
			if len(m.lines) > 0 {
				m.viewport.SetContent(m.render())
				m.gotoMatch()
			}
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) render() string {
	var b strings.Builder
	numWidth := len(fmt.Sprintf("%d", m.startLine+len(m.lines)))
	for i, line := range m.lines {
		no := m.startLine + i
		rendered := fmt.Sprintf(" %*d  %s", numWidth, no, line)
		if no == m.match.Line {
			rendered = ui.StyleMatch.Render(rendered)
		}
		b.WriteString(rendered + "\n")
	}
	return b.String()
}

func (m Model) View() string {
	header := fmt.Sprintf("  %s:%d:%d", m.path, m.match.Line, m.match.Column)
	hints := ui.StyleMuted.Render("  enter/ctrl+o:editor  esc:back")
	if !m.ready {
		return header + "\n"
	}
	return header + hints + "\n" + m.viewport.View()
}
