package results

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agsearch/ag-tui/internal/model"
	"github.com/agsearch/ag-tui/internal/present"
)

func mk(file string, line int) model.Match {
	return model.Match{File: file, Line: line, Column: 1, Excerpt: "needle"}
}

// rows: [a.go header, a.go:1, a.go:5, b.go header, b.go:9]
func twoFileModel() Model {
	m := New()
	m.SetGroups([]present.FileGroup{
		{Path: "a.go", Count: 2, Matches: []model.Match{mk("a.go", 1), mk("a.go", 5)}},
		{Path: "b.go", Count: 1, Matches: []model.Match{mk("b.go", 9)}},
	})
	return m
}

func up() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyUp} }
func down() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyDown} }

func TestCursorStartsOnFirstMatch(t *testing.T) {
	m := twoFileModel()

	sel, ok := m.Selected()
	if !ok || sel.File != "a.go" || sel.Line != 1 {
		t.Fatalf("initial selection = %+v", sel)
	}
}

func TestCursorSkipsHeadersMovingDown(t *testing.T) {
	m := twoFileModel()

	m, _ = m.Update(down())
	m, _ = m.Update(down()) // crosses b.go's header
	sel, ok := m.Selected()
	if !ok || sel.File != "b.go" || sel.Line != 9 {
		t.Errorf("selection = %+v, want b.go:9", sel)
	}

	m, _ = m.Update(down())
	if sel, _ = m.Selected(); sel.File != "b.go" {
		t.Error("down past the last match should stay put")
	}
}

func TestCursorSkipsHeadersMovingUp(t *testing.T) {
	m := twoFileModel()
	m, _ = m.Update(down())
	m, _ = m.Update(down()) // on b.go:9

	m, _ = m.Update(up()) // crosses b.go's header
	sel, ok := m.Selected()
	if !ok || sel.File != "a.go" || sel.Line != 5 {
		t.Errorf("selection = %+v, want a.go:5", sel)
	}
}

func TestCursorNeverParksOnHeader(t *testing.T) {
	m := twoFileModel()

	// Up from the very first match has nowhere to go; the cursor must stay
	// on a selectable row rather than the file header above it.
	m, _ = m.Update(up())
	sel, ok := m.Selected()
	if !ok {
		t.Fatal("cursor parked on a non-selectable row")
	}
	if sel.File != "a.go" || sel.Line != 1 {
		t.Errorf("selection = %+v, want a.go:1", sel)
	}
}
