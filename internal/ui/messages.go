package ui

import (
	"github.com/agsearch/ag-tui/internal/model"
)

// DebounceTickMsg fires when a debounce window may have settled. Gen ties
// the tick to the input change that armed it; stale ticks are ignored.
type DebounceTickMsg struct {
	Gen int
}

// SearchDoneMsg carries the outcome of one completed invocation.
type SearchDoneMsg struct {
	Gen     int
	Results *model.ResultSet
	Err     error
}

// PreviewLoadedMsg carries file content for the preview pane.
type PreviewLoadedMsg struct {
	Path      string
	Lines     []string // window of the file
	StartLine int      // 1-based line number of Lines[0]
	Match     model.Match
	Err       error
}

// EditorFinishedMsg is emitted when the spawned editor exits.
type EditorFinishedMsg struct {
	Err error
}

type StatusMsg struct {
	Text string
}
