package tui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agsearch/ag-tui/internal/config"
	"github.com/agsearch/ag-tui/internal/model"
	"github.com/agsearch/ag-tui/internal/present"
	"github.com/agsearch/ag-tui/internal/search"
	"github.com/agsearch/ag-tui/internal/session"
	"github.com/agsearch/ag-tui/internal/tui/picker"
	"github.com/agsearch/ag-tui/internal/tui/preview"
	"github.com/agsearch/ag-tui/internal/tui/results"
	"github.com/agsearch/ag-tui/internal/ui"
	"github.com/agsearch/ag-tui/internal/workspace"
)

type Mode int

const (
	ModePicker Mode = iota
	ModeResults
	ModePreview
)

// ConfigSource re-reads configuration; the dotfile is consulted before
// every invocation so edits apply without a restart.
type ConfigSource interface {
	Load() (*config.Config, error)
}

type App struct {
	cfgSource ConfigSource
	runner    search.Runner
	root      string // workspace root / working directory for searches
	sess      *session.Session

	// Views
	pickerView  picker.Model
	resultsView results.Model
	previewView preview.Model

	// State
	mode      Mode
	backTo    Mode // where esc from the preview returns
	resultSet *model.ResultSet
	prevTerm  string
	status    string
	width     int
	height    int
	showHelp  bool

	// Presentation settings captured at startup
	previewContext int
	editor         string
}

func NewApp(cfg *config.Config, cfgSource ConfigSource, runner search.Runner, root string) App {
	return App{
		cfgSource:      cfgSource,
		runner:         runner,
		root:           root,
		sess:           session.New(cfg.MinQueryLength, cfg.Debounce()),
		pickerView:     picker.New(),
		resultsView:    results.New(),
		previewView:    preview.New(),
		status:         fmt.Sprintf("Type at least %d characters to search", cfg.MinQueryLength),
		previewContext: cfg.PreviewContext,
		editor:         cfg.Editor,
	}
}

func (a App) Init() tea.Cmd {
	return a.pickerView.Init()
}

// --- Commands ---

func (a App) armDebounce(gen int) tea.Cmd {
	return tea.Tick(a.sess.Delay(), func(time.Time) tea.Msg {
		return ui.DebounceTickMsg{Gen: gen}
	})
}

func (a App) runSearch(gen int, q model.Query) tea.Cmd {
	cfgSource, runner, root := a.cfgSource, a.runner, a.root
	return func() tea.Msg {
		cfg, err := cfgSource.Load()
		if err != nil {
			return ui.SearchDoneMsg{Gen: gen, Err: err}
		}
		var ignore search.IgnoreMatcher
		if cfg.RespectGitignore {
			ignore = workspace.NewIgnore(root)
		}
		inv := search.NewInvoker(cfg, runner, root, ignore)
		rs, err := inv.Invoke(context.Background(), q)
		return ui.SearchDoneMsg{Gen: gen, Results: rs, Err: err}
	}
}

// loadPreview reads a window of the matched file around the match line.
func (a App) loadPreview(m model.Match) tea.Cmd {
	root, ctx := a.root, a.previewContext
	return func() tea.Msg {
		path := m.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return ui.PreviewLoadedMsg{Path: path, Match: m, Err: err}
		}
		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

		start := m.Line - ctx
		if start < 1 {
			start = 1
		}
		end := m.Line + ctx
		if end > len(lines) {
			end = len(lines)
		}
		if start > len(lines) {
			start = len(lines)
		}
		return ui.PreviewLoadedMsg{
			Path:      workspace.Rel(root, path),
			Lines:     lines[start-1 : end],
			StartLine: start,
			Match:     m,
		}
	}
}

func (a App) openEditor(m model.Match) tea.Cmd {
	editor := a.editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}
	path := m.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.root, path)
	}
	cmd := exec.Command(editor, fmt.Sprintf("+%d", m.Line), path)
	cmd.Dir = a.root
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return ui.EditorFinishedMsg{Err: err}
	})
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()
		return &a, nil

	case tea.KeyMsg:
		if a.showHelp {
			a.showHelp = false
			return &a, nil
		}

		switch {
		case key.Matches(msg, ui.Keys.Quit):
			a.sess.Close()
			return &a, tea.Quit
		case key.Matches(msg, ui.Keys.Help):
			a.showHelp = true
			return &a, nil
		}

		switch a.mode {
		case ModePicker:
			return a.updatePicker(msg)
		case ModeResults:
			return a.updateResults(msg)
		case ModePreview:
			return a.updatePreview(msg)
		}

	case ui.DebounceTickMsg:
		if q, ok := a.sess.TimerFired(msg.Gen); ok {
			a.status = fmt.Sprintf("Searching for %q...", q.Term)
			a.pickerView.SetSearching(true)
			cmds = append(cmds, a.runSearch(msg.Gen, q))
		}

	case ui.SearchDoneMsg:
		if !a.sess.Completed(msg.Gen) {
			return &a, nil // superseded; latest-start-wins
		}
		a.pickerView.SetSearching(false)
		if msg.Err != nil {
			// Interactive failures degrade to an inert placeholder row.
			a.resultSet = nil
			a.pickerView.SetNote("search error: " + msg.Err.Error())
			a.resultsView.SetGroups(nil)
			a.status = msg.Err.Error()
			return &a, nil
		}
		a.resultSet = msg.Results
		a.pickerView.SetEntries(present.ToFlatPicker(msg.Results))
		a.resultsView.SetGroups(present.ToTree(msg.Results))
		a.status = a.resultStatus()

	case ui.PreviewLoadedMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("Cannot preview %s: %v", msg.Path, msg.Err)
			return &a, nil
		}
		a.previewView.SetWindow(msg.Path, msg.Lines, msg.StartLine, msg.Match)
		a.backTo = a.mode
		a.mode = ModePreview
		a.propagateSize()

	case ui.EditorFinishedMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("Editor error: %v", msg.Err)
		} else {
			a.status = a.resultStatus()
		}

	case ui.StatusMsg:
		a.status = msg.Text
	}

	return &a, tea.Batch(cmds...)
}

func (a App) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch {
	case key.Matches(msg, ui.Keys.Back):
		// Dismissal closes the session; the controller becomes inert.
		a.sess.Close()
		return &a, tea.Quit
	case key.Matches(msg, ui.Keys.Results):
		if a.resultSet != nil && len(a.resultSet.Matches) > 0 {
			a.mode = ModeResults
			a.propagateSize()
		}
		return &a, nil
	case key.Matches(msg, ui.Keys.Enter):
		if m, ok := a.selectedFromPicker(); ok {
			return &a, a.loadPreview(m)
		}
		return &a, nil
	case key.Matches(msg, ui.Keys.Open):
		if m, ok := a.selectedFromPicker(); ok {
			return &a, a.openEditor(m)
		}
		return &a, nil
	}

	var cmd tea.Cmd
	a.pickerView, cmd = a.pickerView.Update(msg)
	cmds = append(cmds, cmd)

	if term := a.pickerView.Value(); term != a.prevTerm {
		a.prevTerm = term
		gen, arm := a.sess.Input(term, "")
		if arm {
			cmds = append(cmds, a.armDebounce(gen))
		} else {
			// Term empty or below the minimum: clear the view right away.
			a.resultSet = nil
			a.pickerView.SetEntries(nil)
			a.resultsView.SetGroups(nil)
			a.status = "Type to search"
		}
	}

	return &a, tea.Batch(cmds...)
}

func (a App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ui.Keys.Back), key.Matches(msg, ui.Keys.Results):
		a.mode = ModePicker
		a.propagateSize()
		return &a, nil
	case key.Matches(msg, ui.Keys.Enter):
		if m, ok := a.resultsView.Selected(); ok {
			return &a, a.loadPreview(m)
		}
		return &a, nil
	case key.Matches(msg, ui.Keys.Open):
		if m, ok := a.resultsView.Selected(); ok {
			return &a, a.openEditor(m)
		}
		return &a, nil
	}

	var cmd tea.Cmd
	a.resultsView, cmd = a.resultsView.Update(msg)
	return &a, cmd
}

func (a App) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ui.Keys.Back):
		a.mode = a.backTo
		a.propagateSize()
		return &a, nil
	case key.Matches(msg, ui.Keys.Enter), key.Matches(msg, ui.Keys.Open):
		var m model.Match
		var ok bool
		if a.backTo == ModeResults {
			m, ok = a.resultsView.Selected()
		} else {
			m, ok = a.selectedFromPicker()
		}
		if ok {
			return &a, a.openEditor(m)
		}
		return &a, nil
	}

	var cmd tea.Cmd
	a.previewView, cmd = a.previewView.Update(msg)
	return &a, cmd
}

// selectedFromPicker resolves the picker's selection key against the
// current result set. "+N more" rows carry a bare path and resolve to the
// file's first match.
func (a App) selectedFromPicker() (model.Match, bool) {
	e, ok := a.pickerView.Selected()
	if !ok {
		return model.Match{}, false
	}
	return present.ResolveSelection(e.Key, a.resultSet)
}

func (a App) resultStatus() string {
	if a.resultSet == nil || len(a.resultSet.Matches) == 0 {
		return "No matches"
	}
	files := len(present.ToTree(a.resultSet))
	s := fmt.Sprintf("%d matches in %d files", len(a.resultSet.Matches), files)
	if a.resultSet.Truncated {
		s += " (truncated)"
	}
	return s
}

func (a *App) propagateSize() {
	inner := tea.WindowSizeMsg{Width: a.width, Height: a.height - 2} // header + status bar
	a.pickerView, _ = a.pickerView.Update(inner)
	a.resultsView, _ = a.resultsView.Update(inner)
	a.previewView, _ = a.previewView.Update(inner)
}

// --- View ---

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}
	if a.showHelp {
		return a.helpView()
	}

	var body string
	switch a.mode {
	case ModePicker:
		body = a.pickerView.View()
	case ModeResults:
		body = a.resultsView.View()
	case ModePreview:
		body = a.previewView.View()
	}

	header := RenderHeader(a.root, a.width)
	status := RenderStatusBar(a.status, a.hints(), a.width)

	bodyHeight := a.height - 2
	lines := strings.Count(body, "\n")
	for lines < bodyHeight-1 {
		body += "\n"
		lines++
	}

	return header + "\n" + body + status
}

func (a App) hints() string {
	switch a.mode {
	case ModeResults:
		return "enter:preview  ctrl+o:editor  esc:back  ctrl+h:help"
	case ModePreview:
		return "enter:editor  esc:back"
	default:
		return "enter:preview  tab:tree  ctrl+o:editor  esc:quit  ctrl+h:help"
	}
}

func (a App) helpView() string {
	help := `
  ag-tui: interactive code search

  Picker
    type          search as you type (debounced)
    up/down       move selection
    enter         preview the selected match
    ctrl+o        open the match in your editor
    tab           grouped results tree
    esc           quit

  Results tree
    up/down       move between matches
    enter         preview
    esc / tab     back to the picker

  Preview
    enter         open in editor
    esc           back

  Press any key to close this help.`
	return help
}
