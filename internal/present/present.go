// Package present maps result sets into the two UI shapes: a hierarchical
// file→matches tree and a flat, size-capped list for the live picker, and
// resolves picker selections back to concrete matches.
package present

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agsearch/ag-tui/internal/model"
)

// FileGroup is one file node of the grouped results view.
type FileGroup struct {
	Path    string
	Count   int
	Matches []model.Match
}

// ToTree groups matches by file in order of first appearance. Within a
// group matches keep the tool's own ordering; no sort is imposed.
func ToTree(rs *model.ResultSet) []FileGroup {
	if rs == nil {
		return nil
	}
	var groups []FileGroup
	index := make(map[string]int)
	for _, m := range rs.Matches {
		i, ok := index[m.File]
		if !ok {
			i = len(groups)
			index[m.File] = i
			groups = append(groups, FileGroup{Path: m.File})
		}
		groups[i].Matches = append(groups[i].Matches, m)
		groups[i].Count++
	}
	return groups
}

// EntryKind discriminates picker rows.
type EntryKind int

const (
	EntryMatch EntryKind = iota
	EntryMore            // "+N more" marker for a file
	EntryInfo            // trailing "showing first N" marker
)

// Entry is one row of the live-typing picker. Key is the selection key:
// "path|line|column" for matches, the bare path for "+N more" rows.
type Entry struct {
	Kind   EntryKind
	Key    string
	Label  string
	Detail string
}

const (
	// FlatCap bounds the number of picker rows.
	FlatCap = 100
	// PerFileCap bounds the match rows shown per file.
	PerFileCap = 3
)

// ToFlatPicker flattens a result set for the live picker: at most
// PerFileCap matches per file plus a "+N more" marker, capped at FlatCap
// rows overall with a trailing informational row when rows were cut off.
func ToFlatPicker(rs *model.ResultSet) []Entry {
	if rs == nil {
		return nil
	}
	var entries []Entry
	shown := 0
	capped := false

	for _, g := range ToTree(rs) {
		for i, m := range g.Matches {
			if i == PerFileCap {
				if len(entries) == FlatCap {
					capped = true
					break
				}
				entries = append(entries, Entry{
					Kind:   EntryMore,
					Key:    g.Path,
					Label:  g.Path,
					Detail: fmt.Sprintf("+%d more", g.Count-PerFileCap),
				})
				break
			}
			if len(entries) == FlatCap {
				capped = true
				break
			}
			entries = append(entries, Entry{
				Kind:   EntryMatch,
				Key:    SelectionKey(m),
				Label:  fmt.Sprintf("%s:%d:%d", m.File, m.Line, m.Column),
				Detail: m.Excerpt,
			})
			shown++
		}
		if capped {
			break
		}
	}

	if capped || rs.Truncated {
		entries = append(entries, Entry{
			Kind:  EntryInfo,
			Label: fmt.Sprintf("showing first %d of %d matches", shown, len(rs.Matches)),
		})
	}
	return entries
}

// SelectionKey builds the composite key for a match.
func SelectionKey(m model.Match) string {
	return fmt.Sprintf("%s|%d|%d", m.File, m.Line, m.Column)
}

// ResolveSelection maps a picker key back to a match. Composite keys
// ("path|line|column") resolve to the exact match, falling back to the
// file's first match; a bare path resolves to the file's first match.
func ResolveSelection(key string, rs *model.ResultSet) (model.Match, bool) {
	if rs == nil || key == "" {
		return model.Match{}, false
	}
	parts := strings.Split(key, "|")
	path := parts[0]

	wantExact := len(parts) == 3
	var line, col int
	if wantExact {
		var err1, err2 error
		line, err1 = strconv.Atoi(parts[1])
		col, err2 = strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			wantExact = false
		}
	}

	var first *model.Match
	for i := range rs.Matches {
		m := &rs.Matches[i]
		if m.File != path {
			continue
		}
		if first == nil {
			first = m
		}
		if wantExact && m.Line == line && m.Column == col {
			return *m, true
		}
	}
	if first != nil {
		return *first, true
	}
	return model.Match{}, false
}
