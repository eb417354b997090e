// Package workspace resolves the search workspace: the enclosing git
// worktree root and its .gitignore patterns.
package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Root walks up from dir looking for a .git entry and returns the
// enclosing worktree root. When none is found it returns dir itself, so
// the process's own directory serves as the workspace.
func Root(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	for cur := abs; ; {
		if _, err := os.Stat(filepath.Join(cur, ".git")); err == nil {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs
		}
		cur = parent
	}
}

// Ignore matches paths against the workspace .gitignore. A workspace
// without one ignores nothing.
type Ignore struct {
	root    string
	matcher gitignore.Matcher
}

// NewIgnore loads .gitignore from the workspace root. A missing or
// unreadable file yields a matcher that never ignores.
func NewIgnore(root string) *Ignore {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return &Ignore{root: root}
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if len(patterns) == 0 {
		return &Ignore{root: root}
	}
	return &Ignore{root: root, matcher: gitignore.NewMatcher(patterns)}
}

// Ignored reports whether path (absolute or workspace-relative) matches a
// .gitignore pattern. Paths outside the workspace are never ignored.
func (ig *Ignore) Ignored(path string) bool {
	if ig.matcher == nil {
		return false
	}
	rel := path
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(ig.root, path)
		if err != nil || strings.HasPrefix(r, "..") {
			return false
		}
		rel = r
	}
	return ig.matcher.Match(splitPath(rel), false)
}

// Rel shortens path for display, relative to root when possible.
func Rel(root, path string) string {
	if root == "" || !filepath.IsAbs(path) {
		return path
	}
	r, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(r, "..") {
		return path
	}
	return r
}

// splitPath splits a path into segments for gitignore matching, dropping
// empty and "." parts.
func splitPath(path string) []string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" && p != "." {
			segments = append(segments, p)
		}
	}
	return segments
}
