package search

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/agsearch/ag-tui/internal/model"
)

// matchLine is the tool's output grammar: path:line:column:content.
var matchLine = regexp.MustCompile(`^(.+?):(\d+):(\d+):(.*)$`)

const (
	excerptContext  = 20
	excerptFallback = 50
)

// ParseOutput turns raw tool output into matches, one per conforming line.
// The tool may emit diagnostic lines between matches; anything that doesn't
// fit the grammar is skipped, not an error.
func ParseOutput(raw, term string) []model.Match {
	var matches []model.Match
	for _, line := range strings.Split(raw, "\n") {
		sub := matchLine.FindStringSubmatch(line)
		if sub == nil {
			continue
		}
		lineNo, err := strconv.Atoi(sub[2])
		if err != nil || lineNo < 1 {
			continue
		}
		col, err := strconv.Atoi(sub[3])
		if err != nil || col < 1 {
			continue
		}
		matches = append(matches, model.Match{
			File:    sub[1],
			Line:    lineNo,
			Column:  col,
			Content: sub[4],
			Excerpt: excerpt(sub[4], term),
		})
	}
	return matches
}

// excerpt returns a window of excerptContext characters on each side of the
// first case-insensitive occurrence of term, or the first excerptFallback
// characters when the term doesn't occur in the line. Windows are measured
// in runes so an edge never splits a multibyte character.
func excerpt(content, term string) string {
	runes := []rune(content)
	needle := []rune(term)

	idx := indexFold(runes, needle)
	if idx < 0 {
		if len(runes) > excerptFallback {
			return strings.TrimSpace(string(runes[:excerptFallback]))
		}
		return strings.TrimSpace(content)
	}
	start := idx - excerptContext
	if start < 0 {
		start = 0
	}
	end := idx + len(needle) + excerptContext
	if end > len(runes) {
		end = len(runes)
	}
	return strings.TrimSpace(string(runes[start:end]))
}

// indexFold locates the first case-insensitive occurrence of needle in
// haystack, comparing rune by rune so the index stays valid for haystack
// even when case pairs differ in encoded length.
func indexFold(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		found := true
		for j, r := range needle {
			if unicode.ToLower(haystack[i+j]) != unicode.ToLower(r) {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}
