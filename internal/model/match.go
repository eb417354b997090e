package model

// Match is one located search hit. Matches are immutable value records
// produced fresh per invocation.
type Match struct {
	File    string // path as printed by the search tool
	Line    int    // 1-based
	Column  int    // 1-based
	Content string // full matched line
	Excerpt string // trimmed window centered on the search term
}

// Query is one ephemeral search request, superseded by the next keystroke.
type Query struct {
	Term string
	Root string // optional search-root override
}

// ResultSet is the ordered, size-capped outcome of one completed invocation.
type ResultSet struct {
	Query     Query
	Matches   []Match
	Truncated bool // capped at the configured max_results
}
