// Package session owns the single logical "current query" of one open
// interactive search surface: it coalesces rapid input changes, decides
// when a debounce window has settled, and guards against publishing stale
// results.
package session

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agsearch/ag-tui/internal/model"
)

// State of the query state machine.
type State int

const (
	Idle State = iota
	PendingDebounce
	Running
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingDebounce:
		return "pending-debounce"
	case Running:
		return "running"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Session is a per-surface state machine. It does not own real timers;
// the caller arms one per Input and reports back via TimerFired with the
// generation it was armed for. Every input change advances the generation,
// which makes older timers and in-flight invocations stale; publication
// is latest-start-wins.
type Session struct {
	state     State
	gen       int
	query     model.Query
	minLength int
	delay     time.Duration
}

// New creates a session. minLength is the shortest term that triggers a
// search; delay is the debounce window.
func New(minLength int, delay time.Duration) *Session {
	return &Session{minLength: minLength, delay: delay}
}

// Input registers an input change. When the term qualifies, it returns the
// generation to arm a debounce timer for; otherwise arm is false and the
// caller clears the result view immediately.
func (s *Session) Input(term, root string) (gen int, arm bool) {
	if s.state == Closed {
		return 0, false
	}
	s.gen++ // supersedes any armed timer and any in-flight invocation
	if strings.TrimSpace(term) == "" || utf8.RuneCountInString(term) < s.minLength {
		s.state = Idle
		s.query = model.Query{}
		return 0, false
	}
	s.query = model.Query{Term: term, Root: root}
	s.state = PendingDebounce
	return s.gen, true
}

// TimerFired reports whether the debounce window armed at gen settled
// without further input. On success the session moves to Running and
// returns the query to execute; at most one invocation is started per
// settled window.
func (s *Session) TimerFired(gen int) (model.Query, bool) {
	if s.state != PendingDebounce || gen != s.gen {
		return model.Query{}, false
	}
	s.state = Running
	return s.query, true
}

// Completed reports whether the invocation started at gen is still the
// newest one and its result should be published. Stale or post-close
// completions are discarded.
func (s *Session) Completed(gen int) bool {
	if s.state == Closed || gen != s.gen {
		return false
	}
	if s.state == Running {
		s.state = Idle
	}
	return true
}

// Close makes the session inert; no further transitions occur.
func (s *Session) Close() {
	s.state = Closed
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Delay returns the debounce window.
func (s *Session) Delay() time.Duration { return s.delay }
