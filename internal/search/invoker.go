package search

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/agsearch/ag-tui/internal/config"
	"github.com/agsearch/ag-tui/internal/model"
)

// IgnoreMatcher filters matches in workspace-ignored files out of a result
// set. Useful when the default options include flags like --hidden or -U
// that make the tool search files it would otherwise skip.
type IgnoreMatcher interface {
	Ignored(path string) bool
}

// Invoker shells out to the configured search tool and turns its output
// into a ResultSet.
type Invoker struct {
	cfg           *config.Config
	runner        Runner
	workspaceRoot string
	ignore        IgnoreMatcher // nil disables filtering
}

// NewInvoker creates an Invoker. workspaceRoot is the working directory
// used when a query carries no root override; empty means the process's
// own working directory.
func NewInvoker(cfg *config.Config, runner Runner, workspaceRoot string, ignore IgnoreMatcher) *Invoker {
	if cfg == nil {
		panic("cfg is required")
	}
	if runner == nil {
		panic("runner is required")
	}
	return &Invoker{
		cfg:           cfg,
		runner:        runner,
		workspaceRoot: workspaceRoot,
		ignore:        ignore,
	}
}

// BuildArgs assembles the argument vector: configured default options, one
// --ignore/pattern pair per ignore glob, the literal term, then the
// optional search root. The term is passed through verbatim.
func (inv *Invoker) BuildArgs(q model.Query) []string {
	args := []string{inv.cfg.AgPath}
	args = append(args, inv.cfg.DefaultOptions...)
	for _, p := range inv.cfg.IgnorePatterns {
		args = append(args, "--ignore", p)
	}
	args = append(args, q.Term)
	if q.Root != "" {
		args = append(args, q.Root)
	}
	return args
}

// DisplayCommand renders argv for logging only. Arguments containing
// whitespace or quote characters are quoted; the real invocation always
// receives the vector, never this string.
func DisplayCommand(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		if strings.ContainsAny(a, " \t\"'") {
			parts[i] = strconv.Quote(a)
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}

// Invoke runs one search and interprets the exit code. The tool's exit
// code 1 is ambiguous: with stdout it carries matches, with empty stdout
// and empty stderr it means "ran, no matches". Any other non-zero exit is
// a failure carrying the diagnostic text.
func (inv *Invoker) Invoke(ctx context.Context, q model.Query) (*model.ResultSet, error) {
	argv := inv.BuildArgs(q)
	dir := q.Root
	if dir == "" {
		dir = inv.workspaceRoot
	}
	if inv.cfg.Debug {
		log.Printf("search: %s (in %s)", DisplayCommand(argv), dir)
	}

	out, err := inv.runner.Run(ctx, argv, dir)
	if err != nil {
		return nil, &ToolUnavailableError{Path: inv.cfg.AgPath, Cause: err}
	}

	switch {
	case out.ExitCode == 0:
	case out.ExitCode == 1 && out.Stdout != "":
	case out.ExitCode == 1 && strings.TrimSpace(out.Stderr) == "":
		return &model.ResultSet{Query: q}, nil
	default:
		return nil, &ExecutionFailedError{ExitCode: out.ExitCode, Stderr: out.Stderr}
	}

	matches := ParseOutput(out.Stdout, q.Term)
	if inv.ignore != nil {
		kept := matches[:0]
		for _, m := range matches {
			if !inv.ignore.Ignored(m.File) {
				kept = append(kept, m)
			}
		}
		matches = kept
	}

	rs := &model.ResultSet{Query: q, Matches: matches}
	if max := inv.cfg.MaxResults; max > 0 && len(rs.Matches) > max {
		rs.Matches = rs.Matches[:max]
		rs.Truncated = true
		if inv.cfg.Debug {
			log.Printf("search: result set truncated to %d matches", max)
		}
	}
	return rs, nil
}

// Probe checks the tool is present and runnable via its --version flag.
func (inv *Invoker) Probe(ctx context.Context) error {
	out, err := inv.runner.Run(ctx, []string{inv.cfg.AgPath, "--version"}, "")
	if err != nil {
		return &ToolUnavailableError{Path: inv.cfg.AgPath, Cause: err}
	}
	if out.ExitCode != 0 {
		return &ToolUnavailableError{
			Path:  inv.cfg.AgPath,
			Cause: fmt.Errorf("--version exited with code %d", out.ExitCode),
		}
	}
	return nil
}
