package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/agsearch/ag-tui/internal/config"
	"github.com/agsearch/ag-tui/internal/model"
)

// fakeRunner records the invocation and plays back a canned outcome.
type fakeRunner struct {
	out     *Output
	err     error
	gotArgv []string
	gotDir  string
}

func (f *fakeRunner) Run(_ context.Context, argv []string, dir string) (*Output, error) {
	f.gotArgv = argv
	f.gotDir = dir
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type ignoreSet map[string]bool

func (s ignoreSet) Ignored(path string) bool { return s[path] }

func testConfig() *config.Config {
	return config.DefaultConfig()
}

func TestBuildArgsOrder(t *testing.T) {
	cfg := testConfig()
	cfg.IgnorePatterns = []string{"*.min.js", "vendor"}
	inv := NewInvoker(cfg, &fakeRunner{}, "/ws", nil)

	got := inv.BuildArgs(model.Query{Term: "needle", Root: "/proj/src"})
	want := []string{
		"ag", "--nocolor", "--nogroup", "--column",
		"--ignore", "*.min.js", "--ignore", "vendor",
		"needle", "/proj/src",
	}
	if len(got) != len(want) {
		t.Fatalf("argv length %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildArgsOmitsEmptyRoot(t *testing.T) {
	inv := NewInvoker(testConfig(), &fakeRunner{}, "/ws", nil)
	got := inv.BuildArgs(model.Query{Term: "needle"})
	if got[len(got)-1] != "needle" {
		t.Errorf("last arg = %q, want the term", got[len(got)-1])
	}
}

func TestInvokeParsesSuccess(t *testing.T) {
	r := &fakeRunner{out: &Output{Stdout: "a.go:1:2:needle one\nb.go:3:4:needle two\n"}}
	inv := NewInvoker(testConfig(), r, "/ws", nil)

	rs, err := inv.Invoke(context.Background(), model.Query{Term: "needle"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(rs.Matches))
	}
	if rs.Truncated {
		t.Error("small result set should not be truncated")
	}
	if r.gotDir != "/ws" {
		t.Errorf("working directory = %q, want /ws", r.gotDir)
	}
}

func TestInvokeQueryRootOverridesWorkingDir(t *testing.T) {
	r := &fakeRunner{out: &Output{}}
	inv := NewInvoker(testConfig(), r, "/ws", nil)

	if _, err := inv.Invoke(context.Background(), model.Query{Term: "needle", Root: "/elsewhere"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.gotDir != "/elsewhere" {
		t.Errorf("working directory = %q, want /elsewhere", r.gotDir)
	}
}

func TestInvokeExitOneWithOutputIsMatches(t *testing.T) {
	r := &fakeRunner{out: &Output{Stdout: "a.go:1:2:needle\n", ExitCode: 1}}
	inv := NewInvoker(testConfig(), r, "/ws", nil)

	rs, err := inv.Invoke(context.Background(), model.Query{Term: "needle"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(rs.Matches))
	}
}

func TestInvokeExitOneSilentIsEmpty(t *testing.T) {
	r := &fakeRunner{out: &Output{ExitCode: 1}}
	inv := NewInvoker(testConfig(), r, "/ws", nil)

	rs, err := inv.Invoke(context.Background(), model.Query{Term: "nothing"})
	if err != nil {
		t.Fatalf("no matches should not be an error: %v", err)
	}
	if len(rs.Matches) != 0 || rs.Truncated {
		t.Errorf("expected empty result set, got %+v", rs)
	}
}

func TestInvokeExitOneWithStderrIsFailure(t *testing.T) {
	r := &fakeRunner{out: &Output{ExitCode: 1, Stderr: "something broke"}}
	inv := NewInvoker(testConfig(), r, "/ws", nil)

	_, err := inv.Invoke(context.Background(), model.Query{Term: "needle"})
	var execErr *ExecutionFailedError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecutionFailedError, got %v", err)
	}
}

func TestInvokeFailureCarriesDiagnostics(t *testing.T) {
	r := &fakeRunner{out: &Output{ExitCode: 2, Stderr: "ERR: bad regex"}}
	inv := NewInvoker(testConfig(), r, "/ws", nil)

	_, err := inv.Invoke(context.Background(), model.Query{Term: "("})
	var execErr *ExecutionFailedError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecutionFailedError, got %v", err)
	}
	if execErr.ExitCode != 2 {
		t.Errorf("exit code = %d, want 2", execErr.ExitCode)
	}
	if !strings.Contains(err.Error(), "ERR: bad regex") {
		t.Errorf("error should carry stderr, got %q", err.Error())
	}
}

func TestInvokeMissingBinaryIsToolUnavailable(t *testing.T) {
	cause := errors.New("exec: \"ag\": executable file not found in $PATH")
	r := &fakeRunner{err: cause}
	inv := NewInvoker(testConfig(), r, "/ws", nil)

	_, err := inv.Invoke(context.Background(), model.Query{Term: "needle"})
	var unavailErr *ToolUnavailableError
	if !errors.As(err, &unavailErr) {
		t.Fatalf("expected ToolUnavailableError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be wrapped")
	}
}

func TestInvokeTruncatesAtMaxResults(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&b, "a.go:%d:1:needle\n", i)
	}
	raw := b.String()

	cfg := testConfig()
	cfg.MaxResults = 3
	r := &fakeRunner{out: &Output{Stdout: raw}}
	inv := NewInvoker(cfg, r, "/ws", nil)

	rs, err := inv.Invoke(context.Background(), model.Query{Term: "needle"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs.Matches) != 3 {
		t.Fatalf("expected 3 matches after truncation, got %d", len(rs.Matches))
	}
	if !rs.Truncated {
		t.Error("truncated flag should be set")
	}
	// Truncation keeps a prefix in output order.
	for i, m := range rs.Matches {
		if m.Line != i+1 {
			t.Errorf("match %d has line %d, want %d", i, m.Line, i+1)
		}
	}
}

func TestInvokeFiltersIgnoredFiles(t *testing.T) {
	raw := "keep.go:1:1:needle\ndist/skip.js:2:1:needle\n"
	r := &fakeRunner{out: &Output{Stdout: raw}}
	inv := NewInvoker(testConfig(), r, "/ws", ignoreSet{"dist/skip.js": true})

	rs, err := inv.Invoke(context.Background(), model.Query{Term: "needle"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs.Matches) != 1 || rs.Matches[0].File != "keep.go" {
		t.Errorf("ignore filtering wrong: %+v", rs.Matches)
	}
}

func TestDisplayCommandQuoting(t *testing.T) {
	got := DisplayCommand([]string{"ag", "--nocolor", "two words", "it's"})
	if !strings.Contains(got, `"two words"`) {
		t.Errorf("whitespace arg not quoted: %q", got)
	}
	if strings.Contains(got, `"ag"`) {
		t.Errorf("plain arg should not be quoted: %q", got)
	}
}

func TestProbe(t *testing.T) {
	r := &fakeRunner{out: &Output{Stdout: "ag version 2.2.0\n"}}
	inv := NewInvoker(testConfig(), r, "/ws", nil)
	if err := inv.Probe(context.Background()); err != nil {
		t.Fatalf("probe should pass: %v", err)
	}
	if len(r.gotArgv) != 2 || r.gotArgv[1] != "--version" {
		t.Errorf("probe argv = %v", r.gotArgv)
	}

	r = &fakeRunner{err: errors.New("not found")}
	inv = NewInvoker(testConfig(), r, "/ws", nil)
	var unavailErr *ToolUnavailableError
	if err := inv.Probe(context.Background()); !errors.As(err, &unavailErr) {
		t.Errorf("expected ToolUnavailableError, got %v", err)
	}
}
