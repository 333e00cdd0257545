package main

// Notes:
// - runMain: we test command routing and exit codes end to end with an
//   injected Environment. The asset check is a map, so no test depends on
//   the working directory.
// - main itself (automaxprocs, os.Exit) is not tested.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-wikifilter/internal/pandoc"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and fixtures
// ---------------------------------------------------------------------------

// sampleDoc is a pandoc document with one image, one math span and one link.
const sampleDoc = `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"Para","c":[` +
	`{"t":"Image","c":[["",[],[]],[{"t":"Str","c":"Figure"}],["images/fig1.eps",""]]},` +
	`{"t":"Space"},` +
	`{"t":"Math","c":[{"t":"InlineMath"},"x^2"]},` +
	`{"t":"Space"},` +
	`{"t":"Link","c":[["",[],[]],[{"t":"Str","c":"site"}],["https://example.com",""]]}` +
	`]}]}`

const (
	rewrittenImage = `"https://raw.githubusercontent.com/illinois-cs241/coursebook/master/images/fig1.png"`
	rewrittenMath  = `{"c":["html","$$ x^2 $$"],"t":"RawInline"}`
	rewrittenLink  = `{"c":["html","<a href=\"https://example.com\">https://example.com</a>"],"t":"RawInline"}`
)

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an environment reading stdin and seeing only the
// listed asset paths.
func newTestEnv(stdin string, existing ...string) *testEnv {
	files := make(map[string]bool, len(existing))
	for _, p := range existing {
		files[p] = true
	}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	fixed := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return fixed },
			Stdin:  strings.NewReader(stdin),
			Stdout: stdout,
			Stderr: stderr,
			Exists: func(p string) bool { return files[p] },
			Pandoc: &pandoc.Converter{Runner: &fakePandoc{doc: sampleDoc}, Binary: pandoc.DefaultBinary},
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func (e *testEnv) run(args ...string) int {
	return runMain(context.Background(), append([]string{"wikifilter"}, args...), e.Environment)
}

// ---------------------------------------------------------------------------
// TestRunMain_Filter - pandoc filter mode
// ---------------------------------------------------------------------------

func TestRunMain_Filter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "format from pandoc", args: []string{"html"}},
		{name: "filter command", args: []string{"filter"}},
		{name: "filter command with format", args: []string{"filter", "markdown_github"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(sampleDoc, "images/fig1.png")
			if code := env.run(tt.args...); code != ExitSuccess {
				t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr.String())
			}

			out := env.stdout.String()
			for _, want := range []string{rewrittenImage, rewrittenMath, rewrittenLink} {
				if !strings.Contains(out, want) {
					t.Errorf("stdout missing %s\ngot: %s", want, out)
				}
			}
			if strings.Contains(out, "fig1.eps") {
				t.Errorf("stdout still references the legacy image: %s", out)
			}
		})
	}
}

func TestRunMain_Filter_MissingAsset(t *testing.T) {
	t.Parallel()

	env := newTestEnv(sampleDoc)
	code := env.run("html")

	if code != ExitIO {
		t.Errorf("exit code = %d, want %d", code, ExitIO)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout should be empty on failure, got %q", env.stdout.String())
	}
	stderr := env.stderr.String()
	if !strings.Contains(stderr, "missing image asset: images/fig1.png") {
		t.Errorf("stderr should name the missing path, got %q", stderr)
	}
	if !strings.Contains(stderr, "hint:") {
		t.Errorf("stderr should carry a hint, got %q", stderr)
	}
}

func TestRunMain_Filter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "malformed input",
			stdin:    "not json",
			wantCode: ExitUsage,
			wantErr:  "malformed pandoc document",
		},
		{
			name:     "unsupported version",
			stdin:    `{"pandoc-api-version":[2,0],"meta":{},"blocks":[]}`,
			wantCode: ExitUsage,
			wantErr:  "unsupported pandoc API version",
		},
		{
			name:     "unknown flag",
			stdin:    sampleDoc,
			args:     []string{"filter", "--bogus"},
			wantCode: ExitUsage,
			wantErr:  "invalid usage",
		},
		{
			name:     "two formats",
			stdin:    sampleDoc,
			args:     []string{"filter", "html", "latex"},
			wantCode: ExitUsage,
			wantErr:  "at most one FORMAT",
		},
		{
			name:     "invalid base url",
			stdin:    sampleDoc,
			args:     []string{"filter", "--base-url", "ftp://example.com/"},
			wantCode: ExitUsage,
			wantErr:  "baseURL",
		},
		{
			name:     "extension without dot",
			stdin:    sampleDoc,
			args:     []string{"filter", "--legacy-ext", "eps"},
			wantCode: ExitUsage,
			wantErr:  "legacyExtension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(tt.stdin, "images/fig1.png")
			code := env.run(tt.args...)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d; stderr: %s", code, tt.wantCode, env.stderr.String())
			}
			if !strings.Contains(env.stderr.String(), tt.wantErr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantErr, env.stderr.String())
			}
			if env.stdout.Len() != 0 {
				t.Errorf("stdout should be empty, got %q", env.stdout.String())
			}
		})
	}
}

func TestRunMain_Filter_Overrides(t *testing.T) {
	t.Parallel()

	env := newTestEnv(sampleDoc, "images/fig1.svg")
	code := env.run("filter", "--base-url", "https://cdn.example.com/book/", "--published-ext", ".svg", "html")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr.String())
	}

	want := `"https://cdn.example.com/book/images/fig1.svg"`
	if !strings.Contains(env.stdout.String(), want) {
		t.Errorf("stdout missing %s\ngot: %s", want, env.stdout.String())
	}
}

func TestRunMain_Filter_Verbose(t *testing.T) {
	t.Parallel()

	env := newTestEnv(sampleDoc, "images/fig1.png")
	if code := env.run("filter", "-v", "html"); code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, env.stderr.String())
	}

	stderr := env.stderr.String()
	if !strings.Contains(stderr, "format html: 1 images, 1 math, 1 links rewritten") {
		t.Errorf("verbose stats missing, got %q", stderr)
	}
	if !strings.Contains(stderr, "base URL https://raw.githubusercontent.com/illinois-cs241/coursebook/master/, .eps -> .png") {
		t.Errorf("verbose settings missing, got %q", stderr)
	}
	// Diagnostics must never reach the JSON stream.
	if strings.Contains(env.stdout.String(), "rewritten") {
		t.Error("verbose output leaked into stdout")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Commands - version and help routing
// ---------------------------------------------------------------------------

func TestRunMain_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
	}{
		{name: "version", args: []string{"version"}, wantStdout: "go-wikifilter " + Version + "\n"},
		{name: "help", args: []string{"help"}, wantStdout: "Usage: wikifilter"},
		{name: "help batch", args: []string{"help", "batch"}, wantStdout: "wikifilter batch"},
		{name: "long help flag", args: []string{"--help"}, wantStdout: "Commands:"},
		{name: "short help flag", args: []string{"-h"}, wantStdout: "Commands:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			if code := env.run(tt.args...); code != ExitSuccess {
				t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
			}
			if !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout should contain %q, got %q", tt.wantStdout, env.stdout.String())
			}
		})
	}
}

func TestRunMain_CommandHelpFlag(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	if code := env.run("batch", "--help"); code != ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(env.stderr.String(), "wikifilter batch") {
		t.Errorf("batch usage should be printed, got %q", env.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag - Pre-parse verbose detection
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"html"}, false},
		{[]string{"batch", "-v", "a.json"}, true},
		{[]string{"filter", "--verbose"}, true},
		{[]string{"batch", "--", "-v"}, false},
	}

	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%q) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNotifyContext - Context creation and cancellation behavior
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := notifyContext(parent)
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("context should not start cancelled")
	default:
	}

	cancel()
	<-ctx.Done()
}
