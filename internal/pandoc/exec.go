package pandoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Sentinel errors for running the pandoc executable.
var (
	ErrPandocNotFound = errors.New("pandoc executable not found")
	ErrPandocFailed   = errors.New("pandoc failed")
	ErrEmptyInput     = errors.New("input path cannot be empty")
)

// DefaultBinary is the pandoc executable looked up in PATH.
const DefaultBinary = "pandoc"

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Compile-time interface implementation check.
var _ CommandRunner = ExecRunner{}

func (ExecRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- binary and args built by Converter
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Converter runs a document through pandoc with the rewrite applied between
// the reader and the writer, as "pandoc --filter" would.
type Converter struct {
	Runner CommandRunner
	Binary string
}

// NewConverter creates a Converter with a real command runner.
func NewConverter() *Converter {
	return &Converter{Runner: ExecRunner{}, Binary: DefaultBinary}
}

// Convert reads inputPath with pandoc, rewrites the AST with v and renders it
// to the pandoc output format to. Nothing is returned unless every step
// succeeded.
func (c *Converter) Convert(ctx context.Context, inputPath, to string, v Visitor) ([]byte, Stats, error) {
	if inputPath == "" {
		return nil, Stats{}, ErrEmptyInput
	}

	ast, stderr, err := c.Runner.Run(ctx, nil, c.binary(), inputPath, "-t", "json")
	if err != nil {
		return nil, Stats{}, runError("reading "+inputPath, stderr, err)
	}

	var filtered bytes.Buffer
	stats, err := Filter(bytes.NewReader(ast), &filtered, v)
	if err != nil {
		return nil, stats, err
	}

	out, stderr, err := c.Runner.Run(ctx, &filtered, c.binary(), "-f", "json", "-t", to)
	if err != nil {
		return nil, stats, runError("writing "+to, stderr, err)
	}
	return out, stats, nil
}

func (c *Converter) binary() string {
	if c.Binary == "" {
		return DefaultBinary
	}
	return c.Binary
}

// runError classifies a failed pandoc run, keeping pandoc's own message.
func runError(step string, stderr []byte, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrPandocNotFound, err)
	}
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return fmt.Errorf("%w: %s: %s: %v", ErrPandocFailed, step, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrPandocFailed, step, err)
}
