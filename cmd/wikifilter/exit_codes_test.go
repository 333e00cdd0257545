package main

// Notes:
// - exitCodeFor: we test the sentinel errors of every package the CLI calls,
//   plus wrapped errors to verify errors.Is() chain works correctly.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	wikifilter "github.com/alnah/go-wikifilter"
	"github.com/alnah/go-wikifilter/internal/config"
	"github.com/alnah/go-wikifilter/internal/pandoc"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"missing asset sentinel", wikifilter.ErrMissingAsset, ExitIO},
		{"missing asset error", &wikifilter.MissingAssetError{Path: "a.png"}, ExitIO},
		{"wrapped missing asset", fmt.Errorf("1 of 2 documents failed: %w", &wikifilter.MissingAssetError{Path: "a.png"}), ExitIO},
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"create output dir", ErrCreateOutputDir, ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config not found with name", &configNotFoundError{name: "wiki", err: config.ErrConfigNotFound}, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid field", config.ErrInvalidField, ExitUsage},
		{"invalid rewriter config", wikifilter.ErrInvalidConfig, ExitUsage},
		{"malformed document", pandoc.ErrMalformedDocument, ExitUsage},
		{"unsupported version", pandoc.ErrUnsupportedVersion, ExitUsage},
		{"empty pandoc input", pandoc.ErrEmptyInput, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unsupported replacement", pandoc.ErrUnsupportedReplacement, ExitGeneral},
		{"pandoc not found", pandoc.ErrPandocNotFound, ExitGeneral},
		{"pandoc failed", pandoc.ErrPandocFailed, ExitGeneral},
		{"unknown error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0, 1, 2 must follow Unix conventions")
	}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Error hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"missing asset", fmt.Errorf("x: %w", &wikifilter.MissingAssetError{Path: "img/a.png"}), "img/a.png"},
		{"malformed input", pandoc.ErrMalformedDocument, "pandoc -t json"},
		{"pandoc missing", pandoc.ErrPandocNotFound, "install pandoc"},
		{"config name", fmt.Errorf("loading config: %w", &configNotFoundError{name: "wiki", err: config.ErrConfigNotFound}), "--config"},
		{"config path", config.ErrConfigNotFound, "--config"},
		{"output dir", ErrCreateOutputDir, "writable"},
		{"no hint", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := hintFor(tt.err)
			if tt.contains == "" {
				if hint != "" {
					t.Errorf("hintFor() = %q, want empty", hint)
				}
				return
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("hintFor() = %q, want it to contain %q", hint, tt.contains)
			}
		})
	}
}
