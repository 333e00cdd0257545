package main

import (
	"errors"
	"os"

	wikifilter "github.com/alnah/go-wikifilter"
	"github.com/alnah/go-wikifilter/internal/config"
	"github.com/alnah/go-wikifilter/internal/pandoc"
)

// Exit codes for the wikifilter CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All documents rewritten
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input document
	ExitIO      = 3 // Missing image asset, file not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, wikifilter.ErrMissingAsset) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrCreateOutputDir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, wikifilter.ErrInvalidConfig) ||
		errors.Is(err, pandoc.ErrEmptyInput) ||
		errors.Is(err, pandoc.ErrMalformedDocument) ||
		errors.Is(err, pandoc.ErrUnsupportedVersion) {
		return ExitUsage
	}

	return ExitGeneral
}
