// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForMissingAsset returns hints for an image whose published file is absent.
// The path is resolved against the working directory, so the hint names both.
func ForMissingAsset(path string) string {
	hints := []string{"export the figure as " + path}
	if !filepath.IsAbs(path) {
		hints = append(hints, "run pandoc from the repository root so relative image paths resolve")
	}
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-wikifilter/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-wikifilter") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMalformedInput returns a hint for input that is not pandoc JSON.
func ForMalformedInput() string {
	return format("pipe pandoc's JSON AST, e.g. pandoc -t json in.md | wikifilter")
}

// ForPandocNotFound returns a hint for a missing pandoc executable.
func ForPandocNotFound() string {
	return format("install pandoc (https://pandoc.org/installing.html) or pass --pandoc /path/to/pandoc")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
