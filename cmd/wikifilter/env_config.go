package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-wikifilter/internal/config"
)

// envConfig holds configuration from environment variables.
// pandoc starts filters without extra arguments, so the environment is
// the usual way to point filter mode at a config.
type envConfig struct {
	ConfigPath string // WIKIFILTER_CONFIG: config file name or path
	BaseURL    string // WIKIFILTER_BASE_URL: image URL prefix
	Workers    int    // WIKIFILTER_WORKERS: parallel workers for batch mode
}

// knownEnvVars lists valid WIKIFILTER_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"WIKIFILTER_CONFIG":   true,
	"WIKIFILTER_BASE_URL": true,
	"WIKIFILTER_WORKERS":  true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("WIKIFILTER_CONFIG"),
		BaseURL:    os.Getenv("WIKIFILTER_BASE_URL"),
	}

	// Invalid or non-positive values are ignored, not errors
	if workers := os.Getenv("WIKIFILTER_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized WIKIFILTER_* variables.
// Helps catch typos like WIKIFILTER_BASEURL instead of WIKIFILTER_BASE_URL.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "WIKIFILTER_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				unknown = append(unknown, name)
			}
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values over the loaded config.
// Set variables win over the file; CLI flags are applied afterwards.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.BaseURL != "" {
		cfg.Rewrite.BaseURL = env.BaseURL
	}
	if env.Workers > 0 {
		cfg.Batch.Workers = env.Workers
	}
}
