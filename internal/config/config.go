package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-wikifilter/internal/fileutil"
	"github.com/alnah/go-wikifilter/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config field")
)

// Field length limits.
const (
	MaxURLLength       = 2048 // Browser limit
	MaxExtensionLength = 16   // ".eps", ".png", ".svgz"
	MaxDirLength       = 4096 // PATH_MAX on Linux
)

// Worker limits for batch mode.
const (
	MinWorkers = 0  // 0 = auto (GOMAXPROCS)
	MaxWorkers = 32 // More would only contend on disk I/O
)

// Default rewrite values. They mirror the wikifilter package defaults so that
// this package stays free of a dependency on the library root.
const (
	DefaultBaseURL      = "https://raw.githubusercontent.com/illinois-cs241/coursebook/master/"
	DefaultLegacyExt    = ".eps"
	DefaultPublishedExt = ".png"
)

// configDirName is the directory under os.UserConfigDir searched for named configs.
const configDirName = "go-wikifilter"

// Config holds all configuration for the filter.
type Config struct {
	Rewrite RewriteConfig `yaml:"rewrite"`
	Batch   BatchConfig   `yaml:"batch"`
}

// RewriteConfig defines the rewrite constants.
type RewriteConfig struct {
	BaseURL            string `yaml:"baseURL"`            // Prefix for every image URL
	LegacyExtension    string `yaml:"legacyExtension"`    // Suffix replaced before publishing
	PublishedExtension string `yaml:"publishedExtension"` // Replacement suffix
}

// BatchConfig defines batch mode options.
type BatchConfig struct {
	OutputDir string `yaml:"outputDir"` // Empty = write next to each input
	Workers   int    `yaml:"workers"`   // 0 = auto
}

// Validate checks field lengths, extension shape and worker bounds.
// Called automatically by LoadConfig, but available for callers that build a
// Config by hand or merge flags into one.
func (c *Config) Validate() error {
	if err := validateFieldLength("rewrite.baseURL", c.Rewrite.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if c.Rewrite.BaseURL == "" {
		return fmt.Errorf("%w: rewrite.baseURL: required", ErrInvalidField)
	}
	if !fileutil.IsURL(c.Rewrite.BaseURL) {
		return fmt.Errorf("%w: rewrite.baseURL: must start with http:// or https://, got %q", ErrInvalidField, c.Rewrite.BaseURL)
	}

	if err := validateExtension("rewrite.legacyExtension", c.Rewrite.LegacyExtension); err != nil {
		return err
	}
	if err := validateExtension("rewrite.publishedExtension", c.Rewrite.PublishedExtension); err != nil {
		return err
	}

	if err := validateFieldLength("batch.outputDir", c.Batch.OutputDir, MaxDirLength); err != nil {
		return err
	}
	if c.Batch.Workers < MinWorkers || c.Batch.Workers > MaxWorkers {
		return fmt.Errorf("%w: batch.workers: must be between %d and %d, got %d", ErrInvalidField, MinWorkers, MaxWorkers, c.Batch.Workers)
	}

	return nil
}

// validateExtension checks length, path safety and the leading dot.
func validateExtension(fieldName, ext string) error {
	if err := validateFieldLength(fieldName, ext, MaxExtensionLength); err != nil {
		return err
	}
	if err := fileutil.ValidateExtension(ext); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidField, fieldName, err)
	}
	if !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("%w: %s: must start with '.', got %q", ErrInvalidField, fieldName, ext)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the coursebook configuration.
func DefaultConfig() *Config {
	return &Config{
		Rewrite: RewriteConfig{
			BaseURL:            DefaultBaseURL,
			LegacyExtension:    DefaultLegacyExt,
			PublishedExtension: DefaultPublishedExt,
		},
		Batch: BatchConfig{OutputDir: "", Workers: 0},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-wikifilter/
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
