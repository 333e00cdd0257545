package main

import (
	"errors"
	"fmt"

	wikifilter "github.com/alnah/go-wikifilter"
	"github.com/alnah/go-wikifilter/internal/config"
	"github.com/alnah/go-wikifilter/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrNoInput         = errors.New("no input specified")
	ErrReadInput       = errors.New("failed to read input file")
	ErrWriteOutput     = errors.New("failed to write output file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
)

// configNotFoundError remembers the config name so the hint can list
// where it was searched.
type configNotFoundError struct {
	name string
	err  error
}

func (e *configNotFoundError) Error() string { return e.err.Error() }
func (e *configNotFoundError) Unwrap() error { return e.err }

// resolveConfig builds the effective configuration.
// Precedence: defaults < config file < WIKIFILTER_* environment < flags.
func resolveConfig(common commonFlags, rw rewriteFlags, env *envConfig) (*config.Config, error) {
	name := common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				err = &configNotFoundError{name: name, err: err}
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	mergeRewriteFlags(rw, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeRewriteFlags copies explicitly set rewrite flags into cfg (CLI wins).
func mergeRewriteFlags(f rewriteFlags, cfg *config.Config) {
	if f.baseURL != "" {
		cfg.Rewrite.BaseURL = f.baseURL
	}
	if f.legacyExt != "" {
		cfg.Rewrite.LegacyExtension = f.legacyExt
	}
	if f.publishedExt != "" {
		cfg.Rewrite.PublishedExtension = f.publishedExt
	}
}

// newRewriter builds the rewriter for cfg using the environment's asset check.
func newRewriter(cfg *config.Config, env *Environment) (*wikifilter.Rewriter, error) {
	return wikifilter.NewRewriter(
		wikifilter.Config{
			BaseURL:      cfg.Rewrite.BaseURL,
			LegacyExt:    cfg.Rewrite.LegacyExtension,
			PublishedExt: cfg.Rewrite.PublishedExtension,
		},
		wikifilter.WithExistsFunc(env.Exists),
	)
}
