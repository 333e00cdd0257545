package main

import (
	"fmt"
	"time"

	"github.com/alnah/go-wikifilter/internal/pandoc"
)

// runFilter rewrites the pandoc document on stdin to stdout.
// The optional positional argument is the output format pandoc passes to
// every filter; the rewrites do not depend on it.
func runFilter(args []string, env *Environment) error {
	flags, positional, err := parseFilterFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one FORMAT argument, got %d", ErrUsage, len(positional))
	}

	cfg, err := resolveConfig(flags.common, flags.rewrite, loadEnvConfig())
	if err != nil {
		return err
	}
	rw, err := newRewriter(cfg, env)
	if err != nil {
		return err
	}

	start := env.Now()
	stats, err := pandoc.Filter(env.Stdin, env.Stdout, rw)
	if err != nil {
		return err
	}

	if flags.common.verbose && !flags.common.quiet {
		format := "-"
		if len(positional) == 1 {
			format = positional[0]
		}
		rc := rw.Config()
		fmt.Fprintf(env.Stderr, "wikifilter: base URL %s, %s -> %s\n", rc.BaseURL, rc.LegacyExt, rc.PublishedExt)
		fmt.Fprintf(env.Stderr, "wikifilter: format %s: %d images, %d math, %d links rewritten (%v)\n",
			format, stats.Images, stats.Math, stats.Links, env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}
