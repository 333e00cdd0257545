package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-wikifilter/internal/fileutil"
	"github.com/alnah/go-wikifilter/internal/pandoc"
)

// defaultTargetFormat is what GitHub wikis render.
const defaultTargetFormat = "gfm"

// runConvert runs pandoc on a source file with the rewrites applied, for
// users who do not want to wire "pandoc --filter" themselves.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: convert needs a source file", ErrNoInput)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: convert takes one source file, got %d", ErrUsage, len(positional))
	}

	cfg, err := resolveConfig(flags.common, flags.rewrite, loadEnvConfig())
	if err != nil {
		return err
	}
	rw, err := newRewriter(cfg, env)
	if err != nil {
		return err
	}

	conv := env.Pandoc
	if flags.pandoc != "" {
		conv = &pandoc.Converter{Runner: conv.Runner, Binary: flags.pandoc}
	}

	start := env.Now()
	out, stats, err := conv.Convert(ctx, positional[0], flags.to, rw)
	if err != nil {
		return err
	}

	if flags.output == "" {
		if _, err := env.Stdout.Write(out); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	} else {
		if err := fileutil.WriteFileAtomic(flags.output, out); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
		}
	}

	if flags.common.verbose && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "wikifilter: %s -> %s: %d images, %d math, %d links rewritten (%v)\n",
			positional[0], flags.to, stats.Images, stats.Math, stats.Links, env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}
