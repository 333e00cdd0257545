package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alnah/go-wikifilter/internal/fileutil"
	"github.com/alnah/go-wikifilter/internal/markdown"
)

// runPreview renders a Markdown file to HTML with the rewrites applied.
// Image paths resolve against the working directory, as they do under pandoc.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: preview needs a Markdown file", ErrNoInput)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: preview takes one Markdown file, got %d", ErrUsage, len(positional))
	}

	cfg, err := resolveConfig(flags.common, flags.rewrite, loadEnvConfig())
	if err != nil {
		return err
	}
	rw, err := newRewriter(cfg, env)
	if err != nil {
		return err
	}

	input := positional[0]
	content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	html, err := markdown.NewConverter(rw).ToHTML(ctx, string(content))
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := io.WriteString(env.Stdout, html)
		return err
	}

	if err := fileutil.WriteFileAtomic(flags.output, []byte(html)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}
