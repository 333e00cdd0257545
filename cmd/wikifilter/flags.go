package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// rewriteFlags overrides the rewrite section of the config.
// Empty values leave the config untouched.
type rewriteFlags struct {
	baseURL      string
	legacyExt    string
	publishedExt string
}

// filterFlags holds all flags for filter mode.
type filterFlags struct {
	common  commonFlags
	rewrite rewriteFlags
}

// batchFlags holds all flags for the batch command.
type batchFlags struct {
	common     commonFlags
	rewrite    rewriteFlags
	output     string
	workers    int
	workersSet bool // 0 is a valid value (auto), so track explicit use
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	rewrite rewriteFlags
	output  string
	to      string
	pandoc  string
}

// previewFlags holds all flags for the preview command.
type previewFlags struct {
	common  commonFlags
	rewrite rewriteFlags
	output  string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show rewrite counts and timing")
}

// addRewriteFlags adds rewrite override flags to a FlagSet.
func addRewriteFlags(fs *flag.FlagSet, f *rewriteFlags) {
	fs.StringVar(&f.baseURL, "base-url", "", "prefix for rewritten image URLs")
	fs.StringVar(&f.legacyExt, "legacy-ext", "", "image extension to replace (default .eps)")
	fs.StringVar(&f.publishedExt, "published-ext", "", "replacement image extension (default .png)")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseArgs runs fs.Parse and tags parse errors as usage errors.
// flag.ErrHelp is returned as is so callers can exit cleanly.
func parseArgs(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseFilterFlags parses filter mode flags and returns positional args.
func parseFilterFlags(args []string, stderr io.Writer) (*filterFlags, []string, error) {
	f := &filterFlags{}
	fs := newFlagSet("filter", stderr, printFilterUsage)
	addCommonFlags(fs, &f.common)
	addRewriteFlags(fs, &f.rewrite)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseBatchFlags parses batch command flags and returns positional args.
func parseBatchFlags(args []string, stderr io.Writer) (*batchFlags, []string, error) {
	f := &batchFlags{}
	fs := newFlagSet("batch", stderr, printBatchUsage)
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addRewriteFlags(fs, &f.rewrite)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	f.workersSet = fs.Changed("workers")
	return f, fs.Args(), nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("convert", stderr, printConvertUsage)
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.StringVarP(&f.to, "to", "t", defaultTargetFormat, "pandoc output format")
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc executable (default from PATH)")
	addCommonFlags(fs, &f.common)
	addRewriteFlags(fs, &f.rewrite)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string, stderr io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := newFlagSet("preview", stderr, printPreviewUsage)
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (default stdout)")
	addCommonFlags(fs, &f.common)
	addRewriteFlags(fs, &f.rewrite)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
