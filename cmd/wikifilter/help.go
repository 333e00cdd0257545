package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wikifilter [FORMAT]")
	fmt.Fprintln(w, "       wikifilter <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a command, runs as a pandoc JSON filter:")
	fmt.Fprintln(w, "  pandoc --filter wikifilter in.md -o out.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  filter     Rewrite a pandoc JSON document from stdin to stdout")
	fmt.Fprintln(w, "  batch      Rewrite pandoc JSON files")
	fmt.Fprintln(w, "  convert    Run pandoc on a source file with the rewrites applied")
	fmt.Fprintln(w, "  preview    Render Markdown to rewritten HTML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'wikifilter help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every rewriting command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Rewrite:")
	fmt.Fprintln(w, "      --base-url <url>      Prefix for image URLs")
	fmt.Fprintln(w, "      --legacy-ext <ext>    Image extension to replace (default .eps)")
	fmt.Fprintln(w, "      --published-ext <ext> Replacement extension (default .png)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show rewrite counts and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  WIKIFILTER_CONFIG, WIKIFILTER_BASE_URL, WIKIFILTER_WORKERS")
}

// printFilterUsage prints usage for filter mode.
func printFilterUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wikifilter filter [flags] [FORMAT]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read a pandoc JSON document on stdin, rewrite images, math and links,")
	fmt.Fprintln(w, "and write the document to stdout. FORMAT is the output format pandoc")
	fmt.Fprintln(w, "passes to filters; it is accepted and ignored.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printBatchUsage prints usage for the batch command.
func printBatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wikifilter batch [flags] <file.json|dir>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rewrite pandoc JSON files produced by 'pandoc -t json'. Without -o,")
	fmt.Fprintln(w, "each result is written beside its input as <name>.wiki.json.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto, max 32)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wikifilter convert [flags] <file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read a source file with pandoc, rewrite it, and render it with pandoc.")
	fmt.Fprintln(w, "Equivalent to: pandoc <file> --filter wikifilter -t <format>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -t, --to <format>         Pandoc output format (default gfm)")
	fmt.Fprintln(w, "  -o, --output <file>       Output file (default stdout)")
	fmt.Fprintln(w, "      --pandoc <path>       Pandoc executable (default from PATH)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wikifilter preview [flags] <file.md>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render Markdown to a standalone HTML page with the rewrites applied.")
	fmt.Fprintln(w, "Math is left as written.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <file>       Output HTML file (default stdout)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "filter":
		printFilterUsage(env.Stdout)
	case "batch":
		printBatchUsage(env.Stdout)
	case "convert":
		printConvertUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: wikifilter version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: wikifilter help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
