package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	wikifilter "github.com/alnah/go-wikifilter"
	"github.com/alnah/go-wikifilter/internal/config"
	"github.com/alnah/go-wikifilter/internal/fileutil"
	"github.com/alnah/go-wikifilter/internal/pandoc"
)

// outputSuffix is inserted before the extension when no output directory is set.
const outputSuffix = ".wiki"

// FileToRewrite represents a single document to process.
type FileToRewrite struct {
	InputPath  string
	OutputPath string
}

// RewriteResult holds the outcome of a single document.
type RewriteResult struct {
	InputPath  string
	OutputPath string
	Stats      pandoc.Stats
	Err        error
	Duration   time.Duration
}

// runBatch rewrites pandoc JSON files concurrently.
func runBatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBatchFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: batch needs at least one JSON file or directory", ErrNoInput)
	}

	cfg, err := resolveConfig(flags.common, flags.rewrite, loadEnvConfig())
	if err != nil {
		return err
	}
	mergeBatchFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	rw, err := newRewriter(cfg, env)
	if err != nil {
		return err
	}

	files, err := discoverFiles(positional, cfg.Batch.OutputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .json files in %s", ErrNoInput, strings.Join(positional, ", "))
	}

	if cfg.Batch.OutputDir != "" {
		if err := os.MkdirAll(cfg.Batch.OutputDir, fileutil.DirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
		}
	}

	workers := resolveWorkers(cfg.Batch.Workers, len(files))
	if flags.common.verbose && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", workers)
	}

	results := rewriteBatch(ctx, rw, files, workers)
	if failed := printResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return fmt.Errorf("%d of %d documents failed: %w", failed, len(results), firstError(results))
	}
	return nil
}

// mergeBatchFlags copies explicitly set batch flags into cfg (CLI wins).
func mergeBatchFlags(f *batchFlags, cfg *config.Config) {
	if f.output != "" {
		cfg.Batch.OutputDir = f.output
	}
	if f.workersSet {
		cfg.Batch.Workers = f.workers
	}
}

// resolveWorkers turns the configured worker count into a concrete limit.
// 0 means GOMAXPROCS, which automaxprocs has aligned with the CPU quota.
func resolveWorkers(n, files int) int {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	n = min(n, config.MaxWorkers)
	if files > 0 {
		n = min(n, files)
	}
	return max(n, 1)
}

// discoverFiles expands the arguments into documents to rewrite.
// A directory contributes the .json files directly inside it, except
// outputs of an earlier run.
func discoverFiles(args []string, outputDir string) ([]FileToRewrite, error) {
	var files []FileToRewrite
	seen := make(map[string]string)

	add := func(input string) error {
		output := resolveOutputPath(input, outputDir)
		if prev, dup := seen[output]; dup {
			return fmt.Errorf("%w: %s and %s both write %s", ErrUsage, prev, input, output)
		}
		seen[output] = input
		files = append(files, FileToRewrite{InputPath: input, OutputPath: output})
		return nil
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		if !info.IsDir() {
			if err := add(arg); err != nil {
				return nil, err
			}
			continue
		}

		matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if strings.HasSuffix(m, outputSuffix+".json") {
				continue
			}
			if err := add(m); err != nil {
				return nil, err
			}
		}
	}
	return files, nil
}

// resolveOutputPath returns where the rewritten document for inputPath goes:
// the same name inside outputDir, or "<name>.wiki.json" beside the input.
func resolveOutputPath(inputPath, outputDir string) string {
	if outputDir == "" {
		return fileutil.ReplaceExt(inputPath, outputSuffix+filepath.Ext(inputPath))
	}
	return filepath.Join(outputDir, filepath.Base(inputPath))
}

// rewriteBatch processes files with at most workers documents in flight.
// A failing document does not stop the others.
func rewriteBatch(ctx context.Context, rw *wikifilter.Rewriter, files []FileToRewrite, workers int) []RewriteResult {
	results := make([]RewriteResult, len(files))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = RewriteResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			results[i] = rewriteFile(rw, f)
			return nil
		})
	}
	_ = g.Wait() // workers report through results

	return results
}

// rewriteFile rewrites a single document. The output file is written only
// when the whole document was rewritten.
func rewriteFile(rw *wikifilter.Rewriter, f FileToRewrite) RewriteResult {
	start := time.Now()
	result := RewriteResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- user-provided path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadInput, err)
		result.Duration = time.Since(start)
		return result
	}

	var out bytes.Buffer
	result.Stats, err = pandoc.Filter(bytes.NewReader(content), &out, rw)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, out.Bytes()); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed documents.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Stats     pandoc.Stats
}

// countResults tallies succeeded and failed documents.
func countResults(results []RewriteResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Stats = summary.Stats.Add(r.Stats)
	}
	return summary
}

// firstError returns the first failure in input order.
func firstError(results []RewriteResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printResults outputs per-document results and returns the failure count.
func printResults(results []RewriteResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d rewrites, %v)\n",
				r.InputPath, r.OutputPath, r.Stats.Total(), r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
