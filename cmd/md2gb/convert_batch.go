package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	md2gb "github.com/alnah/go-md2gb"
	"github.com/alnah/go-md2gb/internal/fileutil"
	"github.com/alnah/go-md2gb/internal/hints"
)

// filePermissions applies to files that did not exist before; rewritten
// files keep their mode.
const filePermissions = 0o644 // rw-r--r--

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown  = errors.New("failed to read markdown file")
	ErrWriteMarkdown = errors.New("failed to write markdown file")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2gb.Input) (*md2gb.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2gb.Converter)(nil)

// ConversionResult holds the outcome of a single file.
type ConversionResult struct {
	Path     string
	NotFound bool
	Count    int
	Changed  bool // Text differs (written unless dry run)
	Changes  []md2gb.Change
	Err      error
	Duration time.Duration
}

// batchOptions groups parameters shared across the batch.
type batchOptions struct {
	workers int
	dryRun  bool
}

// convertBatch processes files concurrently with a shared converter.
// Results are returned in input order.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, opts batchOptions) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := opts.workers
	if concurrency > len(files) {
		concurrency = len(files)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				f := files[idx]
				switch {
				case f.NotFound:
					results[idx] = ConversionResult{Path: f.Path, NotFound: true, Err: os.ErrNotExist}
				case ctx.Err() != nil:
					results[idx] = ConversionResult{Path: f.Path, Err: ctx.Err()}
				default:
					results[idx] = convertFile(ctx, conv, f.Path, opts.dryRun)
				}
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile reads, converts and (unless dryRun) rewrites a single file.
// The file is only written when its text changed.
func convertFile(ctx context.Context, conv CLIConverter, path string, dryRun bool) ConversionResult {
	start := time.Now()
	result := ConversionResult{Path: path}

	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	converted, err := conv.Convert(ctx, md2gb.Input{Markdown: string(content), DryRun: dryRun})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Count = converted.Count
	result.Changes = converted.Changes
	result.Changed = converted.Markdown != string(content)

	if result.Changed && !dryRun {
		if err := fileutil.WriteFileAtomic(path, []byte(converted.Markdown), filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteMarkdown, err)
		}
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the totals printed after a batch.
type ResultSummary struct {
	Processed   int
	Failed      int
	Conversions int
	Pending     int // Files that would change (dry run)
}

// countResults tallies processed files, failures and conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Processed++
		summary.Conversions += r.Count
		if r.Changed {
			summary.Pending++
		}
	}
	return summary
}

// reportOptions controls result printing.
type reportOptions struct {
	quiet          bool
	verbose        bool
	dryRun         bool
	refreshRegions bool
}

// printHeader announces the batch.
func printHeader(env *Environment, n int, dryRun bool) {
	prefix := ""
	if dryRun {
		prefix = "DRY RUN: "
	}
	fmt.Fprintf(env.Stdout, "%sConverting %d file(s)...\n\n", prefix, n)
}

// printResults outputs per-file lines and the summary, and returns the totals.
// Errors always go to stderr; quiet suppresses everything else.
func printResults(results []ConversionResult, opts reportOptions, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		name := filepath.Base(r.Path)

		switch {
		case r.NotFound:
			fmt.Fprintf(env.Stderr, "✗ File not found: %s\n", r.Path)
			continue
		case r.Err != nil:
			fmt.Fprintf(env.Stderr, "✗ Error processing %s: %v%s\n", r.Path, r.Err, hintFor(r.Err, opts.refreshRegions))
			continue
		case opts.quiet:
			continue
		case r.Changed && !opts.dryRun:
			fmt.Fprintf(env.Stdout, "✓ Converted %s: %d changes\n", name, r.Count)
		case opts.dryRun && r.Count > 0:
			fmt.Fprintf(env.Stdout, "[DRY RUN] %s: %d changes would be made\n", name, r.Count)
		case r.Count == 0:
			fmt.Fprintf(env.Stdout, "  %s: no changes needed\n", name)
		}

		if opts.verbose {
			for _, c := range r.Changes {
				fmt.Fprintf(env.Stdout, "    line %d: %s -> %s\n", c.Line, c.From, c.To)
			}
		}
	}

	if !opts.quiet {
		prefix := ""
		if opts.dryRun {
			prefix = "DRY RUN "
		}
		fmt.Fprintf(env.Stdout, "\n%sSummary:\n", prefix)
		fmt.Fprintf(env.Stdout, "  Files processed: %d\n", summary.Processed)
		fmt.Fprintf(env.Stdout, "  Files failed: %d\n", summary.Failed)
		fmt.Fprintf(env.Stdout, "  Total conversions: %d\n", summary.Conversions)
	}

	return summary
}

// hintFor returns an actionable hint for a per-file error, if any.
func hintFor(err error, refreshRegions bool) string {
	switch {
	case errors.Is(err, md2gb.ErrInvalidUTF8):
		return hints.ForInvalidUTF8()
	case errors.Is(err, md2gb.ErrProtectedContentChanged):
		return hints.ForProtectedContent(refreshRegions)
	}
	return ""
}
