package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-adocbib"
	"github.com/alnah/go-adocbib/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// batchParams groups parameters shared across batch/file conversion.
type batchParams struct {
	format string // explicit input markup, empty = by extension
	html   bool   // write HTML for Markdown inputs
	single bool   // one named file: HTML is requested whatever its markup
}

// batchParamsFor derives batch parameters from the setup. HTML is only
// requested for Markdown files when rendering more than one document.
func batchParamsFor(setup *renderSetup, count int) *batchParams {
	return &batchParams{
		format: setup.cfg.Input.Format,
		html:   setup.cfg.Output.HTML,
		single: count == 1,
	}
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath   string
	OutputPath  string
	HTMLPath    string
	Citations   int
	ReadingTime int
	Err         error
	Duration    time.Duration
}

// batchError reports the failed conversions of a batch. It unwraps to every
// per-file error so exit codes reflect their cause.
type batchError struct {
	failed int
	total  int
	errs   []error
}

func newBatchError(results []ConversionResult) *batchError {
	e := &batchError{total: len(results)}
	for _, r := range results {
		if r.Err != nil {
			e.failed++
			e.errs = append(e.errs, r.Err)
		}
	}
	return e
}

func (e *batchError) Error() string {
	if e.total == 1 && len(e.errs) == 1 {
		return e.errs[0].Error()
	}
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() []error {
	return e.errs
}

// convertBatch processes files concurrently with a fixed set of workers
// sharing one converter.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, workers int, params *batchParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(workers, len(files))
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
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
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

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *batchParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadDocument, err))
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrCreateOutputDir, err))
	}

	wantHTML := params.html && (params.single || isMarkdownPath(f.InputPath))
	res, err := conv.Convert(ctx, adocbib.Input{
		Content:   string(content),
		Path:      f.InputPath,
		Syntax:    params.format,
		HTML:      wantHTML,
		OutputDir: outDir,
	})
	if err != nil {
		return fail(err)
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(res.Text), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	if wantHTML {
		htmlPath := htmlOutputPath(f.InputPath, f.OutputPath)
		if err := fileutil.WriteFileAtomic(htmlPath, []byte(res.HTML), filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.HTMLPath = htmlPath
		result.ReadingTime = res.ReadingTime
	}

	result.Citations = len(res.Citations)
	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results using the environment writers.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			if !errors.Is(r.Err, context.Canceled) || verbose {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d citations, %v)\n",
				r.InputPath, r.OutputPath, r.Citations, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		if r.HTMLPath != "" {
			fmt.Fprintf(env.Stdout, "Created %s (%d min read)\n", r.HTMLPath, r.ReadingTime)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
