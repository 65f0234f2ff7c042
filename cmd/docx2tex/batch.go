package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	docx2tex "github.com/alnah/go-docx2tex"
)

// ErrInvalidWorkerCount is returned for worker counts outside the pool bounds.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// Converter is the interface the batch driver needs from the library.
type Converter interface {
	Convert(ctx context.Context, req docx2tex.Request) (*docx2tex.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*docx2tex.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (Converter, error)
	Release(Converter)
	Size() int
}

// libraryPool adapts docx2tex.ConverterPool to the CLI Pool interface.
type libraryPool struct {
	pool *docx2tex.ConverterPool
}

func (p *libraryPool) Acquire() (Converter, error) {
	return p.pool.Acquire()
}

func (p *libraryPool) Release(c Converter) {
	if conv, ok := c.(*docx2tex.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *libraryPool) Size() int {
	return p.pool.Size()
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath string
	Result    *docx2tex.Result
	Err       error
	Duration  time.Duration
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > docx2tex.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, docx2tex.MaxPoolSize)
	}
	return nil
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []string, base docx2tex.Request) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark remaining jobs as failed.
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx], Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], base)
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
func convertFile(ctx context.Context, conv Converter, path string, base docx2tex.Request) ConversionResult {
	start := time.Now()
	req := base
	req.InputPath = path

	res, err := conv.Convert(ctx, req)
	return ConversionResult{
		InputPath: path,
		Result:    res,
		Err:       err,
		Duration:  time.Since(start),
	}
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

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			// Compilation failures still leave the source behind.
			if r.Result != nil && r.Result.TeXPath != "" {
				fmt.Fprintf(env.Stderr, "  LaTeX source kept at %s\n", r.Result.TeXPath)
			}
			continue
		}

		if quiet {
			continue
		}

		out := r.Result.PDFPath
		if out == "" {
			out = r.Result.TeXPath
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, out, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", out)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
