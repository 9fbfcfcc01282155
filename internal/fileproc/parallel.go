// Package fileproc provides concurrent file processing utilities.
package fileproc

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// ProcessingError represents an error that occurred while processing a file.
type ProcessingError struct {
	Path string
	// Index is the position of Path in the input file list.
	Index int
	Err   error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e ProcessingError) Unwrap() error {
	return e.Err
}

// ProcessingErrors collects multiple file processing errors.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.add(ProcessingError{Path: path, Index: -1, Err: err})
}

func (e *ProcessingErrors) add(pe ProcessingError) {
	e.mu.Lock()
	e.Errors = append(e.Errors, pe)
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (e *ProcessingErrors) Unwrap() []error {
	e.mu.Lock()
	defer e.mu.Unlock()
	errs := make([]error, len(e.Errors))
	for i, pe := range e.Errors {
		errs[i] = pe
	}
	return errs
}

// sort orders errors by input position so reporting is deterministic.
func (e *ProcessingErrors) sort() {
	e.mu.Lock()
	defer e.mu.Unlock()
	slices.SortStableFunc(e.Errors, func(a, b ProcessingError) int {
		return cmp.Compare(a.Index, b.Index)
	})
}

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker count.
// 2x suits the mix of file reads and CPU-bound parsing.
const DefaultWorkerMultiplier = 2

// Workers resolves a configured worker count; n <= 0 selects 2x NumCPU.
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU() * DefaultWorkerMultiplier
}

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// Options configures MapFilesN.
type Options struct {
	// Workers caps concurrent goroutines; <= 0 means 2x NumCPU.
	Workers int
	// FailFast cancels outstanding work after the first error. Files skipped because
	// of the cancellation are not reported.
	FailFast bool
	// OnProgress is called once per file, whether it succeeded or not.
	OnProgress ProgressFunc
}

// MapFiles processes files in parallel with default options.
// Results keep the order of files; files whose fn failed are omitted and reported in
// the returned errors, which is nil when every file succeeded.
func MapFiles[T any](ctx context.Context, files []string, fn func(string) (T, error)) ([]T, *ProcessingErrors) {
	return MapFilesN(ctx, files, fn, Options{})
}

// MapFilesWithProgress processes files in parallel with a progress callback.
func MapFilesWithProgress[T any](ctx context.Context, files []string, fn func(string) (T, error), onProgress ProgressFunc) ([]T, *ProcessingErrors) {
	return MapFilesN(ctx, files, fn, Options{OnProgress: onProgress})
}

// MapFilesN processes files on a bounded pool. Results are written to per-index
// slots, so no lock is taken on the success path.
func MapFilesN[T any](ctx context.Context, files []string, fn func(string) (T, error), opts Options) ([]T, *ProcessingErrors) {
	if len(files) == 0 {
		return nil, nil
	}

	slots := make([]T, len(files))
	done := make([]bool, len(files))
	errs := &ProcessingErrors{}

	p := pool.New().WithMaxGoroutines(Workers(opts.Workers)).WithContext(ctx)
	if opts.FailFast {
		p = p.WithCancelOnError()
	}

	for i, path := range files {
		p.Go(func(ctx context.Context) error {
			if opts.OnProgress != nil {
				defer opts.OnProgress()
			}

			// Check for cancellation before processing
			select {
			case <-ctx.Done():
				if !opts.FailFast {
					errs.add(ProcessingError{Path: path, Index: i, Err: ctx.Err()})
				}
				return ctx.Err()
			default:
			}

			result, err := fn(path)
			if err != nil {
				errs.add(ProcessingError{Path: path, Index: i, Err: err})
				if opts.FailFast {
					return err
				}
				return nil // Don't stop pool on individual file errors
			}

			slots[i] = result
			done[i] = true
			return nil
		})
	}
	_ = p.Wait() // errors are already captured in errs

	results := make([]T, 0, len(files))
	for i, ok := range done {
		if ok {
			results = append(results, slots[i])
		}
	}

	if !errs.HasErrors() {
		return results, nil
	}
	errs.sort()
	return results, errs
}
