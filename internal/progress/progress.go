// Package progress renders file-processing progress on stderr.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a progress bar for file processing. A Tracker without a bar counts
// ticks but draws nothing.
type Tracker struct {
	bar   *progressbar.ProgressBar
	label string
	out   io.Writer
	ticks atomic.Int64
}

type options struct {
	out io.Writer
}

// Option configures a Tracker.
type Option func(*options)

// WithWriter draws the bar on w instead of stderr.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

func resolve(opts []Option) options {
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewSpinner creates a spinner for operations with unknown total count.
func NewSpinner(label string, opts ...Option) *Tracker {
	o := resolve(opts)
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(o.out),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	return &Tracker{bar: bar, label: label, out: o.out}
}

// NewTracker creates a progress bar with the given label and total count.
func NewTracker(label string, total int, opts ...Option) *Tracker {
	o := resolve(opts)
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(o.out),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar, label: label, out: o.out}
}

// Silent returns a tracker that only counts, for machine-readable runs such as
// the MCP server.
func Silent(label string) *Tracker {
	return &Tracker{label: label, out: io.Discard}
}

// Tick increments the progress by 1. Safe for concurrent use.
func (t *Tracker) Tick() {
	t.ticks.Add(1)
	if t.bar != nil {
		t.bar.Add(1)
	}
}

// Count returns the number of ticks so far.
func (t *Tracker) Count() int {
	return int(t.ticks.Load())
}

func (t *Tracker) clear() {
	if t.bar != nil {
		t.bar.Finish()
		t.bar.Clear()
	}
}

// FinishSuccess clears the bar completely (no output).
func (t *Tracker) FinishSuccess() {
	t.clear()
}

// FinishSkipped clears the bar and prints a skip message.
func (t *Tracker) FinishSkipped(reason string) {
	t.clear()
	fmt.Fprintf(t.out, "  %s skipped (%s)\n", t.label, reason)
}

// FinishError clears the bar and prints an error message.
func (t *Tracker) FinishError(err error) {
	t.clear()
	fmt.Fprintf(t.out, "  %s error: %v\n", t.label, err)
}
