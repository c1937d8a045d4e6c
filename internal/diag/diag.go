// Package diag provides the advisory diagnostic stream used across the
// animation library. Operations report progress and recoverable failures
// here instead of printing to the console directly, so callers can
// capture, restyle, or silence the output.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Reporter receives advisory diagnostics. The three tiers mirror the
// kinds of messages the library emits: Advisoryf for progress and
// skipped-file notes, Successf for completed operations, Failuref for
// recovered errors (the operation's return value is still the contract).
type Reporter interface {
	Advisoryf(format string, args ...interface{})
	Successf(format string, args ...interface{})
	Failuref(format string, args ...interface{})
}

// ConsoleReporter writes prefixed diagnostic lines to a writer,
// defaulting to stderr so they never mix with command output on stdout.
type ConsoleReporter struct {
	W io.Writer
}

// Console returns a reporter writing to stderr.
func Console() *ConsoleReporter {
	return &ConsoleReporter{W: os.Stderr}
}

func (r *ConsoleReporter) writer() io.Writer {
	if r.W == nil {
		return os.Stderr
	}
	return r.W
}

func (r *ConsoleReporter) Advisoryf(format string, args ...interface{}) {
	fmt.Fprintf(r.writer(), "Note: "+format+"\n", args...)
}

func (r *ConsoleReporter) Successf(format string, args ...interface{}) {
	fmt.Fprintf(r.writer(), format+"\n", args...)
}

func (r *ConsoleReporter) Failuref(format string, args ...interface{}) {
	fmt.Fprintf(r.writer(), "Warning: "+format+"\n", args...)
}

// Nop discards all diagnostics.
type Nop struct{}

func (Nop) Advisoryf(string, ...interface{}) {}
func (Nop) Successf(string, ...interface{})  {}
func (Nop) Failuref(string, ...interface{})  {}

// Recorder captures diagnostics for assertions in tests.
type Recorder struct {
	mu        sync.Mutex
	Advisory  []string
	Successes []string
	Failures  []string
}

func (r *Recorder) Advisoryf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Advisory = append(r.Advisory, fmt.Sprintf(format, args...))
}

func (r *Recorder) Successf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, fmt.Sprintf(format, args...))
}

func (r *Recorder) Failuref(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}
