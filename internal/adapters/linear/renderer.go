// Package linear provides a synchronous, line-buffered renderer for batch progress.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/replay/internal/ui/output"
	"go.trai.ch/replay/internal/ui/style"
)

// Renderer implements ports.Renderer with chronological, name-prefixed lines.
// Status lines go to stderr; entry output goes to stdout.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	entries map[string]*entryState // spanID -> entry state
}

type entryState struct {
	name      string
	startTime time.Time
	buf       bytes.Buffer
}

// NewRenderer creates a new Renderer. Nil writers default to the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.NewWithProfile(stderr, output.ColorProfileANSI),
		entries: make(map[string]*entryState),
	}
}

// Start is a no-op: the renderer writes synchronously.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes partial lines of entries that never completed.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		r.flushLocked(entry)
	}

	return nil
}

// Wait is a no-op: the renderer writes synchronously.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the entries the batch is about to process.
func (r *Renderer) OnPlanEmit(entries []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Planning to build %d entry(s): %v\n", len(entries), entries)
}

// OnEntryStart prints an entry start message.
func (r *Renderer) OnEntryStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[spanID] = &entryState{
		name:      name,
		startTime: startTime,
	}

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnEntryLog buffers output and prints complete lines with the entry prefix.
func (r *Renderer) OnEntryLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[spanID]
	if !ok {
		return
	}

	entry.buf.Write(data)

	for {
		i := bytes.IndexByte(entry.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := entry.buf.Next(i + 1)
		r.printLineLocked(entry.name, line)
	}
}

// OnEntryComplete flushes the remaining output and prints the completion status.
func (r *Renderer) OnEntryComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[spanID]
	if !ok {
		return
	}

	r.flushLocked(entry)

	duration := endTime.Sub(entry.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", entry.name)

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
	} else {
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", prefix, symbol, duration)
	}

	delete(r.entries, spanID)
}

// flushLocked prints any partial line left in the entry buffer.
// Must be called with r.mu held.
func (r *Renderer) flushLocked(entry *entryState) {
	if entry.buf.Len() > 0 {
		r.printLineLocked(entry.name, entry.buf.Bytes())
		entry.buf.Reset()
	}
}

// printLineLocked prints a line with the entry name prefix.
// Must be called with r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, line)
}
