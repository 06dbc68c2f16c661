package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/scanfield/internal/common"
	"github.com/Veraticus/scanfield/internal/replay"
)

// Recorder writes every edit of the scan field as a replayable trace.
// Timestamps are milliseconds since the first recorded edit.
type Recorder struct {
	start   time.Time
	err     error
	closer  io.Closer
	enc     *replay.Encoder
	now     func() time.Time
	path    string
	steps   int
	started bool
}

// NewRecorder creates the trace file at path, replacing any existing one.
func NewRecorder(path string) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create trace directory: %w", err)
		}
	}

	file, err := os.Create(filepath.Clean(path)) // #nosec G304 -- user supplied trace path
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}

	r := newRecorder(file, time.Now)
	r.closer = file
	r.path = path
	return r, nil
}

func newRecorder(w io.Writer, now func() time.Time) *Recorder {
	r := &Recorder{
		enc: replay.NewEncoder(w),
		now: now,
	}
	if _, err := fmt.Fprintf(w, "# scanfield trace recorded %s\n", now().UTC().Format(time.RFC3339)); err != nil {
		r.err = err
	}
	return r
}

// Record implements components.Tracer. After the first write error the
// recorder stops writing and Close reports the error.
func (r *Recorder) Record(op replay.Op, text string, n int) {
	if r.err != nil {
		return
	}

	now := r.now()
	if !r.started {
		r.start = now
		r.started = true
	}

	step := replay.Step{
		Op:       op,
		Text:     text,
		AtMillis: now.Sub(r.start).Milliseconds(),
		N:        n,
	}
	if err := r.enc.Encode(step); err != nil {
		r.err = fmt.Errorf("failed to write trace: %w", err)
		common.LogError(err, "trace recording stopped", common.Fields{"path": r.path})
		return
	}
	r.steps++
}

// Steps returns the number of steps written.
func (r *Recorder) Steps() int {
	return r.steps
}

// Close closes the trace file and reports the first write error, if any.
func (r *Recorder) Close() error {
	if r.closer != nil {
		if err := r.closer.Close(); err != nil && r.err == nil {
			r.err = fmt.Errorf("failed to close trace: %w", err)
		}
		r.closer = nil
	}
	if r.err != nil {
		return r.err
	}
	common.LogDebug("trace recorded", common.Fields{"path": r.path, "steps": r.steps})
	return nil
}
