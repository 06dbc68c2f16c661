// Package replay feeds recorded keystroke traces through a headless scanner
// field with a virtual clock, so the timing window can be tuned offline.
package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/scanfield/internal/common"
)

// Op is a kind of text mutation in a trace.
type Op string

const (
	// OpInsert types Text one rune at a time.
	OpInsert Op = "insert"
	// OpPaste inserts Text as a single mutation.
	OpPaste Op = "paste"
	// OpDelete removes N runes (default 1) from the end.
	OpDelete Op = "delete"
	// OpClear empties the field.
	OpClear Op = "clear"
)

// Step is one line of a trace.
type Step struct {
	Op       Op     `json:"op"`
	Text     string `json:"text,omitempty"`
	AtMillis int64  `json:"at_ms"`
	N        int    `json:"n,omitempty"`
}

// Validate checks the step on its own.
func (s Step) Validate() error {
	switch s.Op {
	case OpInsert, OpPaste:
		if s.Text == "" {
			return fmt.Errorf("%w: %s needs text", common.ErrInvalidTrace, s.Op)
		}
	case OpDelete:
		if s.N < 0 {
			return fmt.Errorf("%w: delete count cannot be negative", common.ErrInvalidTrace)
		}
	case OpClear:
	default:
		return fmt.Errorf("%w: unknown op %q", common.ErrInvalidTrace, s.Op)
	}
	if s.AtMillis < 0 {
		return fmt.Errorf("%w: at_ms cannot be negative", common.ErrInvalidTrace)
	}
	return nil
}

// Parse reads a JSON-lines trace. Blank lines and lines starting with # are
// skipped. Timestamps must not go backwards.
func Parse(r io.Reader) ([]Step, error) {
	var (
		steps []Step
		last  int64
		line  int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 || raw[0] == '#' {
			continue
		}

		var step Step
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&step); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", common.ErrInvalidTrace, line, err)
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if step.AtMillis < last {
			return nil, fmt.Errorf("%w: line %d: at_ms %d is before %d", common.ErrInvalidTrace, line, step.AtMillis, last)
		}
		last = step.AtMillis
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	return steps, nil
}

// Encoder writes steps as JSON lines.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Encoder{enc: enc}
}

// Encode writes one step.
func (e *Encoder) Encode(step Step) error {
	if err := step.Validate(); err != nil {
		return err
	}
	if err := e.enc.Encode(step); err != nil {
		return fmt.Errorf("failed to write trace step: %w", err)
	}
	return nil
}
