package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/scanfield/internal/headless"
	"github.com/Veraticus/scanfield/internal/model"
	"github.com/Veraticus/scanfield/internal/scanner"
)

// Options controls a replay.
type Options struct {
	// Start is the wall-clock time of at_ms 0. Defaults to time.Now().
	Start time.Time
	// Progress is called after each step.
	Progress func(done, total int)
	// Scanner configures the field.
	Scanner []scanner.Option
}

// Result summarizes a replay.
type Result struct {
	Scans []model.Scan
	Steps int
	Span  time.Duration
}

type virtualClock struct {
	now time.Time
}

func (c *virtualClock) Now() time.Time { return c.now }

// Run replays steps through a fresh field. Deferred work is drained after
// every step, as an event loop would between two keystrokes. When ctx is
// cancelled Run stops and returns what it found so far with ctx's error.
func Run(ctx context.Context, steps []Step, opts Options) (Result, error) {
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}
	clock := &virtualClock{now: start}

	doc := headless.NewDocument()
	queue := &headless.Queue{}

	scannerOpts := append([]scanner.Option{}, opts.Scanner...)
	scannerOpts = append(scannerOpts, scanner.WithClock(clock.Now))
	field, err := scanner.NewField(doc, queue, scannerOpts...)
	if err != nil {
		return Result{}, err
	}
	doc.Observe(field)

	var result Result
	field.AddListener(scanner.NewListener(func(ev scanner.Event) error {
		result.Scans = append(result.Scans, model.Scan{
			Field:     ev.Source.Name(),
			Value:     ev.Source.Text(),
			ScannedAt: clock.Now(),
			Source:    model.SourceReplay,
		})
		return nil
	}))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := step.Validate(); err != nil {
			return result, fmt.Errorf("step %d: %w", i+1, err)
		}
		clock.now = start.Add(time.Duration(step.AtMillis) * time.Millisecond)

		apply(doc, step)
		queue.Drain()

		result.Steps++
		result.Span = clock.now.Sub(start)
		if opts.Progress != nil {
			opts.Progress(i+1, len(steps))
		}
	}

	return result, nil
}

func apply(doc *headless.Document, step Step) {
	switch step.Op {
	case OpInsert:
		doc.Type(step.Text)
	case OpPaste:
		doc.Paste(step.Text)
	case OpDelete:
		doc.DeleteLast(max(step.N, 1))
	case OpClear:
		doc.Clear()
	}
}
