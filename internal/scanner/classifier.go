package scanner

import "time"

// Verdict is the outcome of classifying one insertion.
type Verdict int

const (
	// Continue means the run is not (or not yet) a completed scan.
	Continue Verdict = iota
	// Completed means the insertion finished a scan.
	Completed
)

func (v Verdict) String() string {
	switch v {
	case Continue:
		return "continue"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Classifier decides whether the current run of input into one field came
// from a barcode scanner. A run lasts from one empty field to the next.
//
// Classifier is not safe for concurrent use; it belongs to the goroutine that
// dispatches the field's change notifications.
type Classifier struct {
	now            func() time.Time
	reference      time.Time
	maxElapsed     time.Duration
	expectedLength int
	previousLength int
	plausible      bool
}

// NewClassifier creates a classifier. Only WithBarcodeLength, WithInputDelay
// and WithClock are meaningful here.
func NewClassifier(opts ...Option) (*Classifier, error) {
	s, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return newClassifier(s), nil
}

func newClassifier(s settings) *Classifier {
	return &Classifier{
		now:            s.now,
		expectedLength: s.barcodeLength,
		maxElapsed:     s.inputDelay,
		plausible:      true,
	}
}

// ExpectedLength returns the configured scan length.
func (c *Classifier) ExpectedLength() int {
	return c.expectedLength
}

// MaxElapsed returns the configured timing window.
func (c *Classifier) MaxElapsed() time.Duration {
	return c.maxElapsed
}

// SetExpectedLength changes the scan length for the next evaluation.
func (c *Classifier) SetExpectedLength(n int) error {
	if err := validateBarcodeLength(n); err != nil {
		return err
	}
	c.expectedLength = n
	return nil
}

// SetMaxElapsed changes the timing window for the next evaluation.
func (c *Classifier) SetMaxElapsed(d time.Duration) error {
	if err := validateInputDelay(d); err != nil {
		return err
	}
	c.maxElapsed = d
	return nil
}

// Plausible reports whether the current run can still become a scan.
func (c *Classifier) Plausible() bool {
	return c.plausible
}

// OnInsert records that the text grew to newLength characters.
func (c *Classifier) OnInsert(newLength int) Verdict {
	now := c.now()

	// The first character of a run always rearms the window.
	if newLength == 1 {
		c.reference = now
		c.previousLength = 1
		c.plausible = true
		if c.expectedLength == 1 {
			return Completed
		}
		return Continue
	}

	if !c.plausible {
		return Continue
	}

	// Anything but single-character growth is a paste or a programmatic set.
	if newLength != c.previousLength+1 {
		c.plausible = false
		c.previousLength = newLength
		return Continue
	}

	c.previousLength = newLength
	if newLength == c.expectedLength && now.Sub(c.reference) <= c.maxElapsed {
		return Completed
	}
	return Continue
}

// OnDelete records that the text shrank to newLength characters. Deleting
// while text remains disqualifies the run; emptying the field starts a new one.
func (c *Classifier) OnDelete(newLength int) {
	c.plausible = newLength == 0
	if newLength == 0 {
		c.previousLength = 0
		c.reference = time.Time{}
	}
}
