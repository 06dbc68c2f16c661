package scanner

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/Veraticus/scanfield/internal/common"
)

// ErrListenerPanic wraps a panic recovered from a listener.
var ErrListenerPanic = errors.New("listener panicked")

// TextModel is the text storage of the host widget.
type TextModel interface {
	Text() string
	SetText(text string)
}

// Scheduler runs fn after the change notification currently being dispatched
// has returned, on the same goroutine that dispatches notifications.
type Scheduler interface {
	Defer(fn func())
}

// SchedulerFunc adapts a function to a Scheduler.
type SchedulerFunc func(fn func())

// Defer calls f(fn).
func (f SchedulerFunc) Defer(fn func()) {
	f(fn)
}

// ChangeObserver receives text mutation notifications from a host widget.
// Lengths are counted in runes.
type ChangeObserver interface {
	Inserted(newLength int)
	Removed(newLength int)
	Changed()
}

// Field wires a Classifier to a host text widget. When a scan completes it
// converts the text in place and notifies listeners in registration order.
type Field struct {
	text       TextModel
	sched      Scheduler
	classifier *Classifier
	name       string
	listeners  []Listener
	replacing  bool
}

var _ ChangeObserver = (*Field)(nil)

// NewField creates a field over text. Work triggered by a completed scan is
// handed to sched.
func NewField(text TextModel, sched Scheduler, opts ...Option) (*Field, error) {
	if text == nil {
		return nil, fmt.Errorf("%w: text model is required", common.ErrMissingConfig)
	}
	if sched == nil {
		return nil, fmt.Errorf("%w: scheduler is required", common.ErrMissingConfig)
	}

	s, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Field{
		text:       text,
		sched:      sched,
		classifier: newClassifier(s),
		name:       s.name,
	}, nil
}

// Name returns the label given with WithName.
func (f *Field) Name() string {
	return f.name
}

// Text returns the current text of the host widget.
func (f *Field) Text() string {
	return f.text.Text()
}

// BarcodeLength returns the expected scan length.
func (f *Field) BarcodeLength() int {
	return f.classifier.ExpectedLength()
}

// InputDelay returns the timing window.
func (f *Field) InputDelay() time.Duration {
	return f.classifier.MaxElapsed()
}

// SetBarcodeLength changes the scan length. A run in progress is not
// re-evaluated.
func (f *Field) SetBarcodeLength(n int) error {
	if err := f.classifier.SetExpectedLength(n); err != nil {
		common.LogError(err, "Rejected barcode length", common.Fields{"field": f.name})
		return err
	}
	return nil
}

// SetInputDelay changes the timing window. A run in progress is not
// re-evaluated.
func (f *Field) SetInputDelay(d time.Duration) error {
	if err := f.classifier.SetMaxElapsed(d); err != nil {
		common.LogError(err, "Rejected input delay", common.Fields{"field": f.name})
		return err
	}
	return nil
}

// AddListener registers l. The same listener may be added more than once and
// is then notified once per registration.
func (f *Field) AddListener(l Listener) {
	if l == nil {
		return
	}
	f.listeners = append(f.listeners, l)
}

// RemoveListener unregisters the first registration of l. Removing a listener
// that was never added does nothing. Listeners are matched with ==, so one
// whose dynamic type is not comparable (a func type, say) can never be
// removed; wrap such values with NewListener.
func (f *Field) RemoveListener(l Listener) {
	if l == nil || !reflect.TypeOf(l).Comparable() {
		return
	}
	for i, existing := range f.listeners {
		if existing == l {
			f.listeners = append(f.listeners[:i:i], f.listeners[i+1:]...)
			return
		}
	}
}

// Inserted is called by the host after text grew to newLength runes.
func (f *Field) Inserted(newLength int) {
	if f.replacing {
		return
	}
	if f.classifier.OnInsert(newLength) == Completed {
		f.sched.Defer(f.complete)
	}
}

// Removed is called by the host after text shrank to newLength runes.
func (f *Field) Removed(newLength int) {
	if f.replacing {
		return
	}
	f.classifier.OnDelete(newLength)
}

// Changed is called for mutations that keep the length. They are invisible to
// the classifier.
func (f *Field) Changed() {}

func (f *Field) complete() {
	raw := f.text.Text()
	converted := Convert(raw)
	f.replace(converted)

	common.LogDebug("Barcode scan completed", common.Fields{
		"field": f.name,
		"raw":   raw,
		"value": converted,
	})

	f.fire(Event{Source: f})
}

// replace swaps the text without feeding the resulting notifications back
// into the classifier.
func (f *Field) replace(text string) {
	f.replacing = true
	defer func() { f.replacing = false }()
	f.text.SetText(text)
}

func (f *Field) fire(ev Event) {
	// Listeners may add or remove listeners while being notified.
	listeners := make([]Listener, len(f.listeners))
	copy(listeners, f.listeners)

	for i, l := range listeners {
		if err := notify(l, ev); err != nil {
			common.LogError(err, "Scan listener failed", common.Fields{
				"field":    f.name,
				"listener": i,
			})
		}
	}
}

func notify(l Listener, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrListenerPanic, r)
		}
	}()
	return l.ScanCompleted(ev)
}
