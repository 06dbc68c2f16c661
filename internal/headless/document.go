// Package headless provides an in-memory text model and task queue so a
// scanner.Field can run without a UI toolkit, in tests and in trace replay.
package headless

import (
	"reflect"
	"unicode/utf8"

	"github.com/Veraticus/scanfield/internal/scanner"
)

// Document is a single-line text buffer that reports every mutation to its
// observers synchronously, in registration order.
type Document struct {
	observers []scanner.ChangeObserver
	text      []rune
}

var _ scanner.TextModel = (*Document)(nil)

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Observe registers o for change notifications.
func (d *Document) Observe(o scanner.ChangeObserver) {
	d.observers = append(d.observers, o)
}

// Unobserve removes the first registration of o. Observers whose dynamic
// type is not comparable are never matched.
func (d *Document) Unobserve(o scanner.ChangeObserver) {
	if o == nil || !reflect.TypeOf(o).Comparable() {
		return
	}
	for i, existing := range d.observers {
		if existing == o {
			d.observers = append(d.observers[:i:i], d.observers[i+1:]...)
			return
		}
	}
}

// Text returns the buffer contents.
func (d *Document) Text() string {
	return string(d.text)
}

// Len returns the length in runes.
func (d *Document) Len() int {
	return len(d.text)
}

// Type appends s one rune at a time, notifying after each rune like a
// keyboard would.
func (d *Document) Type(s string) {
	for _, r := range s {
		d.text = append(d.text, r)
		d.inserted()
	}
}

// Paste appends s as a single mutation.
func (d *Document) Paste(s string) {
	if s == "" {
		return
	}
	d.text = append(d.text, []rune(s)...)
	d.inserted()
}

// DeleteLast removes up to n runes from the end.
func (d *Document) DeleteLast(n int) {
	if n <= 0 || len(d.text) == 0 {
		return
	}
	n = min(n, len(d.text))
	d.text = d.text[:len(d.text)-n]
	d.removed()
}

// Clear empties the buffer.
func (d *Document) Clear() {
	d.DeleteLast(len(d.text))
}

// Replace swaps the rune at index i for r. The length does not change.
func (d *Document) Replace(i int, r rune) {
	if i < 0 || i >= len(d.text) || d.text[i] == r {
		return
	}
	d.text[i] = r
	for _, o := range d.observers {
		o.Changed()
	}
}

// SetText replaces the whole buffer: a removal of the old text followed by an
// insertion of the new one.
func (d *Document) SetText(text string) {
	if len(d.text) > 0 {
		d.text = d.text[:0]
		d.removed()
	}
	if text == "" {
		return
	}
	d.text = make([]rune, 0, utf8.RuneCountInString(text))
	d.text = append(d.text, []rune(text)...)
	d.inserted()
}

func (d *Document) inserted() {
	n := len(d.text)
	for _, o := range d.observers {
		o.Inserted(n)
	}
}

func (d *Document) removed() {
	n := len(d.text)
	for _, o := range d.observers {
		o.Removed(n)
	}
}
