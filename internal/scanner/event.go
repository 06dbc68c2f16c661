package scanner

// Event announces a completed scan. Read Source.Text() for the converted value.
type Event struct {
	Source *Field
}

// Listener is notified once per completed scan.
type Listener interface {
	ScanCompleted(ev Event) error
}

type funcListener struct {
	fn func(Event) error
}

func (l *funcListener) ScanCompleted(ev Event) error {
	return l.fn(ev)
}

// NewListener adapts fn to a Listener. Keep the returned value to remove it
// later; listeners are matched by identity.
func NewListener(fn func(Event) error) Listener {
	return &funcListener{fn: fn}
}
