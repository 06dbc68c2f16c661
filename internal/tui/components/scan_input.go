package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/scanfield/internal/replay"
	"github.com/Veraticus/scanfield/internal/scanner"
	"github.com/Veraticus/scanfield/internal/tui/themes"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tracer records the edits made to a ScanInput.
type Tracer interface {
	Record(op replay.Op, text string, n int)
}

// deferredMsg carries work a field scheduled while handling a key. It comes
// back through the program's message loop, after the key has been handled.
type deferredMsg struct {
	owner *ScanInput
	tasks []func()
}

// ScanInput is a text input that recognizes barcode scanner bursts.
//
// It is the host widget for a scanner.Field: it reports every length change
// to the field and runs the field's deferred work on a later turn of the
// bubbletea loop. ScanInput has pointer identity; do not copy it.
type ScanInput struct {
	tracer   Tracer
	field    *scanner.Field
	theme    themes.Theme
	pending  []func()
	input    textinput.Model
	inflight bool
}

// NewScanInput creates a focused input with its field.
func NewScanInput(theme themes.Theme, tracer Tracer, opts ...scanner.Option) (*ScanInput, error) {
	ti := textinput.New()
	ti.Placeholder = "Scan a barcode..."
	ti.Prompt = "▸ "
	// A blinking cursor schedules timer commands on every keystroke.
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	s := &ScanInput{
		tracer: tracer,
		theme:  theme,
		input:  ti,
	}

	field, err := scanner.NewField(s, s, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan field: %w", err)
	}
	s.field = field
	return s, nil
}

// Field returns the field driven by this input.
func (s *ScanInput) Field() *scanner.Field {
	return s.field
}

// Text implements scanner.TextModel.
func (s *ScanInput) Text() string {
	return s.input.Value()
}

// SetText implements scanner.TextModel. It does not notify the field.
func (s *ScanInput) SetText(text string) {
	s.input.SetValue(text)
	s.input.CursorEnd()
}

// Defer implements scanner.Scheduler.
func (s *ScanInput) Defer(fn func()) {
	s.pending = append(s.pending, fn)
}

// Clear empties the input as a user edit, which ends the current run.
func (s *ScanInput) Clear() {
	before := s.input.Value()
	s.input.SetValue("")
	s.notify(before, "")
}

// ClearDeferred empties the input after the work already scheduled has run,
// so a scan followed by a submit key is completed before it is cleared.
func (s *ScanInput) ClearDeferred() tea.Cmd {
	s.Defer(s.Clear)
	return s.flush()
}

// Focus focuses the underlying text input.
func (s *ScanInput) Focus() tea.Cmd {
	return s.input.Focus()
}

// Update handles key presses and deferred work. Any other message is passed
// to the text input; clipboard pastes arrive that way.
func (s *ScanInput) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case deferredMsg:
		if msg.owner != s {
			return nil
		}
		s.inflight = false
		for _, task := range msg.tasks {
			task()
		}
		return s.flush()

	case tea.KeyMsg:
		// The terminal hands over a scanner burst as one multi-rune
		// message. Feed it one rune at a time; a bracketed paste stays a
		// single insertion.
		if msg.Type == tea.KeyRunes && !msg.Paste && len(msg.Runes) > 1 {
			cmds := make([]tea.Cmd, 0, len(msg.Runes)+1)
			for _, r := range msg.Runes {
				cmds = append(cmds, s.edit(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}))
			}
			cmds = append(cmds, s.flush())
			return tea.Batch(cmds...)
		}
	}

	return tea.Batch(s.edit(msg), s.flush())
}

func (s *ScanInput) edit(msg tea.Msg) tea.Cmd {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.notify(before, s.input.Value())
	return cmd
}

func (s *ScanInput) notify(before, after string) {
	b, a := utf8.RuneCountInString(before), utf8.RuneCountInString(after)
	switch {
	case a > b:
		s.trace(before, after, a-b)
		s.field.Inserted(a)
	case a < b:
		s.trace(before, after, a-b)
		s.field.Removed(a)
	case before != after:
		s.field.Changed()
	}
}

func (s *ScanInput) trace(before, after string, delta int) {
	if s.tracer == nil {
		return
	}
	switch {
	case delta < 0 && after == "":
		s.tracer.Record(replay.OpClear, "", 0)
	case delta < 0:
		s.tracer.Record(replay.OpDelete, "", -delta)
	default:
		added := insertedText(before, after, delta)
		if delta == 1 {
			s.tracer.Record(replay.OpInsert, added, 0)
		} else {
			s.tracer.Record(replay.OpPaste, added, 0)
		}
	}
}

// insertedText finds the delta runes that turned before into after. Edits at
// the end are exact; elsewhere the first differing position is used.
func insertedText(before, after string, delta int) string {
	if strings.HasPrefix(after, before) {
		return after[len(before):]
	}
	a := []rune(after)
	br := []rune(before)
	i := 0
	for i < len(br) && br[i] == a[i] {
		i++
	}
	return string(a[i : i+delta])
}

// flush hands pending work to the program. Only one batch is in flight at a
// time; work deferred meanwhile waits for it to come back.
func (s *ScanInput) flush() tea.Cmd {
	if s.inflight || len(s.pending) == 0 {
		return nil
	}
	tasks := s.pending
	s.pending = nil
	s.inflight = true
	return func() tea.Msg {
		return deferredMsg{owner: s, tasks: tasks}
	}
}

// View renders the input with its settings underneath.
func (s *ScanInput) View() string {
	length := utf8.RuneCountInString(s.input.Value())
	status := fmt.Sprintf("%d/%d chars · window %s",
		length, s.field.BarcodeLength(), s.field.InputDelay())

	box := s.theme.BorderedBox.Render(s.input.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		s.theme.Subtitle.Render(s.field.Name()),
		box,
		lipgloss.NewStyle().Foreground(s.theme.Muted).Render(status),
	)
}
