package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/scanfield/internal/model"
	"github.com/Veraticus/scanfield/internal/scanner"
	tuitesting "github.com/Veraticus/scanfield/internal/tui/testing"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveScan(ctx context.Context, scan model.Scan) (model.Scan, error) {
	args := m.Called(ctx, scan)
	if saved, ok := args.Get(0).(model.Scan); ok {
		return saved, args.Error(1)
	}
	return model.Scan{}, args.Error(1)
}

func (m *mockStore) RecentScans(ctx context.Context, limit int) ([]model.Scan, error) {
	args := m.Called(ctx, limit)
	if scans, ok := args.Get(0).([]model.Scan); ok {
		return scans, args.Error(1)
	}
	return nil, args.Error(1)
}

// run delivers msg and every message its commands produce, the way the
// bubbletea loop would. It stops at tea.Quit.
func run(t *testing.T, m Model, msg tea.Msg) (Model, bool) {
	t.Helper()

	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if _, ok := next.(tea.QuitMsg); ok {
			return m, true
		}

		updated, cmd := m.Update(next)
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
		queue = append(queue, tuitesting.Collect(cmd)...)
	}
	return m, false
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()

	opts = append([]Option{WithScannerOptions(scanner.WithInputDelay(time.Hour))}, opts...)
	m, err := New(opts...)
	require.NoError(t, err)
	return m
}

func TestNew_InvalidScannerOptions(t *testing.T) {
	_, err := New(WithScannerOptions(scanner.WithBarcodeLength(-1)))
	assert.Error(t, err)
}

func TestModel_ScanWithoutStorage(t *testing.T) {
	m := newTestModel(t)

	m, _ = run(t, m, tuitesting.Burst("&é\"'(§è!"))

	require.Len(t, m.history, 1)
	assert.Equal(t, "12345678", m.history[0].Value)
	assert.Equal(t, model.SourceTerminal, m.history[0].Source)
	assert.Equal(t, "barcode", m.history[0].Field)
	assert.Equal(t, 1, m.scanCount)
	assert.Contains(t, m.View(), "12345678")
}

func TestModel_ScanIsSaved(t *testing.T) {
	store := &mockStore{}
	store.On("SaveScan", mock.Anything, mock.MatchedBy(func(s model.Scan) bool {
		return s.Value == "00000000" && s.Source == model.SourceTerminal
	})).Return(model.Scan{ID: "scan-1", Value: "00000000", Source: model.SourceTerminal}, nil).Once()

	m := newTestModel(t, WithStorage(store))
	m, _ = run(t, m, tuitesting.Burst("àààààààà"))

	store.AssertExpectations(t)
	require.Len(t, m.history, 1)
	assert.Equal(t, "scan-1", m.history[0].ID)
	assert.NoError(t, m.lastError)
}

func TestModel_SaveFailureIsShown(t *testing.T) {
	store := &mockStore{}
	store.On("SaveScan", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	m := newTestModel(t, WithStorage(store))
	m, _ = run(t, m, tuitesting.Burst("àààààààà"))

	require.Error(t, m.lastError)
	assert.Contains(t, m.View(), "disk full")
	require.Len(t, m.history, 1, "unsaved scans are still listed")
}

func TestModel_InitLoadsHistory(t *testing.T) {
	history := []model.Scan{
		{ID: "b", Value: "22222222", Source: model.SourceTerminal},
		{ID: "a", Value: "11111111", Source: model.SourceReplay},
	}
	store := &mockStore{}
	store.On("RecentScans", mock.Anything, 3).Return(history, nil).Once()

	m := newTestModel(t, WithStorage(store), WithHistorySize(3))
	for _, msg := range tuitesting.Collect(m.Init()) {
		m, _ = run(t, m, msg)
	}

	store.AssertExpectations(t)
	assert.Equal(t, history, m.history)

	view := m.View()
	assert.Contains(t, view, "22222222")
	assert.Contains(t, view, "replay")
}

func TestModel_HistoryIsCapped(t *testing.T) {
	m := newTestModel(t, WithHistorySize(2))

	for _, code := range []string{"&&&&&&&&", "éééééééé", "\"\"\"\"\"\"\"\""} {
		m, _ = run(t, m, tuitesting.Burst(code))
		m, _ = run(t, m, tuitesting.KeyEnter())
	}

	require.Len(t, m.history, 2)
	assert.Equal(t, "33333333", m.history[0].Value)
	assert.Equal(t, "22222222", m.history[1].Value)
	assert.Equal(t, 3, m.scanCount)
}

func TestModel_EnterClearsField(t *testing.T) {
	m := newTestModel(t)

	m, _ = run(t, m, tuitesting.Burst("abc"))
	require.Equal(t, "abc", m.input.Text())

	m, _ = run(t, m, tuitesting.KeyEnter())
	assert.Empty(t, m.input.Text())
}

func TestModel_TypingIsNotAScan(t *testing.T) {
	m := newTestModel(t)

	m, _ = run(t, m, tuitesting.Paste("12345678"))

	assert.Empty(t, m.history)
	assert.Contains(t, m.View(), "No scans yet")
}

func TestModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{tuitesting.KeyEsc(), tuitesting.KeyCtrlC()} {
		m := newTestModel(t)

		m, quit := run(t, m, msg)

		assert.True(t, quit)
		assert.True(t, m.quitting)
		assert.Empty(t, m.View())
	}
}

func TestModel_HelpAndResize(t *testing.T) {
	m := newTestModel(t)

	m, _ = run(t, m, tuitesting.WindowSize(120, 40))
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)

	m, _ = run(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "toggle help")
}
