package tui

import (
	"fmt"
	"time"

	"github.com/Veraticus/scanfield/internal/common"
	"github.com/Veraticus/scanfield/internal/model"
	"github.com/Veraticus/scanfield/internal/scanner"
	"github.com/Veraticus/scanfield/internal/service"
	"github.com/Veraticus/scanfield/internal/tui/components"
	"github.com/Veraticus/scanfield/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// detections collects scans reported by the field listener until Update
// picks them up. It is shared by every copy of the model.
type detections struct {
	scans []model.Scan
}

// Model holds the main TUI state.
type Model struct {
	theme     themes.Theme
	lastError error
	storage   service.ScanStore
	input     *components.ScanInput
	detected  *detections
	status    string
	history   []model.Scan
	help      help.Model
	keymap    KeyMap
	config    Config
	scanCount int
	height    int
	width     int
	quitting  bool
}

// New creates the scan terminal model.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	input, err := components.NewScanInput(cfg.Theme, cfg.Tracer, cfg.Scanner...)
	if err != nil {
		return Model{}, err
	}

	detected := &detections{}
	input.Field().AddListener(scanner.NewListener(func(ev scanner.Event) error {
		value := ev.Source.Text()
		if value == "" {
			return nil
		}
		detected.scans = append(detected.scans, model.Scan{
			ScannedAt: time.Now(),
			Field:     ev.Source.Name(),
			Value:     value,
			Source:    model.SourceTerminal,
		})
		return nil
	}))

	h := help.New()
	h.Width = cfg.Width

	return Model{
		theme:    cfg.Theme,
		storage:  cfg.Storage,
		input:    input,
		detected: detected,
		help:     h,
		keymap:   DefaultKeyMap(),
		config:   cfg,
		width:    cfg.Width,
		height:   cfg.Height,
	}, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.input.Focus()}
	if m.storage != nil {
		cmds = append(cmds, m.loadHistory())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keymap.Clear):
			m.status = ""
			return m, m.input.ClearDeferred()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.lastError = fmt.Errorf("failed to load history: %w", msg.err)
			common.LogError(msg.err, "failed to load scan history", nil)
			return m, nil
		}
		m.history = msg.scans
		return m, nil

	case scanSavedMsg:
		if msg.err != nil {
			m.lastError = fmt.Errorf("failed to save %s: %w", msg.scan.Value, msg.err)
			common.LogError(msg.err, "failed to save scan", common.Fields{"value": msg.scan.Value})
		}
		m.remember(msg.scan)
		return m, nil
	}

	cmd := m.input.Update(msg)
	saves := m.collectScans()
	return m, tea.Batch(cmd, saves)
}

// collectScans takes the scans detected during the last input update and
// records them, saving through storage when one is configured.
func (m *Model) collectScans() tea.Cmd {
	if len(m.detected.scans) == 0 {
		return nil
	}
	scans := m.detected.scans
	m.detected.scans = nil

	var cmds []tea.Cmd
	for _, scan := range scans {
		m.scanCount++
		m.lastError = nil
		m.status = fmt.Sprintf("Scanned %s", scan.Value)
		common.LogInfo("scan detected", common.Fields{"field": scan.Field, "value": scan.Value})

		if m.storage == nil {
			m.remember(scan)
			continue
		}
		cmds = append(cmds, m.saveScan(scan))
	}
	return tea.Batch(cmds...)
}

// remember puts scan at the top of the history.
func (m *Model) remember(scan model.Scan) {
	m.history = append([]model.Scan{scan}, m.history...)
	if len(m.history) > m.config.HistorySize {
		m.history = m.history[:m.config.HistorySize]
	}
}
