// Package calculator provides the interactive grade calculator TUI.
// Every edit goes straight through the ledger; the inputs only ever show
// text the ledger accepted.
package calculator

import (
	"strconv"
	"time"

	"notasmart/cmd/notasmart/ui"
	"notasmart/internal/config"
	"notasmart/internal/ledger"
	"notasmart/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// noticeTTL is how long a validation notice stays on screen.
const noticeTTL = 3 * time.Second

// Options configures a new Model.
type Options struct {
	Ledger *ledger.Ledger
	Styles ui.Styles
	// ReportStyle is the glamour style for the results dialog; empty
	// follows the theme.
	ReportStyle string
	WordWrap    int
	// ConfigUpdates, when set, delivers live config reloads.
	ConfigUpdates <-chan *config.Config
}

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeError
)

// rowInputs holds the two text inputs of one grade row.
type rowInputs struct {
	value  textinput.Model
	weight textinput.Model
}

// Model is the bubbletea model of the calculator.
type Model struct {
	ledger *ledger.Ledger
	styles ui.Styles
	keys   keyMap
	help   help.Model

	target    textinput.Model
	targetRaw string
	rows      []rowInputs
	focus     int // 0 = target, then value/weight pairs per row

	notice     string
	noticeKind noticeKind
	noticeID   int

	showResults bool
	results     viewport.Model
	reportStyle string
	wordWrap    int

	layout    ui.LayoutConfig
	sessionID string
	logger    *zap.Logger
	updates   <-chan *config.Config
}

// configReloadedMsg carries a config picked up by the watcher.
type configReloadedMsg struct{ cfg *config.Config }

// clearNoticeMsg expires the notice with the matching id.
type clearNoticeMsg struct{ id int }

// New creates a calculator bound to opts.Ledger.
func New(opts Options) Model {
	l := opts.Ledger
	if l == nil {
		l = ledger.New()
	}
	sessionID := uuid.NewString()
	m := Model{
		ledger:      l,
		styles:      opts.Styles,
		keys:        defaultKeyMap(),
		help:        help.New(),
		target:      newInput("target", 6),
		results:     viewport.New(ui.DialogMaxWidth, 20),
		reportStyle: opts.ReportStyle,
		wordWrap:    opts.WordWrap,
		layout:      ui.NewLayoutConfig(ui.CompactModeWidth, 24),
		sessionID:   sessionID,
		logger:      logging.Get(logging.CategoryUI).With(zap.String("session", sessionID)),
		updates:     opts.ConfigUpdates,
	}
	m.syncFromLedger()
	m.focus = 1
	m.applyFocus()
	m.logger.Debug("calculator session started", zap.String("scale", l.Scale().Name))
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = limit + 1
	return in
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForConfig())
}

// Ledger exposes the underlying ledger.
func (m Model) Ledger() *ledger.Ledger {
	return m.ledger
}

// SessionID identifies this calculator run in logs.
func (m Model) SessionID() string {
	return m.sessionID
}

func (m Model) waitForConfig() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// syncFromLedger rebuilds every input from ledger state.
func (m *Model) syncFromLedger() {
	entries := m.ledger.Entries()
	m.rows = make([]rowInputs, len(entries))
	for i, e := range entries {
		m.rows[i] = rowInputs{value: newInput("0", 6), weight: newInput("0", 6)}
		m.rows[i].value.SetValue(e.Value.String())
		m.rows[i].weight.SetValue(e.Weight.String())
	}
	m.targetRaw = formatNumber(m.ledger.Target())
	m.target.SetValue(m.targetRaw)
	if m.focus >= m.fieldCount() {
		m.focus = m.fieldCount() - 1
	}
}

func (m Model) fieldCount() int {
	return 1 + 2*len(m.rows)
}

// focusedRow returns the row and field under focus; ok is false on the target.
func (m Model) focusedRow() (row int, field ledger.FieldName, ok bool) {
	if m.focus == 0 {
		return 0, "", false
	}
	idx := m.focus - 1
	field = ledger.FieldValue
	if idx%2 == 1 {
		field = ledger.FieldWeight
	}
	return idx / 2, field, true
}

func (m *Model) input(row int, field ledger.FieldName) *textinput.Model {
	if field == ledger.FieldWeight {
		return &m.rows[row].weight
	}
	return &m.rows[row].value
}

func (m *Model) applyFocus() {
	m.target.Blur()
	for i := range m.rows {
		m.rows[i].value.Blur()
		m.rows[i].weight.Blur()
	}
	if row, field, ok := m.focusedRow(); ok {
		m.input(row, field).Focus()
		return
	}
	m.target.Focus()
}

func (m *Model) setNotice(kind noticeKind, text string) tea.Cmd {
	m.notice = text
	m.noticeKind = kind
	m.noticeID++
	id := m.noticeID
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
