package calculator

import (
	"notasmart/cmd/notasmart/ui"
	"notasmart/internal/ledger"
	"notasmart/internal/report"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayoutConfig(msg.Width, msg.Height)
		m.help.Width = msg.Width
		w, h := m.layout.DialogSize()
		m.results.Width = w
		m.results.Height = h
		if m.showResults {
			m.renderResults()
		}
		return m, nil

	case configReloadedMsg:
		m.styles = ui.NewStyles(ui.ThemeByName(msg.cfg.UI.Theme))
		if msg.cfg.UI.WordWrap > 0 {
			m.wordWrap = msg.cfg.UI.WordWrap
		}
		m.logger.Debug("theme reloaded", zap.String("theme", m.styles.Theme.Name))
		return m, m.waitForConfig()

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m.updateFocusedInput(msg)
}

// handleKeyMsg processes all keyboard input. Keys that are not shortcuts
// fall through to the focused input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showResults {
		if key.Matches(msg, m.keys.Close) {
			m.showResults = false
			return m, nil
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % m.fieldCount()
		m.applyFocus()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus - 1 + m.fieldCount()) % m.fieldCount()
		m.applyFocus()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		return m.addRow()

	case key.Matches(msg, m.keys.Remove):
		return m.removeRow()

	case key.Matches(msg, m.keys.Scale):
		return m.cycleScale()

	case key.Matches(msg, m.keys.Results):
		m.showResults = true
		m.renderResults()
		m.logger.Debug("results opened", zap.Float64("total_weight", m.ledger.TotalWeight()))
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput lets the focused textinput consume msg, then pushes the
// resulting text through the ledger. Rejected text is rolled back.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	row, field, onRow := m.focusedRow()
	if !onRow {
		var cmd tea.Cmd
		m.target, cmd = m.target.Update(msg)
		commit := m.commitTarget()
		return m, tea.Batch(cmd, commit)
	}

	in := m.input(row, field)
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if in.Value() == before {
		return m, cmd
	}
	commit := m.commitField(row, field)
	return m, tea.Batch(cmd, commit)
}

func (m *Model) commitField(row int, field ledger.FieldName) tea.Cmd {
	in := m.input(row, field)
	entry, _ := m.ledger.Entry(row)
	current := entry.Value
	if field == ledger.FieldWeight {
		current = entry.Weight
	}

	if err := m.ledger.UpdateEntry(row, field, in.Value()); err != nil {
		in.SetValue(current.String())
		m.logger.Debug("edit rejected",
			zap.Int("row", row), zap.String("field", string(field)), zap.Error(err))
		return m.setNotice(noticeError, err.Error())
	}

	entry, _ = m.ledger.Entry(row)
	accepted := entry.Value
	if field == ledger.FieldWeight {
		accepted = entry.Weight
	}
	// Echo the cleaned text so "3,5" shows as "3.5".
	if in.Value() != accepted.String() {
		in.SetValue(accepted.String())
	}
	return nil
}

func (m *Model) commitTarget() tea.Cmd {
	text := m.target.Value()
	if text == m.targetRaw {
		return nil
	}
	if text == "" {
		// Keep the last valid target while the field is cleared for retyping.
		m.targetRaw = ""
		return nil
	}
	cleaned, v, _, err := ledger.ParseInput(text)
	if err == nil {
		err = m.ledger.SetTarget(v)
	}
	if err != nil {
		m.target.SetValue(m.targetRaw)
		return m.setNotice(noticeError, err.Error())
	}
	m.targetRaw = cleaned
	if text != cleaned {
		m.target.SetValue(cleaned)
	}
	return nil
}

func (m Model) addRow() (tea.Model, tea.Cmd) {
	if err := m.ledger.AddEntry(); err != nil {
		cmd := m.setNotice(noticeError, err.Error())
		return m, cmd
	}
	m.syncFromLedger()
	m.focus = m.fieldCount() - 2 // value input of the new row
	m.applyFocus()
	m.logger.Debug("grade added", zap.Int("rows", m.ledger.Len()))
	return m, nil
}

func (m Model) removeRow() (tea.Model, tea.Cmd) {
	row, _, ok := m.focusedRow()
	if !ok {
		return m, nil
	}
	m.ledger.RemoveEntry(row)
	m.syncFromLedger()
	m.applyFocus()
	m.logger.Debug("grade removed", zap.Int("row", row), zap.Int("rows", m.ledger.Len()))
	cmd := m.setNotice(noticeInfo, "grade removed")
	return m, cmd
}

func (m Model) cycleScale() (tea.Model, tea.Cmd) {
	scales := ledger.SupportedScales()
	next := scales[0]
	for i, s := range scales {
		if s == m.ledger.Scale() {
			next = scales[(i+1)%len(scales)]
			break
		}
	}
	// Unsupported scales are ignored without a notice.
	if err := m.ledger.SetScale(next); err != nil {
		return m, nil
	}
	m.syncFromLedger()
	m.applyFocus()
	cmd := m.setNotice(noticeInfo, "scale "+next.Name+": scores cleared")
	return m, cmd
}

func (m *Model) renderResults() {
	md := report.Markdown(report.Build(m.ledger))
	style := m.reportStyle
	if style == "" {
		style = "light"
		if m.styles.Theme.IsDark {
			style = "dark"
		}
	}
	width := m.wordWrap
	if width <= 0 || width > m.results.Width {
		width = m.results.Width
	}
	out, err := report.Render(md, report.Options{Width: width, Style: style})
	if err != nil {
		m.logger.Warn("report render failed", zap.Error(err))
		out = md
	}
	m.results.SetContent(out)
	m.results.GotoTop()
}
