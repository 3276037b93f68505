package calculator

import (
	"fmt"
	"strings"

	"notasmart/cmd/notasmart/ui"
	"notasmart/internal/ledger"
	"notasmart/internal/report"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.showResults {
		return m.renderDialog()
	}

	summary := report.Build(m.ledger)
	var b strings.Builder

	scale := m.ledger.Scale()
	b.WriteString(m.styles.Header.Render("NotaSmart"))
	b.WriteString(" ")
	b.WriteString(m.styles.Badge.Render("scale " + scale.Name))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Label.Render("Target"))
	b.WriteString(m.renderInput(m.focus == 0, m.target.View()))
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("  (%g to %g, passing %g)", scale.Min, scale.Max, scale.Passing)))
	b.WriteString("\n\n")

	for i, row := range m.rows {
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("Grade %d", i+1)))
		b.WriteString(m.renderInput(m.focus == 1+2*i, row.value.View()))
		b.WriteString(m.styles.Muted.Render("  weight "))
		b.WriteString(m.renderInput(m.focus == 2+2*i, row.weight.View()))
		b.WriteString(m.styles.Muted.Render("%"))
		b.WriteString("\n")
	}
	if hint := m.addHint(); hint != "" {
		b.WriteString(m.styles.Warning.Render(hint))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.RenderDivider(m.dividerWidth()))
	b.WriteString("\n")

	b.WriteString(m.renderCards(summary))
	b.WriteString("\n")

	if m.notice != "" {
		style := m.styles.Info
		if m.noticeKind == noticeError {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))

	return m.styles.Content.Render(b.String())
}

// addHint explains why ctrl+n is unavailable, or returns "".
func (m Model) addHint() string {
	switch {
	case m.ledger.Len() >= ledger.MaxEntries:
		return ledger.MsgMaxEntries
	case m.ledger.TotalWeight() >= ledger.FullWeight:
		return "weights complete: no percentage left for another grade"
	}
	return ""
}

func (m Model) dividerWidth() int {
	w := m.layout.ContentWidth()
	if w > ui.DialogMaxWidth {
		w = ui.DialogMaxWidth
	}
	return w
}

func (m Model) renderInput(focused bool, view string) string {
	if focused {
		return m.styles.InputFocused.Render(view)
	}
	return m.styles.InputBlurred.Render(view)
}

func (m Model) renderCards(s report.Summary) string {
	card := func(title, value, caption string, valueStyle lipgloss.Style) string {
		body := m.styles.CardTitle.Render(title) + "\n" + valueStyle.Render(value)
		if caption != "" {
			body += "\n" + m.styles.Muted.Render(caption)
		}
		return m.styles.Card.Render(body)
	}

	headline, caption := s.NeededCard()
	neededStyle := m.styles.CardValue
	if s.Status != nil {
		neededStyle = m.styles.Error
		if s.Status.Passed {
			neededStyle = m.styles.Success
		}
	}

	cards := []string{
		card("Current average", s.AverageCard(), "", m.styles.CardValue),
		card("Needed grade", headline, caption, neededStyle),
		card("Remaining weight", s.RemainingCard(), "", m.styles.CardValue),
	}
	if m.layout.IsCompact {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) renderDialog() string {
	footer := m.styles.Muted.Render("esc/enter close  ↑/↓ scroll")
	return m.styles.Dialog.Render(m.results.View() + "\n" + footer)
}
