package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"notasmart/internal/logging"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// Markdown renders the full report.
func Markdown(s Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Grade report\n\n")
	fmt.Fprintf(&b, "Scale **%s** (%g to %g), target **%.2f**\n\n", s.Scale.Name, s.Scale.Min, s.Scale.Max, s.Target)

	b.WriteString("| Grade | Score | Weight | Points |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, r := range s.Rows {
		fmt.Fprintf(&b, "| Grade %d | %s | %s | %.2f |\n", r.Number, orDash(r.Value), percent(r.Weight), r.Contribution)
	}
	b.WriteString("\n")

	headline, caption := s.NeededCard()
	needed := headline
	if caption != "" {
		needed += " " + caption
	}
	fmt.Fprintf(&b, "- **Current average:** %s\n", s.AverageCard())
	fmt.Fprintf(&b, "- **Needed grade:** %s\n", needed)
	fmt.Fprintf(&b, "- **Remaining weight:** %s\n\n", s.RemainingCard())

	b.WriteString("## Final results\n\n")
	fmt.Fprintf(&b, "- Final average: %.2f\n", s.Stats.Average)
	fmt.Fprintf(&b, "- Highest grade: %.2f\n", s.Stats.Highest)
	fmt.Fprintf(&b, "- Lowest grade: %.2f\n", s.Stats.Lowest)
	fmt.Fprintf(&b, "- Status: **%s** (minimum %g)\n", s.StatusLabel(), s.Stats.Passing)
	if !s.Complete() {
		fmt.Fprintf(&b, "\n_Weights total %.1f%%; the average is final only at 100%%._\n", s.TotalWeight)
	}
	return b.String()
}

// JSON encodes the summary.
func JSON(s Summary) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// Options controls terminal rendering.
type Options struct {
	Width int    // word wrap; 0 = 80
	Style string // glamour standard style name; empty = auto-detect
}

// Render formats Markdown for the terminal with glamour.
func Render(md string, opts Options) (string, error) {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	style := glamour.WithAutoStyle()
	if opts.Style != "" {
		style = glamour.WithStandardStyle(opts.Style)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	logging.Get(logging.CategoryReport).Debug("report rendered",
		zap.Int("width", width), zap.String("style", opts.Style), zap.Int("bytes", len(out)))
	return out, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func percent(s string) string {
	if s == "" {
		return "-"
	}
	return s + "%"
}
