// Package report turns a ledger into the figures the calculator displays:
// the three summary cards, the per-grade table and the final results, as
// Markdown, JSON or glamour-rendered terminal text.
package report

import (
	"fmt"

	"notasmart/internal/ledger"
)

// Row is one grade line of the report.
type Row struct {
	Number       int     `json:"number"`
	Value        string  `json:"value"`
	Weight       string  `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Summary is a point-in-time snapshot of every derived figure.
type Summary struct {
	Scale           ledger.Scale        `json:"scale"`
	Target          float64             `json:"target"`
	Rows            []Row               `json:"rows"`
	CurrentAverage  float64             `json:"current_average"`
	TotalWeight     float64             `json:"total_weight"`
	RemainingWeight float64             `json:"remaining_weight"`
	NeededGrade     *float64            `json:"needed_grade"`
	FinalGrade      *float64            `json:"final_grade"`
	Status          *ledger.GradeStatus `json:"status"`
	Stats           ledger.Stats        `json:"stats"`
	// Passed compares the average with the scale's passing grade, which is
	// what the results view shows; Status compares against the target.
	Passed bool `json:"passed"`
}

// Build snapshots l.
func Build(l *ledger.Ledger) Summary {
	s := Summary{
		Scale:           l.Scale(),
		Target:          l.Target(),
		CurrentAverage:  l.Average(),
		TotalWeight:     l.TotalWeight(),
		RemainingWeight: l.RemainingWeight(),
		Stats:           l.Stats(),
	}
	for i, e := range l.Entries() {
		s.Rows = append(s.Rows, Row{
			Number:       i + 1,
			Value:        e.Value.String(),
			Weight:       e.Weight.String(),
			Contribution: e.Contribution(),
		})
	}
	if needed, ok := l.NeededGrade(); ok {
		s.NeededGrade = &needed
	}
	if final, ok := l.FinalGrade(); ok {
		s.FinalGrade = &final
	}
	if st, ok := l.Status(); ok {
		s.Status = &st
	}
	s.Passed = s.Stats.Average >= s.Stats.Passing
	return s
}

// Complete reports whether the weights total exactly 100.
func (s Summary) Complete() bool {
	return s.FinalGrade != nil
}

// NeededCard returns the headline and caption of the "needed grade" card.
// Once weights are complete it shows the outcome against the target;
// before that it shows the score required on the remaining weight.
func (s Summary) NeededCard() (headline, caption string) {
	if s.Complete() && s.Status != nil {
		if s.Status.Passed {
			return fmt.Sprintf("Passed! %.2f", s.Status.FinalGrade), ""
		}
		return fmt.Sprintf("You need %.2f", s.Status.Diff), "to pass"
	}
	if s.NeededGrade == nil {
		return "N/A", "required grade"
	}
	return fmt.Sprintf("%.2f", *s.NeededGrade), "required grade"
}

// AverageCard is the "current average" card value.
func (s Summary) AverageCard() string {
	return fmt.Sprintf("%.2f", s.CurrentAverage)
}

// RemainingCard is the "remaining weight" card value.
func (s Summary) RemainingCard() string {
	return fmt.Sprintf("%.1f%%", s.RemainingWeight)
}

// StatusLabel is the pass/fail word of the results view.
func (s Summary) StatusLabel() string {
	if s.Passed {
		return "Passed"
	}
	return "Failed"
}
