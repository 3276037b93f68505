package ledger

import "math"

// GradeStatus compares a complete final grade against the target.
type GradeStatus struct {
	FinalGrade float64 `json:"final_grade"`
	Diff       float64 `json:"diff"`
	Passed     bool    `json:"passed"`
}

// Stats is the summary shown in the results view.
type Stats struct {
	Average     float64 `json:"average"`
	TotalWeight float64 `json:"total_weight"`
	Highest     float64 `json:"highest"`
	Lowest      float64 `json:"lowest"`
	Passing     float64 `json:"passing"`
}

// TotalWeight sums the weights; unset counts as 0.
func (l *Ledger) TotalWeight() float64 {
	total := 0.0
	for _, e := range l.entries {
		total += e.Weight.Number()
	}
	return total
}

// WeightedSum sums value * weight/100 over all entries.
func (l *Ledger) WeightedSum() float64 {
	sum := 0.0
	for _, e := range l.entries {
		sum += e.Contribution()
	}
	return sum
}

// Average returns the weighted contribution total. It is only a mean once
// the weights reach 100; before that it is the points earned so far.
func (l *Ledger) Average() float64 {
	if l.TotalWeight() == 0 {
		return 0
	}
	return l.WeightedSum()
}

// RemainingWeight is the weight not yet assigned.
func (l *Ledger) RemainingWeight() float64 {
	return FullWeight - l.TotalWeight()
}

// NeededGrade is the uniform score required on all remaining weight to reach
// the target, clamped to the scale. ok is false when no weight remains.
func (l *Ledger) NeededGrade() (needed float64, ok bool) {
	remaining := l.RemainingWeight()
	if remaining <= 0 {
		return 0, false
	}
	raw := (l.target - l.WeightedSum()) * 100 / remaining
	return l.scale.Clamp(raw), true
}

// FinalGrade is defined only when weights total exactly 100.
func (l *Ledger) FinalGrade() (final float64, ok bool) {
	if l.TotalWeight() != FullWeight {
		return 0, false
	}
	return l.WeightedSum(), true
}

// Status compares the final grade with the target. A final grade of 0 is a
// real result and is reported like any other.
func (l *Ledger) Status() (GradeStatus, bool) {
	final, ok := l.FinalGrade()
	if !ok {
		return GradeStatus{}, false
	}
	diff := final - l.target
	return GradeStatus{
		FinalGrade: final,
		Diff:       math.Abs(round2(diff)),
		Passed:     diff >= 0,
	}, true
}

// Stats collects the figures for the results view.
func (l *Ledger) Stats() Stats {
	st := Stats{
		Average:     l.Average(),
		TotalWeight: l.TotalWeight(),
		Passing:     l.scale.Passing,
	}
	for i, e := range l.entries {
		v := e.Value.Number()
		if i == 0 || v > st.Highest {
			st.Highest = v
		}
		if i == 0 || v < st.Lowest {
			st.Lowest = v
		}
	}
	return st
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
