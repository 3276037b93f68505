package ledger

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimalPrefix accepts what a user may have typed so far: digits, at most
// one point, more digits. Signs, exponents and letters are rejected.
var decimalPrefix = regexp.MustCompile(`^\d*\.?\d*$`)

// NormalizeInput maps commas to decimal points.
func NormalizeInput(raw string) string {
	return strings.ReplaceAll(raw, ",", ".")
}

// ParseInput runs the text half of the validation pipeline. It returns the
// cleaned text, the parsed number and whether the input was non-empty.
// Empty input is never an error.
func ParseInput(raw string) (cleaned string, value float64, set bool, err error) {
	if raw == "" {
		return "", 0, false, nil
	}
	cleaned = NormalizeInput(raw)
	if !decimalPrefix.MatchString(cleaned) {
		return "", 0, false, malformedError(-1, "", raw)
	}
	value, perr := strconv.ParseFloat(cleaned, 64)
	if perr != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return "", 0, false, malformedError(-1, "", raw)
	}
	return cleaned, value, true, nil
}

// UpdateEntry validates raw text for one field of one entry and stores it.
// On success the field holds both the cleaned text and its number. On
// failure the ledger is unchanged and a *ValidationError names the rule.
func (l *Ledger) UpdateEntry(index int, field FieldName, raw string) error {
	if index < 0 || index >= len(l.entries) {
		return l.reject(rangeError(index, field, "grade %d does not exist", index+1))
	}
	if field != FieldValue && field != FieldWeight {
		return l.reject(rangeError(index, field, "unknown field %q", field))
	}

	cleaned, n, set, err := ParseInput(raw)
	if err != nil {
		ve := err.(*ValidationError)
		ve.Index, ve.Field = index, field
		return l.reject(ve)
	}
	if !set {
		*l.entries[index].field(field) = Field{}
		return nil
	}

	switch field {
	case FieldValue:
		if !l.scale.Contains(n) {
			return l.reject(rangeError(index, field, "score must be between %g and %g", l.scale.Min, l.scale.Max))
		}
	case FieldWeight:
		if n < 0 || n > FullWeight {
			return l.reject(rangeError(index, field, "percentage must be between 0 and 100"))
		}
		if l.otherWeight(index)+n > FullWeight {
			return l.reject(budgetError(index, field, MsgWeightBudget))
		}
	}

	*l.entries[index].field(field) = Field{Raw: cleaned, Value: n, Set: true}
	return nil
}

// otherWeight sums every weight except the one at skip, so an entry can be
// re-entered at its current weight without tripping the budget.
func (l *Ledger) otherWeight(skip int) float64 {
	total := 0.0
	for i, e := range l.entries {
		if i == skip {
			continue
		}
		total += e.Weight.Number()
	}
	return total
}
