package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies a rejected mutation.
type Kind int

const (
	// KindRange is a value, weight, target or index outside its bounds.
	KindRange Kind = iota + 1
	// KindBudget is a weight total above 100 or an entry count above the cap.
	KindBudget
	// KindMalformed is text that is not a non-negative decimal.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindRange:
		return "range_violation"
	case KindBudget:
		return "budget_exceeded"
	case KindMalformed:
		return "malformed_input"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching on the kind of a ValidationError.
var (
	ErrRangeViolation = errors.New("range violation")
	ErrBudgetExceeded = errors.New("budget exceeded")
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedScale is returned by SetScale for scales outside SupportedScales.
	ErrUnsupportedScale = errors.New("unsupported grading scale")
)

// ValidationError describes why a mutation was rejected. The ledger is
// unchanged whenever one is returned.
type ValidationError struct {
	Kind    Kind
	Index   int // -1 when the error is not tied to an entry
	Field   FieldName
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches the kind sentinels.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrRangeViolation:
		return e.Kind == KindRange
	case ErrBudgetExceeded:
		return e.Kind == KindBudget
	case ErrMalformedInput:
		return e.Kind == KindMalformed
	}
	return false
}

// KindOf extracts the kind from err, or 0 if err is not a ValidationError.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return 0
}

func rangeError(index int, field FieldName, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: KindRange, Index: index, Field: field, Message: fmt.Sprintf(format, args...)}
}

func budgetError(index int, field FieldName, msg string) *ValidationError {
	return &ValidationError{Kind: KindBudget, Index: index, Field: field, Message: msg}
}

func malformedError(index int, field FieldName, raw string) *ValidationError {
	return &ValidationError{Kind: KindMalformed, Index: index, Field: field, Message: fmt.Sprintf("%q is not a valid number", raw)}
}
