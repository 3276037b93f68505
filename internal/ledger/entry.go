package ledger

// FieldName selects which half of an entry an edit targets.
type FieldName string

const (
	FieldValue  FieldName = "value"
	FieldWeight FieldName = "weight"
)

// Field keeps the text being typed next to the number it parsed to.
// Raw is for display only; Value is what every computation reads.
type Field struct {
	Raw   string  `json:"raw"`
	Value float64 `json:"value"`
	Set   bool    `json:"set"`
}

// Number returns the parsed value, or 0 when unset.
func (f Field) Number() float64 {
	if !f.Set {
		return 0
	}
	return f.Value
}

func (f Field) String() string {
	if !f.Set {
		return ""
	}
	return f.Raw
}

// Entry is one graded item.
type Entry struct {
	Value  Field `json:"value"`
	Weight Field `json:"weight"`
}

// IsEmpty reports whether neither field has been filled in.
func (e Entry) IsEmpty() bool {
	return !e.Value.Set && !e.Weight.Set
}

// Contribution is value * weight/100.
func (e Entry) Contribution() float64 {
	return e.Value.Number() * (e.Weight.Number() / 100)
}

func (e *Entry) field(name FieldName) *Field {
	if name == FieldWeight {
		return &e.Weight
	}
	return &e.Value
}
