// Package ledger holds the grade calculation engine: an ordered list of
// weighted grades under one grading scale, validated on every mutation.
//
// A Ledger has a single owner and no internal locking. All mutations either
// apply completely or return a *ValidationError and leave state untouched.
package ledger

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// MaxEntries caps the number of rows.
	MaxEntries = 10
	// FullWeight is the weight budget shared by all entries.
	FullWeight = 100.0
)

// User-facing messages for budget rejections.
const (
	MsgMaxEntries   = "maximum of 10 entries"
	MsgWeightBudget = "percentages cannot exceed 100%"
)

// Ledger is the calculator state for one session.
type Ledger struct {
	entries []Entry
	scale   Scale
	target  float64
	logger  *zap.Logger
}

// Option configures a Ledger at construction.
type Option func(*Ledger)

// WithLogger sets the logger used for rejected mutations.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithScale starts the ledger on s instead of DefaultScale. Unsupported
// scales are ignored.
func WithScale(s Scale) Option {
	return func(l *Ledger) {
		if IsSupported(s) {
			l.scale = s
			l.target = s.Passing
		}
	}
}

// New creates a ledger with one empty entry.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		entries: []Entry{{}},
		scale:   DefaultScale,
		target:  DefaultScale.Passing,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Scale returns the active scale.
func (l *Ledger) Scale() Scale { return l.scale }

// Target returns the target grade.
func (l *Ledger) Target() float64 { return l.target }

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns a copy of the entries in order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Entry returns the entry at index.
func (l *Ledger) Entry(index int) (Entry, bool) {
	if index < 0 || index >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[index], true
}

// SetScale switches scales. Values from the old scale cannot be trusted on
// the new one, so every value is unset and the target moves to the new
// passing grade. Weights are kept.
func (l *Ledger) SetScale(s Scale) error {
	if !IsSupported(s) {
		l.logger.Debug("ignoring unsupported scale", zap.Stringer("scale", s))
		return ErrUnsupportedScale
	}
	l.scale = s
	for i := range l.entries {
		l.entries[i].Value = Field{}
	}
	l.target = s.Passing
	l.logger.Debug("scale changed", zap.String("scale", s.Name), zap.Float64("target", l.target))
	return nil
}

// SetScaleByName switches to the supported scale with the given name.
func (l *Ledger) SetScaleByName(name string) error {
	s, ok := LookupScale(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedScale, name)
	}
	return l.SetScale(s)
}

// SetTarget sets the target grade, which must lie within the scale.
func (l *Ledger) SetTarget(target float64) error {
	if !l.scale.Contains(target) {
		return l.reject(rangeError(-1, "", "target must be between %g and %g", l.scale.Min, l.scale.Max))
	}
	l.target = target
	return nil
}

// AddEntry appends an empty entry.
func (l *Ledger) AddEntry() error {
	if len(l.entries) >= MaxEntries {
		return l.reject(budgetError(-1, "", MsgMaxEntries))
	}
	if l.TotalWeight() >= FullWeight {
		return l.reject(budgetError(-1, FieldWeight, MsgWeightBudget))
	}
	l.entries = append(l.entries, Entry{})
	return nil
}

// RemoveEntry deletes the entry at index and reports whether anything was
// removed. Removing the last remaining entry leaves a single empty one.
func (l *Ledger) RemoveEntry(index int) bool {
	if index < 0 || index >= len(l.entries) {
		return false
	}
	if len(l.entries) == 1 {
		l.entries[0] = Entry{}
		return true
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	return true
}

// CanAddEntry reports whether AddEntry would currently succeed.
func (l *Ledger) CanAddEntry() bool {
	return len(l.entries) < MaxEntries && l.TotalWeight() < FullWeight
}

func (l *Ledger) reject(err *ValidationError) error {
	l.logger.Debug("mutation rejected",
		zap.Stringer("kind", err.Kind),
		zap.Int("index", err.Index),
		zap.String("field", string(err.Field)),
		zap.String("reason", err.Message))
	return err
}
