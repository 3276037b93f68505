// Package sheet reads grade sheets: YAML files listing a scale, a target
// and the grades to enter, used for batch calculation. Sheets are input
// only; nothing in NotaSmart writes grades back to disk.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"notasmart/internal/ledger"
	"notasmart/internal/logging"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Sheet is the on-disk batch input.
type Sheet struct {
	Scale  string   `yaml:"scale"`
	Target *float64 `yaml:"target"`
	Grades []Row    `yaml:"grades"`
}

// Row is one grade as typed. Values stay strings so that "8,5" goes
// through the same normalization as interactive input.
type Row struct {
	Value  string `yaml:"value"`
	Weight string `yaml:"weight"`
}

// RowError ties a ledger rejection to the sheet row that caused it.
type RowError struct {
	Row int // 1-based
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("grade %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Load reads and parses a sheet file.
func Load(path string) (Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to read sheet: %w", err)
	}
	return Parse(data)
}

// Parse decodes sheet YAML. Unknown top-level keys are rejected so typos
// surface instead of being silently ignored.
func Parse(data []byte) (Sheet, error) {
	var s Sheet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Sheet{}, fmt.Errorf("failed to parse sheet: %w", err)
	}
	if len(s.Grades) > ledger.MaxEntries {
		return Sheet{}, fmt.Errorf("sheet has %d grades, %s", len(s.Grades), ledger.MsgMaxEntries)
	}
	return s, nil
}

// UnmarshalYAML accepts both {value, weight} maps and "value:weight" scalars.
func (r *Row) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := ParsePair(node.Value)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	}
	type plain Row
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = Row(p)
	return nil
}

// ParsePair splits "value:weight". Either side may be empty.
func ParsePair(s string) (Row, error) {
	i := strings.LastIndex(s, ":")
	if i >= 0 {
		return Row{Value: s[:i], Weight: s[i+1:]}, nil
	}
	return Row{}, fmt.Errorf("grade %q must look like value:weight", s)
}

// Apply replays the sheet into l through its public operations, in order:
// scale, target, then each row. It stops at the first rejection.
func Apply(s Sheet, l *ledger.Ledger) error {
	logger := logging.Get(logging.CategorySheet)

	if s.Scale != "" {
		if err := l.SetScaleByName(s.Scale); err != nil {
			return err
		}
	}
	if s.Target != nil {
		if err := l.SetTarget(*s.Target); err != nil {
			return fmt.Errorf("target: %w", err)
		}
	}
	for i, row := range s.Grades {
		if i >= l.Len() {
			if err := l.AddEntry(); err != nil {
				return &RowError{Row: i + 1, Err: err}
			}
		}
		if err := l.UpdateEntry(i, ledger.FieldValue, row.Value); err != nil {
			return &RowError{Row: i + 1, Err: err}
		}
		if err := l.UpdateEntry(i, ledger.FieldWeight, row.Weight); err != nil {
			return &RowError{Row: i + 1, Err: err}
		}
	}
	logger.Debug("sheet applied",
		zap.String("scale", l.Scale().Name),
		zap.Int("grades", len(s.Grades)),
		zap.Float64("total_weight", l.TotalWeight()))
	return nil
}
