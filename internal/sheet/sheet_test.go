package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"notasmart/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
scale: "0-10"
target: 7
grades:
  - {value: "8,5", weight: "30"}
  - "6:70"
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "0-10", s.Scale)
	require.NotNil(t, s.Target)
	assert.Equal(t, 7.0, *s.Target)
	assert.Equal(t, []Row{{Value: "8,5", Weight: "30"}, {Value: "6", Weight: "70"}}, s.Grades)
}

func TestParse_BadPair(t *testing.T) {
	_, err := Parse([]byte("grades: [\"8\"]"))
	assert.ErrorContains(t, err, "value:weight")
}

func TestParse_TooManyGrades(t *testing.T) {
	doc := "grades:\n"
	for i := 0; i < ledger.MaxEntries+1; i++ {
		doc += "  - \"1:1\"\n"
	}
	_, err := Parse([]byte(doc))
	assert.ErrorContains(t, err, ledger.MsgMaxEntries)
}

func TestApply(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	l := ledger.New()
	require.NoError(t, Apply(s, l))

	assert.Equal(t, ledger.ScaleTen, l.Scale())
	assert.Equal(t, 7.0, l.Target())
	assert.Equal(t, 2, l.Len())
	final, ok := l.FinalGrade()
	require.True(t, ok)
	assert.InDelta(t, 6.75, final, 1e-9)

	e, _ := l.Entry(0)
	assert.Equal(t, "8.5", e.Value.Raw)
}

func TestApply_ReportsRow(t *testing.T) {
	s := Sheet{Grades: []Row{{Value: "4", Weight: "60"}, {Value: "3", Weight: "50"}}}

	err := Apply(s, ledger.New())
	require.Error(t, err)

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 2, rowErr.Row)
	assert.True(t, errors.Is(err, ledger.ErrBudgetExceeded))
	assert.Equal(t, "grade 2: percentages cannot exceed 100%", err.Error())
}

func TestApply_UnknownScale(t *testing.T) {
	err := Apply(Sheet{Scale: "A-F"}, ledger.New())
	assert.ErrorIs(t, err, ledger.ErrUnsupportedScale)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grades.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Grades, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read sheet")
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("scael: \"0-5\"\n"))
	assert.ErrorContains(t, err, "failed to parse sheet")

	s, err := Parse(nil)
	require.NoError(t, err, "empty sheet is valid")
	assert.Empty(t, s.Grades)
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		in      string
		want    Row
		wantErr bool
	}{
		{in: "4:30", want: Row{Value: "4", Weight: "30"}},
		{in: "3,5:20", want: Row{Value: "3,5", Weight: "20"}},
		{in: ":40", want: Row{Weight: "40"}},
		{in: "4:", want: Row{Value: "4"}},
		{in: "4:1:20", want: Row{Value: "4:1", Weight: "20"}},
		{in: "4", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePair(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
