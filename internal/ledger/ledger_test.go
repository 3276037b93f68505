package ledger

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// build creates a ledger on scale s with one entry per (value, weight) pair.
func build(t *testing.T, s Scale, pairs ...[2]string) *Ledger {
	t.Helper()
	l := New(WithScale(s))
	for i, p := range pairs {
		if i > 0 {
			require.NoError(t, l.AddEntry())
		}
		require.NoError(t, l.UpdateEntry(i, FieldValue, p[0]))
		require.NoError(t, l.UpdateEntry(i, FieldWeight, p[1]))
	}
	return l
}

func TestNew_Defaults(t *testing.T) {
	l := New()
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, ScaleFive, l.Scale())
	assert.Equal(t, 3.0, l.Target())
	e, ok := l.Entry(0)
	require.True(t, ok)
	assert.True(t, e.IsEmpty())
}

func TestNew_WithScale(t *testing.T) {
	l := New(WithScale(ScaleHundred))
	assert.Equal(t, ScaleHundred, l.Scale())
	assert.Equal(t, 60.0, l.Target())

	custom := New(WithScale(Scale{Name: "1-7", Min: 1, Max: 7, Passing: 4}))
	assert.Equal(t, ScaleFive, custom.Scale(), "unsupported scale must be ignored")
}

func TestUpdateEntry_Pipeline(t *testing.T) {
	tests := []struct {
		name     string
		field    FieldName
		raw      string
		wantKind Kind
		wantRaw  string
	}{
		{name: "integer value", field: FieldValue, raw: "4", wantRaw: "4"},
		{name: "comma decimal", field: FieldValue, raw: "3,5", wantRaw: "3.5"},
		{name: "trailing point kept", field: FieldValue, raw: "3.", wantRaw: "3."},
		{name: "leading point", field: FieldValue, raw: ".5", wantRaw: ".5"},
		{name: "letters", field: FieldValue, raw: "4a", wantKind: KindMalformed},
		{name: "negative", field: FieldValue, raw: "-1", wantKind: KindMalformed},
		{name: "multiple commas", field: FieldValue, raw: "3,5,2", wantKind: KindMalformed},
		{name: "lone point", field: FieldValue, raw: ".", wantKind: KindMalformed},
		{name: "exponent", field: FieldValue, raw: "1e2", wantKind: KindMalformed},
		{name: "above scale", field: FieldValue, raw: "5.1", wantKind: KindRange},
		{name: "weight in range", field: FieldWeight, raw: "40", wantRaw: "40"},
		{name: "weight above 100", field: FieldWeight, raw: "101", wantKind: KindRange},
		{name: "weight with spaces", field: FieldWeight, raw: " 4", wantKind: KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			before := l.Entries()

			err := l.UpdateEntry(0, tt.field, tt.raw)
			if tt.wantKind != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, KindOf(err))
				if diff := cmp.Diff(before, l.Entries()); diff != "" {
					t.Fatalf("rejected edit changed state (-before +after):\n%s", diff)
				}
				return
			}
			require.NoError(t, err)
			e, _ := l.Entry(0)
			f := e.Value
			if tt.field == FieldWeight {
				f = e.Weight
			}
			assert.True(t, f.Set)
			assert.Equal(t, tt.wantRaw, f.Raw)
		})
	}
}

func TestUpdateEntry_EmptyUnsets(t *testing.T) {
	l := build(t, ScaleFive, [2]string{"4", "60"})
	require.NoError(t, l.UpdateEntry(0, FieldValue, ""))

	e, _ := l.Entry(0)
	assert.False(t, e.Value.Set)
	assert.Equal(t, "", e.Value.String())
	assert.Equal(t, 0.0, e.Value.Number())
	assert.True(t, e.Weight.Set)
}

func TestUpdateEntry_MalformedCommaSequence(t *testing.T) {
	l := build(t, ScaleFive, [2]string{"2", "50"})
	before := l.Entries()

	err := l.UpdateEntry(0, FieldValue, "3,5,2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
	assert.False(t, errors.Is(err, ErrRangeViolation))
	assert.Empty(t, cmp.Diff(before, l.Entries()))
}

func TestUpdateEntry_ValueOutOfRangeMessage(t *testing.T) {
	l := New()
	err := l.UpdateEntry(0, FieldValue, "6")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRangeViolation))
	assert.Equal(t, "score must be between 0 and 5", err.Error())

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 0, ve.Index)
	assert.Equal(t, FieldValue, ve.Field)
}

func TestUpdateEntry_OverweightRejected(t *testing.T) {
	l := build(t, ScaleFive, [2]string{"4", "50"}, [2]string{"3", "40"})
	require.NoError(t, l.AddEntry())
	before := l.Entries()

	err := l.UpdateEntry(2, FieldWeight, "20")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBudgetExceeded))
	assert.Equal(t, MsgWeightBudget, err.Error())
	assert.Empty(t, cmp.Diff(before, l.Entries()))
	assert.Equal(t, 90.0, l.TotalWeight())

	// Editing an existing entry upward is checked the same way.
	err = l.UpdateEntry(1, FieldWeight, "60")
	assert.True(t, errors.Is(err, ErrBudgetExceeded))
	assert.Equal(t, 90.0, l.TotalWeight())
}

func TestUpdateEntry_ReEditOwnWeight(t *testing.T) {
	l := build(t, ScaleFive, [2]string{"4", "60"}, [2]string{"3", "40"})
	require.NoError(t, l.UpdateEntry(1, FieldWeight, "40"))
	require.NoError(t, l.UpdateEntry(0, FieldWeight, "60"))
	assert.Equal(t, 100.0, l.TotalWeight())
}

func TestUpdateEntry_Idempotent(t *testing.T) {
	once := New()
	require.NoError(t, once.UpdateEntry(0, FieldWeight, "35,5"))

	twice := New()
	require.NoError(t, twice.UpdateEntry(0, FieldWeight, "35,5"))
	require.NoError(t, twice.UpdateEntry(0, FieldWeight, "35,5"))

	if diff := cmp.Diff(once.Entries(), twice.Entries()); diff != "" {
		t.Fatalf("repeat update diverged (-once +twice):\n%s", diff)
	}
}

func TestUpdateEntry_BadIndex(t *testing.T) {
	l := New()
	err := l.UpdateEntry(3, FieldValue, "1")
	require.Error(t, err)
	assert.Equal(t, KindRange, KindOf(err))
	assert.Equal(t, 1, l.Len())
}

func TestTotalWeightNeverExceedsBudget(t *testing.T) {
	weights := []string{"30", "30", "30", "30", "15", "10", "5", "50", "1"}
	for _, s := range SupportedScales() {
		l := New(WithScale(s))
		for i, w := range weights {
			if i > 0 {
				_ = l.AddEntry()
			}
			_ = l.UpdateEntry(l.Len()-1, FieldWeight, w)
			assert.LessOrEqual(t, l.TotalWeight(), FullWeight, "scale %s after %d edits", s, i+1)
			assert.LessOrEqual(t, l.Len(), MaxEntries)
		}
	}
}

func TestAddEntry(t *testing.T) {
	t.Run("cap of ten entries", func(t *testing.T) {
		l := New()
		for l.Len() < MaxEntries {
			require.NoError(t, l.AddEntry())
		}
		err := l.AddEntry()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBudgetExceeded))
		assert.Equal(t, MsgMaxEntries, err.Error())
		assert.Equal(t, MaxEntries, l.Len())
		assert.False(t, l.CanAddEntry())
	})

	t.Run("full weight blocks new rows", func(t *testing.T) {
		l := build(t, ScaleFive, [2]string{"4", "100"})
		assert.False(t, l.CanAddEntry())
		err := l.AddEntry()
		assert.True(t, errors.Is(err, ErrBudgetExceeded))
		assert.Equal(t, 1, l.Len())
	})

	t.Run("new entry is empty", func(t *testing.T) {
		l := build(t, ScaleFive, [2]string{"4", "20"})
		require.NoError(t, l.AddEntry())
		e, ok := l.Entry(1)
		require.True(t, ok)
		assert.True(t, e.IsEmpty())
	})
}

func TestRemoveEntry(t *testing.T) {
	l := build(t, ScaleFive, [2]string{"4", "60"}, [2]string{"3", "40"})
	_, ok := l.FinalGrade()
	require.True(t, ok)

	assert.False(t, l.RemoveEntry(5))
	assert.False(t, l.RemoveEntry(-1))
	assert.Equal(t, 2, l.Len())

	assert.True(t, l.RemoveEntry(1))
	assert.Equal(t, 1, l.Len())
	_, ok = l.FinalGrade()
	assert.False(t, ok, "final grade must disappear once weights drop below 100")

	assert.True(t, l.RemoveEntry(0))
	assert.Equal(t, 1, l.Len(), "ledger always keeps one row")
	e, _ := l.Entry(0)
	assert.True(t, e.IsEmpty())
}

func TestRemoveEntry_PreservesOrder(t *testing.T) {
	l := build(t, ScaleTen, [2]string{"1", "10"}, [2]string{"2", "10"}, [2]string{"3", "10"})
	require.True(t, l.RemoveEntry(1))

	got := []string{}
	for _, e := range l.Entries() {
		got = append(got, e.Value.Raw)
	}
	assert.Equal(t, []string{"1", "3"}, got)
}

func TestSetScale_ResetsValues(t *testing.T) {
	l := build(t, ScaleFive, [2]string{"4", "60"}, [2]string{"3", "40"})
	require.NoError(t, l.SetScale(ScaleTen))

	assert.Equal(t, ScaleTen, l.Scale())
	assert.Equal(t, 6.0, l.Target())
	for i, e := range l.Entries() {
		assert.False(t, e.Value.Set, "entry %d value should be unset", i)
		assert.True(t, e.Weight.Set, "entry %d weight should survive", i)
	}
	assert.Equal(t, 100.0, l.TotalWeight())
}

func TestSetScale_Unsupported(t *testing.T) {
	l := build(t, ScaleFive, [2]string{"4", "60"})
	before := l.Entries()

	err := l.SetScale(Scale{Name: "1-7", Min: 1, Max: 7, Passing: 4})
	assert.ErrorIs(t, err, ErrUnsupportedScale)
	assert.Equal(t, ScaleFive, l.Scale())
	assert.Empty(t, cmp.Diff(before, l.Entries()))

	assert.ErrorIs(t, l.SetScaleByName("A-F"), ErrUnsupportedScale)
	require.NoError(t, l.SetScaleByName("0-100"))
	assert.Equal(t, 60.0, l.Target())
}

func TestSetTarget(t *testing.T) {
	l := New()
	require.NoError(t, l.SetTarget(4.5))
	assert.Equal(t, 4.5, l.Target())

	err := l.SetTarget(7)
	assert.ErrorIs(t, err, ErrRangeViolation)
	assert.Equal(t, 4.5, l.Target())
}

func TestRejectionsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(WithLogger(zap.New(core)))

	_ = l.UpdateEntry(0, FieldValue, "abc")
	entries := logs.FilterMessage("mutation rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "malformed_input", entries[0].ContextMap()["kind"])
}
