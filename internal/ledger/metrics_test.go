package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalGrade_ExactlyHundred(t *testing.T) {
	l := build(t, ScaleFive, [2]string{"4", "60"}, [2]string{"3", "40"})

	final, ok := l.FinalGrade()
	require.True(t, ok)
	assert.InDelta(t, 3.6, final, 1e-9)
	assert.InDelta(t, 3.6, l.Average(), 1e-9)
	assert.Equal(t, 0.0, l.RemainingWeight())

	_, ok = l.NeededGrade()
	assert.False(t, ok, "no weight left to allocate")
}

func TestFinalGrade_NearHundredIsUndefined(t *testing.T) {
	l := build(t, ScaleFive, [2]string{"4", "60"}, [2]string{"3", "39.9"})
	_, ok := l.FinalGrade()
	assert.False(t, ok)
	_, ok = l.Status()
	assert.False(t, ok)
}

func TestNeededGrade(t *testing.T) {
	t.Run("within scale", func(t *testing.T) {
		l := build(t, ScaleFive, [2]string{"2", "50"})
		assert.Equal(t, 1.0, l.WeightedSum())
		assert.Equal(t, 50.0, l.RemainingWeight())

		needed, ok := l.NeededGrade()
		require.True(t, ok)
		assert.InDelta(t, 4.0, needed, 1e-9)
	})

	t.Run("clamped to max", func(t *testing.T) {
		l := build(t, ScaleFive, [2]string{"0", "80"})
		needed, ok := l.NeededGrade()
		require.True(t, ok)
		assert.Equal(t, 5.0, needed)
	})

	t.Run("clamped to min", func(t *testing.T) {
		l := build(t, ScaleFive, [2]string{"5", "90"})
		needed, ok := l.NeededGrade()
		require.True(t, ok)
		assert.Equal(t, 0.0, needed)
	})

	t.Run("empty ledger needs the target", func(t *testing.T) {
		l := New(WithScale(ScaleTen))
		needed, ok := l.NeededGrade()
		require.True(t, ok)
		assert.Equal(t, 6.0, needed)
	})
}

func TestAverage_IsWeightedContribution(t *testing.T) {
	l := build(t, ScaleTen, [2]string{"8", "50"})
	// 8 on half the weight contributes 4 points; not a mean of 8.
	assert.InDelta(t, 4.0, l.Average(), 1e-9)

	empty := New()
	require.NoError(t, empty.UpdateEntry(0, FieldValue, "4"))
	assert.Equal(t, 0.0, empty.Average(), "no weight means no average")
}

func TestStatus(t *testing.T) {
	t.Run("passed", func(t *testing.T) {
		l := build(t, ScaleFive, [2]string{"4", "60"}, [2]string{"3", "40"})
		st, ok := l.Status()
		require.True(t, ok)
		assert.True(t, st.Passed)
		assert.Equal(t, 0.6, st.Diff)
	})

	t.Run("failed", func(t *testing.T) {
		l := build(t, ScaleFive, [2]string{"2", "50"}, [2]string{"3", "50"})
		st, ok := l.Status()
		require.True(t, ok)
		assert.False(t, st.Passed)
		assert.Equal(t, 0.5, st.Diff)
	})

	t.Run("zero final grade still reports", func(t *testing.T) {
		l := build(t, ScaleFive, [2]string{"0", "100"})
		st, ok := l.Status()
		require.True(t, ok)
		assert.Equal(t, 0.0, st.FinalGrade)
		assert.False(t, st.Passed)
		assert.Equal(t, 3.0, st.Diff)
	})
}

func TestStats(t *testing.T) {
	l := build(t, ScaleTen, [2]string{"7", "30"}, [2]string{"9.5", "30"})
	require.NoError(t, l.AddEntry())

	st := l.Stats()
	assert.Equal(t, 9.5, st.Highest)
	assert.Equal(t, 0.0, st.Lowest, "unset value counts as 0")
	assert.Equal(t, 60.0, st.TotalWeight)
	assert.Equal(t, 6.0, st.Passing)
	assert.InDelta(t, 4.95, st.Average, 1e-9)
}
