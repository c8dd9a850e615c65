package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftHappyPath(t *testing.T) {
	var s Shift

	require.NoError(t, s.TimeIn(clock(8, 0)))
	require.NoError(t, s.TimeOut(clock(19, 0)))

	e, err := s.Submit(day(10), "month-end closing")
	require.NoError(t, err)

	assert.InDelta(t, 11.0, e.TotalHours, 1e-9)
	assert.InDelta(t, 2.0, e.Overtime, 1e-9)
	assert.Equal(t, "month-end closing", e.Reason)

	// submit resets the shift
	assert.False(t, s.TimedIn())
	assert.False(t, s.TimedOut())
	require.NoError(t, s.TimeIn(clock(9, 0)))
}

func TestShiftRejectedTransitions(t *testing.T) {
	t.Run("time out before time in", func(t *testing.T) {
		var s Shift
		assert.ErrorIs(t, s.TimeOut(clock(17, 0)), ErrNotTimedIn)
	})

	t.Run("double time in", func(t *testing.T) {
		var s Shift
		require.NoError(t, s.TimeIn(clock(8, 0)))
		assert.ErrorIs(t, s.TimeIn(clock(8, 5)), ErrAlreadyTimedIn)
	})

	t.Run("double time out", func(t *testing.T) {
		var s Shift
		require.NoError(t, s.TimeIn(clock(8, 0)))
		require.NoError(t, s.TimeOut(clock(17, 0)))
		assert.ErrorIs(t, s.TimeOut(clock(18, 0)), ErrAlreadyTimedOut)
	})

	t.Run("submit with no times", func(t *testing.T) {
		var s Shift
		_, err := s.Submit(day(10), "")
		assert.ErrorIs(t, err, ErrShiftIncomplete)
	})

	t.Run("submit with only time in", func(t *testing.T) {
		var s Shift
		require.NoError(t, s.TimeIn(clock(8, 0)))
		_, err := s.Submit(day(10), "")
		assert.ErrorIs(t, err, ErrShiftIncomplete)
	})
}

func TestShiftEntryKeepsState(t *testing.T) {
	var s Shift

	require.NoError(t, s.TimeIn(clock(8, 0)))
	require.NoError(t, s.TimeOut(clock(17, 0)))

	e, err := s.Entry(day(10), "")
	require.NoError(t, err)
	assert.InDelta(t, 9.0, e.TotalHours, 1e-9)

	// building the entry leaves the shift intact
	assert.True(t, s.TimedIn())
	assert.True(t, s.TimedOut())

	s.Reset()
	assert.False(t, s.TimedIn())
	assert.False(t, s.TimedOut())
}
