package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2025-03-10T08:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())

	_, err = ParseDate("10/03/2025")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	got, err := ParseClock(date, "08:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC), got)

	got, err = ParseClock(date, "19:15:30")
	require.NoError(t, err)
	assert.Equal(t, 30, got.Second())

	_, err = ParseClock(date, "8pm")
	assert.Error(t, err)
}

func TestFormatHelpers(t *testing.T) {
	ts := time.Date(2025, 3, 10, 19, 5, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-10", FormatDate(ts))
	assert.Equal(t, "19:05", FormatClock(ts))
	assert.Equal(t, "2025-03-10T19:05:00Z", FormatTimestamp(ts))
}
