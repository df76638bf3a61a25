package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartReturnsMonday(t *testing.T) {
	// 2025-11-05 is a Wednesday.
	wed := time.Date(2025, 11, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-11-03", Start(wed))

	// A Monday maps to itself.
	mon := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-11-03", Start(mon))

	// Sunday belongs to the week that started six days earlier.
	sun := time.Date(2025, 11, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-11-03", Start(sun))
}

func TestShiftRoundTrip(t *testing.T) {
	next, err := Shift("2025-11-03", 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-10", next)

	back, err := Shift(next, -1)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-03", back)
}

func TestShiftAdvancesSevenDays(t *testing.T) {
	next, err := Shift("2025-12-29", 1)
	require.NoError(t, err)

	from, _ := time.Parse(Layout, "2025-12-29")
	to, _ := time.Parse(Layout, next)
	assert.Equal(t, 7*24*time.Hour, to.Sub(from))
}

func TestParseRejectsNonMonday(t *testing.T) {
	_, err := Parse("2025-11-04")
	assert.Error(t, err)

	_, err = Parse("not-a-date")
	assert.Error(t, err)

	got, err := Parse("2025-11-03")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, got.Weekday())
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "03.11.2025", Heading("2025-11-03"))
	assert.Equal(t, "garbage", Heading("garbage"))
}
