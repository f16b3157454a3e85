package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("9:30am")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("")
	assert.Error(t, err)
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 14, 7, 5, 59, 0, time.UTC)
	assert.Equal(t, TimeString("07:05"), NewTimeString(moment))
}

func TestAddMinutes(t *testing.T) {
	ts := TimeString("06:00")

	next, err := ts.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("07:00"), next)

	next, err = ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("07:30"), next)

	// Выход за границу суток - ошибка
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.Error(t, err)
}

func TestComparisons(t *testing.T) {
	a := TimeString("10:00")
	b := TimeString("11:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
	assert.False(t, a.IsBefore(a))
}

func TestMinutesBetween(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("10:30")

	diff, err := a.MinutesBetween(b)
	require.NoError(t, err)
	assert.Equal(t, 90, diff)

	diff, err = b.MinutesBetween(a)
	require.NoError(t, err)
	assert.Equal(t, -90, diff)
}

func TestScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("21:15")))
	assert.Equal(t, TimeString("21:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestValue(t *testing.T) {
	v, err := TimeString("08:45").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:45", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
