package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr error
	}{
		{"valid morning", "08:00", "08:00", nil},
		{"valid midnight", "00:00", "00:00", nil},
		{"valid end of day", "23:59", "23:59", nil},
		{"hours out of range", "24:00", "", ErrTimeOutOfRange},
		{"minutes out of range", "12:60", "", ErrTimeOutOfRange},
		{"missing minutes", "12", "", ErrInvalidTimeFormat},
		{"extra field", "12:00:00", "", ErrInvalidTimeFormat},
		{"letters", "ab:cd", "", ErrInvalidTimeFormat},
		{"empty", "", "", ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2024, 2, 1, 9, 5, 30, 0, time.UTC))
	assert.Equal(t, TimeString("09:05"), ts)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(610)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:10"), ts)

	_, err = NewTimeStringFromMinutes(MinutesPerDay)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestToMinutes(t *testing.T) {
	minutes, err := TimeString("10:30").ToMinutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	_, err = TimeString("banana").ToMinutes()
	assert.Error(t, err)
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), ts)

	// Выход за пределы суток
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("11:00").IsAfter("10:30"))
	assert.False(t, TimeString("10:30").IsAfter("10:30"))
}

func TestIsZero(t *testing.T) {
	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("00:00").IsZero())
}
