package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamroom/booking-service/pkg/types"
)

func TestDurationHours(t *testing.T) {
	tests := []struct {
		name    string
		start   types.TimeString
		end     types.TimeString
		want    float64
		wantErr bool
	}{
		{"two hours", "10:00", "12:00", 2.0, false},
		{"half hour", "10:00", "10:30", 0.5, false},
		{"full working day", "08:00", "22:00", 14.0, false},
		{"zero length", "10:00", "10:00", 0, true},
		{"inverted", "12:00", "10:00", 0, true},
		{"malformed start", "ab:cd", "12:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationHours(tt.start, tt.end)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandRange(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		end       int
		buffer    int
		wantStart int
		wantEnd   int
	}{
		{"no buffer", 600, 720, 0, 600, 720},
		{"symmetric buffer", 600, 720, 15, 585, 735},
		{"clamped at day start", 10, 120, 30, 0, 150},
		{"clamped at day end", 1380, 1430, 30, 1350, 1439},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStart, gotEnd := ExpandRange(tt.start, tt.end, tt.buffer)
			assert.Equal(t, tt.wantStart, gotStart)
			assert.Equal(t, tt.wantEnd, gotEnd)
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart int
		aEnd   int
		bStart int
		bEnd   int
		want   bool
	}{
		{"disjoint", 600, 660, 720, 780, false},
		{"touching endpoints", 600, 720, 720, 780, false},
		{"partial overlap", 600, 720, 660, 780, true},
		{"contained", 600, 780, 630, 660, true},
		{"identical", 600, 720, 600, 720, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestRangeWithin(t *testing.T) {
	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
		want  bool
	}{
		{"inside", "10:00", "12:00", true},
		{"exact bounds", "08:00", "22:00", true},
		{"starts before open", "07:00", "10:00", false},
		{"ends after close", "20:00", "23:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RangeWithin(tt.start, tt.end, "08:00", "22:00")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
