package domain

import (
	"errors"
	"fmt"

	"github.com/jamroom/booking-service/pkg/types"
)

var (
	// ErrInvalidRange возвращается, когда конец диапазона не позже начала
	ErrInvalidRange = errors.New("domain: end time must be after start time")
)

// Единственная каноническая реализация арифметики временных диапазонов.
// Вся логика буферов и пересечений проходит через эти функции,
// обработчики не должны переизобретать её на месте.

// maxMinuteOfDay верхняя граница минутной шкалы суток
const maxMinuteOfDay = types.MinutesPerDay - 1

// DurationHours returns the duration of the [start, end) range in hours
// Fails if either bound is malformed or end is not after start
func DurationHours(start, end types.TimeString) (float64, error) {
	startMin, err := start.ToMinutes()
	if err != nil {
		return 0, err
	}

	endMin, err := end.ToMinutes()
	if err != nil {
		return 0, err
	}

	if endMin <= startMin {
		return 0, fmt.Errorf("%w: %s..%s", ErrInvalidRange, start, end)
	}

	return float64(endMin-startMin) / 60.0, nil
}

// ExpandRange widens [startMin, endMin) by bufferMinutes on both sides,
// clamping to the day boundaries. The buffer never wraps across midnight.
func ExpandRange(startMin, endMin, bufferMinutes int) (int, int) {
	expandedStart := startMin - bufferMinutes
	if expandedStart < 0 {
		expandedStart = 0
	}

	expandedEnd := endMin + bufferMinutes
	if expandedEnd > maxMinuteOfDay {
		expandedEnd = maxMinuteOfDay
	}

	return expandedStart, expandedEnd
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and [bStart, bEnd)
// intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// RangeWithin reports whether [start, end] lies within [open, close]
// Используется для проверки попадания бронирования в часы работы студии
func RangeWithin(start, end, open, close types.TimeString) (bool, error) {
	startMin, err := start.ToMinutes()
	if err != nil {
		return false, err
	}
	endMin, err := end.ToMinutes()
	if err != nil {
		return false, err
	}
	openMin, err := open.ToMinutes()
	if err != nil {
		return false, err
	}
	closeMin, err := close.ToMinutes()
	if err != nil {
		return false, err
	}

	return startMin >= openMin && endMin <= closeMin, nil
}
