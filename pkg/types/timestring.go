package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени (ожидается "HH:MM")
	ErrInvalidTimeFormat = errors.New("types: invalid time string format")

	// ErrTimeOutOfRange возвращается, когда время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time is out of day range")
)

// MinutesPerDay количество минут в сутках, верхняя граница для TimeString
const MinutesPerDay = 24 * 60

// TimeString время в формате "HH:MM" с точностью до минуты
// Используется для хранения времени начала и окончания бронирования
// без привязки к дате и часовому поясу
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что строка имеет формат "HH:MM" и попадает в границы суток
// Ровно два числовых поля, разделённых двоеточием: часы [0, 23], минуты [0, 59]
func (t TimeString) Validate() error {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return fmt.Errorf("%w: %q", ErrTimeOutOfRange, string(t))
	}

	return nil
}

// ToMinutes конвертирует время в количество минут от начала суток [0, 1439]
func (t TimeString) ToMinutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	parts := strings.Split(string(t), ":")
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])

	return hours*60 + minutes, nil
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперед
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.ToMinutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(total + minutes)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.ToMinutes()
	b, errB := other.ToMinutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.ToMinutes()
	b, errB := other.ToMinutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}
