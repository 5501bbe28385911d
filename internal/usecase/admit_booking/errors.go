package admit_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("admit_booking: invalid input data")

	// ErrDurationOutOfBounds возвращается, когда длительность вне [min, max] политики
	ErrDurationOutOfBounds = errors.New("admit_booking: duration is out of policy bounds")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("admit_booking: invalid booking date")

	// ErrTooFarInAdvance возвращается, когда дата превышает горизонт advanceBookingDays
	ErrTooFarInAdvance = errors.New("admit_booking: date is too far in advance")

	// ErrOutsideOpenHours возвращается, когда диапазон не попадает в часы работы студии
	ErrOutsideOpenHours = errors.New("admit_booking: time range is outside open hours")

	// ErrSlotNotAvailable возвращается, когда диапазон с учётом буфера пересекается
	// с существующим активным бронированием
	ErrSlotNotAvailable = errors.New("admit_booking: slot is not available")

	// ErrInternal возвращается при инфраструктурных сбоях
	// Безопасно повторить всю попытку бронирования с начала
	ErrInternal = errors.New("admit_booking: internal error")
)
