package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	// или принадлежит другому номеру телефона (ответ неразличим намеренно)
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("cancel_booking: booking is already cancelled")

	// ErrCannotCancelCompleted возвращается при попытке отменить завершённую сессию
	ErrCannotCancelCompleted = errors.New("cancel_booking: booking is already completed")

	// ErrCannotCancelPast возвращается, когда сессия уже началась
	ErrCannotCancelPast = errors.New("cancel_booking: booking has already started")

	// ErrWithinCancellationWindow возвращается, когда до начала сессии осталось
	// меньше допустимого срока уведомления
	ErrWithinCancellationWindow = errors.New("cancel_booking: too late to cancel")

	// ErrIdentityNotVerified возвращается, когда личность по номеру не подтверждена
	ErrIdentityNotVerified = errors.New("cancel_booking: identity is not verified")

	// ErrInternal возвращается при инфраструктурных сбоях
	ErrInternal = errors.New("cancel_booking: internal error")
)
