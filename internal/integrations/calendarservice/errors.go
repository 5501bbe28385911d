package calendarservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("calendarservice client: invalid response")

	// ErrEventNotFound возвращается, когда событие календаря не найдено
	ErrEventNotFound = errors.New("calendarservice client: event not found")
)
