package identityservice

import "errors"

var (
	// ErrNotVerified возвращается, когда личность по номеру не подтверждена
	// (нет действующего OTP и номер не привязан к доверенному устройству)
	ErrNotVerified = errors.New("identityservice client: identity not verified")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identityservice client: invalid response")
)
