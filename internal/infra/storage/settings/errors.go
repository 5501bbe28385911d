package settings

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда строка настроек отсутствует
	// Вызывающая сторона в этом случае использует значения по умолчанию
	ErrPolicyNotFound = errors.New("settings.repository: booking policy not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)
