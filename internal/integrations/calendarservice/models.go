package calendarservice

// CreateEventRequest запрос на создание события в календаре студии
type CreateEventRequest struct {
	Studio       string `json:"studio"`
	Date         string `json:"date"`      // "2025-10-15"
	StartTime    string `json:"startTime"` // "10:00"
	EndTime      string `json:"endTime"`   // "12:00"
	ContactPhone string `json:"contactPhone"`
	Description  string `json:"description,omitempty"`
}

// Event модель события календаря
type Event struct {
	Ref string `json:"ref"` // непрозрачный идентификатор события
}

// ErrorResponse модель ошибки от календарного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
