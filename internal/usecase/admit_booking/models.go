package admit_booking

import (
	"time"

	"github.com/jamroom/booking-service/pkg/types"
)

// Request модель запроса на бронирование
type Request struct {
	Studio       string           // Идентификатор студии ("studio_a")
	Date         time.Time        // Дата бронирования (без времени)
	StartTime    types.TimeString // Время начала ("10:00")
	EndTime      types.TimeString // Время окончания ("12:00")
	ContactPhone string           // Телефон клиента, ровно 10 цифр
	RatePerHour  *float64         // Ставка за час (опционально)
}

// Response модель ответа с принятым бронированием
type Response struct {
	ID           int64            // ID созданного бронирования
	Studio       string           // Студия
	BookingDate  time.Time        // Дата бронирования
	StartTime    types.TimeString // Время начала
	EndTime      types.TimeString // Время окончания
	Status       string           // Статус (confirmed)
	ContactPhone string           // Телефон клиента
	TotalAmount  *float64         // Стоимость, если была указана ставка

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
