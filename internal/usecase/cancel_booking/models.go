package cancel_booking

import (
	"time"

	"github.com/jamroom/booking-service/pkg/types"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID    int64  // ID бронирования
	ContactPhone string // Телефон клиента, подтверждающий владение
	Reason       string // Причина отмены (опционально)
}

// Response модель ответа с отменённым бронированием
type Response struct {
	ID                 int64            // ID бронирования
	Studio             string           // Студия
	BookingDate        time.Time        // Дата бронирования
	StartTime          types.TimeString // Время начала
	EndTime            types.TimeString // Время окончания
	Status             string           // Статус (cancelled)
	CancellationReason *string          // Причина отмены
	CancelledAt        *time.Time       // Время отмены
	CancelledReminders int64            // Сколько напоминаний было отменено
}
