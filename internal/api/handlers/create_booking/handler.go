package create_booking

import (
	"errors"
	"net/http"

	"github.com/jamroom/booking-service/internal/api/handlers"
	"github.com/jamroom/booking-service/internal/api/middleware"
	admitBooking "github.com/jamroom/booking-service/internal/usecase/admit_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingPhone        = "отсутствует номер телефона"
	msgInvalidInput        = "некорректные данные бронирования"
	msgDurationOutOfBounds = "длительность сессии вне допустимых границ"
	msgInvalidBookingDate  = "дата бронирования уже прошла"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgOutsideOpenHours    = "выбранное время вне часов работы студии"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
)

type Handler struct {
	useCase AdmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase AdmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Телефон приходит из заголовка через middleware Auth
	contactPhone, ok := middleware.GetContactPhone(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing contact phone")
		handlers.RespondUnauthorized(w, msgMissingPhone)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(contactPhone)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, admitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: studio=%s, error=%v", req.Studio, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, admitBooking.ErrDurationOutOfBounds):
			h.logger.Warn("POST /bookings - Duration out of bounds: studio=%s, range=%s-%s",
				req.Studio, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgDurationOutOfBounds)

		case errors.Is(err, admitBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Booking date is in the past: studio=%s, date=%s",
				req.Studio, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, admitBooking.ErrTooFarInAdvance):
			h.logger.Warn("POST /bookings - Date too far in advance: studio=%s, date=%s",
				req.Studio, req.BookingDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, admitBooking.ErrOutsideOpenHours):
			h.logger.Warn("POST /bookings - Outside open hours: studio=%s, range=%s-%s",
				req.Studio, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgOutsideOpenHours)

		case errors.Is(err, admitBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: studio=%s, date=%s, range=%s-%s",
				req.Studio, req.BookingDate, req.StartTime, req.EndTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /bookings - Failed to admit booking: studio=%s, error=%v", req.Studio, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking admitted successfully: booking_id=%d, studio=%s", result.ID, req.Studio)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
