package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jamroom/booking-service/internal/api/handlers"
	"github.com/jamroom/booking-service/internal/api/middleware"
	cancelBooking "github.com/jamroom/booking-service/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPhone       = "отсутствует номер телефона"
	msgInvalidInput       = "некорректные данные запроса"
	msgNotFound           = "бронирование не найдено"
	msgAlreadyCancelled   = "бронирование уже отменено"
	msgAlreadyCompleted   = "сессия уже завершена, отмена невозможна"
	msgAlreadyStarted     = "сессия уже началась, отмена невозможна"
	msgTooLateToCancel    = "до начала сессии осталось слишком мало времени для отмены"
	msgIdentityRequired   = "для отмены требуется подтверждение личности"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	contactPhone, ok := middleware.GetContactPhone(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing contact phone")
		handlers.RespondUnauthorized(w, msgMissingPhone)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		BookingID:    bookingID,
		ContactPhone: contactPhone,
		Reason:       req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Already cancelled: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		case errors.Is(err, cancelBooking.ErrCannotCancelCompleted):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Already completed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCompleted)

		case errors.Is(err, cancelBooking.ErrCannotCancelPast):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Already started: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyStarted)

		case errors.Is(err, cancelBooking.ErrWithinCancellationWindow):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Within cancellation window: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgTooLateToCancel)

		case errors.Is(err, cancelBooking.ErrIdentityNotVerified):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Identity not verified: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgIdentityRequired)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
