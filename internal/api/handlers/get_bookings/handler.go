package get_bookings

import (
	"errors"
	"net/http"

	"github.com/jamroom/booking-service/internal/api/handlers"
	"github.com/jamroom/booking-service/internal/api/middleware"
	"github.com/jamroom/booking-service/internal/service/bookings"
	"github.com/jamroom/booking-service/internal/service/bookings/models"
)

const (
	msgMissingPhone  = "отсутствует номер телефона"
	msgInvalidStatus = "некорректный статус бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	contactPhone, ok := middleware.GetContactPhone(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing contact phone")
		handlers.RespondUnauthorized(w, msgMissingPhone)
		return
	}

	req := &models.GetBookingsByPhoneRequest{
		ContactPhone: contactPhone,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetByPhone(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
