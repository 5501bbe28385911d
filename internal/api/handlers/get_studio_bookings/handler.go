package get_studio_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jamroom/booking-service/internal/api/handlers"
	"github.com/jamroom/booking-service/internal/domain"
	"github.com/jamroom/booking-service/internal/service/bookings"
	"github.com/jamroom/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidStudio = "неизвестная студия"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate   = "отсутствует параметр date"
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

// Handle GET /api/v1/studios/{studio}/bookings?date=&includeInactive=
// Дневная сводка по студии для персонала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studio := vars["studio"]

	if !domain.Studio(studio).IsValid() {
		h.logger.Warn("GET /studios/{studio}/bookings - Unknown studio: %s", studio)
		handlers.RespondBadRequest(w, msgInvalidStudio)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /studios/{studio}/bookings - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /studios/{studio}/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.GetStudioDayRequest{
		Studio:          studio,
		Date:            date,
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	}

	result, err := h.service.GetStudioDay(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /studios/{studio}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStudio)

		default:
			h.logger.Error("GET /studios/{studio}/bookings - Failed to get bookings: studio=%s, error=%v",
				studio, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{studio}/bookings - Day sheet retrieved: studio=%s, date=%s, count=%d",
		studio, dateStr, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
