package update_policy

import (
	"errors"
	"net/http"

	"github.com/jamroom/booking-service/internal/api/handlers"
	"github.com/jamroom/booking-service/internal/service/settings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidPolicy      = "некорректные значения политики бронирования"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/settings/policy
// Изменённая политика действует на все последующие запросы,
// уже принятые бронирования не пересматриваются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings/policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	policy, err := req.ToDomainPolicy()
	if err != nil {
		h.logger.Warn("PUT /settings/policy - Failed to parse times: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.UpdatePolicy(r.Context(), policy)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /settings/policy - Invalid policy values: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		default:
			h.logger.Error("PUT /settings/policy - Failed to update policy: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /settings/policy - Policy updated successfully")
	handlers.RespondJSON(w, http.StatusOK, FromDomainPolicy(result))
}
