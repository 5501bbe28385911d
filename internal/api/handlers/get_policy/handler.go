package get_policy

import (
	"net/http"

	"github.com/jamroom/booking-service/internal/api/handlers"
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

// Handle GET /api/v1/settings/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Отсутствие настроек не ошибка: сервис вернёт значения по умолчанию
	policy, err := h.service.GetPolicy(r.Context())
	if err != nil {
		h.logger.Error("GET /settings/policy - Failed to get policy: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settings/policy - Policy retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, FromDomainPolicy(policy))
}
