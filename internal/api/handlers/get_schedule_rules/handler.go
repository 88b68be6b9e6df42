package get_schedule_rules

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atyusan/blue-card-sub005/internal/api/handlers"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
)

type Handler struct {
	service ScheduleRuleService
	logger  Logger
}

func NewHandler(service ScheduleRuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/schedule-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/schedule-rules - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	rules, err := h.service.GetByProvider(r.Context(), providerID)
	if err != nil {
		h.logger.Error("GET /providers/{id}/schedule-rules - Failed to get rules: provider_id=%d, error=%v",
			providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/schedule-rules - Rules retrieved: provider_id=%d, count=%d",
		providerID, len(rules.Rules))
	handlers.RespondJSON(w, http.StatusOK, rules)
}
