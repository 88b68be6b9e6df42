package upsert_schedule_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atyusan/blue-card-sub005/internal/api/handlers"
	"github.com/atyusan/blue-card-sub005/internal/service/schedulerules"
	"github.com/atyusan/blue-card-sub005/internal/service/schedulerules/models"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidDayOfWeek  = "некорректный день недели, ожидается 0-6"
	msgInvalidRequest    = "некорректное тело запроса"
	msgInvalidRule       = "некорректные параметры правила расписания"
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

// Handle PUT /api/v1/providers/{providerId}/schedule-rules/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /providers/{id}/schedule-rules/{day} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	day, err := strconv.Atoi(vars["dayOfWeek"])
	if err != nil {
		h.logger.Warn("PUT /providers/{id}/schedule-rules/{day} - Invalid day of week: provider_id=%d, error=%v",
			providerID, err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req models.UpsertRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{id}/schedule-rules/{day} - Invalid request body: provider_id=%d, error=%v",
			providerID, err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	rule, err := h.service.Upsert(r.Context(), providerID, day, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedulerules.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{id}/schedule-rules/{day} - Invalid rule: provider_id=%d, day=%d, error=%v",
				providerID, day, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		default:
			h.logger.Error("PUT /providers/{id}/schedule-rules/{day} - Failed to upsert rule: provider_id=%d, day=%d, error=%v",
				providerID, day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/schedule-rules/{day} - Rule saved successfully: provider_id=%d, day=%d",
		providerID, day)
	handlers.RespondJSON(w, http.StatusOK, rule)
}
