package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/atyusan/blue-card-sub005/internal/api/handlers"
	"github.com/atyusan/blue-card-sub005/internal/domain"
	getAvailability "github.com/atyusan/blue-card-sub005/internal/usecase/get_availability"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange      = "некорректный диапазон дат"
	msgRangeTooWide      = "слишком широкий диапазон дат"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleDate GET /api/v1/providers/{providerId}/availability?date=YYYY-MM-DD
func (h *Handler) HandleDate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability - Invalid date: provider_id=%d, error=%v", providerID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	day, err := h.useCase.ExecuteForDate(r.Context(), &getAvailability.Request{
		ProviderID: providerID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/availability - Invalid input: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /providers/{id}/availability - Failed to compute availability: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/availability - Availability computed: provider_id=%d, date=%s",
		providerID, day.Date)
	handlers.RespondJSON(w, http.StatusOK, day)
}

// HandleRange GET /api/v1/providers/{providerId}/availability/range?startDate=...&endDate=...&excludePast=true
func (h *Handler) HandleRange(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability/range - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	query := r.URL.Query()

	startDate, err := time.Parse(domain.DateFormat, query.Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability/range - Invalid start date: provider_id=%d, error=%v",
			providerID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, query.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability/range - Invalid end date: provider_id=%d, error=%v",
			providerID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	excludePast := false
	if v := query.Get("excludePast"); v != "" {
		excludePast, err = strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/availability/range - Invalid excludePast: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
	}

	result, err := h.useCase.ExecuteForRange(r.Context(), &getAvailability.RangeRequest{
		ProviderID:  providerID,
		StartDate:   startDate,
		EndDate:     endDate,
		ExcludePast: excludePast,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrRangeTooWide):
			h.logger.Warn("GET /providers/{id}/availability/range - Range too wide: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/availability/range - Invalid input: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /providers/{id}/availability/range - Failed to compute availability: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/availability/range - Availability computed: provider_id=%d, days=%d",
		providerID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
