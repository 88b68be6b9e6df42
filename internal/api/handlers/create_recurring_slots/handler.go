package create_recurring_slots

import (
	"errors"
	"net/http"

	"github.com/atyusan/blue-card-sub005/internal/api/handlers"
	createRecurringSlots "github.com/atyusan/blue-card-sub005/internal/usecase/create_recurring_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры паттерна"
	msgNothingToCreate    = "паттерн не дал ни одного слота"
)

type Handler struct {
	useCase CreateRecurringSlotsUseCase
	logger  Logger
}

func NewHandler(useCase CreateRecurringSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/recurring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateRecurringSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots/recurring - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRecurringSlots.ErrInvalidInput):
			h.logger.Warn("POST /slots/recurring - Invalid input: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createRecurringSlots.ErrNothingToCreate):
			h.logger.Warn("POST /slots/recurring - Pattern produced no slots: provider_id=%d", req.ProviderID)
			handlers.RespondBadRequest(w, msgNothingToCreate)

		default:
			h.logger.Error("POST /slots/recurring - Failed to generate slots: provider_id=%d, error=%v",
				req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/recurring - Slots generated: provider_id=%d, created=%d, skipped=%d",
		req.ProviderID, result.CreatedCount, len(result.Skipped))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
