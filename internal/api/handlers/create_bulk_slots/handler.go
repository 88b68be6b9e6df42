package create_bulk_slots

import (
	"errors"
	"net/http"

	"github.com/atyusan/blue-card-sub005/internal/api/handlers"
	createBulkSlots "github.com/atyusan/blue-card-sub005/internal/usecase/create_bulk_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры генерации"
	msgNothingToCreate    = "критерии не дали ни одного слота"
)

type Handler struct {
	useCase CreateBulkSlotsUseCase
	logger  Logger
}

func NewHandler(useCase CreateBulkSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBulkSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots/bulk - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBulkSlots.ErrInvalidInput):
			h.logger.Warn("POST /slots/bulk - Invalid input: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBulkSlots.ErrNothingToCreate):
			h.logger.Warn("POST /slots/bulk - Criteria produced no slots: provider_id=%d", req.ProviderID)
			handlers.RespondBadRequest(w, msgNothingToCreate)

		default:
			h.logger.Error("POST /slots/bulk - Failed to generate slots: provider_id=%d, error=%v",
				req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/bulk - Slots generated: provider_id=%d, created=%d, skipped=%d",
		req.ProviderID, result.CreatedCount, len(result.Skipped))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
