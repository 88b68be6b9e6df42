package create_slot

import (
	"errors"
	"net/http"

	"github.com/atyusan/blue-card-sub005/internal/api/handlers"
	"github.com/atyusan/blue-card-sub005/internal/service/conflicts"
	"github.com/atyusan/blue-card-sub005/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные слота"
	msgConflict           = "слот пересекается с существующим расписанием"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	slot, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		var conflictErr *conflicts.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /slots - Scheduling conflict: provider_id=%d, conflicts=%d",
				req.ProviderID, len(conflictErr.Conflicts))
			handlers.RespondConflict(w, handlers.NewConflictResponse(msgConflict, conflictErr.Conflicts))

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid input: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots - Failed to create slot: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created successfully: slot_id=%d, provider_id=%d", slot.ID, slot.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}
