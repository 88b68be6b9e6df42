package release_slot

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atyusan/blue-card-sub005/internal/api/handlers"
)

const (
	msgInvalidSlotID  = "некорректный ID слота"
	msgReleaseSuccess = "место в слоте освобождено"
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

// Handle POST /api/v1/slots/{slotId}/release
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{id}/release - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Release(r.Context(), slotID); err != nil {
		h.logger.Error("POST /slots/{id}/release - Failed to release seat: slot_id=%d, error=%v", slotID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /slots/{id}/release - Seat released successfully: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": msgReleaseSuccess})
}
