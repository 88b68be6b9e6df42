package reserve_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atyusan/blue-card-sub005/internal/api/handlers"
	"github.com/atyusan/blue-card-sub005/internal/service/booking"
)

const (
	msgInvalidSlotID  = "некорректный ID слота"
	msgNotFound       = "слот не найден"
	msgSlotFull       = "в слоте не осталось свободных мест"
	msgNotAvailable   = "слот закрыт для записи"
	msgReserveSuccess = "место в слоте зарезервировано"
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

// Handle POST /api/v1/slots/{slotId}/reserve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{id}/reserve - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Reserve(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, booking.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/reserve - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, booking.ErrSlotFull):
			h.logger.Warn("POST /slots/{id}/reserve - Slot is full: slot_id=%d", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, booking.ErrSlotUnavailable):
			h.logger.Warn("POST /slots/{id}/reserve - Slot is not available: slot_id=%d", slotID)
			handlers.RespondError(w, http.StatusConflict, msgNotAvailable)

		default:
			h.logger.Error("POST /slots/{id}/reserve - Failed to reserve seat: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/reserve - Seat reserved successfully: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": msgReserveSuccess})
}
