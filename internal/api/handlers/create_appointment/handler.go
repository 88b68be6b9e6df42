package create_appointment

import (
	"errors"
	"net/http"

	"github.com/atyusan/blue-card-sub005/internal/api/handlers"
	"github.com/atyusan/blue-card-sub005/internal/service/conflicts"
	createAppointment "github.com/atyusan/blue-card-sub005/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные записи"
	msgProviderNotFound   = "провайдер не найден"
	msgProviderInactive   = "провайдер не принимает записи"
	msgSlotNotFound       = "слот не найден"
	msgSlotNotBookable    = "слот закрыт для записи"
	msgSlotFull           = "в слоте не осталось свободных мест"
	msgSlotInPast         = "запись на прошедший слот невозможна"
	msgConflict           = "время слота конфликтует с расписанием провайдера"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var conflictErr *conflicts.ConflictError
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: patient_id=%d, slot_id=%d, error=%v",
				req.PatientID, req.SlotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrProviderNotFound):
			h.logger.Warn("POST /appointments - Provider not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createAppointment.ErrProviderInactive):
			h.logger.Warn("POST /appointments - Provider is inactive: slot_id=%d", req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgProviderInactive)

		case errors.Is(err, createAppointment.ErrSlotNotFound):
			h.logger.Warn("POST /appointments - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createAppointment.ErrSlotNotBookable):
			h.logger.Warn("POST /appointments - Slot is not bookable: slot_id=%d", req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotBookable)

		case errors.Is(err, createAppointment.ErrSlotFull):
			h.logger.Warn("POST /appointments - Slot is full: slot_id=%d", req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, createAppointment.ErrSlotInPast):
			h.logger.Warn("POST /appointments - Slot is in the past: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /appointments - Scheduling conflict: slot_id=%d, conflicts=%d",
				req.SlotID, len(conflictErr.Conflicts))
			handlers.RespondConflict(w, handlers.NewConflictResponse(msgConflict, conflictErr.Conflicts))

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: patient_id=%d, slot_id=%d, error=%v",
				req.PatientID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, patient_id=%d, slot_id=%d",
		result.ID, req.PatientID, req.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
