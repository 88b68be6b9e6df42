package get_patient_appointments

import (
	"context"

	"github.com/atyusan/blue-card-sub005/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByPatient(ctx context.Context, req *models.GetPatientAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
