package search_slots

import (
	"context"

	"github.com/atyusan/blue-card-sub005/internal/service/slots/models"
)

type SlotService interface {
	Search(ctx context.Context, req *models.SearchSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
