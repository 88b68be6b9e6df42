package search_slots

import (
	"net/url"
	"strconv"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/internal/service/slots/models"
)

// parseQuery собирает модель поиска из query-параметров запроса.
// Даты принимаются в формате YYYY-MM-DD
func parseQuery(query url.Values) (*models.SearchSlotsRequest, error) {
	req := &models.SearchSlotsRequest{}

	if v := query.Get("providerId"); v != "" {
		providerID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ProviderID = &providerID
	}

	if v := query.Get("resourceId"); v != "" {
		resourceID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ResourceID = &resourceID
	}

	if v := query.Get("specialty"); v != "" {
		req.Specialty = &v
	}

	if v := query.Get("slotType"); v != "" {
		slotType, err := models.ToDomainSlotType(v)
		if err != nil {
			return nil, err
		}
		req.SlotType = &slotType
	}

	if v := query.Get("startDate"); v != "" {
		startDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if v := query.Get("endDate"); v != "" {
		endDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if v := query.Get("onlyAvailable"); v != "" {
		onlyAvailable, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.OnlyAvailable = onlyAvailable
	}

	return req, nil
}
