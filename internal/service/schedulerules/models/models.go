package models

import (
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/pkg/types"
)

// Request модели

// UpsertRuleRequest запрос на создание/обновление правила расписания
// провайдера на день недели
type UpsertRuleRequest struct {
	WorkStart              string  `json:"workStart"` // "09:00"
	WorkEnd                string  `json:"workEnd"`   // "17:00"
	BreakStart             *string `json:"breakStart,omitempty"`
	BreakEnd               *string `json:"breakEnd,omitempty"`
	IsWorking              bool    `json:"isWorking"`
	SlotDurationMinutes    int     `json:"slotDurationMinutes"`
	BufferTimeMinutes      int     `json:"bufferTimeMinutes"`
	MaxAppointmentsPerHour int     `json:"maxAppointmentsPerHour"`
}

// ToDomain конвертирует запрос в domain модель
func (r *UpsertRuleRequest) ToDomain(providerID int64, day time.Weekday) *domain.ProviderScheduleRule {
	rule := &domain.ProviderScheduleRule{
		ProviderID:             providerID,
		DayOfWeek:              day,
		WorkStart:              types.TimeString(r.WorkStart),
		WorkEnd:                types.TimeString(r.WorkEnd),
		IsWorking:              r.IsWorking,
		SlotDurationMinutes:    r.SlotDurationMinutes,
		BufferTimeMinutes:      r.BufferTimeMinutes,
		MaxAppointmentsPerHour: r.MaxAppointmentsPerHour,
	}

	if r.BreakStart != nil {
		bs := types.TimeString(*r.BreakStart)
		rule.BreakStart = &bs
	}
	if r.BreakEnd != nil {
		be := types.TimeString(*r.BreakEnd)
		rule.BreakEnd = &be
	}

	return rule
}

// Response модели

// RuleResponse ответ с данными правила расписания
type RuleResponse struct {
	ID                     int64   `json:"id"`
	ProviderID             int64   `json:"providerId"`
	DayOfWeek              int     `json:"dayOfWeek"` // 0 = Sunday
	WorkStart              string  `json:"workStart"`
	WorkEnd                string  `json:"workEnd"`
	BreakStart             *string `json:"breakStart,omitempty"`
	BreakEnd               *string `json:"breakEnd,omitempty"`
	IsWorking              bool    `json:"isWorking"`
	SlotDurationMinutes    int     `json:"slotDurationMinutes"`
	BufferTimeMinutes      int     `json:"bufferTimeMinutes"`
	MaxAppointmentsPerHour int     `json:"maxAppointmentsPerHour"`
}

// RuleListResponse ответ со списком правил расписания
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(rule *domain.ProviderScheduleRule) *RuleResponse {
	if rule == nil {
		return nil
	}

	resp := &RuleResponse{
		ID:                     rule.ID,
		ProviderID:             rule.ProviderID,
		DayOfWeek:              int(rule.DayOfWeek),
		WorkStart:              rule.WorkStart.String(),
		WorkEnd:                rule.WorkEnd.String(),
		IsWorking:              rule.IsWorking,
		SlotDurationMinutes:    rule.SlotDurationMinutes,
		BufferTimeMinutes:      rule.BufferTimeMinutes,
		MaxAppointmentsPerHour: rule.MaxAppointmentsPerHour,
	}

	if rule.BreakStart != nil {
		bs := rule.BreakStart.String()
		resp.BreakStart = &bs
	}
	if rule.BreakEnd != nil {
		be := rule.BreakEnd.String()
		resp.BreakEnd = &be
	}

	return resp
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []*domain.ProviderScheduleRule) *RuleListResponse {
	resp := &RuleListResponse{
		Rules: make([]RuleResponse, 0, len(rules)),
	}

	for _, rule := range rules {
		if rr := FromDomainRule(rule); rr != nil {
			resp.Rules = append(resp.Rules, *rr)
		}
	}

	return resp
}
