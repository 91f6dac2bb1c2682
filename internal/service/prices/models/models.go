package models

import (
	"time"

	"github.com/canchub/court-booking-service/internal/domain"
)

// Request модели

// CreatePriceRuleRequest запрос на создание правила цены
type CreatePriceRuleRequest struct {
	ActorID      int64   `json:"actorId"`
	CourtID      int64   `json:"courtId"`
	Weekday      int     `json:"weekday"`
	StartTime    string  `json:"startTime"` // "07:00"
	EndTime      string  `json:"endTime"`   // "17:00"
	PricePerSlot float64 `json:"pricePerSlot"`
}

// UpdatePriceRuleRequest запрос на обновление правила цены
type UpdatePriceRuleRequest struct {
	ActorID      int64    `json:"actorId"`
	Weekday      *int     `json:"weekday,omitempty"`
	StartTime    *string  `json:"startTime,omitempty"`
	EndTime      *string  `json:"endTime,omitempty"`
	PricePerSlot *float64 `json:"pricePerSlot,omitempty"`
}

// Response модели

// PriceRuleResponse ответ с данными правила цены
type PriceRuleResponse struct {
	ID           int64     `json:"id"`
	CourtID      int64     `json:"courtId"`
	Weekday      int       `json:"weekday"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	PricePerSlot float64   `json:"pricePerSlot"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PriceRuleListResponse ответ со списком правил цен
type PriceRuleListResponse struct {
	PriceRules []PriceRuleResponse `json:"priceRules"`
}

// Методы конвертации

// FromDomainPriceRule конвертирует domain модель в DTO
func FromDomainPriceRule(rule *domain.PriceRule) *PriceRuleResponse {
	if rule == nil {
		return nil
	}

	return &PriceRuleResponse{
		ID:           rule.ID,
		CourtID:      rule.CourtID,
		Weekday:      rule.Weekday,
		StartTime:    rule.StartTime.String(),
		EndTime:      rule.EndTime.String(),
		PricePerSlot: rule.PricePerSlot,
		CreatedAt:    rule.CreatedAt,
		UpdatedAt:    rule.UpdatedAt,
	}
}

// FromDomainPriceRuleList конвертирует список domain моделей в DTO
func FromDomainPriceRuleList(rules []*domain.PriceRule) *PriceRuleListResponse {
	result := make([]PriceRuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, *FromDomainPriceRule(rule))
	}
	return &PriceRuleListResponse{PriceRules: result}
}
