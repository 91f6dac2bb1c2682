package models

import (
	"time"

	"github.com/canchub/court-booking-service/internal/domain"
)

// Request модели

// CreateScheduleRequest запрос на создание правила расписания
type CreateScheduleRequest struct {
	ActorID     int64  `json:"actorId"`
	CourtID     int64  `json:"courtId"`
	Weekday     int    `json:"weekday"`
	OpenTime    string `json:"openTime"`  // "07:00"
	CloseTime   string `json:"closeTime"` // "23:00"
	SlotMinutes int    `json:"slotMinutes"`
}

// UpdateScheduleRequest запрос на обновление правила расписания
type UpdateScheduleRequest struct {
	ActorID     int64   `json:"actorId"`
	Weekday     *int    `json:"weekday,omitempty"`
	OpenTime    *string `json:"openTime,omitempty"`
	CloseTime   *string `json:"closeTime,omitempty"`
	SlotMinutes *int    `json:"slotMinutes,omitempty"`
}

// Response модели

// ScheduleResponse ответ с данными правила расписания
type ScheduleResponse struct {
	ID          int64     `json:"id"`
	CourtID     int64     `json:"courtId"`
	Weekday     int       `json:"weekday"`
	OpenTime    string    `json:"openTime"`
	CloseTime   string    `json:"closeTime"`
	SlotMinutes int       `json:"slotMinutes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком правил расписания
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(rule *domain.ScheduleRule) *ScheduleResponse {
	if rule == nil {
		return nil
	}

	return &ScheduleResponse{
		ID:          rule.ID,
		CourtID:     rule.CourtID,
		Weekday:     rule.Weekday,
		OpenTime:    rule.OpenTime.String(),
		CloseTime:   rule.CloseTime.String(),
		SlotMinutes: rule.SlotMinutes,
		CreatedAt:   rule.CreatedAt,
		UpdatedAt:   rule.UpdatedAt,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(rules []*domain.ScheduleRule) *ScheduleListResponse {
	result := make([]ScheduleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, *FromDomainSchedule(rule))
	}
	return &ScheduleListResponse{Schedules: result}
}
