package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/canchub/court-booking-service/pkg/types"
)

// ErrPricingGap ни одно ценовое правило не покрывает слот целиком
var ErrPricingGap = errors.New("domain: no price rule covers slot")

// PriceRule цена слота для площадки в интервале времени конкретного дня недели
// Правила одной пары (court_id, weekday) не должны пересекаться по времени.
type PriceRule struct {
	ID           int64
	CourtID      int64
	Weekday      int // 0..6, понедельник = 0
	StartTime    types.TimeString
	EndTime      types.TimeString
	PricePerSlot float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers возвращает true, если правило покрывает слот [slotStart, slotEnd) целиком
func (r *PriceRule) Covers(slotStart, slotEnd types.TimeString) bool {
	return r.StartTime.Minutes() <= slotStart.Minutes() && r.EndTime.Minutes() >= slotEnd.Minutes()
}

// TimeRangesOverlap пересечение двух интервалов времени дня
// (a.start < b.end И a.end > b.start)
func TimeRangesOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.Minutes() < bEnd.Minutes() && aEnd.Minutes() > bStart.Minutes()
}

// RuleCovering находит правило, целиком покрывающее слот, или nil
func RuleCovering(rules []*PriceRule, slotStart, slotEnd types.TimeString) *PriceRule {
	for _, r := range rules {
		if r.Covers(slotStart, slotEnd) {
			return r
		}
	}
	return nil
}

// PriceWindow считает цену окна бронирования.
//
// Окно разбивается на последовательные слоты по rule.SlotMinutes; для
// каждого слота ищется ценовое правило, покрывающее его целиком. Если
// хотя бы один слот не покрыт, операция целиком завершается ошибкой с
// указанием первого непокрытого слота. Сумма округляется до 2 знаков
// (банковское "от половины вверх").
//
// Предполагается, что окно уже прошло ValidateWindow против того же
// правила расписания.
func PriceWindow(rule *ScheduleRule, prices []*PriceRule, w Window) (float64, error) {
	if rule == nil {
		return 0, ErrNoScheduleForDay
	}

	slots := w.DurationMinutes() / rule.SlotMinutes
	if slots <= 0 {
		return 0, ErrWindowEmpty
	}

	total := 0.0
	for i := 0; i < slots; i++ {
		slotStart := w.Start.Add(time.Duration(i*rule.SlotMinutes) * time.Minute)
		slotEnd := slotStart.Add(time.Duration(rule.SlotMinutes) * time.Minute)

		st := types.NewTimeString(slotStart)
		et := types.NewTimeString(slotEnd)

		covering := RuleCovering(prices, st, et)
		if covering == nil {
			return 0, fmt.Errorf("%w %s-%s", ErrPricingGap, st, et)
		}
		total += covering.PricePerSlot
	}

	return Round2(total), nil
}

// Round2 округляет до 2 знаков после запятой (half-up)
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
