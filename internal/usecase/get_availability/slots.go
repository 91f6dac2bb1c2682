package get_availability

import (
	"time"

	"github.com/canchub/court-booking-service/internal/domain"
)

// generateSlots строит дневную сетку слотов площадки.
//
// Сетка идёт от открытия до закрытия с шагом slot_minutes. Слот занят,
// если он пересекается с активным бронированием (полуоткрытые интервалы,
// граничащие слоты не считаются пересечением) либо уже начался. Цена
// слота берётся из правила, полностью покрывающего слот; при отсутствии
// правила цена nil.
func generateSlots(
	rule *domain.ScheduleRule,
	prices []*domain.PriceRule,
	bookings []*domain.Booking,
	date time.Time,
	now time.Time,
) []Slot {
	dayWindow := rule.DayWindow(date)
	step := time.Duration(rule.SlotMinutes) * time.Minute

	slots := make([]Slot, 0, dayWindow.DurationMinutes()/rule.SlotMinutes)

	for start := dayWindow.Start; !start.Add(step).After(dayWindow.End); start = start.Add(step) {
		end := start.Add(step)
		slotWindow := domain.NewWindow(start, end)

		slot := Slot{
			Start:     start,
			End:       end,
			Available: start.After(now) && !overlapsAny(slotWindow, bookings),
		}

		if priceRule := domain.RuleCovering(prices, slotWindow.StartTime(), slotWindow.EndTime()); priceRule != nil {
			price := priceRule.PricePerSlot
			slot.PricePerSlot = &price
		}

		slots = append(slots, slot)
	}

	return slots
}

// overlapsAny проверяет пересечение слота с активными бронированиями
func overlapsAny(slot domain.Window, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if !b.IsBlocking() {
			continue
		}
		if slot.Overlaps(b.Window()) {
			return true
		}
	}
	return false
}

// dayBounds возвращает границы календарного дня [00:00, 24:00)
func dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}
