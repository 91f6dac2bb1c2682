package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/canchub/court-booking-service/pkg/types"
)

// Ошибки валидации окна бронирования.
// Каждая категория — отдельный sentinel, чтобы вызывающий код мог
// отличить "нет расписания" от "вне рабочих часов" и т.д.
var (
	// ErrNoScheduleForDay площадка не имеет расписания на этот день недели
	ErrNoScheduleForDay = errors.New("domain: no schedule defined for this weekday")

	// ErrWindowCrossesDay окно пересекает границу дня недели
	ErrWindowCrossesDay = errors.New("domain: booking window must not cross a weekday boundary")

	// ErrWindowEmpty конец окна не позже начала
	ErrWindowEmpty = errors.New("domain: end must be after start")

	// ErrWindowOutOfRange окно выходит за рабочие часы
	ErrWindowOutOfRange = errors.New("domain: window is outside of the court opening hours")

	// ErrWindowNotSlotMultiple длительность не кратна размеру слота
	ErrWindowNotSlotMultiple = errors.New("domain: duration is not a multiple of the slot size")

	// ErrWindowNotSlotAligned начало не выровнено по сетке слотов
	ErrWindowNotSlotAligned = errors.New("domain: start is not aligned to the slot grid")
)

// ScheduleRule режим работы площадки в конкретный день недели
// На пару (court_id, weekday) существует максимум одно правило.
type ScheduleRule struct {
	ID          int64
	CourtID     int64
	Weekday     int // 0..6, понедельник = 0
	OpenTime    types.TimeString
	CloseTime   types.TimeString
	SlotMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayWindow возвращает [открытие, закрытие) в датах указанного дня
func (r *ScheduleRule) DayWindow(date time.Time) Window {
	y, m, d := date.Date()
	open := time.Date(y, m, d, r.OpenTime.Minutes()/60, r.OpenTime.Minutes()%60, 0, 0, date.Location())
	close := time.Date(y, m, d, r.CloseTime.Minutes()/60, r.CloseTime.Minutes()%60, 0, 0, date.Location())
	return NewWindow(open, close)
}

// ValidateWindow проверяет окно бронирования против правила расписания.
//
// Правила (все должны выполняться):
//   - окно не пересекает границу дня недели;
//   - длительность строго положительна;
//   - open_time <= start < close_time и open_time < end <= close_time;
//   - длительность кратна slot_minutes;
//   - начало выровнено по сетке слотов (минуты кратны slot_minutes,
//     секунды и доли секунды нулевые).
//
// Возвращается первая нарушенная категория; частичного успеха нет.
func ValidateWindow(rule *ScheduleRule, w Window) error {
	if rule == nil {
		return ErrNoScheduleForDay
	}
	if !w.SameWeekday() {
		return ErrWindowCrossesDay
	}

	dur := w.DurationMinutes()
	if dur <= 0 {
		return ErrWindowEmpty
	}

	startMin := w.StartTime().Minutes()
	endMin := w.EndTime().Minutes()
	openMin := rule.OpenTime.Minutes()
	closeMin := rule.CloseTime.Minutes()

	if !(openMin <= startMin && startMin < closeMin && openMin < endMin && endMin <= closeMin) {
		return fmt.Errorf("%w: open %s-%s", ErrWindowOutOfRange, rule.OpenTime, rule.CloseTime)
	}

	if dur%rule.SlotMinutes != 0 {
		return fmt.Errorf("%w: duration must be a multiple of %d minutes", ErrWindowNotSlotMultiple, rule.SlotMinutes)
	}

	if w.Start.Minute()%rule.SlotMinutes != 0 || w.Start.Second() != 0 || w.Start.Nanosecond() != 0 {
		return fmt.Errorf("%w: start minute must satisfy mm %% %d == 0", ErrWindowNotSlotAligned, rule.SlotMinutes)
	}

	return nil
}
