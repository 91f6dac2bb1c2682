package domain

import (
	"time"

	"github.com/canchub/court-booking-service/pkg/types"
)

// Window полуоткрытый интервал времени [Start, End)
// Используется для валидации, проверки пересечений и расчёта цены.
// Не персистентный тип: бронирование хранит start/end напрямую.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow создает окно [start, end)
func NewWindow(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

// DurationMinutes длительность окна в минутах
func (w Window) DurationMinutes() int {
	return int(w.End.Sub(w.Start) / time.Minute)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов
// Интервалы, которые только граничат (a.End == b.Start), не пересекаются
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// SameWeekday возвращает true, если начало и конец окна приходятся на один день недели
func (w Window) SameWeekday() bool {
	return WeekdayOf(w.Start) == WeekdayOf(w.End)
}

// StartTime время дня начала окна
func (w Window) StartTime() types.TimeString {
	return types.NewTimeString(w.Start)
}

// EndTime время дня конца окна
func (w Window) EndTime() types.TimeString {
	return types.NewTimeString(w.End)
}

// WeekdayOf возвращает день недели в диапазоне 0..6, где понедельник = 0
// (расписания и ценовые правила ключуются именно так)
func WeekdayOf(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
