package domain

import "time"

// AvailabilitySlot один слот в дневной сетке доступности площадки
// PricePerSlot nil, когда ни одно ценовое правило не покрывает слот:
// выдача доступности не падает из-за дыры в прайсе, в отличие от
// создания бронирования.
type AvailabilitySlot struct {
	Start        time.Time
	End          time.Time
	Available    bool
	PricePerSlot *float64
}

// AvailabilityView дневная сетка доступности площадки
type AvailabilityView struct {
	CourtID     int64
	Date        time.Time
	SlotMinutes int
	Currency    string
	Slots       []AvailabilitySlot
}
