package get_availability

import "time"

// Request модель запроса сетки доступности площадки
type Request struct {
	CourtID int64     // ID площадки
	Date    time.Time // Дата (время игнорируется)
}

// Slot один слот дневной сетки
type Slot struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Available    bool      `json:"available"`
	PricePerSlot *float64  `json:"pricePerSlot"`
}

// Response дневная сетка доступности
// Пустой список слотов означает, что на этот день расписания нет
type Response struct {
	CourtID     int64  `json:"courtId"`
	Date        string `json:"date"` // "2026-08-31"
	SlotMinutes int    `json:"slotMinutes"`
	Currency    string `json:"currency"`
	Slots       []Slot `json:"slots"`
}
