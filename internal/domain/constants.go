package domain

// Default configuration values
const (
	DefaultLateWindowHours   = 24
	DefaultPendingTTLMinutes = 30
	DefaultSlotMinutes       = 60
	DefaultCurrency          = "ARS"
)

// Business validation constants
const (
	MinSlotMinutes = 5
	MaxSlotMinutes = 480 // 8 часов

	MinWeekday = 0 // понедельник
	MaxWeekday = 6 // воскресенье

	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
