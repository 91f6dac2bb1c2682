package expire_bookings

import "context"

// ExpireBookingsUseCase интерфейс usecase экспирации бронирований
type ExpireBookingsUseCase interface {
	Execute(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
