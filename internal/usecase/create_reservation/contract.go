package create_reservation

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

// Validator проверка и нормализация запроса
type Validator interface {
	Validate(in validator.Input) (*domain.Reservation, error)
}

// Admission контроллер допуска бронирований
type Admission interface {
	AdmitCreate(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	Rejected(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
