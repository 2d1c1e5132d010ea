package update_reservation

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

// Guard загрузка бронирования с проверкой владельца
type Guard interface {
	Authorize(ctx context.Context, id int64, caller domain.Identity) (*domain.Reservation, error)
}

// Validator проверка и нормализация запроса
type Validator interface {
	Validate(in validator.Input) (*domain.Reservation, error)
}

// Admission контроллер допуска бронирований
type Admission interface {
	AdmitUpdate(ctx context.Context, res *domain.Reservation, precondition admission.Precondition) (*domain.Reservation, error)
	Rejected(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
