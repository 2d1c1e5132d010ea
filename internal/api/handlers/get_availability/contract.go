package get_availability

import (
	"context"

	getAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_availability"
)

type AvailabilityUseCase interface {
	Execute(ctx context.Context, q getAvailability.Query) ([]getAvailability.Occupancy, error)
	Grid(ctx context.Context, q getAvailability.Query) (*getAvailability.Grid, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
