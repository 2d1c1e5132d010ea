package update_reservation

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	updateReservation "github.com/m04kA/SMC-RoomBookingService/internal/usecase/update_reservation"
)

type UpdateReservationUseCase interface {
	CheckAccess(ctx context.Context, id int64, caller domain.Identity) error
	Execute(ctx context.Context, req *updateReservation.Request) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
