package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

// UseCase use case для создания бронирования
type UseCase struct {
	validator Validator
	admission Admission
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(v Validator, a Admission, logger Logger) *UseCase {
	return &UseCase{
		validator: v,
		admission: a,
		logger:    logger,
	}
}

// Execute проверяет запрос и передает его контроллеру допуска.
// Возвращает validator.ValidationErrors, *admission.ConflictError или ErrInternal.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	if req.Caller.UserID == "" {
		return nil, ErrUnauthenticated
	}

	uc.logger.Info("CreateReservation: user=%s, floor=%d, room=%d, date=%s, shift=%s, slots=%v",
		req.Caller.UserID, req.Input.Floor, req.Input.Room, req.Input.Date, req.Input.Shift, req.Input.TimeSlots)

	// 1. Валидация и нормализация
	res, err := uc.validator.Validate(req.Input)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			uc.logger.Warn("CreateReservation: validation failed: %v", err)
			uc.admission.Rejected(admission.OperationCreate)
			return nil, err
		}
		uc.logger.Error("CreateReservation: validator error: %v", err)
		return nil, fmt.Errorf("%w: validate: %v", ErrInternal, err)
	}

	// 2. Снимок владельца на момент создания
	res.Owner = req.Caller.AsOwner()

	// 3. Проверка пересечений и сохранение
	created, err := uc.admission.AdmitCreate(ctx, res)
	if err != nil {
		if errors.Is(err, admission.ErrSlotConflict) {
			return nil, err
		}
		uc.logger.Error("CreateReservation: admission failed: %v", err)
		return nil, fmt.Errorf("%w: admit: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", created.ID)
	return created, nil
}
