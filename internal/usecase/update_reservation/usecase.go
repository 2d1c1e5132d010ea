package update_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/access"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

// UseCase use case для изменения бронирования владельцем
type UseCase struct {
	guard     Guard
	validator Validator
	admission Admission
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(guard Guard, v Validator, a Admission, logger Logger) *UseCase {
	return &UseCase{
		guard:     guard,
		validator: v,
		admission: a,
		logger:    logger,
	}
}

// CheckAccess проверяет только существование и владельца.
// Нужен, чтобы чужой пользователь получал 403 даже при некорректном теле запроса.
func (uc *UseCase) CheckAccess(ctx context.Context, id int64, caller domain.Identity) error {
	_, err := uc.guard.Authorize(ctx, id, caller)
	return err
}

// Execute выполняет изменение:
// проверка владельца -> слияние с текущим состоянием -> валидация -> допуск без учета самого бронирования.
// Возвращает access.ErrNotFound, access.ErrForbidden, validator.ValidationErrors,
// *admission.ConflictError или ErrInternal.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	uc.logger.Info("UpdateReservation: id=%d, user=%s", req.ID, req.Caller.UserID)

	// 1. Владелец проверяется до валидации
	current, err := uc.guard.Authorize(ctx, req.ID, req.Caller)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) || errors.Is(err, access.ErrForbidden) {
			uc.admission.Rejected(admission.OperationUpdate)
		}
		return nil, err
	}

	// 2. Слияние и валидация новых значений
	candidate, err := uc.validator.Validate(req.Patch.Apply(validator.InputFromReservation(current)))
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			uc.logger.Warn("UpdateReservation: validation failed for id=%d: %v", req.ID, err)
			uc.admission.Rejected(admission.OperationUpdate)
			return nil, err
		}
		uc.logger.Error("UpdateReservation: validator error: %v", err)
		return nil, fmt.Errorf("%w: validate: %v", ErrInternal, err)
	}

	candidate.ID = current.ID
	// Снимок владельца обновляется данными текущего запроса
	candidate.Owner = req.Caller.AsOwner()

	// 3. Допуск под блокировкой ключа; владелец перепроверяется на свежем состоянии
	updated, err := uc.admission.AdmitUpdate(ctx, candidate, func(latest *domain.Reservation) error {
		return access.CheckOwner(latest, req.Caller)
	})
	if err != nil {
		switch {
		case errors.Is(err, admission.ErrSlotConflict),
			errors.Is(err, access.ErrForbidden):
			return nil, err
		case errors.Is(err, storage.ErrReservationNotFound):
			uc.logger.Warn("UpdateReservation: reservation id=%d disappeared during update", req.ID)
			return nil, access.ErrNotFound
		}
		uc.logger.Error("UpdateReservation: admission failed for id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: admit: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d", updated.ID)
	return updated, nil
}
