// Package admission решает, можно ли создать или изменить бронирование,
// не нарушив эксклюзивность слотов на ключе (этаж, комната, дата, смена).
package admission

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
)

// Операции и исходы для метрики admission_decisions_total
const (
	OperationCreate = "create"
	OperationUpdate = "update"

	OutcomeAdmitted = "admitted"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Precondition проверка текущего состояния бронирования под блокировкой ключа
// (например, что вызывающий по-прежнему владелец). Ошибка возвращается вызывающему как есть.
type Precondition func(current *domain.Reservation) error

// Controller выполняет чтение-проверку-запись атомарно для одного ключа.
// Запросы к разным ключам друг друга не блокируют.
type Controller struct {
	repo     Repository
	locker   Locker
	recorder Recorder
	logger   Logger
}

// NewController создает контроллер допуска. recorder может быть nil.
func NewController(repo Repository, locker Locker, recorder Recorder, logger Logger) *Controller {
	return &Controller{
		repo:     repo,
		locker:   locker,
		recorder: recorder,
		logger:   logger,
	}
}

// AdmitCreate сохраняет новое бронирование, если ни один его слот не занят на ключе
func (c *Controller) AdmitCreate(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	key := res.Key()

	var created *domain.Reservation
	err := c.locker.DoLocked(ctx, key.String(), func(lockCtx context.Context) error {
		if err := c.checkConflict(lockCtx, key, res.TimeSlots, 0); err != nil {
			return err
		}

		saved, err := c.repo.Create(lockCtx, res)
		if err != nil {
			return c.storeError("create", key, res.TimeSlots, err)
		}

		created = saved
		return nil
	})

	c.observe(OperationCreate, err)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Admission: created reservation id=%d key=%s slots=%v", created.ID, key, created.TimeSlots)
	return created, nil
}

// AdmitUpdate перезаписывает бронирование res.ID. Под блокировкой ключа новых значений
// бронирование перечитывается, проверяется precondition, а конфликт ищется среди
// всех остальных бронирований ключа (само бронирование исключается).
func (c *Controller) AdmitUpdate(ctx context.Context, res *domain.Reservation, precondition Precondition) (*domain.Reservation, error) {
	key := res.Key()

	var updated *domain.Reservation
	err := c.locker.DoLocked(ctx, key.String(), func(lockCtx context.Context) error {
		current, err := c.repo.GetByID(lockCtx, res.ID)
		if err != nil {
			if errors.Is(err, storage.ErrReservationNotFound) {
				return &rejection{err: err}
			}
			return fmt.Errorf("%w: get reservation id=%d: %v", ErrRepository, res.ID, err)
		}

		if precondition != nil {
			if err := precondition(current); err != nil {
				return &rejection{err: err}
			}
		}

		if err := c.checkConflict(lockCtx, key, res.TimeSlots, res.ID); err != nil {
			return err
		}

		saved, err := c.repo.Update(lockCtx, res)
		if err != nil {
			if errors.Is(err, storage.ErrReservationNotFound) {
				return &rejection{err: err}
			}
			return c.storeError("update", key, res.TimeSlots, err)
		}

		updated = saved
		return nil
	})

	c.observe(OperationUpdate, err)

	var rej *rejection
	if errors.As(err, &rej) {
		return nil, rej.err
	}
	if err != nil {
		return nil, err
	}

	c.logger.Info("Admission: updated reservation id=%d key=%s slots=%v", updated.ID, key, updated.TimeSlots)
	return updated, nil
}

// Rejected фиксирует отказ до входа в критическую секцию (например, невалидный запрос)
func (c *Controller) Rejected(operation string) {
	if c.recorder != nil {
		c.recorder.ObserveAdmission(operation, OutcomeRejected)
	}
}

// checkConflict читает бронирования ключа и сравнивает их слоты с запрошенными
func (c *Controller) checkConflict(ctx context.Context, key domain.Key, requested []domain.Slot, excludeID int64) error {
	existing, err := c.repo.ListByKey(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: list reservations key=%s: %v", ErrRepository, key, err)
	}

	overlap := Overlap(OccupiedSlots(existing, excludeID), requested)
	if len(overlap) > 0 {
		c.logger.Warn("Admission: conflict key=%s requested=%v overlapping=%v", key, requested, overlap)
		return &ConflictError{Key: key, Slots: overlap}
	}

	return nil
}

// storeError переводит нарушение уникальности слота в хранилище в конфликт.
// Точный набор занятых слотов после отката неизвестен, поэтому возвращаются запрошенные.
func (c *Controller) storeError(op string, key domain.Key, requested []domain.Slot, err error) error {
	if errors.Is(err, storage.ErrSlotTaken) {
		c.logger.Warn("Admission: store rejected %s key=%s: %v", op, key, err)
		slots := make([]domain.Slot, len(requested))
		copy(slots, requested)
		return &ConflictError{Key: key, Slots: slots}
	}
	return fmt.Errorf("%w: %s reservation key=%s: %v", ErrRepository, op, key, err)
}

func (c *Controller) observe(operation string, err error) {
	var rej *rejection
	outcome := OutcomeAdmitted
	switch {
	case err == nil:
	case errors.Is(err, ErrSlotConflict):
		outcome = OutcomeConflict
	case errors.As(err, &rej):
		outcome = OutcomeRejected
	default:
		outcome = OutcomeError
		c.logger.Error("Admission: %s failed: %v", operation, err)
	}

	if c.recorder != nil {
		c.recorder.ObserveAdmission(operation, outcome)
	}
}

// rejection отличает отказ по precondition от ошибок хранилища при выходе из критической секции
type rejection struct {
	err error
}

func (r *rejection) Error() string {
	return r.err.Error()
}
