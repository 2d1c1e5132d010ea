// Package access проверяет, может ли вызывающий изменять или удалять бронирование.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
)

// Guard загружает бронирование и проверяет владельца
type Guard struct {
	repo   ReservationRepository
	logger Logger
}

// NewGuard создает новый экземпляр Guard
func NewGuard(repo ReservationRepository, logger Logger) *Guard {
	return &Guard{
		repo:   repo,
		logger: logger,
	}
}

// Authorize возвращает бронирование, если вызывающий его владелец.
// Нет бронирования - ErrNotFound, чужое бронирование - ErrForbidden.
func (g *Guard) Authorize(ctx context.Context, id int64, caller domain.Identity) (*domain.Reservation, error) {
	if caller.UserID == "" {
		return nil, ErrUnauthenticated
	}

	res, err := g.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			g.logger.Warn("Authorize: reservation id=%d not found", id)
			return nil, ErrNotFound
		}
		g.logger.Error("Authorize: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Authorize - repository error: %v", ErrInternal, err)
	}

	if err := CheckOwner(res, caller); err != nil {
		g.logger.Warn("Authorize: user=%s is not the owner of reservation id=%d", caller.UserID, id)
		return nil, err
	}

	return res, nil
}

// CheckOwner проверяет владельца уже загруженного бронирования
func CheckOwner(res *domain.Reservation, caller domain.Identity) error {
	if res == nil {
		return ErrNotFound
	}
	if !res.IsOwnedBy(caller.UserID) {
		return ErrForbidden
	}
	return nil
}
