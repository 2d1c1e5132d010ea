package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/reservations/models"
)

// Service сервис чтения и удаления бронирований
type Service struct {
	repo   ReservationRepository
	guard  Guard
	logger Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(repo ReservationRepository, guard Guard, logger Logger) *Service {
	return &Service{
		repo:   repo,
		guard:  guard,
		logger: logger,
	}
}

// List возвращает бронирования по фильтру. Любой аутентифицированный пользователь видит все бронирования.
func (s *Service) List(ctx context.Context, filter domain.ReservationFilter) ([]*models.ReservationResponse, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reservations", len(list))
	return models.FromDomainReservationList(list), nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// Delete удаляет бронирование владельца и освобождает его слоты.
// Ошибки Guard (access.ErrNotFound, access.ErrForbidden) возвращаются без изменений.
func (s *Service) Delete(ctx context.Context, id int64, caller domain.Identity) error {
	if _, err := s.guard.Authorize(ctx, id, caller); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d already deleted", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: reservation id=%d deleted by user=%s", id, caller.UserID)
	return nil
}
