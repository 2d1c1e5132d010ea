package admission

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Repository хранилище бронирований (postgres или memory)
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByKey(ctx context.Context, key domain.Key) ([]*domain.Reservation, error)
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// Locker выполняет fn эксклюзивно для ключа.
// *txmanager.TransactionManager (advisory lock в транзакции) и *keylock.Locker.
type Locker interface {
	DoLocked(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Recorder счетчик решений о допуске. Может быть nil.
type Recorder interface {
	ObserveAdmission(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
