// Package memory хранилище бронирований в памяти процесса.
// Используется при storage.driver = "memory" и в тестах.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = storage.ErrReservationNotFound

	// ErrSlotTaken возвращается, когда слот уже занят другим бронированием ключа
	ErrSlotTaken = storage.ErrSlotTaken
)

// Option настройка репозитория
type Option func(*Repository)

// WithClock подменяет источник времени для created_at/updated_at
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// Repository хранит бронирования в map под RWMutex и отдает только копии.
// Уникальность слота внутри ключа проверяется при каждой записи.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]*domain.Reservation
	nextID int64
	now    func() time.Time
}

// NewRepository создает пустое хранилище
func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		items: make(map[int64]*domain.Reservation),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create сохраняет бронирование, назначая id и временные метки
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := res.Clone()
	created.Date = domain.NormalizeDate(created.Date)

	if err := r.checkSlotsLocked(created, 0); err != nil {
		return nil, err
	}

	r.nextID++
	now := r.now().UTC()
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now

	r.items[created.ID] = created
	return created.Clone(), nil
}

// Update перезаписывает бронирование. created_at и владелец-пользователь сохраняются.
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[res.ID]
	if !ok {
		return nil, ErrReservationNotFound
	}

	updated := res.Clone()
	updated.Date = domain.NormalizeDate(updated.Date)
	updated.Owner.UserID = current.Owner.UserID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = r.now().UTC()

	if err := r.checkSlotsLocked(updated, updated.ID); err != nil {
		return nil, err
	}

	r.items[updated.ID] = updated
	return updated.Clone(), nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.items[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	return res.Clone(), nil
}

// List возвращает бронирования, подходящие под фильтр,
// отсортированные по дате (убывание), этажу, комнате и id (возрастание)
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]*domain.Reservation, 0)
	for _, res := range r.items {
		if filter.Matches(res) {
			out = append(out, res.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Floor != b.Floor {
			return a.Floor < b.Floor
		}
		if a.Room != b.Room {
			return a.Room < b.Room
		}
		return a.ID < b.ID
	})

	return out, nil
}

// ListByKey возвращает все бронирования ключа по возрастанию id
func (r *Repository) ListByKey(ctx context.Context, key domain.Key) ([]*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]*domain.Reservation, 0)
	for _, res := range r.items {
		if res.Key().Equal(key) {
			out = append(out, res.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete удаляет бронирование и тем самым освобождает его слоты
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrReservationNotFound
	}
	delete(r.items, id)
	return nil
}

// checkSlotsLocked проверяет, что ни один слот res не занят другим бронированием ключа.
// Вызывается под r.mu.
func (r *Repository) checkSlotsLocked(res *domain.Reservation, exceptID int64) error {
	key := res.Key()
	for id, other := range r.items {
		if id == exceptID || !other.Key().Equal(key) {
			continue
		}
		for _, taken := range other.TimeSlots {
			for _, slot := range res.TimeSlots {
				if slot == taken {
					return fmt.Errorf("%w: key=%s slot=%s reservation_id=%d", ErrSlotTaken, key, slot, id)
				}
			}
		}
	}
	return nil
}
