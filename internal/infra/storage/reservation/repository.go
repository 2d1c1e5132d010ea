package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

const (
	reservationsTable = "reservations"
	slotsTable        = "reservation_slots"

	// uniqueViolation код ошибки PostgreSQL unique_violation
	uniqueViolation = "23505"
)

var reservationColumns = []string{
	"id",
	"user_id",
	"user_email",
	"user_name",
	"floor",
	"room",
	"date",
	"shift",
	"time_slots",
	"reason",
	"responsible_person",
	"participants",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование и занимает его слоты в reservation_slots.
// Оба запроса должны выполняться в одной транзакции (см. txmanager.DoLocked),
// иначе при ошибке второго запроса бронирование останется без слотов.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slots, err := encodeSlots(res.TimeSlots)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert(reservationsTable).
		Columns(
			"user_id",
			"user_email",
			"user_name",
			"floor",
			"room",
			"date",
			"shift",
			"time_slots",
			"reason",
			"responsible_person",
			"participants",
		).
		Values(
			res.Owner.UserID,
			res.Owner.Email,
			res.Owner.DisplayName,
			int(res.Floor),
			int(res.Room),
			domain.NormalizeDate(res.Date),
			string(res.Shift),
			slots,
			res.Reason,
			res.ResponsiblePerson,
			res.Participants,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := res.Clone()
	if err := executor.QueryRowContext(ctx, query, args...).Scan(
		&created.ID,
		&created.CreatedAt,
		&created.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.insertSlots(ctx, executor, created); err != nil {
		return nil, err
	}

	created.Date = domain.NormalizeDate(created.Date)
	return created, nil
}

// Update перезаписывает все изменяемые поля бронирования и заново занимает слоты.
// id, владелец-пользователь и created_at не меняются.
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slots, err := encodeSlots(res.TimeSlots)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update(reservationsTable).
		Set("user_email", res.Owner.Email).
		Set("user_name", res.Owner.DisplayName).
		Set("floor", int(res.Floor)).
		Set("room", int(res.Room)).
		Set("date", domain.NormalizeDate(res.Date)).
		Set("shift", string(res.Shift)).
		Set("time_slots", slots).
		Set("reason", res.Reason).
		Set("responsible_person", res.ResponsiblePerson).
		Set("participants", res.Participants).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated := res.Clone()
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updated.CreatedAt, &updated.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	// Освобождаем прежние слоты и занимаем новые
	delQuery, delArgs, err := psqlbuilder.Delete(slotsTable).
		Where(squirrel.Eq{"reservation_id": res.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build delete slots query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return nil, fmt.Errorf("%w: Update - delete slots: %v", ErrExecQuery, err)
	}

	if err := r.insertSlots(ctx, executor, updated); err != nil {
		return nil, err
	}

	updated.Date = domain.NormalizeDate(updated.Date)
	return updated, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(reservationsTable).
		Where(squirrel.Eq{"id": id})

	// В транзакции блокируем строку до конца проверки владельца
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// List возвращает бронирования, подходящие под фильтр.
// Сортировка: дата по убыванию, затем этаж, комната и id по возрастанию.
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(
		psqlbuilder.Select(reservationColumns...).From(reservationsTable),
		filter,
	).OrderBy("date DESC", "floor ASC", "room ASC", "id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListByKey возвращает все бронирования ключа (floor, room, date, shift).
// Строки не блокируются, запись в ключ сериализует advisory lock ключа.
func (r *Repository) ListByKey(ctx context.Context, key domain.Key) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(
		psqlbuilder.Select(reservationColumns...).From(reservationsTable),
		domain.FilterByKey(key),
	).OrderBy("id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByKey - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByKey - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Delete удаляет бронирование. Слоты освобождаются каскадно (ON DELETE CASCADE).
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(reservationsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// insertSlots занимает слоты бронирования одним INSERT.
// Нарушение уникальности означает, что слот уже занят другим бронированием.
func (r *Repository) insertSlots(ctx context.Context, executor DBExecutor, res *domain.Reservation) error {
	insertBuilder := psqlbuilder.Insert(slotsTable).
		Columns("reservation_id", "floor", "room", "date", "shift", "slot")

	date := domain.NormalizeDate(res.Date)
	for _, slot := range res.TimeSlots {
		insertBuilder = insertBuilder.Values(res.ID, int(res.Floor), int(res.Room), date, string(res.Shift), string(slot))
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: key=%s: %v", ErrSlotTaken, res.Key(), err)
		}
		return fmt.Errorf("%w: insertSlots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func applyFilter(b squirrel.SelectBuilder, filter domain.ReservationFilter) squirrel.SelectBuilder {
	if filter.Date != nil {
		b = b.Where(squirrel.Eq{"date": domain.NormalizeDate(*filter.Date)})
	}
	if filter.Floor != nil {
		b = b.Where(squirrel.Eq{"floor": int(*filter.Floor)})
	}
	if filter.Room != nil {
		b = b.Where(squirrel.Eq{"room": int(*filter.Room)})
	}
	if filter.Shift != nil {
		b = b.Where(squirrel.Eq{"shift": string(*filter.Shift)})
	}
	return b
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res       domain.Reservation
		floor     int
		room      int
		shift     string
		timeSlots string
	)

	if err := row.Scan(
		&res.ID,
		&res.Owner.UserID,
		&res.Owner.Email,
		&res.Owner.DisplayName,
		&floor,
		&room,
		&res.Date,
		&shift,
		&timeSlots,
		&res.Reason,
		&res.ResponsiblePerson,
		&res.Participants,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return nil, err
	}

	slots, err := decodeSlots(timeSlots)
	if err != nil {
		return nil, err
	}

	res.Floor = domain.Floor(floor)
	res.Room = domain.Room(room)
	res.Shift = domain.Shift(shift)
	res.Date = domain.NormalizeDate(res.Date)
	res.TimeSlots = slots

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// encodeSlots сериализует слоты в JSON массив, порядок сохраняется
func encodeSlots(slots []domain.Slot) (string, error) {
	data, err := json.Marshal(domain.SlotStrings(slots))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodeSlots, err)
	}
	return string(data), nil
}

func decodeSlots(data string) ([]domain.Slot, error) {
	var labels []string
	if err := json.Unmarshal([]byte(data), &labels); err != nil {
		return nil, fmt.Errorf("decode time_slots %q: %w", data, err)
	}
	return domain.ToSlots(labels), nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
