package reservation

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

type execCall struct {
	query string
	args  []interface{}
}

type fakeExecutor struct {
	calls    []execCall
	affected int64
	err      error
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.calls = append(f.calls, execCall{query: query, args: args})
	if f.err != nil {
		return nil, f.err
	}
	return driver.RowsAffected(f.affected), nil
}

func (f *fakeExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not supported")
}

func (f *fakeExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type fakeRow struct {
	values []interface{}
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("expected %d destinations, got %d", len(r.values), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *int:
			*p = r.values[i].(int)
		case *string:
			*p = r.values[i].(string)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return fmt.Errorf("unsupported destination %T", d)
		}
	}
	return nil
}

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestSlotsEncoding(t *testing.T) {
	encoded, err := encodeSlots([]domain.Slot{"Slot3", "Slot1"})
	require.NoError(t, err)
	assert.Equal(t, `["Slot3","Slot1"]`, encoded)

	decoded, err := decodeSlots(encoded)
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{"Slot3", "Slot1"}, decoded)

	_, err = decodeSlots("Slot1,Slot2")
	assert.Error(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505")))
}

func TestApplyFilter(t *testing.T) {
	floor := domain.Floor(2)
	room := domain.Room(3)
	shift := domain.ShiftNight
	date := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	query, args, err := applyFilter(psqlbuilder.Select("id").From(reservationsTable), domain.ReservationFilter{
		Date:  &date,
		Floor: &floor,
		Room:  &room,
		Shift: &shift,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM reservations WHERE date = $1 AND floor = $2 AND room = $3 AND shift = $4", query)
	assert.Equal(t, []interface{}{testDate, 2, 3, "Night"}, args)

	query, args, err = applyFilter(psqlbuilder.Select("id").From(reservationsTable), domain.ReservationFilter{}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM reservations", query)
	assert.Empty(t, args)
}

func TestScanReservation(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	row := fakeRow{values: []interface{}{
		int64(7), "u1", "u1@example.com", "Alice",
		2, 3, time.Date(2025, 3, 10, 0, 0, 0, 0, time.FixedZone("", 0)), "Morning",
		`["Slot1","Slot2"]`, "Planning", "Alice", 5,
		created, created,
	}}

	res, err := scanReservation(row)
	require.NoError(t, err)

	assert.Equal(t, int64(7), res.ID)
	assert.Equal(t, domain.Owner{UserID: "u1", Email: "u1@example.com", DisplayName: "Alice"}, res.Owner)
	assert.Equal(t, domain.Floor(2), res.Floor)
	assert.Equal(t, domain.Room(3), res.Room)
	assert.Equal(t, testDate, res.Date)
	assert.Equal(t, domain.ShiftMorning, res.Shift)
	assert.Equal(t, []domain.Slot{"Slot1", "Slot2"}, res.TimeSlots)
	assert.Equal(t, 5, res.Participants)

	row.values[8] = "not json"
	_, err = scanReservation(row)
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	exec := &fakeExecutor{affected: 1}
	repo := NewRepository(exec)

	require.NoError(t, repo.Delete(context.Background(), 5))
	require.Len(t, exec.calls, 1)
	assert.Equal(t, "DELETE FROM reservations WHERE id = $1", exec.calls[0].query)
	assert.Equal(t, []interface{}{int64(5)}, exec.calls[0].args)

	exec.affected = 0
	assert.ErrorIs(t, repo.Delete(context.Background(), 5), storage.ErrReservationNotFound)

	exec.err = errors.New("connection reset")
	assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrExecQuery)
}

func TestInsertSlots(t *testing.T) {
	res := &domain.Reservation{
		ID:        3,
		Floor:     1,
		Room:      2,
		Date:      testDate,
		Shift:     domain.ShiftAfternoon,
		TimeSlots: []domain.Slot{"Slot1", "Slot2"},
	}

	exec := &fakeExecutor{}
	repo := NewRepository(exec)

	require.NoError(t, repo.insertSlots(context.Background(), exec, res))
	require.Len(t, exec.calls, 1)
	assert.Equal(t,
		"INSERT INTO reservation_slots (reservation_id,floor,room,date,shift,slot) VALUES ($1,$2,$3,$4,$5,$6),($7,$8,$9,$10,$11,$12)",
		exec.calls[0].query)
	assert.Len(t, exec.calls[0].args, 12)

	exec.err = &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	err := repo.insertSlots(context.Background(), exec, res)
	assert.ErrorIs(t, err, storage.ErrSlotTaken)

	exec.err = errors.New("connection reset")
	err = repo.insertSlots(context.Background(), exec, res)
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, storage.ErrSlotTaken)
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Repository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock, NewRepository(dbmetrics.Wrap(db, nil))
}

func reservationRows() *sqlmock.Rows {
	return sqlmock.NewRows(reservationColumns)
}

func TestCreate_InsertsReservationAndSlots(t *testing.T) {
	_, mock, repo := setupMockDB(t)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO reservations`).
		WithArgs("u1", "u1@example.com", "Alice", 2, 3, testDate, "Morning", `["Slot1","Slot2"]`, "Planning", "Alice", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))
	mock.ExpectExec(`INSERT INTO reservation_slots`).
		WithArgs(int64(1), 2, 3, testDate, "Morning", "Slot1", int64(1), 2, 3, testDate, "Morning", "Slot2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	created, err := repo.Create(context.Background(), &domain.Reservation{
		Owner:             domain.Owner{UserID: "u1", Email: "u1@example.com", DisplayName: "Alice"},
		Floor:             2,
		Room:              3,
		Date:              testDate,
		Shift:             domain.ShiftMorning,
		TimeSlots:         []domain.Slot{"Slot1", "Slot2"},
		Reason:            "Planning",
		ResponsiblePerson: "Alice",
		Participants:      5,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SlotUniqueViolation(t *testing.T) {
	_, mock, repo := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(4), now, now))
	mock.ExpectExec(`INSERT INTO reservation_slots`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Reservation{
		Owner:     domain.Owner{UserID: "u1"},
		Floor:     1,
		Room:      1,
		Date:      testDate,
		Shift:     domain.ShiftNight,
		TimeSlots: []domain.Slot{"Slot1"},
	})

	assert.ErrorIs(t, err, storage.ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	_, mock, repo := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM reservations WHERE id = \$1$`).
		WithArgs(int64(7)).
		WillReturnRows(reservationRows().AddRow(
			int64(7), "u1", "u1@example.com", "Alice", 2, 3, testDate, "Night",
			`["Slot3"]`, "Retro", "Alice", 4, now, now,
		))
	mock.ExpectQuery(`SELECT (.+) FROM reservations WHERE id = \$1$`).
		WithArgs(int64(8)).
		WillReturnRows(reservationRows())

	res, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftNight, res.Shift)
	assert.Equal(t, []domain.Slot{"Slot3"}, res.TimeSlots)

	_, err = repo.GetByID(context.Background(), 8)
	assert.ErrorIs(t, err, storage.ErrReservationNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_OrderAndFilter(t *testing.T) {
	_, mock, repo := setupMockDB(t)
	now := time.Now().UTC()
	floor := domain.Floor(2)

	mock.ExpectQuery(`SELECT (.+) FROM reservations WHERE floor = \$1 ORDER BY date DESC, floor ASC, room ASC, id ASC`).
		WithArgs(2).
		WillReturnRows(reservationRows().
			AddRow(int64(2), "u2", "u2@example.com", "Bob", 2, 1, testDate.AddDate(0, 0, 1), "Morning", `["Slot1"]`, "A", "Bob", 2, now, now).
			AddRow(int64(1), "u1", "u1@example.com", "Alice", 2, 3, testDate, "Morning", `["Slot2"]`, "B", "Alice", 3, now, now))

	list, err := repo.List(context.Background(), domain.ReservationFilter{Floor: &floor})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, int64(1), list[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	mock.ExpectQuery(`UPDATE reservations SET`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	_, err := repo.Update(context.Background(), &domain.Reservation{
		ID:        42,
		Floor:     1,
		Room:      1,
		Date:      testDate,
		Shift:     domain.ShiftMorning,
		TimeSlots: []domain.Slot{"Slot1"},
	})

	assert.ErrorIs(t, err, storage.ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ReplacesSlots(t *testing.T) {
	_, mock, repo := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`UPDATE reservations SET (.+) WHERE id = \$11 RETURNING created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`DELETE FROM reservation_slots WHERE reservation_id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO reservation_slots`).
		WithArgs(int64(5), 1, 1, testDate, "Morning", "Slot4").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.Update(context.Background(), &domain.Reservation{
		ID:        5,
		Floor:     1,
		Room:      1,
		Date:      testDate,
		Shift:     domain.ShiftMorning,
		TimeSlots: []domain.Slot{"Slot4"},
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{"Slot4"}, updated.TimeSlots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByKey_InTransactionWithoutRowLock(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	wrapped := dbmetrics.Wrap(db, nil)
	repo := NewRepository(wrapped)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM reservations WHERE (.+) ORDER BY id ASC$`).
		WillReturnRows(reservationRows().AddRow(
			int64(1), "u1", "u1@example.com", "u1", 2, 3, testDate, "Morning",
			`["Slot1"]`, "Meeting", "u1", 4, now, now,
		))
	mock.ExpectCommit()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	key := domain.Key{Floor: 2, Room: 3, Date: testDate, Shift: domain.ShiftMorning}
	found, err := repo.ListByKey(dbmetrics.WithTx(context.Background(), tx), key)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, found, 1)
	assert.Equal(t, []domain.Slot{"Slot1"}, found[0].TimeSlots)
	assert.NoError(t, mock.ExpectationsWereMet())
}
