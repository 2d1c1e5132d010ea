package admission

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

var reservationColumns = []string{
	"id", "user_id", "user_email", "user_name", "floor", "room", "date", "shift",
	"time_slots", "reason", "responsible_person", "participants", "created_at", "updated_at",
}

func newPostgresController(t *testing.T) (*Controller, sqlmock.Sqlmock, *countingRecorder) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	rec := newCountingRecorder()
	c := NewController(reservationRepo.NewRepository(wrapped), txmanager.NewTransactionManager(wrapped), rec, logger.NewNop())
	return c, mock, rec
}

func TestAdmitCreate_PostgresConflictRollsBack(t *testing.T) {
	c, mock, rec := newPostgresController(t)
	res := reservation("u2", 2, 3, domain.ShiftMorning, "Slot2", "Slot3")
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtextextended\(\$1, 0\)\)`).
		WithArgs(res.Key().String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM reservations WHERE (.+) ORDER BY id ASC$`).
		WillReturnRows(sqlmock.NewRows(reservationColumns).AddRow(
			int64(1), "u1", "u1@example.com", "u1", 2, 3, testDate, "Morning",
			`["Slot1","Slot2"]`, "Meeting", "u1", 4, now, now,
		))
	mock.ExpectRollback()

	_, err := c.AdmitCreate(context.Background(), res)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []domain.Slot{"Slot2"}, conflict.Slots)
	assert.Equal(t, 1, rec.get(OperationCreate, OutcomeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdmitCreate_PostgresCommits(t *testing.T) {
	c, mock, rec := newPostgresController(t)
	res := reservation("u2", 2, 3, domain.ShiftMorning, "Slot3")
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs(res.Key().String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM reservations WHERE (.+) ORDER BY id ASC$`).
		WillReturnRows(sqlmock.NewRows(reservationColumns).AddRow(
			int64(1), "u1", "u1@example.com", "u1", 2, 3, testDate, "Morning",
			`["Slot1","Slot2"]`, "Meeting", "u1", 4, now, now,
		))
	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(2), now, now))
	mock.ExpectExec(`INSERT INTO reservation_slots`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := c.AdmitCreate(context.Background(), res)

	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)
	assert.Equal(t, 1, rec.get(OperationCreate, OutcomeAdmitted))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdmitUpdate_PostgresMoveToAnotherKey(t *testing.T) {
	c, mock, rec := newPostgresController(t)
	now := time.Now().UTC()

	moved := reservation("u1", 2, 3, domain.ShiftMorning, "Slot3")
	moved.ID = 7

	mock.ExpectBegin()
	// Блокируется только целевой ключ
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs(moved.Key().String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(reservationColumns).AddRow(
			int64(7), "u1", "u1@example.com", "u1", 1, 3, testDate, "Morning",
			`["Slot3"]`, "Meeting", "u1", 4, now, now,
		))
	// Чужие бронирования целевого ключа читаются без блокировки строк
	mock.ExpectQuery(`SELECT (.+) FROM reservations WHERE (.+) ORDER BY id ASC$`).
		WillReturnRows(sqlmock.NewRows(reservationColumns).AddRow(
			int64(8), "u2", "u2@example.com", "u2", 2, 3, testDate, "Morning",
			`["Slot1","Slot2"]`, "Sync", "u2", 2, now, now,
		))
	mock.ExpectQuery(`UPDATE reservations SET`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`DELETE FROM reservation_slots WHERE reservation_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO reservation_slots`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := c.AdmitUpdate(context.Background(), moved, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.Floor(2), updated.Floor)
	assert.Equal(t, []domain.Slot{"Slot3"}, updated.TimeSlots)
	assert.Equal(t, 1, rec.get(OperationUpdate, OutcomeAdmitted))
	assert.NoError(t, mock.ExpectationsWereMet())
}
