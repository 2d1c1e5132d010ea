package update_reservation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/access"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
	"github.com/m04kA/SMC-RoomBookingService/pkg/keylock"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

var (
	alice = domain.Identity{UserID: "alice", Email: "alice@example.com", Name: "Alice"}
	bob   = domain.Identity{UserID: "bob", Email: "bob@example.com", Name: "Bob"}
)

type fixture struct {
	uc        *UseCase
	repo      *memory.Repository
	admission *admission.Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	v, err := validator.New()
	require.NoError(t, err)

	repo := memory.NewRepository()
	log := logger.NewNop()
	ctrl := admission.NewController(repo, keylock.New(), nil, log)

	return &fixture{
		uc:        NewUseCase(access.NewGuard(repo, log), v, ctrl, log),
		repo:      repo,
		admission: ctrl,
	}
}

func (f *fixture) create(t *testing.T, owner domain.Identity, shift domain.Shift, slots ...domain.Slot) *domain.Reservation {
	t.Helper()
	date, err := domain.ParseDate("2024-06-10")
	require.NoError(t, err)

	res, err := f.admission.AdmitCreate(context.Background(), &domain.Reservation{
		Owner:             owner.AsOwner(),
		Floor:             2,
		Room:              3,
		Date:              date,
		Shift:             shift,
		TimeSlots:         slots,
		Reason:            "Planning",
		ResponsiblePerson: "Ana",
		Participants:      5,
	})
	require.NoError(t, err)
	return res
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func slotsPtr(s ...string) *[]string {
	return &s
}

func TestExecute_PartialUpdateKeepsOtherFields(t *testing.T) {
	f := newFixture(t)
	res := f.create(t, alice, domain.ShiftMorning, "Slot1", "Slot2")

	updated, err := f.uc.Execute(context.Background(), &Request{
		ID:     res.ID,
		Caller: alice,
		Patch:  Patch{Reason: strPtr("Retro"), Participants: intPtr(12)},
	})
	require.NoError(t, err)

	assert.Equal(t, res.ID, updated.ID)
	assert.Equal(t, "Retro", updated.Reason)
	assert.Equal(t, 12, updated.Participants)
	assert.Equal(t, []domain.Slot{"Slot1", "Slot2"}, updated.TimeSlots)
	assert.Equal(t, res.Floor, updated.Floor)
	assert.Equal(t, "Ana", updated.ResponsiblePerson)
}

func TestExecute_NonOwnerForbiddenRegardlessOfPayload(t *testing.T) {
	f := newFixture(t)
	res := f.create(t, alice, domain.ShiftMorning, "Slot1")

	_, err := f.uc.Execute(context.Background(), &Request{
		ID:     res.ID,
		Caller: bob,
		Patch:  Patch{Floor: intPtr(99), TimeSlots: slotsPtr()},
	})
	assert.True(t, errors.Is(err, access.ErrForbidden))

	assert.True(t, errors.Is(f.uc.CheckAccess(context.Background(), res.ID, bob), access.ErrForbidden))
	assert.NoError(t, f.uc.CheckAccess(context.Background(), res.ID, alice))
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ID: 42, Caller: alice})
	assert.True(t, errors.Is(err, access.ErrNotFound))
}

func TestExecute_ValidationAfterMerge(t *testing.T) {
	f := newFixture(t)
	res := f.create(t, alice, domain.ShiftMorning, "Slot4", "Slot5")

	// У ночной смены три слота, прежние Slot4 и Slot5 становятся недопустимыми
	_, err := f.uc.Execute(context.Background(), &Request{
		ID:     res.ID,
		Caller: alice,
		Patch:  Patch{Shift: strPtr("Night")},
	})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{"time_slots"}, verrs.Fields())
}

func TestExecute_ConflictExcludesSelf(t *testing.T) {
	f := newFixture(t)
	mine := f.create(t, alice, domain.ShiftAfternoon, "Slot1", "Slot2")
	f.create(t, bob, domain.ShiftAfternoon, "Slot3")

	// Пересечение с собственными слотами допустимо
	_, err := f.uc.Execute(context.Background(), &Request{
		ID:     mine.ID,
		Caller: alice,
		Patch:  Patch{TimeSlots: slotsPtr("Slot2", "Slot1", "Slot4")},
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{
		ID:     mine.ID,
		Caller: alice,
		Patch:  Patch{TimeSlots: slotsPtr("Slot3")},
	})
	var conflict *admission.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []domain.Slot{"Slot3"}, conflict.Slots)
}

func TestExecute_RefreshesOwnerSnapshot(t *testing.T) {
	f := newFixture(t)
	res := f.create(t, alice, domain.ShiftNight, "Slot1")

	renamed := alice
	renamed.Name = "Alice Smith"

	updated, err := f.uc.Execute(context.Background(), &Request{ID: res.ID, Caller: renamed})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", updated.Owner.DisplayName)
	assert.Equal(t, "alice", updated.Owner.UserID)
	assert.Equal(t, res.CreatedAt, updated.CreatedAt)
}
