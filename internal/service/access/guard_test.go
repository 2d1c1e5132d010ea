package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type stubRepo struct {
	res *domain.Reservation
	err error
}

func (s stubRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.res == nil || s.res.ID != id {
		return nil, storage.ErrReservationNotFound
	}
	return s.res, nil
}

func TestGuard_Authorize(t *testing.T) {
	owned := &domain.Reservation{ID: 7, Owner: domain.Owner{UserID: "alice"}}

	tests := []struct {
		name    string
		repo    stubRepo
		id      int64
		caller  domain.Identity
		wantErr error
	}{
		{"owner", stubRepo{res: owned}, 7, domain.Identity{UserID: "alice"}, nil},
		{"other user", stubRepo{res: owned}, 7, domain.Identity{UserID: "bob"}, ErrForbidden},
		{"missing", stubRepo{res: owned}, 8, domain.Identity{UserID: "alice"}, ErrNotFound},
		{"anonymous", stubRepo{res: owned}, 7, domain.Identity{}, ErrUnauthenticated},
		{"store failure", stubRepo{err: errors.New("boom")}, 7, domain.Identity{UserID: "alice"}, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(tt.repo, logger.NewNop())

			res, err := g.Authorize(context.Background(), tt.id, tt.caller)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, owned.ID, res.ID)
		})
	}
}

func TestCheckOwner_EmptyOwnerNeverMatches(t *testing.T) {
	res := &domain.Reservation{ID: 1}
	assert.Equal(t, ErrForbidden, CheckOwner(res, domain.Identity{}))
	assert.Equal(t, ErrNotFound, CheckOwner(nil, domain.Identity{UserID: "x"}))
}
