package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// UseCase расчет занятости слотов. Только чтение, без кеширования.
type UseCase struct {
	repo   ReservationRepository
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(repo ReservationRepository, logger Logger) *UseCase {
	return &UseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute возвращает бронирования области, сведенные к (этаж, комната, смена, слоты)
func (uc *UseCase) Execute(ctx context.Context, q Query) ([]Occupancy, error) {
	reservations, err := uc.load(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make([]Occupancy, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, Occupancy{
			Floor:     int(r.Floor),
			Room:      int(r.Room),
			Shift:     string(r.Shift),
			TimeSlots: domain.SlotStrings(r.TimeSlots),
		})
	}

	uc.logger.Info("GetAvailability: date=%s, %d reservations in scope", q.Date.Format(domain.DateFormat), len(out))
	return out, nil
}

// Grid возвращает все комнаты и смены области с состоянием каждого слота.
// Слот занят, если он входит в time_slots хотя бы одного бронирования того же ключа.
func (uc *UseCase) Grid(ctx context.Context, q Query) (*Grid, error) {
	reservations, err := uc.load(ctx, q)
	if err != nil {
		return nil, err
	}

	occupied := make(map[domain.Key]map[domain.Slot]struct{})
	for _, r := range reservations {
		key := r.Key()
		if occupied[key] == nil {
			occupied[key] = make(map[domain.Slot]struct{})
		}
		for _, s := range r.TimeSlots {
			occupied[key][s] = struct{}{}
		}
	}

	floors := domain.Floors()
	if q.Floor != nil {
		floors = []domain.Floor{*q.Floor}
	}
	shifts := domain.Shifts()
	if q.Shift != nil {
		shifts = []domain.Shift{*q.Shift}
	}

	date := domain.NormalizeDate(q.Date)
	grid := &Grid{Date: date.Format(domain.DateFormat), Cells: make([]GridCell, 0)}

	for _, floor := range floors {
		for _, room := range domain.Rooms() {
			for _, shift := range shifts {
				taken := occupied[domain.Key{Floor: floor, Room: room, Date: date, Shift: shift}]

				cell := GridCell{Floor: int(floor), Room: int(room), Shift: string(shift)}
				for _, def := range shift.Slots() {
					status := SlotAvailable
					if _, ok := taken[def.Label]; ok {
						status = SlotOccupied
					}
					cell.Slots = append(cell.Slots, GridSlot{
						Label:  string(def.Label),
						Start:  def.Start,
						End:    def.End,
						Status: status,
					})
				}
				grid.Cells = append(grid.Cells, cell)
			}
		}
	}

	return grid, nil
}

func (uc *UseCase) load(ctx context.Context, q Query) ([]*domain.Reservation, error) {
	if q.Date.IsZero() {
		return nil, ErrDateRequired
	}

	date := domain.NormalizeDate(q.Date)
	reservations, err := uc.repo.List(ctx, domain.ReservationFilter{
		Date:  &date,
		Floor: q.Floor,
		Shift: q.Shift,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: repository error: %v", err)
		return nil, fmt.Errorf("%w: list reservations: %v", ErrInternal, err)
	}

	return reservations, nil
}
