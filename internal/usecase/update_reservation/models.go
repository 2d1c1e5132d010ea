package update_reservation

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

// Patch частичное обновление: nil означает "оставить как есть"
type Patch struct {
	Floor             *int
	Room              *int
	Date              *string
	Shift             *string
	TimeSlots         *[]string
	Reason            *string
	ResponsiblePerson *string
	Participants      *int
}

// Apply накладывает изменения на текущее состояние бронирования
func (p Patch) Apply(in validator.Input) validator.Input {
	if p.Floor != nil {
		in.Floor = *p.Floor
	}
	if p.Room != nil {
		in.Room = *p.Room
	}
	if p.Date != nil {
		in.Date = *p.Date
	}
	if p.Shift != nil {
		in.Shift = *p.Shift
	}
	if p.TimeSlots != nil {
		in.TimeSlots = *p.TimeSlots
	}
	if p.Reason != nil {
		in.Reason = *p.Reason
	}
	if p.ResponsiblePerson != nil {
		in.ResponsiblePerson = *p.ResponsiblePerson
	}
	if p.Participants != nil {
		in.Participants = *p.Participants
	}
	return in
}

// Request запрос владельца на изменение бронирования
type Request struct {
	ID     int64
	Caller domain.Identity
	Patch  Patch
}
