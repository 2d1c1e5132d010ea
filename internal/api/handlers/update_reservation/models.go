package update_reservation

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	updateReservation "github.com/m04kA/SMC-RoomBookingService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model; отсутствующие поля не меняются
type UpdateReservationRequest struct {
	Floor             *int               `json:"floor,omitempty"`
	Room              *int               `json:"room,omitempty"`
	Date              *string            `json:"date,omitempty"`
	Shift             *string            `json:"shift,omitempty"`
	TimeSlots         *handlers.SlotList `json:"time_slots,omitempty"`
	Reason            *string            `json:"reason,omitempty"`
	ResponsiblePerson *string            `json:"responsible_person,omitempty"`
	Participants      *int               `json:"participants,omitempty"`
}

// ToPatch конвертирует HTTP запрос в частичное обновление use case
func (r *UpdateReservationRequest) ToPatch() updateReservation.Patch {
	patch := updateReservation.Patch{
		Floor:             r.Floor,
		Room:              r.Room,
		Date:              r.Date,
		Shift:             r.Shift,
		Reason:            r.Reason,
		ResponsiblePerson: r.ResponsiblePerson,
		Participants:      r.Participants,
	}
	if r.TimeSlots != nil {
		slots := []string(*r.TimeSlots)
		patch.TimeSlots = &slots
	}
	return patch
}
