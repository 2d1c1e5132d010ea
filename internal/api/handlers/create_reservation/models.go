package create_reservation

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Floor             int               `json:"floor"`
	Room              int               `json:"room"`
	Date              string            `json:"date"`  // "2025-10-15"
	Shift             string            `json:"shift"` // Morning | Afternoon | Night
	TimeSlots         handlers.SlotList `json:"time_slots"`
	Reason            string            `json:"reason"`
	ResponsiblePerson string            `json:"responsible_person"`
	Participants      int               `json:"participants"`
}

// ToInput конвертирует HTTP запрос во вход валидатора
func (r *CreateReservationRequest) ToInput() validator.Input {
	return validator.Input{
		Floor:             r.Floor,
		Room:              r.Room,
		Date:              r.Date,
		Shift:             r.Shift,
		TimeSlots:         r.TimeSlots,
		Reason:            r.Reason,
		ResponsiblePerson: r.ResponsiblePerson,
		Participants:      r.Participants,
	}
}
