package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// ReservationResponse представление бронирования в API
type ReservationResponse struct {
	ID                int64     `json:"id"`
	UserID            string    `json:"user_id"`
	UserEmail         string    `json:"user_email"`
	UserName          string    `json:"user_name"`
	Floor             int       `json:"floor"`
	Room              int       `json:"room"`
	Date              string    `json:"date"`
	Shift             string    `json:"shift"`
	TimeSlots         []string  `json:"time_slots"`
	Reason            string    `json:"reason"`
	ResponsiblePerson string    `json:"responsible_person"`
	Participants      int       `json:"participants"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// FromDomainReservation конвертирует доменную модель в ответ API
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                r.ID,
		UserID:            r.Owner.UserID,
		UserEmail:         r.Owner.Email,
		UserName:          r.Owner.DisplayName,
		Floor:             int(r.Floor),
		Room:              int(r.Room),
		Date:              r.Date.Format(domain.DateFormat),
		Shift:             string(r.Shift),
		TimeSlots:         domain.SlotStrings(r.TimeSlots),
		Reason:            r.Reason,
		ResponsiblePerson: r.ResponsiblePerson,
		Participants:      r.Participants,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список; пустой список сериализуется как []
func FromDomainReservationList(list []*domain.Reservation) []*ReservationResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomainReservation(r))
	}
	return out
}
