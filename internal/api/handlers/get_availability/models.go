package get_availability

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_availability"
)

// queryFromFilter переносит в запрос доступности только дату, этаж и смену
func queryFromFilter(filter domain.ReservationFilter) getAvailability.Query {
	return getAvailability.Query{
		Date:  *filter.Date,
		Floor: filter.Floor,
		Shift: filter.Shift,
	}
}
