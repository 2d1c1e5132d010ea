package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// FilterInput параметры выборки из query string. Пустая строка означает отсутствие фильтра.
type FilterInput struct {
	Date  string
	Floor string
	Room  string
	Shift string

	// DateRequired делает дату обязательной (запрос доступности)
	DateRequired bool
}

// ParseFilter разбирает параметры выборки в доменный фильтр.
// Некорректные значения не игнорируются, а возвращаются как ValidationErrors.
func ParseFilter(in FilterInput) (domain.ReservationFilter, error) {
	var (
		filter domain.ReservationFilter
		errs   ValidationErrors
	)

	if date := strings.TrimSpace(in.Date); date != "" {
		parsed, err := domain.ParseDate(date)
		if err != nil {
			errs = append(errs, ValidationError{Field: "date", Message: "date must be a valid calendar date in YYYY-MM-DD format"})
		} else {
			filter.Date = &parsed
		}
	} else if in.DateRequired {
		errs = append(errs, ValidationError{Field: "date", Message: "date is required"})
	}

	if raw := strings.TrimSpace(in.Floor); raw != "" {
		n, err := strconv.Atoi(raw)
		floor := domain.Floor(n)
		if err != nil || !floor.Valid() {
			errs = append(errs, ValidationError{
				Field:   "floor",
				Message: fmt.Sprintf("floor must be an integer between %d and %d", domain.MinFloor, domain.MaxFloor),
			})
		} else {
			filter.Floor = &floor
		}
	}

	if raw := strings.TrimSpace(in.Room); raw != "" {
		n, err := strconv.Atoi(raw)
		room := domain.Room(n)
		if err != nil || !room.Valid() {
			errs = append(errs, ValidationError{
				Field:   "room",
				Message: fmt.Sprintf("room must be an integer between %d and %d", domain.MinRoom, domain.MaxRoom),
			})
		} else {
			filter.Room = &room
		}
	}

	if raw := strings.TrimSpace(in.Shift); raw != "" {
		shift, ok := domain.ParseShift(raw)
		if !ok {
			errs = append(errs, ValidationError{Field: "shift", Message: fmt.Sprintf("shift must be one of: %s", shiftNames())})
		} else {
			filter.Shift = &shift
		}
	}

	if len(errs) > 0 {
		return domain.ReservationFilter{}, errs
	}
	return filter, nil
}
