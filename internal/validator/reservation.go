// Package validator нормализует и проверяет запросы на бронирование до обращения к хранилищу.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const (
	tagShift     = "shift"
	tagShiftSlot = "shift_slot"

	// Алиасы диапазонов, раскрываются из констант domain в New
	tagFloor             = "floor_range"
	tagRoom              = "room_range"
	tagParticipants      = "participants_range"
	tagReason            = "reason_len"
	tagResponsiblePerson = "responsible_person_len"
)

// Input сырой запрос на создание или полную замену бронирования
type Input struct {
	Floor             int      `json:"floor" validate:"floor_range"`
	Room              int      `json:"room" validate:"room_range"`
	Date              string   `json:"date" validate:"required,datetime=2006-01-02"`
	Shift             string   `json:"shift" validate:"required,shift"`
	TimeSlots         []string `json:"time_slots" validate:"required,min=1,unique,dive,required"`
	Reason            string   `json:"reason" validate:"required,reason_len"`
	ResponsiblePerson string   `json:"responsible_person" validate:"required,responsible_person_len"`
	Participants      int      `json:"participants" validate:"participants_range"`
}

// InputFromReservation строит Input из сохраненного бронирования (основа для частичного обновления)
func InputFromReservation(r *domain.Reservation) Input {
	return Input{
		Floor:             int(r.Floor),
		Room:              int(r.Room),
		Date:              r.Date.Format(domain.DateFormat),
		Shift:             string(r.Shift),
		TimeSlots:         domain.SlotStrings(r.TimeSlots),
		Reason:            r.Reason,
		ResponsiblePerson: r.ResponsiblePerson,
		Participants:      r.Participants,
	}
}

// normalized обрезает пробелы и приводит алиасы смен к каноническому виду
func (in Input) normalized() Input {
	out := in
	out.Date = strings.TrimSpace(in.Date)
	out.Shift = strings.TrimSpace(in.Shift)
	if shift, ok := domain.ParseShift(out.Shift); ok {
		out.Shift = string(shift)
	}
	out.Reason = strings.TrimSpace(in.Reason)
	out.ResponsiblePerson = strings.TrimSpace(in.ResponsiblePerson)

	if in.TimeSlots != nil {
		out.TimeSlots = make([]string, len(in.TimeSlots))
		for i, s := range in.TimeSlots {
			out.TimeSlots[i] = strings.TrimSpace(s)
		}
	}
	return out
}

// ReservationValidator проверяет запросы на бронирование. Безопасен для конкурентного использования.
type ReservationValidator struct {
	validate *validator.Validate
}

// New создает валидатор и регистрирует правила смен и слотов
func New() (*ReservationValidator, error) {
	v := validator.New()

	// В ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterAlias(tagFloor, fmt.Sprintf("min=%d,max=%d", domain.MinFloor, domain.MaxFloor))
	v.RegisterAlias(tagRoom, fmt.Sprintf("min=%d,max=%d", domain.MinRoom, domain.MaxRoom))
	v.RegisterAlias(tagParticipants, fmt.Sprintf("min=%d,max=%d", domain.MinParticipants, domain.MaxParticipants))
	v.RegisterAlias(tagReason, fmt.Sprintf("max=%d", domain.MaxReasonLength))
	v.RegisterAlias(tagResponsiblePerson, fmt.Sprintf("max=%d", domain.MaxResponsiblePersonLength))

	if err := v.RegisterValidation(tagShift, validateShift); err != nil {
		return nil, fmt.Errorf("register %q validation: %w", tagShift, err)
	}

	v.RegisterStructValidation(validateShiftSlots, Input{})

	return &ReservationValidator{validate: v}, nil
}

func validateShift(fl validator.FieldLevel) bool {
	_, ok := domain.ParseShift(fl.Field().String())
	return ok
}

// validateShiftSlots проверяет, что все слоты принадлежат выбранной смене.
// Если смена не распознана, ошибку уже вернуло правило shift.
func validateShiftSlots(sl validator.StructLevel) {
	in := sl.Current().Interface().(Input)

	shift, ok := domain.ParseShift(in.Shift)
	if !ok {
		return
	}

	var invalid []string
	for _, label := range in.TimeSlots {
		if label == "" {
			continue
		}
		if !shift.HasSlot(domain.Slot(label)) {
			invalid = append(invalid, label)
		}
	}

	if len(invalid) > 0 {
		sl.ReportError(in.TimeSlots, "time_slots", "TimeSlots", tagShiftSlot, strings.Join(invalid, ", "))
	}
}

// Validate возвращает нормализованное бронирование (без id и владельца)
// или ValidationErrors со всеми нарушенными полями
func (v *ReservationValidator) Validate(in Input) (*domain.Reservation, error) {
	in = in.normalized()

	if err := v.validate.Struct(in); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, translateValidationErrors(in, validationErrs)
		}
		return nil, err
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, ValidationErrors{{Field: "date", Message: "date must be a valid calendar date in YYYY-MM-DD format"}}
	}
	shift, _ := domain.ParseShift(in.Shift)

	return &domain.Reservation{
		Floor:             domain.Floor(in.Floor),
		Room:              domain.Room(in.Room),
		Date:              date,
		Shift:             shift,
		TimeSlots:         domain.ToSlots(in.TimeSlots),
		Reason:            in.Reason,
		ResponsiblePerson: in.ResponsiblePerson,
		Participants:      in.Participants,
	}, nil
}

func translateValidationErrors(in Input, errs validator.ValidationErrors) ValidationErrors {
	validationErrors := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		message := err.Error()

		// Для алиасов Tag() вернет имя алиаса, правило лежит в ActualTag()
		switch err.ActualTag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			if err.Kind() == reflect.Slice {
				message = fmt.Sprintf("%s must contain at least %s item(s)", err.Field(), err.Param())
			} else {
				message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
			}
		case "max":
			if err.Kind() == reflect.String {
				message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
			} else {
				message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
			}
		case "datetime":
			message = fmt.Sprintf("%s must be a valid calendar date in YYYY-MM-DD format", err.Field())
		case "unique":
			message = fmt.Sprintf("%s must not contain duplicates", err.Field())
		case tagShift:
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), shiftNames())
		case tagShiftSlot:
			message = fmt.Sprintf("%s contains slots not available in shift %s: %s", err.Field(), in.Shift, err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

func shiftNames() string {
	shifts := domain.Shifts()
	names := make([]string, len(shifts))
	for i, s := range shifts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
