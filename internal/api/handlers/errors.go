package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

const (
	msgValidationFailed = "запрос не прошел проверку"
	msgSlotConflict     = "выбранные слоты уже заняты"
)

// RespondDomainError отвечает на ошибки валидации (400) и конфликта слотов (409).
// Возвращает false, если ошибка к ним не относится.
func RespondDomainError(w http.ResponseWriter, err error) bool {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field, Message: fe.Message})
		}
		RespondValidationError(w, msgValidationFailed, fields)
		return true
	}

	var conflict *admission.ConflictError
	if errors.As(err, &conflict) {
		RespondConflict(w, msgSlotConflict, domain.SlotStrings(conflict.Slots))
		return true
	}

	return false
}
