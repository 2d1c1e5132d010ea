package create_reservation

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

// Request запрос на создание бронирования от аутентифицированного пользователя
type Request struct {
	Caller domain.Identity
	Input  validator.Input
}
