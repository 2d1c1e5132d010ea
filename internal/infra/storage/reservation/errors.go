package reservation

import (
	"errors"

	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = storage.ErrReservationNotFound

	// ErrSlotTaken возвращается при нарушении уникальности (floor, room, date, shift, slot)
	ErrSlotTaken = storage.ErrSlotTaken

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")

	// ErrEncodeSlots возвращается, когда список слотов не удалось сериализовать
	ErrEncodeSlots = errors.New("reservation.repository: failed to encode time slots")
)
