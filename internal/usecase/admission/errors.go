package admission

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrSlotConflict возвращается, когда запрошенные слоты уже заняты на том же ключе
	ErrSlotConflict = errors.New("admission: requested slots are already reserved")

	// ErrRepository возвращается при ошибке хранилища или блокировки
	ErrRepository = errors.New("admission: repository error")
)

// ConflictError отказ в допуске с перечнем пересекающихся слотов
type ConflictError struct {
	Key   domain.Key
	Slots []domain.Slot
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: key=%s slots=[%s]", ErrSlotConflict, e.Key, strings.Join(domain.SlotStrings(e.Slots), ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}
