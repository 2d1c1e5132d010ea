package get_availability

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Query область расчета занятости: дата обязательна, этаж и смена опциональны
type Query struct {
	Date  time.Time
	Floor *domain.Floor
	Shift *domain.Shift
}

// Occupancy занятые слоты одного бронирования без данных владельца
type Occupancy struct {
	Floor     int      `json:"floor"`
	Room      int      `json:"room"`
	Shift     string   `json:"shift"`
	TimeSlots []string `json:"time_slots"`
}

// SlotStatus состояние слота в сетке
type SlotStatus string

const (
	SlotOccupied  SlotStatus = "occupied"
	SlotAvailable SlotStatus = "available"
)

// GridSlot слот сетки с временными границами
type GridSlot struct {
	Label  string     `json:"label"`
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Status SlotStatus `json:"status"`
}

// GridCell все слоты одной комнаты в одной смене
type GridCell struct {
	Floor int        `json:"floor"`
	Room  int        `json:"room"`
	Shift string     `json:"shift"`
	Slots []GridSlot `json:"slots"`
}

// Grid сетка занятости на дату
type Grid struct {
	Date  string     `json:"date"`
	Cells []GridCell `json:"cells"`
}
