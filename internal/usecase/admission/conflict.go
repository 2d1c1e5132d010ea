package admission

import "github.com/m04kA/SMC-RoomBookingService/internal/domain"

// OccupiedSlots объединение слотов бронирований ключа, кроме excludeID (0 - никого не исключать)
func OccupiedSlots(existing []*domain.Reservation, excludeID int64) map[domain.Slot]struct{} {
	occupied := make(map[domain.Slot]struct{})
	for _, res := range existing {
		if excludeID != 0 && res.ID == excludeID {
			continue
		}
		for _, slot := range res.TimeSlots {
			occupied[slot] = struct{}{}
		}
	}
	return occupied
}

// Overlap возвращает запрошенные слоты, которые уже заняты, в порядке запроса
func Overlap(occupied map[domain.Slot]struct{}, requested []domain.Slot) []domain.Slot {
	var overlap []domain.Slot
	for _, slot := range requested {
		if _, ok := occupied[slot]; ok {
			overlap = append(overlap, slot)
		}
	}
	return overlap
}
