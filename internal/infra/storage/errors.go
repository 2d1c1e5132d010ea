// Package storage содержит ошибки, общие для всех реализаций хранилища бронирований.
package storage

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("storage: reservation not found")

	// ErrSlotTaken возвращается, когда запись нарушила бы эксклюзивность слота
	ErrSlotTaken = errors.New("storage: slot already taken")
)
