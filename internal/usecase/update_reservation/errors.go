package update_reservation

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("update_reservation: internal error")
)
