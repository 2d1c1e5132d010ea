package create_reservation

import "errors"

var (
	// ErrUnauthenticated возвращается, когда личность вызывающего не установлена
	ErrUnauthenticated = errors.New("caller is not authenticated")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_reservation: internal error")
)
