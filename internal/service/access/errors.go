package access

import "errors"

var (
	// ErrNotFound возвращается, когда бронирование не найдено
	ErrNotFound = errors.New("reservation not found")

	// ErrForbidden возвращается, когда вызывающий не является владельцем бронирования
	ErrForbidden = errors.New("only the owner may modify the reservation")

	// ErrUnauthenticated возвращается, когда личность вызывающего не установлена
	ErrUnauthenticated = errors.New("caller is not authenticated")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("access: internal error")
)
