package get_availability

import "errors"

var (
	// ErrDateRequired возвращается, когда дата не указана
	ErrDateRequired = errors.New("date is required")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get_availability: internal error")
)
