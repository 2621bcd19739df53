package slotblocks

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue not found")

	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = errors.New("slot block not found")

	// ErrAlreadyBlocked возвращается при повторной блокировке слота
	ErrAlreadyBlocked = errors.New("slot is already blocked")

	// ErrAccessDenied возвращается, когда пользователь не является менеджером площадки
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
