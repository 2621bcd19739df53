package get_venue_slots

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("get_venue_slots: venue not found")

	// ErrConfigInvalid возвращается при некорректной конфигурации расписания площадки
	ErrConfigInvalid = errors.New("get_venue_slots: invalid venue schedule config")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_venue_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_venue_slots: internal error")
)
