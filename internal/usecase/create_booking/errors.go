package create_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrConfigInvalid возвращается при некорректной конфигурации расписания площадки
	ErrConfigInvalid = errors.New("create_booking: invalid venue schedule config")

	// ErrSlotNotFound возвращается, когда запрошенного слота нет в расписании
	// (нет такого времени начала или не совпадает длительность)
	ErrSlotNotFound = errors.New("create_booking: slot not found in schedule")

	// ErrSlotBlocked возвращается, когда слот заблокирован менеджером площадки
	ErrSlotBlocked = errors.New("create_booking: slot is blocked")

	// ErrSlotUnavailable возвращается, когда все корты слота уже забронированы
	ErrSlotUnavailable = errors.New("create_booking: slot is fully booked")

	// ErrDuplicateBooking возвращается, когда у пользователя уже есть
	// подтвержденное бронирование на этот слот
	ErrDuplicateBooking = errors.New("create_booking: user already has a booking for this slot")

	// ErrInvalidDate возвращается при попытке бронирования на прошедшую дату
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStorageUnavailable возвращается, когда транзакция не может быть
	// выполнена из-за временных проблем с хранилищем
	ErrStorageUnavailable = errors.New("create_booking: storage temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
