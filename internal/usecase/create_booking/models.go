package create_booking

import (
	"time"

	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64            // ID пользователя
	VenueID         int64            // ID площадки
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	PlayerCount     int              // Количество игроков
	Visibility      string           // Видимость матча: public или private
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	UserID          int64            // ID пользователя
	VenueID         int64            // ID площадки
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Снимок слота на момент бронирования
	Price       float64 // Цена слота (с учетом пикового тарифа)
	TotalCourts int     // Количество кортов площадки
	PlayerCount int     // Количество игроков
	Visibility  string  // Видимость матча

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
