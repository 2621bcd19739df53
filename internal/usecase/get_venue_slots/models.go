package get_venue_slots

import (
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
)

// Request модель запроса доступных слотов площадки
type Request struct {
	VenueID int64     // ID площадки
	Date    time.Time // Дата (без времени)
}

// Response модель ответа со слотами на дату
type Response struct {
	VenueID int64         // ID площадки
	Date    time.Time     // Дата
	Open    bool          // Работает ли площадка в этот день
	Slots   []domain.Slot // Слоты с актуальной доступностью
}
