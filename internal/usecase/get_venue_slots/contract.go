package get_venue_slots

import (
	"context"
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountConfirmedByStart(ctx context.Context, venueID int64, bookingDate time.Time) (map[types.TimeString]int, error)
}

// SlotBlockRepository интерфейс репозитория блокировок слотов
type SlotBlockRepository interface {
	ListForDate(ctx context.Context, venueID int64, blockDate time.Time) (map[types.TimeString]domain.SlotBlock, error)
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
