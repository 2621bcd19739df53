package slotblocks

import (
	"context"
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// SlotBlockRepository интерфейс репозитория блокировок слотов
type SlotBlockRepository interface {
	Create(ctx context.Context, block *domain.SlotBlock) (*domain.SlotBlock, error)
	Delete(ctx context.Context, venueID int64, blockDate time.Time, startTime types.TimeString) error
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error)
}

// EventSink интерфейс для публикации доменных событий
type EventSink interface {
	Emit(ctx context.Context, eventType string, key string, payload interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
