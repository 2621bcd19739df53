package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetConfirmedForSlot(ctx context.Context, venueID int64, bookingDate time.Time, startTime types.TimeString) ([]*domain.Booking, error)
}

// SlotBlockRepository интерфейс репозитория блокировок слотов
type SlotBlockRepository interface {
	ListForDate(ctx context.Context, venueID int64, blockDate time.Time) (map[types.TimeString]domain.SlotBlock, error)
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventSink интерфейс для публикации доменных событий
type EventSink interface {
	Emit(ctx context.Context, eventType string, key string, payload interface{}) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
