package domain

import (
	"time"

	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// SlotBlock is an administrative override making a slot unbookable
// regardless of capacity. Unique per (venue, date, start time).
type SlotBlock struct {
	ID        int64
	VenueID   int64
	BlockDate time.Time
	StartTime types.TimeString
	BlockedBy int64 // ID администратора площадки
	Reason    *string
	CreatedAt time.Time
}
