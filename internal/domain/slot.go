package domain

import "github.com/m04kA/PlayCourt-BookingService/pkg/types"

// SlotStatus classifies the availability of a slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusLimited   SlotStatus = "limited"
	SlotStatusFull      SlotStatus = "full"
	SlotStatusBlocked   SlotStatus = "blocked"
)

// Slot is a derived, never-persisted projection of bookings and blocks
// over the venue schedule. Identified by (venue, date, start time).
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Price           float64
	TotalCourts     int
	BookedCourts    int
	AvailableCourts int
	Status          SlotStatus
	BlockReason     *string
}

// IsBookable returns true if at least one court can still be booked
func (s *Slot) IsBookable() bool {
	return s.Status == SlotStatusAvailable || s.Status == SlotStatusLimited
}
