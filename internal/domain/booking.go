package domain

import (
	"time"

	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Visibility controls whether a booking is shown to other players
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Booking represents a court booking in the system
type Booking struct {
	ID              int64
	UserID          int64
	VenueID         int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Snapshot of the slot at booking time
	Price       float64
	TotalCourts int // Court count of the venue when the booking was made
	PlayerCount int
	Visibility  Visibility

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking currently holds a court
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCompleted returns true if the booking has been completed by the sweep
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can still be cancelled.
// Only confirmed bookings are cancellable; cancelled and completed are terminal.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// StartDateTime combines the booking date and start time into a single moment
func (b *Booking) StartDateTime(loc *time.Location) (time.Time, error) {
	return b.StartTime.OnDate(b.BookingDate, loc)
}

// VenueBookingsFilter фильтр для получения бронирований площадки
type VenueBookingsFilter struct {
	VenueID          int64          // Обязательный параметр
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
