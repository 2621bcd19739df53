package events

import "time"

// Типы событий, публикуемых сервисом
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventSlotBlocked      = "slot.blocked"
	EventSlotUnblocked    = "slot.unblocked"
)

// Envelope общий конверт события
type Envelope struct {
	EventType  string      `json:"eventType"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// BookingCreatedPayload полезная нагрузка события booking.created.
// Потребители: провижининг чат-комнаты матча и отправка уведомлений.
type BookingCreatedPayload struct {
	BookingID   int64   `json:"bookingId"`
	UserID      int64   `json:"userId"`
	VenueID     int64   `json:"venueId"`
	BookingDate string  `json:"bookingDate"` // YYYY-MM-DD
	StartTime   string  `json:"startTime"`   // HH:MM
	PlayerCount int     `json:"playerCount"`
	Visibility  string  `json:"visibility"`
	Price       float64 `json:"price"`
}

// BookingCancelledPayload полезная нагрузка события booking.cancelled
type BookingCancelledPayload struct {
	BookingID        int64   `json:"bookingId"`
	UserID           int64   `json:"userId"`
	VenueID          int64   `json:"venueId"`
	BookingDate      string  `json:"bookingDate"`
	StartTime        string  `json:"startTime"`
	RefundPercentage int     `json:"refundPercentage"`
	RefundAmount     float64 `json:"refundAmount"`
	Reason           *string `json:"reason,omitempty"`
}

// SlotBlockPayload полезная нагрузка событий slot.blocked / slot.unblocked
type SlotBlockPayload struct {
	VenueID   int64   `json:"venueId"`
	BlockDate string  `json:"blockDate"`
	StartTime string  `json:"startTime"`
	BlockedBy int64   `json:"blockedBy"`
	Reason    *string `json:"reason,omitempty"`
}
