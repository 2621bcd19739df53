package create_booking

import (
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	createBooking "github.com/m04kA/PlayCourt-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID         int64  `json:"venueId"`
	BookingDate     string `json:"bookingDate"` // "2026-09-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	PlayerCount     int    `json:"playerCount"`
	Visibility      string `json:"visibility"` // public | private
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	VenueID         int64   `json:"venueId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Price           float64 `json:"price"`
	TotalCourts     int     `json:"totalCourts"`
	PlayerCount     int     `json:"playerCount"`
	Visibility      string  `json:"visibility"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		VenueID:         r.VenueID,
		Date:            bookingDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		PlayerCount:     r.PlayerCount,
		Visibility:      r.Visibility,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		VenueID:         resp.VenueID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Price:           resp.Price,
		TotalCourts:     resp.TotalCourts,
		PlayerCount:     resp.PlayerCount,
		Visibility:      resp.Visibility,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
