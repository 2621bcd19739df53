package get_venue_slots

import (
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	getVenueSlots "github.com/m04kA/PlayCourt-BookingService/internal/usecase/get_venue_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	TotalCourts     int     `json:"totalCourts"`
	BookedCourts    int     `json:"bookedCourts"`
	AvailableCourts int     `json:"availableCourts"`
	Status          string  `json:"status"`
	BlockReason     *string `json:"blockReason,omitempty"`
}

// VenueSlotsResponse HTTP модель ответа со слотами площадки
type VenueSlotsResponse struct {
	VenueID int64          `json:"venueId"`
	Date    string         `json:"date"` // "2026-09-15"
	Open    bool           `json:"open"`
	Slots   []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры HTTP запроса в модель use case
func ToUseCaseRequest(venueID int64, dateStr string) (*getVenueSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getVenueSlots.Request{
		VenueID: venueID,
		Date:    date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getVenueSlots.Response) *VenueSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Price:           slot.Price,
			TotalCourts:     slot.TotalCourts,
			BookedCourts:    slot.BookedCourts,
			AvailableCourts: slot.AvailableCourts,
			Status:          string(slot.Status),
			BlockReason:     slot.BlockReason,
		}
	}

	return &VenueSlotsResponse{
		VenueID: resp.VenueID,
		Date:    resp.Date.Format(domain.DateFormat),
		Open:    resp.Open,
		Slots:   slots,
	}
}
