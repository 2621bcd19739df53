package get_venue_bookings

import (
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из параметров HTTP запроса.
// startDate/endDate парсятся из формата YYYY-MM-DD.
func ToServiceRequest(
	venueID int64,
	userID int64,
	startDateStr, endDateStr, status string,
	includeCancelled bool,
) (*models.GetVenueBookingsRequest, error) {
	req := &models.GetVenueBookingsRequest{
		UserID:           userID,
		VenueID:          venueID,
		IncludeCancelled: includeCancelled,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status != "" {
		req.Status = &status
	}

	return req, nil
}
