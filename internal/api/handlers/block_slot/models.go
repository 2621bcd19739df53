package block_slot

import (
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/internal/service/slotblocks/models"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	Date      string  `json:"date"`      // "2026-09-15"
	StartTime string  `json:"startTime"` // "10:00"
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *BlockSlotRequest) ToServiceRequest(venueID, userID int64) (*models.BlockSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &models.BlockSlotRequest{
		UserID:    userID,
		VenueID:   venueID,
		Date:      date,
		StartTime: startTime,
		Reason:    r.Reason,
	}, nil
}
