package models

import (
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// BlockSlotRequest запрос на блокировку слота менеджером площадки
type BlockSlotRequest struct {
	UserID    int64            `json:"userId"`
	VenueID   int64            `json:"venueId"`
	Date      time.Time        `json:"date"`
	StartTime types.TimeString `json:"startTime"`
	Reason    *string          `json:"reason,omitempty"`
}

// UnblockSlotRequest запрос на снятие блокировки слота
type UnblockSlotRequest struct {
	UserID    int64            `json:"userId"`
	VenueID   int64            `json:"venueId"`
	Date      time.Time        `json:"date"`
	StartTime types.TimeString `json:"startTime"`
}

// SlotBlockResponse ответ с данными блокировки
type SlotBlockResponse struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venueId"`
	BlockDate string    `json:"blockDate"` // "2026-09-15"
	StartTime string    `json:"startTime"` // "10:00"
	BlockedBy int64     `json:"blockedBy"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainSlotBlock конвертирует domain модель в DTO
func FromDomainSlotBlock(b *domain.SlotBlock) *SlotBlockResponse {
	if b == nil {
		return nil
	}

	return &SlotBlockResponse{
		ID:        b.ID,
		VenueID:   b.VenueID,
		BlockDate: b.BlockDate.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		BlockedBy: b.BlockedBy,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}
