package unblock_slot

import (
	"context"

	"github.com/m04kA/PlayCourt-BookingService/internal/service/slotblocks/models"
)

type SlotBlockService interface {
	Unblock(ctx context.Context, req *models.UnblockSlotRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
