package get_venue_slots

import (
	"context"

	getVenueSlots "github.com/m04kA/PlayCourt-BookingService/internal/usecase/get_venue_slots"
)

type GetVenueSlotsUseCase interface {
	Execute(ctx context.Context, req *getVenueSlots.Request) (*getVenueSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
