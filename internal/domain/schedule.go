package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

var (
	// ErrConfigInvalid возвращается при некорректной конфигурации расписания площадки
	ErrConfigInvalid = errors.New("domain: invalid venue schedule config")
)

// PeakWindow is a half-open hour range [StartHour, EndHour) during which
// the peak price applies
type PeakWindow struct {
	StartHour int
	EndHour   int
}

// Contains returns true if the given hour falls inside the window
func (w PeakWindow) Contains(hour int) bool {
	return hour >= w.StartHour && hour < w.EndHour
}

// DaySchedule is a per-weekday override of the venue operating hours.
// A present but disabled override means the venue is closed that day.
type DaySchedule struct {
	Enabled   bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// VenueScheduleConfig is an immutable-per-request snapshot of the venue's
// booking configuration. Owned by the venue record, read-only here.
type VenueScheduleConfig struct {
	VenueID             int64
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	BufferMinutes       int
	CourtCount          int
	BasePrice           float64
	PeakPrice           *float64
	PeakWindows         []PeakWindow
	// Keyed by explicit weekday, never by locale-formatted strings
	DayOverrides map[time.Weekday]DaySchedule
}

// Validate fails fast on configuration that would make slot generation
// meaningless. Called at the config-load boundary, not at use-sites.
func (c *VenueScheduleConfig) Validate() error {
	if c.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slot duration must be positive, got %d", ErrConfigInvalid, c.SlotDurationMinutes)
	}
	if c.BufferMinutes < 0 {
		return fmt.Errorf("%w: buffer must not be negative, got %d", ErrConfigInvalid, c.BufferMinutes)
	}
	if c.CourtCount <= 0 {
		return fmt.Errorf("%w: court count must be positive, got %d", ErrConfigInvalid, c.CourtCount)
	}
	if err := c.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrConfigInvalid, err)
	}
	if err := c.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrConfigInvalid, err)
	}
	for _, w := range c.PeakWindows {
		if w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour {
			return fmt.Errorf("%w: peak window [%d, %d)", ErrConfigInvalid, w.StartHour, w.EndHour)
		}
	}
	for day, override := range c.DayOverrides {
		if !override.Enabled {
			continue
		}
		if err := override.OpenTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s open time: %v", ErrConfigInvalid, day, err)
		}
		if err := override.CloseTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s close time: %v", ErrConfigInvalid, day, err)
		}
	}
	return nil
}

// HoursForDate resolves the effective operating hours for a calendar date.
// Returns open=false if the venue is closed that day (disabled override).
func (c *VenueScheduleConfig) HoursForDate(date time.Time) (open bool, openTime, closeTime types.TimeString) {
	if override, ok := c.DayOverrides[date.Weekday()]; ok {
		if !override.Enabled {
			return false, "", ""
		}
		return true, override.OpenTime, override.CloseTime
	}
	return true, c.OpenTime, c.CloseTime
}

// PriceForHour returns the peak price if the hour falls into any peak window
// and a peak price is configured, otherwise the base price
func (c *VenueScheduleConfig) PriceForHour(hour int) float64 {
	if c.PeakPrice == nil {
		return c.BasePrice
	}
	for _, w := range c.PeakWindows {
		if w.Contains(hour) {
			return *c.PeakPrice
		}
	}
	return c.BasePrice
}
