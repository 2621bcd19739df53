package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayCourt-BookingService/pkg/ptr"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

func baseConfig() *VenueScheduleConfig {
	return &VenueScheduleConfig{
		VenueID:             1,
		OpenTime:            "07:00",
		CloseTime:           "19:00",
		SlotDurationMinutes: 30,
		BufferMinutes:       0,
		CourtCount:          3,
		BasePrice:           750,
		PeakPrice:           ptr.Ptr(600.0),
		PeakWindows:         []PeakWindow{{StartHour: 12, EndHour: 15}},
	}
}

// Вторник, без переопределений
var tuesday = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func TestResolveSlots(t *testing.T) {
	cfg := baseConfig()

	slots, err := ResolveSlots(cfg, tuesday)
	require.NoError(t, err)

	// 07:00-19:00 с шагом 30 минут: 24 слота, последний 18:30
	require.Len(t, slots, 24)
	assert.Equal(t, types.TimeString("07:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("18:30"), slots[23].StartTime)

	for _, slot := range slots {
		assert.Equal(t, 30, slot.DurationMinutes)
		assert.Equal(t, 3, slot.TotalCourts)
		assert.Equal(t, 3, slot.AvailableCourts)
		assert.Equal(t, SlotStatusAvailable, slot.Status)
	}

	// Пиковый тариф действует в [12:00, 15:00)
	byStart := make(map[types.TimeString]Slot)
	for _, slot := range slots {
		byStart[slot.StartTime] = slot
	}
	assert.Equal(t, 750.0, byStart["07:00"].Price)
	assert.Equal(t, 750.0, byStart["11:30"].Price)
	assert.Equal(t, 600.0, byStart["12:00"].Price)
	assert.Equal(t, 600.0, byStart["14:30"].Price)
	assert.Equal(t, 750.0, byStart["15:00"].Price)
	assert.Equal(t, 750.0, byStart["18:30"].Price)
}

func TestResolveSlots_Deterministic(t *testing.T) {
	cfg := baseConfig()

	first, err := ResolveSlots(cfg, tuesday)
	require.NoError(t, err)
	second, err := ResolveSlots(cfg, tuesday)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveSlots_Buffer(t *testing.T) {
	cfg := baseConfig()
	cfg.OpenTime = "10:00"
	cfg.CloseTime = "12:00"
	cfg.SlotDurationMinutes = 60
	cfg.BufferMinutes = 30

	slots, err := ResolveSlots(cfg, tuesday)
	require.NoError(t, err)

	// 10:00 (60 мин), следующий старт 11:30 не помещается до 12:00
	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("10:00"), slots[0].StartTime)
}

func TestResolveSlots_LastSlotFitsExactly(t *testing.T) {
	cfg := baseConfig()
	cfg.OpenTime = "10:00"
	cfg.CloseTime = "12:00"
	cfg.SlotDurationMinutes = 60
	cfg.BufferMinutes = 0

	slots, err := ResolveSlots(cfg, tuesday)
	require.NoError(t, err)

	// Слот 11:00-12:00 заканчивается ровно в закрытие и включается
	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("11:00"), slots[1].StartTime)
}

func TestResolveSlots_DayOverride(t *testing.T) {
	cfg := baseConfig()
	cfg.DayOverrides = map[time.Weekday]DaySchedule{
		time.Tuesday: {Enabled: true, OpenTime: "09:00", CloseTime: "11:00"},
	}

	slots, err := ResolveSlots(cfg, tuesday)
	require.NoError(t, err)

	require.Len(t, slots, 4)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), slots[3].StartTime)

	// Другие дни недели переопределение не затрагивает
	wednesday := tuesday.AddDate(0, 0, 1)
	slots, err = ResolveSlots(cfg, wednesday)
	require.NoError(t, err)
	assert.Len(t, slots, 24)
}

func TestResolveSlots_ClosedDay(t *testing.T) {
	cfg := baseConfig()
	cfg.DayOverrides = map[time.Weekday]DaySchedule{
		time.Tuesday: {Enabled: false},
	}

	slots, err := ResolveSlots(cfg, tuesday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestResolveSlots_NoPeakPrice(t *testing.T) {
	cfg := baseConfig()
	cfg.PeakPrice = nil

	slots, err := ResolveSlots(cfg, tuesday)
	require.NoError(t, err)

	for _, slot := range slots {
		assert.Equal(t, 750.0, slot.Price)
	}
}

func TestResolveSlots_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*VenueScheduleConfig)
	}{
		{name: "zero slot duration", mutate: func(c *VenueScheduleConfig) { c.SlotDurationMinutes = 0 }},
		{name: "negative buffer", mutate: func(c *VenueScheduleConfig) { c.BufferMinutes = -5 }},
		{name: "zero court count", mutate: func(c *VenueScheduleConfig) { c.CourtCount = 0 }},
		{name: "bad open time", mutate: func(c *VenueScheduleConfig) { c.OpenTime = "7am" }},
		{name: "inverted peak window", mutate: func(c *VenueScheduleConfig) {
			c.PeakWindows = []PeakWindow{{StartHour: 15, EndHour: 12}}
		}},
		{name: "open after close", mutate: func(c *VenueScheduleConfig) {
			c.OpenTime = "19:00"
			c.CloseTime = "07:00"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)

			_, err := ResolveSlots(cfg, tuesday)
			assert.ErrorIs(t, err, ErrConfigInvalid)
		})
	}
}

func TestFindSlot(t *testing.T) {
	cfg := baseConfig()
	slots, err := ResolveSlots(cfg, tuesday)
	require.NoError(t, err)

	slot := FindSlot(slots, "12:00")
	require.NotNil(t, slot)
	assert.Equal(t, 600.0, slot.Price)

	// Время вне сетки слотов
	assert.Nil(t, FindSlot(slots, "12:15"))
	assert.Nil(t, FindSlot(slots, "19:00"))
}
