package get_venue_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/PlayCourt-BookingService/pkg/ptr"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// Моки

type mockBookingRepo struct {
	countFn func(ctx context.Context, venueID int64, bookingDate time.Time) (map[types.TimeString]int, error)
}

func (m *mockBookingRepo) CountConfirmedByStart(ctx context.Context, venueID int64, bookingDate time.Time) (map[types.TimeString]int, error) {
	return m.countFn(ctx, venueID, bookingDate)
}

type mockSlotBlockRepo struct {
	listForDateFn func(ctx context.Context, venueID int64, blockDate time.Time) (map[types.TimeString]domain.SlotBlock, error)
}

func (m *mockSlotBlockRepo) ListForDate(ctx context.Context, venueID int64, blockDate time.Time) (map[types.TimeString]domain.SlotBlock, error) {
	return m.listForDateFn(ctx, venueID, blockDate)
}

type mockVenueClient struct {
	getVenueFn func(ctx context.Context, venueID int64) (*venueservice.Venue, error)
}

func (m *mockVenueClient) GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error) {
	return m.getVenueFn(ctx, venueID)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Фикстуры

// Вторник
var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func testVenue() *venueservice.Venue {
	return &venueservice.Venue{
		ID:        1,
		Name:      "Центр Падел",
		City:      "Москва",
		SportType: "padel",
		Schedule: venueservice.ScheduleConfig{
			OpenTime:            "09:00",
			CloseTime:           "12:00",
			SlotDurationMinutes: 60,
			BufferMinutes:       0,
			CourtCount:          2,
			BasePrice:           1000,
			PeakPrice:           ptr.Ptr(800.0),
			PeakWindows:         []venueservice.PeakWindow{{StartHour: 11, EndHour: 12}},
		},
	}
}

func staticVenueClient() *mockVenueClient {
	return &mockVenueClient{
		getVenueFn: func(_ context.Context, _ int64) (*venueservice.Venue, error) {
			return testVenue(), nil
		},
	}
}

func noBookings() *mockBookingRepo {
	return &mockBookingRepo{
		countFn: func(_ context.Context, _ int64, _ time.Time) (map[types.TimeString]int, error) {
			return map[types.TimeString]int{}, nil
		},
	}
}

func noBlocks() *mockSlotBlockRepo {
	return &mockSlotBlockRepo{
		listForDateFn: func(_ context.Context, _ int64, _ time.Time) (map[types.TimeString]domain.SlotBlock, error) {
			return map[types.TimeString]domain.SlotBlock{}, nil
		},
	}
}

// Тесты

func TestExecute_FullAvailability(t *testing.T) {
	uc := NewUseCase(noBookings(), noBlocks(), staticVenueClient(), noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: testDate})
	require.NoError(t, err)

	assert.True(t, resp.Open)
	require.Len(t, resp.Slots, 3)

	// 09:00 и 10:00 по базовому тарифу, 11:00 по пиковому
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, 1000.0, resp.Slots[0].Price)
	assert.Equal(t, 800.0, resp.Slots[2].Price)

	for _, slot := range resp.Slots {
		assert.Equal(t, 2, slot.AvailableCourts)
		assert.Equal(t, domain.SlotStatusAvailable, slot.Status)
	}
}

func TestExecute_OverlaysBookingsAndBlocks(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		countFn: func(_ context.Context, _ int64, _ time.Time) (map[types.TimeString]int, error) {
			return map[types.TimeString]int{
				"09:00": 1, // limited
				"10:00": 2, // full
			}, nil
		},
	}
	blockRepo := &mockSlotBlockRepo{
		listForDateFn: func(_ context.Context, _ int64, _ time.Time) (map[types.TimeString]domain.SlotBlock, error) {
			return map[types.TimeString]domain.SlotBlock{
				"11:00": {VenueID: 1, StartTime: "11:00", Reason: ptr.Ptr("турнир")},
			}, nil
		},
	}

	uc := NewUseCase(bookingRepo, blockRepo, staticVenueClient(), noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	assert.Equal(t, domain.SlotStatusLimited, resp.Slots[0].Status)
	assert.Equal(t, 1, resp.Slots[0].AvailableCourts)

	assert.Equal(t, domain.SlotStatusFull, resp.Slots[1].Status)
	assert.Equal(t, 0, resp.Slots[1].AvailableCourts)

	assert.Equal(t, domain.SlotStatusBlocked, resp.Slots[2].Status)
	assert.Equal(t, 0, resp.Slots[2].AvailableCourts)
	require.NotNil(t, resp.Slots[2].BlockReason)
	assert.Equal(t, "турнир", *resp.Slots[2].BlockReason)
}

func TestExecute_ClosedDay(t *testing.T) {
	client := &mockVenueClient{
		getVenueFn: func(_ context.Context, _ int64) (*venueservice.Venue, error) {
			venue := testVenue()
			venue.Schedule.DayOverrides = &venueservice.DayOverrides{
				Tuesday: &venueservice.DayOverride{Enabled: false},
			}
			return venue, nil
		},
	}

	// Репозитории не должны вызываться для закрытого дня
	bookingRepo := &mockBookingRepo{
		countFn: func(_ context.Context, _ int64, _ time.Time) (map[types.TimeString]int, error) {
			t.Fatal("unexpected CountConfirmedByStart call")
			return nil, nil
		},
	}

	uc := NewUseCase(bookingRepo, noBlocks(), client, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: testDate})
	require.NoError(t, err)

	assert.False(t, resp.Open)
	assert.Empty(t, resp.Slots)
}

// Рабочий день со слишком коротким окном - это не закрытая площадка:
// слотов нет, но Open остается true
func TestExecute_OpenDayWindowTooShortForSlot(t *testing.T) {
	client := &mockVenueClient{
		getVenueFn: func(_ context.Context, _ int64) (*venueservice.Venue, error) {
			venue := testVenue()
			venue.Schedule.OpenTime = "10:00"
			venue.Schedule.CloseTime = "10:30"
			venue.Schedule.SlotDurationMinutes = 60
			return venue, nil
		},
	}

	uc := NewUseCase(noBookings(), noBlocks(), client, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: testDate})
	require.NoError(t, err)

	assert.True(t, resp.Open)
	assert.Empty(t, resp.Slots)
}

func TestExecute_VenueNotFound(t *testing.T) {
	client := &mockVenueClient{
		getVenueFn: func(_ context.Context, _ int64) (*venueservice.Venue, error) {
			return nil, venueservice.ErrVenueNotFound
		},
	}

	uc := NewUseCase(noBookings(), noBlocks(), client, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: 404, Date: testDate})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_InvalidConfig(t *testing.T) {
	client := &mockVenueClient{
		getVenueFn: func(_ context.Context, _ int64) (*venueservice.Venue, error) {
			venue := testVenue()
			venue.Schedule.OpenTime = "9am"
			return venue, nil
		},
	}

	uc := NewUseCase(noBookings(), noBlocks(), client, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(noBookings(), noBlocks(), staticVenueClient(), noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{VenueID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
