package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/PlayCourt-BookingService/pkg/ptr"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// Моки

type mockBookingRepo struct {
	createFn          func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	getConfirmedForFn func(ctx context.Context, venueID int64, bookingDate time.Time, startTime types.TimeString) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return m.createFn(ctx, booking)
}

func (m *mockBookingRepo) GetConfirmedForSlot(ctx context.Context, venueID int64, bookingDate time.Time, startTime types.TimeString) ([]*domain.Booking, error) {
	return m.getConfirmedForFn(ctx, venueID, bookingDate, startTime)
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

// mockTxManager сериализует транзакции мьютексом, имитируя serializable
// изоляцию для конкурентных тестов
type mockTxManager struct {
	mu sync.Mutex
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type mockEventSink struct {
	mu     sync.Mutex
	events []string
}

func (m *mockEventSink) Emit(_ context.Context, eventType string, _ string, _ interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, eventType)
	return nil
}

func (m *mockEventSink) Emitted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.events...)
}

type stubTimeProvider struct {
	now time.Time
}

func (p *stubTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Фикстуры

var (
	testNow  = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
)

func testVenue() *venueservice.Venue {
	return &venueservice.Venue{
		ID:         1,
		Name:       "Центр Падел",
		City:       "Москва",
		SportType:  "padel",
		ManagerIDs: []int64{900},
		Schedule: venueservice.ScheduleConfig{
			OpenTime:            "07:00",
			CloseTime:           "19:00",
			SlotDurationMinutes: 30,
			BufferMinutes:       0,
			CourtCount:          3,
			BasePrice:           750,
			PeakPrice:           ptr.Ptr(600.0),
			PeakWindows:         []venueservice.PeakWindow{{StartHour: 12, EndHour: 15}},
		},
	}
}

func validRequest() *Request {
	return &Request{
		UserID:          100,
		VenueID:         1,
		Date:            testDate,
		StartTime:       "10:00",
		DurationMinutes: 30,
		PlayerCount:     4,
		Visibility:      "public",
	}
}

func newTestUseCase(
	bookingRepo BookingRepository,
	blockRepo SlotBlockRepository,
	venueClient VenueServiceClient,
	sink EventSink,
) *UseCase {
	uc := NewUseCase(bookingRepo, blockRepo, venueClient, &mockTxManager{}, sink, noopLogger{})
	uc.timeProvider = &stubTimeProvider{now: testNow}
	return uc
}

func staticVenueClient() *mockVenueClient {
	return &mockVenueClient{
		getVenueFn: func(_ context.Context, _ int64) (*venueservice.Venue, error) {
			return testVenue(), nil
		},
	}
}

func emptyBlockRepo() *mockSlotBlockRepo {
	return &mockSlotBlockRepo{
		listForDateFn: func(_ context.Context, _ int64, _ time.Time) (map[types.TimeString]domain.SlotBlock, error) {
			return map[types.TimeString]domain.SlotBlock{}, nil
		},
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	var created *domain.Booking
	bookingRepo := &mockBookingRepo{
		getConfirmedForFn: func(_ context.Context, _ int64, _ time.Time, _ types.TimeString) ([]*domain.Booking, error) {
			return nil, nil
		},
		createFn: func(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
			created = b
			result := *b
			result.ID = 42
			result.CreatedAt = testNow
			result.UpdatedAt = testNow
			return &result, nil
		},
	}
	sink := &mockEventSink{}

	uc := newTestUseCase(bookingRepo, emptyBlockRepo(), staticVenueClient(), sink)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 750.0, resp.Price)
	assert.Equal(t, 3, resp.TotalCourts)

	// Снимок слота сохранен в бронировании
	require.NotNil(t, created)
	assert.Equal(t, domain.StatusConfirmed, created.Status)
	assert.Equal(t, 30, created.DurationMinutes)

	assert.Equal(t, []string{"booking.created"}, sink.Emitted())
}

func TestExecute_PeakPriceSnapshot(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		getConfirmedForFn: func(_ context.Context, _ int64, _ time.Time, _ types.TimeString) ([]*domain.Booking, error) {
			return nil, nil
		},
		createFn: func(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
			result := *b
			result.ID = 1
			return &result, nil
		},
	}

	uc := newTestUseCase(bookingRepo, emptyBlockRepo(), staticVenueClient(), &mockEventSink{})

	req := validRequest()
	req.StartTime = "14:30"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 600.0, resp.Price)
}

func TestExecute_SlotNotFound(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, emptyBlockRepo(), staticVenueClient(), &mockEventSink{})

	// Время вне сетки слотов
	req := validRequest()
	req.StartTime = "10:15"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	// Несовпадающая длительность - тоже не тот слот
	req = validRequest()
	req.DurationMinutes = 60
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	// За пределами рабочих часов
	req = validRequest()
	req.StartTime = "19:00"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotBlocked(t *testing.T) {
	blockRepo := &mockSlotBlockRepo{
		listForDateFn: func(_ context.Context, _ int64, _ time.Time) (map[types.TimeString]domain.SlotBlock, error) {
			return map[types.TimeString]domain.SlotBlock{
				"10:00": {VenueID: 1, StartTime: "10:00"},
			}, nil
		},
	}
	sink := &mockEventSink{}

	uc := newTestUseCase(&mockBookingRepo{}, blockRepo, staticVenueClient(), sink)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotBlocked)
	assert.Empty(t, sink.Emitted())
}

func TestExecute_SlotUnavailable(t *testing.T) {
	full := []*domain.Booking{
		{ID: 1, UserID: 201, Status: domain.StatusConfirmed},
		{ID: 2, UserID: 202, Status: domain.StatusConfirmed},
		{ID: 3, UserID: 203, Status: domain.StatusConfirmed},
	}
	bookingRepo := &mockBookingRepo{
		getConfirmedForFn: func(_ context.Context, _ int64, _ time.Time, _ types.TimeString) ([]*domain.Booking, error) {
			return full, nil
		},
	}

	uc := newTestUseCase(bookingRepo, emptyBlockRepo(), staticVenueClient(), &mockEventSink{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

// Полный слот отвечает "слот занят" даже когда одно из подтвержденных
// бронирований принадлежит самому пользователю: вместимость проверяется
// раньше дубликата
func TestExecute_FullSlotWithOwnBooking(t *testing.T) {
	full := []*domain.Booking{
		{ID: 1, UserID: 100, Status: domain.StatusConfirmed},
		{ID: 2, UserID: 202, Status: domain.StatusConfirmed},
		{ID: 3, UserID: 203, Status: domain.StatusConfirmed},
	}
	bookingRepo := &mockBookingRepo{
		getConfirmedForFn: func(_ context.Context, _ int64, _ time.Time, _ types.TimeString) ([]*domain.Booking, error) {
			return full, nil
		},
	}

	uc := newTestUseCase(bookingRepo, emptyBlockRepo(), staticVenueClient(), &mockEventSink{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.NotErrorIs(t, err, ErrDuplicateBooking)
}

func TestExecute_DuplicateBooking(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		getConfirmedForFn: func(_ context.Context, _ int64, _ time.Time, _ types.TimeString) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{ID: 7, UserID: 100, Status: domain.StatusConfirmed},
			}, nil
		},
	}

	uc := newTestUseCase(bookingRepo, emptyBlockRepo(), staticVenueClient(), &mockEventSink{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

// Обрыв соединения с БД внутри транзакции - временная недоступность
// хранилища (503), а не внутренняя ошибка
func TestExecute_ConnectionLossIsStorageUnavailable(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		getConfirmedForFn: func(_ context.Context, _ int64, _ time.Time, _ types.TimeString) ([]*domain.Booking, error) {
			return nil, fmt.Errorf("execute query: %w", &pq.Error{Code: "08006"})
		},
	}

	uc := newTestUseCase(bookingRepo, emptyBlockRepo(), staticVenueClient(), &mockEventSink{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestExecute_VenueNotFound(t *testing.T) {
	client := &mockVenueClient{
		getVenueFn: func(_ context.Context, _ int64) (*venueservice.Venue, error) {
			return nil, venueservice.ErrVenueNotFound
		},
	}

	uc := newTestUseCase(&mockBookingRepo{}, emptyBlockRepo(), client, &mockEventSink{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, emptyBlockRepo(), staticVenueClient(), &mockEventSink{})

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidConfig(t *testing.T) {
	client := &mockVenueClient{
		getVenueFn: func(_ context.Context, _ int64) (*venueservice.Venue, error) {
			venue := testVenue()
			venue.Schedule.CourtCount = 0
			return venue, nil
		},
	}

	uc := newTestUseCase(&mockBookingRepo{}, emptyBlockRepo(), client, &mockEventSink{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, emptyBlockRepo(), staticVenueClient(), &mockEventSink{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero user", mutate: func(r *Request) { r.UserID = 0 }},
		{name: "zero venue", mutate: func(r *Request) { r.VenueID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "bad start time", mutate: func(r *Request) { r.StartTime = "25:00" }},
		{name: "zero duration", mutate: func(r *Request) { r.DurationMinutes = 0 }},
		{name: "zero players", mutate: func(r *Request) { r.PlayerCount = 0 }},
		{name: "too many players", mutate: func(r *Request) { r.PlayerCount = 23 }},
		{name: "bad visibility", mutate: func(r *Request) { r.Visibility = "friends" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// Конкурентные запросы на один слот: подтверждается не больше бронирований,
// чем кортов на площадке
func TestExecute_ConcurrentCapacity(t *testing.T) {
	const (
		courts  = 3
		clients = 10
	)

	var (
		mu        sync.Mutex
		confirmed []*domain.Booking
		nextID    int64
	)

	bookingRepo := &mockBookingRepo{
		getConfirmedForFn: func(_ context.Context, _ int64, _ time.Time, _ types.TimeString) ([]*domain.Booking, error) {
			mu.Lock()
			defer mu.Unlock()
			return append([]*domain.Booking(nil), confirmed...), nil
		},
		createFn: func(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
			mu.Lock()
			defer mu.Unlock()
			nextID++
			result := *b
			result.ID = nextID
			confirmed = append(confirmed, &result)
			return &result, nil
		},
	}

	uc := newTestUseCase(bookingRepo, emptyBlockRepo(), staticVenueClient(), &mockEventSink{})

	var (
		wg        sync.WaitGroup
		successes int64
		conflicts int64
		countMu   sync.Mutex
	)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()

			req := validRequest()
			req.UserID = userID

			_, err := uc.Execute(context.Background(), req)

			countMu.Lock()
			defer countMu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotUnavailable):
				conflicts++
			}
		}(int64(1000 + i))
	}

	wg.Wait()

	assert.Equal(t, int64(courts), successes)
	assert.Equal(t, int64(clients-courts), conflicts)
	assert.Len(t, confirmed, courts)
}
