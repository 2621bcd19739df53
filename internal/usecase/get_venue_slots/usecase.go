package get_venue_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	venueClient "github.com/m04kA/PlayCourt-BookingService/internal/integrations/venueservice"
)

// UseCase use case для получения слотов площадки с актуальной доступностью
type UseCase struct {
	bookingRepo   BookingRepository
	slotBlockRepo SlotBlockRepository
	venueClient   VenueServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotBlockRepo SlotBlockRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		slotBlockRepo: slotBlockRepo,
		venueClient:   venueClient,
		logger:        logger,
	}
}

// Execute выполняет use case получения слотов.
// Сначала разворачивает конфигурацию площадки в слоты-кандидаты,
// затем накладывает подтвержденные бронирования и блокировки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetVenueSlots: venue=%d, date=%s", req.VenueID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetVenueSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку с конфигурацией расписания
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("GetVenueSlots: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetVenueSlots: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Конвертируем конфигурацию в доменную модель (с валидацией на границе)
	cfg, err := venue.ToDomainConfig()
	if err != nil {
		uc.logger.Error("GetVenueSlots: invalid schedule config for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	// 4. Разворачиваем конфигурацию в слоты-кандидаты
	slots, err := domain.ResolveSlots(cfg, req.Date)
	if err != nil {
		uc.logger.Error("GetVenueSlots: failed to resolve slots for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	// Пустая сетка - это либо закрытый день (выключенное переопределение),
	// либо рабочий день, в окно которого не помещается ни один слот.
	// Закрытой площадку показываем только в первом случае.
	if len(slots) == 0 {
		open, _, _ := cfg.HoursForDate(req.Date)
		if open {
			uc.logger.Warn("GetVenueSlots: venue id=%d is open on %s but no slot fits the operating window",
				req.VenueID, req.Date.Format(domain.DateFormat))
		} else {
			uc.logger.Info("GetVenueSlots: venue id=%d is closed on %s", req.VenueID, req.Date.Format(domain.DateFormat))
		}
		return &Response{
			VenueID: req.VenueID,
			Date:    req.Date,
			Open:    open,
			Slots:   []domain.Slot{},
		}, nil
	}

	// 5. Загружаем число подтвержденных бронирований по времени начала
	bookedCounts, err := uc.bookingRepo.CountConfirmedByStart(ctx, req.VenueID, req.Date)
	if err != nil {
		uc.logger.Error("GetVenueSlots: failed to count bookings for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	// 6. Загружаем блокировки слотов на дату
	blocks, err := uc.slotBlockRepo.ListForDate(ctx, req.VenueID, req.Date)
	if err != nil {
		uc.logger.Error("GetVenueSlots: failed to list slot blocks for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to list slot blocks: %v", ErrInternal, err)
	}

	// 7. Накладываем занятость и блокировки на слоты-кандидаты
	annotated := domain.AnnotateSlots(slots, bookedCounts, blocks)

	uc.logger.Info("GetVenueSlots: venue=%d, date=%s, slots=%d",
		req.VenueID, req.Date.Format(domain.DateFormat), len(annotated))

	return &Response{
		VenueID: req.VenueID,
		Date:    req.Date,
		Open:    true,
		Slots:   annotated,
	}, nil
}
