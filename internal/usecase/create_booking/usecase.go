package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/internal/infra/events"
	venueClient "github.com/m04kA/PlayCourt-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/PlayCourt-BookingService/pkg/txmanager"
)

// Таймаут публикации события после коммита: родительский контекст запроса
// к этому моменту уже может быть отменен
const emitTimeout = 3 * time.Second

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	slotBlockRepo SlotBlockRepository
	venueClient   VenueServiceClient
	txManager     TransactionManager
	eventSink     EventSink
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotBlockRepo SlotBlockRepository,
	venueClient VenueServiceClient,
	txManager TransactionManager,
	eventSink EventSink,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		slotBlockRepo: slotBlockRepo,
		venueClient:   venueClient,
		txManager:     txManager,
		eventSink:     eventSink,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка вместимости и вставка выполняются атомарно в сериализуемой
// транзакции с блокировкой подтвержденных бронирований слота (FOR UPDATE):
// на слот с N кортами никогда не может быть создано больше N подтвержденных
// бронирований, сколько бы запросов ни пришло одновременно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, venue=%d, date=%s, time=%s",
		req.UserID, req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем площадку с конфигурацией расписания
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Конвертируем конфигурацию в доменную модель
	cfg, err := venue.ToDomainConfig()
	if err != nil {
		uc.logger.Error("CreateBooking: invalid schedule config for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	// 5. Разворачиваем расписание и находим запрошенный слот.
	// Время начала вне сетки или несовпадающая длительность - это один
	// и тот же случай: такого слота в расписании нет.
	slots, err := domain.ResolveSlots(cfg, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve slots for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	slot := domain.FindSlot(slots, req.StartTime)
	if slot == nil || slot.DurationMinutes != req.DurationMinutes {
		uc.logger.Warn("CreateBooking: slot venue=%d date=%s time=%s duration=%d not found in schedule",
			req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)
		return nil, ErrSlotNotFound
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Проверяем, что слот не заблокирован менеджером
		blocks, err := uc.slotBlockRepo.ListForDate(txCtx, req.VenueID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list slot blocks: %v", err)
			return fmt.Errorf("%w: failed to list slot blocks: %w", ErrInternal, err)
		}
		if _, blocked := blocks[req.StartTime]; blocked {
			uc.logger.Warn("CreateBooking: slot venue=%d date=%s time=%s is blocked",
				req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotBlocked
		}

		// 6.2. Берем подтвержденные бронирования слота с блокировкой (FOR UPDATE)
		confirmed, err := uc.bookingRepo.GetConfirmedForSlot(txCtx, req.VenueID, req.Date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get confirmed bookings: %v", err)
			return fmt.Errorf("%w: failed to get confirmed bookings: %w", ErrInternal, err)
		}

		// 6.3. Проверяем вместимость: не больше courtCount подтвержденных
		// бронирований на слот. Вместимость проверяется раньше дубликата:
		// на полный слот всегда отвечаем "слот занят", даже если одно из
		// бронирований принадлежит самому пользователю
		if len(confirmed) >= slot.TotalCourts {
			uc.logger.Warn("CreateBooking: slot full, %d/%d courts taken", len(confirmed), slot.TotalCourts)
			return ErrSlotUnavailable
		}

		// 6.4. Проверяем дубликат: одно подтвержденное бронирование
		// пользователя на слот
		for _, b := range confirmed {
			if b.UserID == req.UserID {
				uc.logger.Warn("CreateBooking: user id=%d already has booking id=%d for this slot",
					req.UserID, b.ID)
				return ErrDuplicateBooking
			}
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d courts taken", len(confirmed), slot.TotalCourts)

		// 6.5. Создаем бронирование со снимком слота
		booking := &domain.Booking{
			UserID:          req.UserID,
			VenueID:         req.VenueID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: slot.DurationMinutes,
			Status:          domain.StatusConfirmed,
			// Снимок слота на момент бронирования
			Price:       slot.Price,
			TotalCourts: slot.TotalCourts,
			PlayerCount: req.PlayerCount,
			Visibility:  domain.Visibility(req.Visibility),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Временные проблемы хранилища (исчерпаны повторы сериализации,
		// не удалось открыть или закоммитить транзакцию, оборвалось
		// соединение с БД) отдаем отдельно: это единственный класс ошибок,
		// который клиенту имеет смысл повторить
		if errors.Is(err, txmanager.ErrRetriesExhausted) ||
			errors.Is(err, txmanager.ErrTxBegin) ||
			errors.Is(err, txmanager.ErrTxCommit) ||
			txmanager.IsConnectivityError(err) {
			uc.logger.Error("CreateBooking: storage unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 7. Публикуем событие после коммита, fire-and-forget: ошибка публикации
	// логируется, но не откатывает созданное бронирование
	uc.emitCreated(ctx, result)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		VenueID:         result.VenueID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Price:           result.Price,
		TotalCourts:     result.TotalCourts,
		PlayerCount:     result.PlayerCount,
		Visibility:      string(result.Visibility),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

func (uc *UseCase) emitCreated(ctx context.Context, booking *domain.Booking) {
	emitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emitTimeout)
	defer cancel()

	payload := events.BookingCreatedPayload{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		VenueID:     booking.VenueID,
		BookingDate: booking.BookingDate.Format(domain.DateFormat),
		StartTime:   string(booking.StartTime),
		PlayerCount: booking.PlayerCount,
		Visibility:  string(booking.Visibility),
		Price:       booking.Price,
	}

	key := fmt.Sprintf("%d", booking.ID)
	if err := uc.eventSink.Emit(emitCtx, events.EventBookingCreated, key, payload); err != nil {
		uc.logger.Warn("CreateBooking: failed to emit booking.created for id=%d: %v", booking.ID, err)
	}
}
