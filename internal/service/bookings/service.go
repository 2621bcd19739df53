package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/PlayCourt-BookingService/internal/infra/storage/booking"
	venueClient "github.com/m04kA/PlayCourt-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/PlayCourt-BookingService/internal/service/bookings/models"
)

// Таймаут публикации события: контекст запроса к этому моменту
// уже может быть отменен
const emitTimeout = 3 * time.Second

// Service сервис для работы с бронированиями: чтение истории
// и отмена с расчетом возврата
type Service struct {
	bookingRepo  BookingRepository
	venueClient  VenueServiceClient
	eventSink    EventSink
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	venueClient VenueServiceClient,
	eventSink EventSink,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		venueClient:  venueClient,
		eventSink:    eventSink,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является менеджером площадки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetVenueBookings получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых бронирований
// Доступно только менеджерам площадки
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetVenueBookings: fetching bookings for venue=%d, user=%d", req.VenueID, req.UserID)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueBookings: successfully fetched %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и рассчитывает возврат по фиксированной
// таблице: 24 часа до начала - 100%, 12 - 75%, 6 - 50%, 2 - 25%, меньше - 0%.
// Пользователь может отменить своё бронирование, менеджер - любое
// бронирование своей площадки. Повторная отмена безопасна: запись
// обновляется только из статуса confirmed, возврат не начисляется дважды.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	// Валидация причины отмены
	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return nil, fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return nil, err
	}

	// Проверяем статус: отменять можно только подтвержденные бронирования
	if booking.IsCancelled() {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", bookingID)
		return nil, ErrAlreadyCancelled
	}
	if booking.IsCompleted() {
		s.logger.Warn("Cancel: booking id=%d is already completed", bookingID)
		return nil, ErrBookingCompleted
	}

	// Проверяем, что слот еще не начался
	now := s.timeProvider.Now()
	start, err := booking.StartDateTime(now.Location())
	if err != nil {
		s.logger.Error("Cancel: failed to compute start time for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - failed to compute start time: %v", ErrInternal, err)
	}
	if !start.After(now) {
		s.logger.Warn("Cancel: booking id=%d start time %s is not in the future", bookingID, start)
		return nil, ErrPastBooking
	}

	// Рассчитываем возврат по времени до начала слота
	refundPercent := domain.RefundPercent(start.Sub(now))
	refundAmount := domain.RefundAmount(booking.Price, refundPercent)

	// Отменяем бронирование. Запись обновляется только из статуса confirmed:
	// при конкурентной отмене одна из сторон получит ErrAlreadyCancelled
	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrNotCancellable) {
			s.logger.Warn("Cancel: booking id=%d was cancelled concurrently", bookingID)
			return nil, ErrAlreadyCancelled
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d, refund %d%% (%.2f)",
		bookingID, refundPercent, refundAmount)

	// Публикуем событие fire-and-forget
	s.emitCancelled(ctx, booking, refundPercent, refundAmount, req.CancellationReason)

	return &models.CancelBookingResponse{
		ID:               bookingID,
		Status:           string(domain.StatusCancelled),
		RefundPercentage: refundPercent,
		RefundAmount:     refundAmount,
	}, nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование или если он менеджер площадки
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if booking.UserID == userID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером площадки
	if err := s.checkManagerAccess(ctx, booking.VenueID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером площадки
func (s *Service) checkManagerAccess(ctx context.Context, venueID int64, userID int64) error {
	venue, err := s.venueClient.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("checkManagerAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get venue: %v", ErrInternal, err)
	}

	if venue.IsManager(userID) {
		s.logger.Info("checkManagerAccess: user=%d is manager of venue=%d", userID, venueID)
		return nil
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of venue=%d", userID, venueID)
	return ErrAccessDenied
}

func (s *Service) emitCancelled(ctx context.Context, booking *domain.Booking, refundPercent int, refundAmount float64, reason *string) {
	emitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emitTimeout)
	defer cancel()

	payload := events.BookingCancelledPayload{
		BookingID:        booking.ID,
		UserID:           booking.UserID,
		VenueID:          booking.VenueID,
		BookingDate:      booking.BookingDate.Format(domain.DateFormat),
		StartTime:        string(booking.StartTime),
		RefundPercentage: refundPercent,
		RefundAmount:     refundAmount,
		Reason:           reason,
	}

	key := fmt.Sprintf("%d", booking.ID)
	if err := s.eventSink.Emit(emitCtx, events.EventBookingCancelled, key, payload); err != nil {
		s.logger.Warn("Cancel: failed to emit booking.cancelled for id=%d: %v", booking.ID, err)
	}
}
