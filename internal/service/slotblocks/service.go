package slotblocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/internal/infra/events"
	blockRepo "github.com/m04kA/PlayCourt-BookingService/internal/infra/storage/slotblock"
	venueClient "github.com/m04kA/PlayCourt-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/PlayCourt-BookingService/internal/service/slotblocks/models"
)

// Таймаут публикации события: контекст запроса к этому моменту
// уже может быть отменен
const emitTimeout = 3 * time.Second

// Service сервис блокировок слотов. Блокировка снимает слот с продажи
// (техобслуживание корта, собственное мероприятие площадки), уже созданные
// бронирования при этом не затрагиваются.
type Service struct {
	blockRepo   SlotBlockRepository
	venueClient VenueServiceClient
	eventSink   EventSink
	logger      Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	blockRepo SlotBlockRepository,
	venueClient VenueServiceClient,
	eventSink EventSink,
	logger Logger,
) *Service {
	return &Service{
		blockRepo:   blockRepo,
		venueClient: venueClient,
		eventSink:   eventSink,
		logger:      logger,
	}
}

// Block блокирует слот. Доступно только менеджерам площадки.
// Повторная блокировка того же слота возвращает ErrAlreadyBlocked.
func (s *Service) Block(ctx context.Context, req *models.BlockSlotRequest) (*models.SlotBlockResponse, error) {
	s.logger.Info("Block: venue=%d, date=%s, time=%s, user=%d",
		req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.UserID)

	if err := validateBlockRequest(req); err != nil {
		s.logger.Warn("Block: validation failed: %v", err)
		return nil, err
	}

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	block := &domain.SlotBlock{
		VenueID:   req.VenueID,
		BlockDate: req.Date,
		StartTime: req.StartTime,
		BlockedBy: req.UserID,
		Reason:    req.Reason,
	}

	created, err := s.blockRepo.Create(ctx, block)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockAlreadyExists) {
			s.logger.Warn("Block: slot venue=%d date=%s time=%s is already blocked",
				req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrAlreadyBlocked
		}
		s.logger.Error("Block: repository error: %v", err)
		return nil, fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Block: successfully blocked slot, block id=%d", created.ID)

	s.emitBlockEvent(ctx, events.EventSlotBlocked, created)

	return models.FromDomainSlotBlock(created), nil
}

// Unblock снимает блокировку слота. Доступно только менеджерам площадки.
func (s *Service) Unblock(ctx context.Context, req *models.UnblockSlotRequest) error {
	s.logger.Info("Unblock: venue=%d, date=%s, time=%s, user=%d",
		req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.UserID)

	if err := validateUnblockRequest(req); err != nil {
		s.logger.Warn("Unblock: validation failed: %v", err)
		return err
	}

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return err
	}

	if err := s.blockRepo.Delete(ctx, req.VenueID, req.Date, req.StartTime); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Unblock: block venue=%d date=%s time=%s not found",
				req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrBlockNotFound
		}
		s.logger.Error("Unblock: repository error: %v", err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unblock: successfully unblocked slot venue=%d date=%s time=%s",
		req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime)

	s.emitBlockEvent(ctx, events.EventSlotUnblocked, &domain.SlotBlock{
		VenueID:   req.VenueID,
		BlockDate: req.Date,
		StartTime: req.StartTime,
		BlockedBy: req.UserID,
	})

	return nil
}

// Вспомогательные методы

func validateBlockRequest(req *models.BlockSlotRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxBlockReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}
	return nil
}

func validateUnblockRequest(req *models.UnblockSlotRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
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
		return nil
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of venue=%d", userID, venueID)
	return ErrAccessDenied
}

func (s *Service) emitBlockEvent(ctx context.Context, eventType string, block *domain.SlotBlock) {
	emitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emitTimeout)
	defer cancel()

	payload := events.SlotBlockPayload{
		VenueID:   block.VenueID,
		BlockDate: block.BlockDate.Format(domain.DateFormat),
		StartTime: string(block.StartTime),
		BlockedBy: block.BlockedBy,
		Reason:    block.Reason,
	}

	key := fmt.Sprintf("%d", block.VenueID)
	if err := s.eventSink.Emit(emitCtx, eventType, key, payload); err != nil {
		s.logger.Warn("emitBlockEvent: failed to emit %s for venue=%d: %v", eventType, block.VenueID, err)
	}
}
