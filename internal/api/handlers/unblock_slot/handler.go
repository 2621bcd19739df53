package unblock_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/PlayCourt-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayCourt-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/internal/service/slotblocks"
	"github.com/m04kA/PlayCourt-BookingService/internal/service/slotblocks/models"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

const (
	msgInvalidVenueID    = "некорректный ID площадки"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgMissingDate       = "дата обязательна"
	msgMissingStartTime  = "время начала обязательно"
	msgInvalidDateOrTime = "некорректный формат даты или времени"
	msgVenueNotFound     = "площадка не найдена"
	msgBlockNotFound     = "блокировка не найдена"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service SlotBlockService
	logger  Logger
}

func NewHandler(service SlotBlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/venues/{venueId}/blocks
// Query params: date (required, YYYY-MM-DD), startTime (required, HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /venues/{id}/blocks - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /venues/{id}/blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем date и startTime из query параметров
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("DELETE /venues/{id}/blocks - Missing date: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	startTimeStr := query.Get("startTime")
	if startTimeStr == "" {
		h.logger.Warn("DELETE /venues/{id}/blocks - Missing start time: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingStartTime)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("DELETE /venues/{id}/blocks - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	startTime, err := types.NewTimeStringFromString(startTimeStr)
	if err != nil {
		h.logger.Warn("DELETE /venues/{id}/blocks - Invalid start time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	serviceReq := &models.UnblockSlotRequest{
		UserID:    userID,
		VenueID:   venueID,
		Date:      date,
		StartTime: startTime,
	}

	// Снимаем блокировку (сервис сам проверит права менеджера)
	if err := h.service.Unblock(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, slotblocks.ErrVenueNotFound):
			h.logger.Warn("DELETE /venues/{id}/blocks - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, slotblocks.ErrBlockNotFound):
			h.logger.Warn("DELETE /venues/{id}/blocks - Block not found: venue_id=%d, date=%s, time=%s",
				venueID, dateStr, startTimeStr)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, slotblocks.ErrAccessDenied):
			h.logger.Warn("DELETE /venues/{id}/blocks - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slotblocks.ErrInvalidInput):
			h.logger.Warn("DELETE /venues/{id}/blocks - Invalid input: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /venues/{id}/blocks - Failed to unblock slot: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /venues/{id}/blocks - Slot unblocked successfully: venue_id=%d, date=%s, time=%s, user_id=%d",
		venueID, dateStr, startTimeStr, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
