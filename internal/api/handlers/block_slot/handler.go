package block_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PlayCourt-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayCourt-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayCourt-BookingService/internal/service/slotblocks"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgVenueNotFound      = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgAlreadyBlocked     = "слот уже заблокирован"
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

// Handle POST /api/v1/venues/{venueId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/blocks - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /venues/{id}/blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель сервиса (с парсингом даты и времени)
	serviceReq, err := req.ToServiceRequest(venueID, userID)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/blocks - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Блокируем слот (сервис сам проверит права менеджера)
	result, err := h.service.Block(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slotblocks.ErrVenueNotFound):
			h.logger.Warn("POST /venues/{id}/blocks - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, slotblocks.ErrAccessDenied):
			h.logger.Warn("POST /venues/{id}/blocks - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slotblocks.ErrAlreadyBlocked):
			h.logger.Warn("POST /venues/{id}/blocks - Already blocked: venue_id=%d, date=%s, time=%s",
				venueID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgAlreadyBlocked)

		case errors.Is(err, slotblocks.ErrInvalidInput):
			h.logger.Warn("POST /venues/{id}/blocks - Invalid input: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /venues/{id}/blocks - Failed to block slot: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{id}/blocks - Slot blocked successfully: venue_id=%d, date=%s, time=%s, user_id=%d",
		venueID, req.Date, req.StartTime, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
