package get_venue_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PlayCourt-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayCourt-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayCourt-BookingService/internal/service/bookings"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVenueNotFound  = "площадка не найдена"
	msgForbidden      = "доступ запрещен"
	msgInvalidFilter  = "некорректные параметры фильтрации"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/bookings
// Query params: startDate, endDate, status, includeCancelled (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/bookings - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /venues/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем параметры фильтрации из query
	query := r.URL.Query()
	includeCancelled := query.Get("includeCancelled") == "true"

	serviceReq, err := ToServiceRequest(
		venueID,
		userID,
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("status"),
		includeCancelled,
	)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем бронирования площадки (сервис сам проверит права менеджера)
	result, err := h.service.GetVenueBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/bookings - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /venues/{id}/bookings - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/bookings - Invalid filter: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /venues/{id}/bookings - Failed to get bookings: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/bookings - Bookings retrieved successfully: venue_id=%d, user_id=%d, count=%d",
		venueID, userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
