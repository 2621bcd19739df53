package get_venue_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PlayCourt-BookingService/internal/api/handlers"
	getVenueSlots "github.com/m04kA/PlayCourt-BookingService/internal/usecase/get_venue_slots"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVenueNotFound  = "площадка не найдена"
	msgConfigInvalid  = "некорректная конфигурация расписания площадки"
)

type Handler struct {
	useCase GetVenueSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetVenueSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем venueId из URL
	venueIDStr := vars["venueId"]
	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/slots - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/slots - Missing date: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(venueID, dateStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getVenueSlots.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/slots - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getVenueSlots.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/slots - Invalid input: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getVenueSlots.ErrConfigInvalid):
			h.logger.Error("GET /venues/{id}/slots - Invalid schedule config: venue_id=%d, error=%v", venueID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgConfigInvalid)

		default:
			h.logger.Error("GET /venues/{id}/slots - Failed to get slots: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /venues/{id}/slots - Slots retrieved successfully: venue_id=%d, date=%s, slots_count=%d",
		venueID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
