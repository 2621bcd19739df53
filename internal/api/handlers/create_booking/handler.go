package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PlayCourt-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayCourt-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/PlayCourt-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgVenueNotFound      = "площадка не найдена"
	msgSlotNotFound       = "временной слот не найден в расписании площадки"
	msgSlotBlocked        = "временной слот заблокирован площадкой"
	msgSlotUnavailable    = "все корты на этот слот уже забронированы"
	msgDuplicateBooking   = "у вас уже есть бронирование на этот слот"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgConfigInvalid      = "некорректная конфигурация расписания площадки"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: venue_id=%d, date=%s, time=%s",
				req.VenueID, req.BookingDate, req.StartTime)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotBlocked):
			h.logger.Warn("POST /bookings - Slot blocked: venue_id=%d, date=%s, time=%s",
				req.VenueID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotBlocked)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot fully booked: venue_id=%d, date=%s, time=%s",
				req.VenueID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, venue_id=%d, error=%v",
				userID, req.VenueID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrConfigInvalid):
			h.logger.Error("POST /bookings - Invalid schedule config: venue_id=%d, error=%v", req.VenueID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgConfigInvalid)

		case errors.Is(err, createBooking.ErrStorageUnavailable):
			h.logger.Error("POST /bookings - Storage unavailable: user_id=%d, venue_id=%d, error=%v",
				userID, req.VenueID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, venue_id=%d, error=%v",
				userID, req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, venue_id=%d",
		result.ID, userID, req.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
