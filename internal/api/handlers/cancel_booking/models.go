package cancel_booking

import (
	"github.com/m04kA/PlayCourt-BookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelBookingResponse HTTP response model с расчетом возврата
type CancelBookingResponse struct {
	ID               int64   `json:"id"`
	Status           string  `json:"status"`
	RefundPercentage int     `json:"refundPercentage"`
	RefundAmount     float64 `json:"refundAmount"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(userID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.CancelBookingResponse) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:               resp.ID,
		Status:           resp.Status,
		RefundPercentage: resp.RefundPercentage,
		RefundAmount:     resp.RefundAmount,
	}
}
