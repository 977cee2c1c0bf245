package delivery

import (
	"net/http"

	"rcc-backend/internal/bookings/domain"
	"rcc-backend/internal/bookings/usecase"

	"github.com/gin-gonic/gin"
)

type BookingsHandler struct {
	bookingsUsecase usecase.BookingsUsecase
}

// NewBookingsHandler accepts a nil usecase when no service-account key
// is configured; the endpoint then serves an empty, non-live feed.
func NewBookingsHandler(bookingsUsecase usecase.BookingsUsecase) *BookingsHandler {
	return &BookingsHandler{
		bookingsUsecase: bookingsUsecase,
	}
}

// GetBookings handles GET /api/bookings.
func (h *BookingsHandler) GetBookings(c *gin.Context) {
	if h.bookingsUsecase == nil {
		c.JSON(http.StatusOK, domain.Result{Events: []domain.Event{}, Live: false})
		return
	}

	result := h.bookingsUsecase.Fetch(c.Request.Context())
	if result.Events == nil {
		result.Events = []domain.Event{}
	}
	c.JSON(http.StatusOK, result)
}
