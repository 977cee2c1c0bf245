package delivery

import (
	"net/http"

	"rcc-backend/internal/enquiry/domain"
	"rcc-backend/internal/enquiry/usecase"

	"github.com/gin-gonic/gin"
)

type EnquiryHandler struct {
	enquiryUsecase usecase.EnquiryUsecase
}

// NewEnquiryHandler accepts a nil usecase when Gmail OAuth is not
// configured; the endpoint then degrades to an empty, non-live payload.
func NewEnquiryHandler(enquiryUsecase usecase.EnquiryUsecase) *EnquiryHandler {
	return &EnquiryHandler{
		enquiryUsecase: enquiryUsecase,
	}
}

// GetEnquiries handles GET /api/enquiries. Always 200; partial or total
// provider failure degrades the payload instead of erroring.
func (h *EnquiryHandler) GetEnquiries(c *gin.Context) {
	if h.enquiryUsecase == nil {
		c.JSON(http.StatusOK, gin.H{
			"emails":  []domain.Message{},
			"live":    false,
			"message": "Gmail OAuth not configured",
		})
		return
	}

	result := h.enquiryUsecase.Fetch(c.Request.Context())
	if result.Emails == nil {
		result.Emails = []domain.Message{}
	}
	c.JSON(http.StatusOK, result)
}
