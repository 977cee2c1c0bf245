package api

import (
	"net/http"
	"strings"

	accountsDelivery "rcc-backend/internal/accounts/delivery"
	authUsecase "rcc-backend/internal/auth/usecase"
	bookingsDelivery "rcc-backend/internal/bookings/delivery"
	enquiryDelivery "rcc-backend/internal/enquiry/delivery"
	stocksDelivery "rcc-backend/internal/stocks/delivery"
	syncDelivery "rcc-backend/internal/syncstore/delivery"
	weatherDelivery "rcc-backend/internal/weather/delivery"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	authUsecase     authUsecase.AuthUsecase
	enquiryHandler  *enquiryDelivery.EnquiryHandler
	syncHandler     *syncDelivery.SyncHandler
	accountsHandler *accountsDelivery.AccountsHandler
	stocksHandler   *stocksDelivery.StocksHandler
	bookingsHandler *bookingsDelivery.BookingsHandler
	weatherHandler  *weatherDelivery.WeatherHandler
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	enquiryHandler *enquiryDelivery.EnquiryHandler,
	syncHandler *syncDelivery.SyncHandler,
	accountsHandler *accountsDelivery.AccountsHandler,
	stocksHandler *stocksDelivery.StocksHandler,
	bookingsHandler *bookingsDelivery.BookingsHandler,
	weatherHandler *weatherDelivery.WeatherHandler,
) *Handler {
	return &Handler{
		authUsecase:     authUc,
		enquiryHandler:  enquiryHandler,
		syncHandler:     syncHandler,
		accountsHandler: accountsHandler,
		stocksHandler:   stocksHandler,
		bookingsHandler: bookingsHandler,
		weatherHandler:  weatherHandler,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions && !strings.HasPrefix(c.Request.URL.Path, "/api/sync") {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Tag every request so provider failures in the logs can be tied
	// back to the request that triggered them.
	r.Use(func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.enquiryHandler, h.syncHandler,
		h.accountsHandler, h.stocksHandler, h.bookingsHandler, h.weatherHandler)

	return r.Run(addr)
}
