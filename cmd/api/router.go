package api

import (
	"net/http"

	accountsDelivery "rcc-backend/internal/accounts/delivery"
	authDelivery "rcc-backend/internal/auth/delivery"
	authUsecase "rcc-backend/internal/auth/usecase"
	bookingsDelivery "rcc-backend/internal/bookings/delivery"
	enquiryDelivery "rcc-backend/internal/enquiry/delivery"
	stocksDelivery "rcc-backend/internal/stocks/delivery"
	syncDelivery "rcc-backend/internal/syncstore/delivery"
	weatherDelivery "rcc-backend/internal/weather/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUc authUsecase.AuthUsecase,
	enquiryHandler *enquiryDelivery.EnquiryHandler,
	syncHandler *syncDelivery.SyncHandler,
	accountsHandler *accountsDelivery.AccountsHandler,
	stocksHandler *stocksDelivery.StocksHandler,
	bookingsHandler *bookingsDelivery.BookingsHandler,
	weatherHandler *weatherDelivery.WeatherHandler,
) {
	authHandler := authDelivery.NewAuthHandler(authUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/auth/login", authHandler.Login)

		// Sync endpoints stay outside the session guard and fully CORS
		// open: the manual-balance bookmarklet posts here from
		// arbitrary origins without a token.
		sync := api.Group("/sync")
		sync.Use(syncDelivery.CORSMiddleware())
		{
			sync.GET("", syncHandler.GetValue)
			sync.POST("", syncHandler.SetValue)
			sync.OPTIONS("", func(c *gin.Context) {})
		}

		// Dashboard data (session-guarded when a password is set)
		data := api.Group("")
		data.Use(authDelivery.AuthMiddleware(authUc))
		{
			data.GET("/enquiries", enquiryHandler.GetEnquiries)
			data.GET("/accounts", accountsHandler.GetAccounts)
			data.GET("/stocks", stocksHandler.GetStocks)
			data.GET("/bookings", bookingsHandler.GetBookings)
			data.GET("/weather", weatherHandler.GetWeather)
		}
	}
}
