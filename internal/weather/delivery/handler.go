package delivery

import (
	"net/http"

	"rcc-backend/internal/weather/usecase"

	"github.com/gin-gonic/gin"
)

type WeatherHandler struct {
	weatherUsecase usecase.WeatherUsecase
}

func NewWeatherHandler(weatherUsecase usecase.WeatherUsecase) *WeatherHandler {
	return &WeatherHandler{
		weatherUsecase: weatherUsecase,
	}
}

// GetWeather handles GET /api/weather.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	c.JSON(http.StatusOK, h.weatherUsecase.Fetch(c.Request.Context()))
}
