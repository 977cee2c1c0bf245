package delivery

import (
	"net/http"
	"strings"

	"rcc-backend/internal/stocks/usecase"

	"github.com/gin-gonic/gin"
)

type StocksHandler struct {
	stocksUsecase usecase.StocksUsecase
}

func NewStocksHandler(stocksUsecase usecase.StocksUsecase) *StocksHandler {
	return &StocksHandler{
		stocksUsecase: stocksUsecase,
	}
}

// GetStocks handles GET /api/stocks?symbols=AAPL,QDEL&intraday=true.
// Without a symbols parameter the synced watchlist is used.
func (h *StocksHandler) GetStocks(c *gin.Context) {
	var symbols []string
	if raw := c.Query("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	} else {
		symbols = h.stocksUsecase.DefaultSymbols(c.Request.Context())
	}

	includeIntraday := c.Query("intraday") == "true"

	c.JSON(http.StatusOK, h.stocksUsecase.Fetch(c.Request.Context(), symbols, includeIntraday))
}
