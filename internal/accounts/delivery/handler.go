package delivery

import (
	"net/http"

	"rcc-backend/internal/accounts/usecase"

	"github.com/gin-gonic/gin"
)

type AccountsHandler struct {
	accountsUsecase usecase.AccountsUsecase
}

func NewAccountsHandler(accountsUsecase usecase.AccountsUsecase) *AccountsHandler {
	return &AccountsHandler{
		accountsUsecase: accountsUsecase,
	}
}

// GetAccounts handles GET /api/accounts.
func (h *AccountsHandler) GetAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, h.accountsUsecase.Fetch(c.Request.Context()))
}
