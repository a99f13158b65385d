package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/despachante/backend/internal/application/finance"
)

// CashbookHandler serves the cash statement (extrato)
type CashbookHandler struct {
	BaseHandler
	cashbookService *financeapp.CashbookService
}

// NewCashbookHandler creates a new CashbookHandler
func NewCashbookHandler(cashbookService *financeapp.CashbookService) *CashbookHandler {
	return &CashbookHandler{cashbookService: cashbookService}
}

// RegisterRoutes registers the cashbook routes
func (h *CashbookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cashbook/statement", h.Statement)
}

// Statement lists ledger entries in the period with totals
func (h *CashbookHandler) Statement(c *gin.Context) {
	var req financeapp.StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	statement, err := h.cashbookService.Statement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statement)
}
