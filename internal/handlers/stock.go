// internal/handlers/stock.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/asterohype/backend/internal/services"
	"github.com/asterohype/backend/internal/utils"
)

type StockHandler struct {
	stockService *services.StockService
	notifier     services.StockNotifier
}

func NewStockHandler(stockService *services.StockService, notifier services.StockNotifier) *StockHandler {
	return &StockHandler{
		stockService: stockService,
		notifier:     notifier,
	}
}

// POST /stock-notifications
//
// Public: shoppers register interest without an account.
func (h *StockHandler) Subscribe(c *gin.Context) {
	var req services.StockSubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	notification, err := h.stockService.Subscribe(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.CreatedResponse(c, notification)
}

// GET /admin/stock-notifications
func (h *StockHandler) PendingCounts(c *gin.Context) {
	counts, err := h.stockService.PendingCounts()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, counts)
}

// GET /admin/products/:productId/stock-notifications
func (h *StockHandler) PendingForProduct(c *gin.Context) {
	notifications, err := h.stockService.PendingForProduct(c.Param("productId"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, notifications)
}

// POST /admin/products/:productId/stock-notifications/flush
func (h *StockHandler) Flush(c *gin.Context) {
	result, err := h.stockService.Flush(c.Param("productId"), h.notifier)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, result)
}
