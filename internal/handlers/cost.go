// internal/handlers/cost.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/asterohype/backend/internal/services"
	"github.com/asterohype/backend/internal/utils"
)

type CostHandler struct {
	costService *services.CostService
	syncService *services.CJSyncService
}

func NewCostHandler(costService *services.CostService, syncService *services.CJSyncService) *CostHandler {
	return &CostHandler{
		costService: costService,
		syncService: syncService,
	}
}

// PUT /admin/products/:productId/cost
func (h *CostHandler) Upsert(c *gin.Context) {
	var req services.UpsertCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	req.ShopifyProductID = c.Param("productId")

	cost, err := h.costService.Upsert(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, cost)
}

// GET /admin/products/:productId/cost
//
// Optionally computes a profit breakdown when selling_price is passed.
func (h *CostHandler) Get(c *gin.Context) {
	cost, err := h.costService.Get(c.Param("productId"))
	if err != nil {
		utils.NotFoundResponse(c, "Cost")
		return
	}

	if priceStr := c.Query("selling_price"); priceStr != "" {
		if price, parseErr := strconv.ParseFloat(priceStr, 64); parseErr == nil {
			utils.SuccessResponse(c, gin.H{
				"cost":   cost,
				"profit": services.CalculateProfit(price, cost),
			})
			return
		}
	}

	utils.SuccessResponse(c, cost)
}

// GET /admin/costs
func (h *CostHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	costs, total, err := h.costService.ListPaged(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(costs, total, params))
}

// DELETE /admin/products/:productId/cost
func (h *CostHandler) Delete(c *gin.Context) {
	if err := h.costService.Delete(c.Param("productId")); err != nil {
		utils.NotFoundResponse(c, "Cost")
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /admin/costs/sync
//
// The caller supplies the product snapshot; the handler trusts it and
// never re-pages Shopify itself.
func (h *CostHandler) Sync(c *gin.Context) {
	var req struct {
		ShopifyProducts []services.ShopifyProductRef `json:"shopifyProducts" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "A shopifyProducts list is required", err.Error())
		return
	}

	result, err := h.syncService.Sync(c.Request.Context(), req.ShopifyProducts)
	if err != nil {
		if errors.Is(err, services.ErrTokenExchangeThrottled) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", err.Error(), nil)
			return
		}
		utils.ErrorResponse(c, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, result)
}
