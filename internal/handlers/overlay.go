// internal/handlers/overlay.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/asterohype/backend/internal/services"
	"github.com/asterohype/backend/internal/utils"
)

// OverlayHandler exposes the admin CRUD surface for the product
// overlays that are store-side only: overrides, offers, edit progress,
// and size conversions. Every route here sits behind the admin gate.
type OverlayHandler struct {
	overrideService   *services.OverrideService
	offerService      *services.OfferService
	editStatusService *services.EditStatusService
	sizeService       *services.SizeService
}

func NewOverlayHandler(overrides *services.OverrideService, offers *services.OfferService,
	editStatus *services.EditStatusService, sizes *services.SizeService) *OverlayHandler {
	return &OverlayHandler{
		overrideService:   overrides,
		offerService:      offers,
		editStatusService: editStatus,
		sizeService:       sizes,
	}
}

// PUT /admin/products/:productId/override
func (h *OverlayHandler) UpsertOverride(c *gin.Context) {
	var req services.UpsertOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	req.ShopifyProductID = c.Param("productId")

	override, err := h.overrideService.Upsert(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, override)
}

// GET /admin/products/:productId/override
func (h *OverlayHandler) GetOverride(c *gin.Context) {
	override, err := h.overrideService.Get(c.Param("productId"))
	if err != nil {
		utils.NotFoundResponse(c, "Override")
		return
	}
	utils.SuccessResponse(c, override)
}

// GET /admin/overrides
func (h *OverlayHandler) ListOverrides(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	overrides, total, err := h.overrideService.ListPaged(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(overrides, total, params))
}

// DELETE /admin/products/:productId/override
func (h *OverlayHandler) DeleteOverride(c *gin.Context) {
	if err := h.overrideService.Delete(c.Param("productId")); err != nil {
		utils.NotFoundResponse(c, "Override")
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// PUT /admin/products/:productId/offer
func (h *OverlayHandler) UpsertOffer(c *gin.Context) {
	var req services.UpsertOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	req.ShopifyProductID = c.Param("productId")

	offer, err := h.offerService.Upsert(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, offer)
}

// GET /admin/products/:productId/offer
func (h *OverlayHandler) GetOffer(c *gin.Context) {
	offer, err := h.offerService.Get(c.Param("productId"))
	if err != nil {
		utils.NotFoundResponse(c, "Offer")
		return
	}
	utils.SuccessResponse(c, offer)
}

// DELETE /admin/products/:productId/offer
func (h *OverlayHandler) DeleteOffer(c *gin.Context) {
	if err := h.offerService.Delete(c.Param("productId")); err != nil {
		utils.NotFoundResponse(c, "Offer")
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// PUT /admin/products/:productId/edit-status
func (h *OverlayHandler) UpsertEditStatus(c *gin.Context) {
	var req services.UpsertEditStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	req.ShopifyProductID = c.Param("productId")

	status, err := h.editStatusService.Upsert(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, status)
}

// GET /admin/products/:productId/edit-status
func (h *OverlayHandler) GetEditStatus(c *gin.Context) {
	status, err := h.editStatusService.Get(c.Param("productId"))
	if err != nil {
		utils.NotFoundResponse(c, "Edit status")
		return
	}
	utils.SuccessResponse(c, status)
}

// GET /admin/edit-status
func (h *OverlayHandler) ListEditStatuses(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	statuses, total, err := h.editStatusService.ListPaged(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(statuses, total, params))
}

// PUT /admin/products/:productId/sizes
func (h *OverlayHandler) UpsertSizeConversion(c *gin.Context) {
	var req services.UpsertSizeConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	req.ShopifyProductID = c.Param("productId")

	conversion, err := h.sizeService.Upsert(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, conversion)
}

// GET /admin/products/:productId/sizes
func (h *OverlayHandler) ListSizeConversions(c *gin.Context) {
	conversions, err := h.sizeService.ListForProduct(c.Param("productId"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, conversions)
}

// DELETE /admin/products/:productId/sizes/:asianSize
func (h *OverlayHandler) DeleteSizeConversion(c *gin.Context) {
	if err := h.sizeService.Delete(c.Param("productId"), c.Param("asianSize")); err != nil {
		utils.NotFoundResponse(c, "Size conversion")
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}
