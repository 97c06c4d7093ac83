// internal/handlers/admin_proxy.go
package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/asterohype/backend/internal/services"
	"github.com/asterohype/backend/internal/utils"
)

// AdminProxyHandler forwards a small action vocabulary to the Shopify
// Admin REST API. Authentication and the admin role check happen in
// middleware before this handler runs.
type AdminProxyHandler struct {
	shopifyService *services.ShopifyService
	storageService *services.StorageService
}

func NewAdminProxyHandler(shopifyService *services.ShopifyService, storageService *services.StorageService) *AdminProxyHandler {
	return &AdminProxyHandler{
		shopifyService: shopifyService,
		storageService: storageService,
	}
}

// POST /admin/shopify
func (h *AdminProxyHandler) Dispatch(c *gin.Context) {
	var req services.AdminActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	payload, err := h.shopifyService.Dispatch(&req)
	if err != nil {
		var upstream *services.UpstreamError
		if errors.As(err, &upstream) {
			utils.UpstreamErrorResponse(c, upstream.StatusCode, upstream.Body)
			return
		}
		if errors.Is(err, services.ErrInvalidAction) || errors.Is(err, services.ErrMissingActionField) {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, payload)
}

// POST /admin/uploads
//
// Uploads a product image to S3 and returns its public URL, which is
// what the add_image proxy action expects in image_url.
func (h *AdminProxyHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "A file field is required", err.Error())
		return
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	result, err := h.storageService.UploadProductImage(file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, result)
}
