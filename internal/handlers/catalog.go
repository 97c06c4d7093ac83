// internal/handlers/catalog.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/asterohype/backend/internal/services"
	"github.com/asterohype/backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GET /products
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.catalogService.ListProducts()
	if err != nil {
		h.upstreamOrInternal(c, err)
		return
	}
	utils.SuccessResponse(c, products)
}

// GET /products/:productId
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Param("productId"))
	if err != nil {
		h.upstreamOrInternal(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// GET /admin/products
func (h *CatalogHandler) ListAdmin(c *gin.Context) {
	products, err := h.catalogService.ListAdminProducts()
	if err != nil {
		h.upstreamOrInternal(c, err)
		return
	}
	utils.SuccessResponse(c, products)
}

func (h *CatalogHandler) upstreamOrInternal(c *gin.Context, err error) {
	var upstream *services.UpstreamError
	if errors.As(err, &upstream) {
		utils.UpstreamErrorResponse(c, upstream.StatusCode, upstream.Body)
		return
	}
	utils.InternalErrorResponse(c, err.Error())
}
