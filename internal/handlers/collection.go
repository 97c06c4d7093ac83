// internal/handlers/collection.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asterohype/backend/internal/services"
	"github.com/asterohype/backend/internal/utils"
)

type CollectionHandler struct {
	collectionService *services.CollectionService
}

func NewCollectionHandler(collectionService *services.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// POST /admin/collections
func (h *CollectionHandler) Create(c *gin.Context) {
	var req services.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	collection, err := h.collectionService.Create(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.CreatedResponse(c, collection)
}

// GET /collections
func (h *CollectionHandler) List(c *gin.Context) {
	includeInactive := false
	if raw := c.Query("include_inactive"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			includeInactive = parsed
		}
	}

	collections, err := h.collectionService.List(includeInactive)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, collections)
}

// GET /collections/:slug
func (h *CollectionHandler) GetBySlug(c *gin.Context) {
	collection, err := h.collectionService.GetBySlug(c.Param("slug"))
	if err != nil {
		utils.NotFoundResponse(c, "Collection")
		return
	}
	utils.SuccessResponse(c, collection)
}

// PUT /admin/collections/:collectionId
func (h *CollectionHandler) Update(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("collectionId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid collection ID", nil)
		return
	}

	var req services.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	collection, err := h.collectionService.Update(collectionID, &req)
	if err != nil {
		utils.NotFoundResponse(c, "Collection")
		return
	}
	utils.SuccessResponse(c, collection)
}

// DELETE /admin/collections/:collectionId
func (h *CollectionHandler) Delete(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("collectionId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid collection ID", nil)
		return
	}

	if err := h.collectionService.Delete(collectionID); err != nil {
		utils.NotFoundResponse(c, "Collection")
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /admin/collections/:collectionId/products
func (h *CollectionHandler) AddProduct(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("collectionId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid collection ID", nil)
		return
	}

	var req services.AddCollectionProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := h.collectionService.AddProduct(collectionID, &req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{"added": true})
}

// DELETE /admin/collections/:collectionId/products/:productId
func (h *CollectionHandler) RemoveProduct(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("collectionId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid collection ID", nil)
		return
	}

	if err := h.collectionService.RemoveProduct(collectionID, c.Param("productId")); err != nil {
		utils.NotFoundResponse(c, "Collection product")
		return
	}
	utils.SuccessResponse(c, gin.H{"removed": true})
}
