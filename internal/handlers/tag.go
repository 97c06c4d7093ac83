// internal/handlers/tag.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asterohype/backend/internal/services"
	"github.com/asterohype/backend/internal/utils"
)

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// POST /admin/tags
func (h *TagHandler) Create(c *gin.Context) {
	var req services.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	tag, err := h.tagService.Create(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.CreatedResponse(c, tag)
}

// GET /tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, tags)
}

// DELETE /admin/tags/:tagId
func (h *TagHandler) Delete(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("tagId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid tag ID", nil)
		return
	}

	if err := h.tagService.Delete(tagID); err != nil {
		utils.NotFoundResponse(c, "Tag")
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /admin/products/:productId/tags
func (h *TagHandler) Assign(c *gin.Context) {
	var req services.AssignTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	req.ShopifyProductID = c.Param("productId")

	if err := h.tagService.Assign(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{"assigned": true})
}

// DELETE /admin/products/:productId/tags/:tagId
func (h *TagHandler) Unassign(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("tagId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid tag ID", nil)
		return
	}

	if err := h.tagService.Unassign(c.Param("productId"), tagID); err != nil {
		utils.NotFoundResponse(c, "Tag assignment")
		return
	}
	utils.SuccessResponse(c, gin.H{"unassigned": true})
}

// GET /products/:productId/tags
func (h *TagHandler) TagsForProduct(c *gin.Context) {
	tags, err := h.tagService.TagsForProduct(c.Param("productId"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, tags)
}
