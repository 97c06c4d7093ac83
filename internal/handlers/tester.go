// internal/handlers/tester.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/asterohype/backend/internal/services"
	"github.com/asterohype/backend/internal/utils"
)

type TesterHandler struct {
	testerService *services.TesterService
}

func NewTesterHandler(testerService *services.TesterService) *TesterHandler {
	return &TesterHandler{testerService: testerService}
}

// POST /admin/tester-codes
func (h *TesterHandler) CreateCode(c *gin.Context) {
	var req services.CreateTesterCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	code, err := h.testerService.CreateCode(&req)
	if err != nil {
		utils.ConflictResponse(c, err.Error())
		return
	}
	utils.CreatedResponse(c, code)
}

// GET /admin/tester-codes
func (h *TesterHandler) ListCodes(c *gin.Context) {
	codes, err := h.testerService.ListCodes()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, codes)
}

// DELETE /admin/tester-codes/:code
func (h *TesterHandler) DeactivateCode(c *gin.Context) {
	if err := h.testerService.DeactivateCode(c.Param("code")); err != nil {
		utils.NotFoundResponse(c, "Tester code")
		return
	}
	utils.SuccessResponse(c, gin.H{"deactivated": true})
}

// POST /tester-codes/validate
//
// Lets the rating UI check a code before showing the form.
func (h *TesterHandler) ValidateCode(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "A code field is required", err.Error())
		return
	}

	code, err := h.testerService.ValidateCode(req.Code)
	if err != nil {
		utils.ForbiddenResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"valid": true, "label": code.Label})
}

// POST /test-ratings
//
// Public but gated by a valid tester code in the body.
func (h *TesterHandler) SubmitRating(c *gin.Context) {
	var req services.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	rating, err := h.testerService.SubmitRating(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.CreatedResponse(c, rating)
}

// GET /admin/products/:productId/test-ratings
func (h *TesterHandler) Summary(c *gin.Context) {
	summary, err := h.testerService.SummaryForProduct(c.Param("productId"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, summary)
}
