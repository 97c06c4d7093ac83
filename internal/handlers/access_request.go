// internal/handlers/access_request.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asterohype/backend/internal/services"
	"github.com/asterohype/backend/internal/utils"
)

type AccessRequestHandler struct {
	accessService *services.AccessRequestService
}

func NewAccessRequestHandler(accessService *services.AccessRequestService) *AccessRequestHandler {
	return &AccessRequestHandler{accessService: accessService}
}

// POST /admin-access/requests
//
// Requires a signed-in user; elevation itself is decided out of band.
func (h *AccessRequestHandler) Submit(c *gin.Context) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	var input services.AccessRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	request, err := h.accessService.Submit(userID, &input, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInvitationCode):
			utils.ForbiddenResponse(c, err.Error())
		case errors.Is(err, services.ErrRequestAlreadyPending),
			errors.Is(err, services.ErrAlreadyAdmin):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, request)
}

// GET /admin-access/decide
//
// Consumed from the approver's email; the query string carries the
// request id, action, expiry, and signature.
func (h *AccessRequestHandler) Decide(c *gin.Context) {
	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid expires parameter", nil)
		return
	}

	input := &services.DecisionInput{
		RequestID: c.Query("request_id"),
		Action:    c.Query("action"),
		Expires:   expires,
		Signature: c.Query("signature"),
	}

	request, err := h.accessService.Decide(input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDecisionLinkExpired):
			utils.ErrorResponse(c, http.StatusGone, "LINK_EXPIRED", err.Error(), nil)
		case errors.Is(err, services.ErrRequestAlreadyDecided):
			utils.ConflictResponse(c, err.Error())
		case errors.Is(err, services.ErrInvalidDecisionLink):
			utils.ForbiddenResponse(c, err.Error())
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, request)
}

// GET /admin-access/status
func (h *AccessRequestHandler) Status(c *gin.Context) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	request, err := h.accessService.StatusForUser(userID)
	if err != nil {
		utils.NotFoundResponse(c, "Access request")
		return
	}
	utils.SuccessResponse(c, request)
}

// GET /admin/admin-access/pending
func (h *AccessRequestHandler) ListPending(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	requests, total, err := h.accessService.ListPending(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(requests, total, params))
}
