// internal/services/access_request_service.go
package services

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/asterohype/backend/internal/config"
	"github.com/asterohype/backend/internal/models"
	"github.com/asterohype/backend/internal/utils"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

var (
	ErrInvalidInvitationCode = errors.New("invalid invitation code")
	ErrRequestAlreadyPending = errors.New("an access request is already pending for this user")
	ErrAlreadyAdmin          = errors.New("user already has admin access")
	ErrInvalidDecisionLink   = errors.New("decision link is invalid")
	ErrDecisionLinkExpired   = errors.New("decision link has expired")
	ErrRequestAlreadyDecided = errors.New("request has already been decided")
)

// AccessRequestService runs the admin onboarding flow: a signed-in user
// presents the shared invitation code, the approver gets an email with
// HMAC-signed approve/reject links, and following a link decides the
// request. No approver account exists; the signature is the authority.
type AccessRequestService struct {
	db       *gorm.DB
	config   *config.Config
	authz    *AuthorizationService
	notifier *NotificationService
}

type AccessRequestInput struct {
	InvitationCode string `json:"invitation_code" validate:"required"`
	DeviceInfo     string `json:"device_info,omitempty"`
}

type DecisionInput struct {
	RequestID string
	Action    string
	Expires   int64
	Signature string
}

func NewAccessRequestService(db *gorm.DB, cfg *config.Config, authz *AuthorizationService, notifier *NotificationService) *AccessRequestService {
	return &AccessRequestService{
		db:       db,
		config:   cfg,
		authz:    authz,
		notifier: notifier,
	}
}

// Submit files an access request for userID. clientIP is masked before
// it is stored so the row never holds a full address.
func (s *AccessRequestService) Submit(userID uuid.UUID, input *AccessRequestInput, clientIP string) (*models.AdminRequest, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if s.config.AdminAccess.InvitationCode == "" ||
		input.InvitationCode != s.config.AdminAccess.InvitationCode {
		return nil, ErrInvalidInvitationCode
	}

	isAdmin, err := s.authz.IsAdmin(userID)
	if err != nil {
		return nil, err
	}
	if isAdmin {
		return nil, ErrAlreadyAdmin
	}

	var pendingCount int64
	err = s.db.Model(&models.AdminRequest{}).
		Where("user_id = ? AND status = ?", userID, models.RequestStatusPending).
		Count(&pendingCount).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if pendingCount > 0 {
		return nil, ErrRequestAlreadyPending
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	request := &models.AdminRequest{
		UserID:     userID,
		Status:     models.RequestStatusPending,
		MaskedIP:   utils.MaskIP(clientIP),
		DeviceInfo: utils.SanitizeDeviceInfo(input.DeviceInfo),
	}
	if err := s.db.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create access request: %w", err)
	}

	expires := time.Now().Add(time.Duration(s.config.AdminAccess.LinkTTLHours) * time.Hour).Unix()
	approveURL := s.decisionURL(request.ID, DecisionApprove, expires)
	rejectURL := s.decisionURL(request.ID, DecisionReject, expires)

	// Delivery failure must not lose the request; the approver can be
	// pointed at the pending list instead.
	if err := s.notifier.SendAdminAccessRequestEmail(&user, request, approveURL, rejectURL); err != nil {
		logrus.WithError(err).WithField("request_id", request.ID).
			Warn("failed to send access request email")
	}

	return request, nil
}

// Decide consumes a signed decision link. The signature covers the
// request id, the action, and the expiry, so none of the three can be
// swapped after signing.
func (s *AccessRequestService) Decide(input *DecisionInput) (*models.AdminRequest, error) {
	if input.Action != DecisionApprove && input.Action != DecisionReject {
		return nil, ErrInvalidDecisionLink
	}

	message := utils.DecisionMessage(input.RequestID, input.Action, input.Expires)
	if !utils.VerifySignature(s.config.AdminAccess.HookSecret, message, input.Signature) {
		return nil, ErrInvalidDecisionLink
	}

	if time.Now().Unix() > input.Expires {
		return nil, ErrDecisionLinkExpired
	}

	requestID, err := uuid.Parse(input.RequestID)
	if err != nil {
		return nil, ErrInvalidDecisionLink
	}

	var request models.AdminRequest
	if err := s.db.Preload("User").First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidDecisionLink
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if request.Status != models.RequestStatusPending {
		return nil, ErrRequestAlreadyDecided
	}

	now := time.Now()
	decidedBy := "email_link"
	newStatus := models.RequestStatusRejected
	if input.Action == DecisionApprove {
		newStatus = models.RequestStatusApproved
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Re-check under the transaction so two concurrent link clicks
		// cannot both win.
		result := tx.Model(&models.AdminRequest{}).
			Where("id = ? AND status = ?", requestID, models.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":     newStatus,
				"decided_at": now,
				"decided_by": decidedBy,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update request: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrRequestAlreadyDecided
		}

		if newStatus == models.RequestStatusApproved {
			txAuthz := NewAuthorizationService(tx)
			if err := txAuthz.GrantRole(request.UserID, models.RoleAdmin, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	request.Status = newStatus
	request.DecidedAt = &now
	request.DecidedBy = &decidedBy

	if err := s.notifier.SendAccessDecisionEmail(&request.User, newStatus == models.RequestStatusApproved); err != nil {
		logrus.WithError(err).WithField("request_id", request.ID).
			Warn("failed to send decision email")
	}

	logrus.WithFields(logrus.Fields{
		"request_id": request.ID,
		"user_id":    request.UserID,
		"status":     newStatus,
	}).Info("access request decided")

	return &request, nil
}

// ListPending returns one page of pending requests, oldest first so the
// approver works through the backlog in arrival order.
func (s *AccessRequestService) ListPending(params utils.PaginationParams) ([]models.AdminRequest, int64, error) {
	var total int64
	err := s.db.Model(&models.AdminRequest{}).
		Where("status = ?", models.RequestStatusPending).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count pending requests: %w", err)
	}

	var requests []models.AdminRequest
	query := s.db.Preload("User").
		Where("status = ?", models.RequestStatusPending).
		Order("created_at ASC")
	if err := utils.ApplyPagination(query, params).Find(&requests).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch pending requests: %w", err)
	}
	return requests, total, nil
}

func (s *AccessRequestService) StatusForUser(userID uuid.UUID) (*models.AdminRequest, error) {
	var request models.AdminRequest
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("no access request found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &request, nil
}

func (s *AccessRequestService) decisionURL(requestID uuid.UUID, action string, expires int64) string {
	message := utils.DecisionMessage(requestID.String(), action, expires)
	signature := utils.SignMessage(s.config.AdminAccess.HookSecret, message)

	params := url.Values{}
	params.Set("request_id", requestID.String())
	params.Set("action", action)
	params.Set("expires", strconv.FormatInt(expires, 10))
	params.Set("signature", signature)

	base := fmt.Sprintf("http://%s:%s", s.config.Server.Host, s.config.Server.Port)
	return fmt.Sprintf("%s/v1/admin-access/decide?%s", base, params.Encode())
}
