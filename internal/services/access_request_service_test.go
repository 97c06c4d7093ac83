// internal/services/access_request_service_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/asterohype/backend/internal/config"
	"github.com/asterohype/backend/internal/models"
	"github.com/asterohype/backend/internal/utils"
)

// newServiceTestDB opens a per-test in-memory database. The test name
// keys the shared cache so parallel tests do not see each other's rows.
func newServiceTestDB(t *testing.T, tables ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(tables...))
	return db
}

const testInvitationCode = "LAUNCH-2026"
const testHookSecret = "test-hook-secret"

func newAccessTestService(t *testing.T) (*AccessRequestService, *gorm.DB, uuid.UUID) {
	t.Helper()

	db := newServiceTestDB(t, &models.User{}, &models.UserRole{}, &models.AdminRequest{})

	cfg := &config.Config{}
	cfg.AdminAccess = config.AdminAccessConfig{
		InvitationCode: testInvitationCode,
		HookSecret:     testHookSecret,
		ApproverEmail:  "ops@example.com",
		LinkTTLHours:   1,
	}

	user := &models.User{
		Username: "pending_user",
		Email:    "pending@example.com",
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("Sup3r$ecret1"))
	require.NoError(t, db.Create(user).Error)

	authz := NewAuthorizationService(db)
	notifier := NewNotificationService(cfg)
	return NewAccessRequestService(db, cfg, authz, notifier), db, user.ID
}

func requestCount(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.AdminRequest{}).
		Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestSubmitMasksIPAndStoresPending(t *testing.T) {
	svc, db, userID := newAccessTestService(t)

	input := &AccessRequestInput{InvitationCode: testInvitationCode, DeviceInfo: "Firefox on Linux"}
	request, err := svc.Submit(userID, input, "203.0.113.42")
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, "203.0.113.0", request.MaskedIP)
	assert.EqualValues(t, 1, requestCount(t, db, userID))
}

func TestSubmitSecondRequestWhilePendingIsRejected(t *testing.T) {
	svc, db, userID := newAccessTestService(t)

	input := &AccessRequestInput{InvitationCode: testInvitationCode}
	_, err := svc.Submit(userID, input, "203.0.113.42")
	require.NoError(t, err)

	// The second submit must fail without leaving a second row behind.
	_, err = svc.Submit(userID, input, "203.0.113.42")
	assert.ErrorIs(t, err, ErrRequestAlreadyPending)
	assert.EqualValues(t, 1, requestCount(t, db, userID))
}

func TestSubmitRejectsWrongInvitationCode(t *testing.T) {
	svc, db, userID := newAccessTestService(t)

	input := &AccessRequestInput{InvitationCode: "WRONG-CODE"}
	_, err := svc.Submit(userID, input, "203.0.113.42")
	assert.ErrorIs(t, err, ErrInvalidInvitationCode)
	assert.EqualValues(t, 0, requestCount(t, db, userID))
}

func TestDecideApproveGrantsRoleOnce(t *testing.T) {
	svc, db, userID := newAccessTestService(t)

	request, err := svc.Submit(userID, &AccessRequestInput{InvitationCode: testInvitationCode}, "203.0.113.42")
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour).Unix()
	message := utils.DecisionMessage(request.ID.String(), DecisionApprove, expires)
	input := &DecisionInput{
		RequestID: request.ID.String(),
		Action:    DecisionApprove,
		Expires:   expires,
		Signature: utils.SignMessage(testHookSecret, message),
	}

	decided, err := svc.Decide(input)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, decided.Status)

	isAdmin, err := NewAuthorizationService(db).IsAdmin(userID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	// The same link presented again finds a decided request.
	_, err = svc.Decide(input)
	assert.ErrorIs(t, err, ErrRequestAlreadyDecided)
}

func TestDecideRejectsTamperedSignature(t *testing.T) {
	svc, _, userID := newAccessTestService(t)

	request, err := svc.Submit(userID, &AccessRequestInput{InvitationCode: testInvitationCode}, "203.0.113.42")
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour).Unix()
	message := utils.DecisionMessage(request.ID.String(), DecisionReject, expires)
	input := &DecisionInput{
		RequestID: request.ID.String(),
		Action:    DecisionApprove, // action swapped after signing
		Expires:   expires,
		Signature: utils.SignMessage(testHookSecret, message),
	}

	_, err = svc.Decide(input)
	assert.ErrorIs(t, err, ErrInvalidDecisionLink)
}

func TestListPendingPagesOldestFirst(t *testing.T) {
	svc, db, _ := newAccessTestService(t)

	for i := 0; i < 3; i++ {
		user := &models.User{
			Username: fmt.Sprintf("applicant_%d", i),
			Email:    fmt.Sprintf("applicant%d@example.com", i),
			Status:   models.UserStatusActive,
		}
		require.NoError(t, user.SetPassword("Sup3r$ecret1"))
		require.NoError(t, db.Create(user).Error)

		_, err := svc.Submit(user.ID, &AccessRequestInput{InvitationCode: testInvitationCode}, "203.0.113.42")
		require.NoError(t, err)
	}

	page, total, err := svc.ListPending(utils.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 2)
}
