// internal/middleware/auth_test.go
package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubAuthorizer struct {
	admin bool
	err   error
}

func (s *stubAuthorizer) IsAdmin(userID uuid.UUID) (bool, error) {
	return s.admin, s.err
}

func newAdminTestRouter(authz *stubAuthorizer, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/shopify", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}, AdminRequired(authz), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAdminRequiredAllowsAdmin(t *testing.T) {
	r := newAdminTestRouter(&stubAuthorizer{admin: true}, uuid.NewString())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/shopify", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRequiredRejectsNonAdmin(t *testing.T) {
	r := newAdminTestRouter(&stubAuthorizer{admin: false}, uuid.NewString())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/shopify", nil)
	r.ServeHTTP(w, req)

	// Authenticated but not elevated is a 403, never a 401.
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRequiredWithoutIdentity(t *testing.T) {
	r := newAdminTestRouter(&stubAuthorizer{admin: true}, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/shopify", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRequiredCheckFailure(t *testing.T) {
	r := newAdminTestRouter(&stubAuthorizer{err: errors.New("db down")}, uuid.NewString())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/shopify", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Token abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
