// internal/router/router_test.go
package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asterohype/backend/internal/config"
)

func TestInitializeWiresHealthRoute(t *testing.T) {
	r, err := Initialize(nil, &config.Config{})
	require.NoError(t, err)
	require.NotNil(t, r)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesRejectAnonymousCallers(t *testing.T) {
	r, err := Initialize(nil, &config.Config{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/costs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
