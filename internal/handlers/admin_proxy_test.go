// internal/handlers/admin_proxy_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/asterohype/backend/internal/config"
	"github.com/asterohype/backend/internal/services"
)

func newProxyTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	shopifyService := services.NewShopifyService(config.ShopifyConfig{ShopDomain: "shop.myshopify.com"})
	handler := NewAdminProxyHandler(shopifyService, nil)

	r := gin.New()
	r.POST("/admin/shopify", handler.Dispatch)
	return r
}

func postAction(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/shopify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDispatchMissingFieldIsBadRequest(t *testing.T) {
	r := newProxyTestRouter()

	// update_title without a productId is a caller mistake, not a
	// server failure.
	w := postAction(r, `{"action":"update_title"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postAction(r, `{"action":"update_price","variantId":"456"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatchUnknownActionIsBadRequest(t *testing.T) {
	r := newProxyTestRouter()

	w := postAction(r, `{"action":"launch_rocket"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
