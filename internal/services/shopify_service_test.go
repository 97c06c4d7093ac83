// internal/services/shopify_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asterohype/backend/internal/config"
)

func TestNormalizeGID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gid://shopify/Product/1234567890", "1234567890"},
		{"gid://shopify/ProductVariant/987?inventory=true", "987"},
		{"1234567890", "1234567890"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeGID(tt.input))
	}
}

func TestNewShopifyServiceNormalizesDomain(t *testing.T) {
	svc := NewShopifyService(config.ShopifyConfig{
		ShopDomain: "https://astero-hype.myshopify.com/",
		APIVersion: "2024-10",
	})
	assert.Equal(t, "astero-hype.myshopify.com", svc.shopDomain)
}

func TestDispatchUnknownAction(t *testing.T) {
	svc := NewShopifyService(config.ShopifyConfig{ShopDomain: "shop.myshopify.com"})

	_, err := svc.Dispatch(&AdminActionRequest{Action: "launch_rocket"})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestDispatchValidatesRequiredFields(t *testing.T) {
	svc := NewShopifyService(config.ShopifyConfig{ShopDomain: "shop.myshopify.com"})

	cases := []AdminActionRequest{
		{Action: ActionUpdateTitle},                         // missing product and title
		{Action: ActionUpdateTitle, ProductID: "123"},       // missing title
		{Action: ActionUpdatePrice, VariantID: "456"},       // missing price
		{Action: ActionDeleteImage, ProductID: "123"},       // missing image id
		{Action: ActionAddImage, ProductID: "123"},          // missing image url
		{Action: ActionUpdateVariant, VariantID: "456"},     // missing variant body
		{Action: ActionDeleteProduct},                       // missing product
		{Action: ActionUpdateImageAlt, ImageID: "789"},      // missing product
		{Action: ActionUpdateDescription, Description: "x"}, // missing product
	}

	for _, req := range cases {
		_, err := svc.Dispatch(&req)
		assert.ErrorIs(t, err, ErrMissingActionField, "action %s should reject incomplete input", req.Action)
		assert.NotErrorIs(t, err, ErrInvalidAction)
	}
}
