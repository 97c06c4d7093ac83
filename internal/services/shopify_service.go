// internal/services/shopify_service.go
package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/asterohype/backend/internal/config"
)

// Action vocabulary accepted by the admin proxy. Each tag maps 1:1 to a
// Shopify Admin REST endpoint and method.
const (
	ActionUpdateTitle       = "update_title"
	ActionUpdateDescription = "update_description"
	ActionUpdateTags        = "update_tags"
	ActionUpdatePrice       = "update_price"
	ActionUpdateVariant     = "update_variant"
	ActionDeleteProduct     = "delete_product"
	ActionDeleteImage       = "delete_image"
	ActionAddImage          = "add_image"
	ActionUpdateImageAlt    = "update_image_alt"
)

var (
	ErrInvalidAction      = errors.New("unknown admin action")
	ErrMissingActionField = errors.New("missing required field")
)

func missingFields(fields string) error {
	return fmt.Errorf("%w: %s", ErrMissingActionField, fields)
}

// UpstreamError carries a non-2xx answer from the commerce platform,
// payload included, so the proxy can pass it through unchanged.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("shopify API error: status %d, body: %s", e.StatusCode, e.Body)
}

type ShopifyService struct {
	shopDomain  string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
}

func NewShopifyService(cfg config.ShopifyConfig) *ShopifyService {
	// Normalize shop domain - remove https://, http://, and trailing slashes
	shopDomain := cfg.ShopDomain
	shopDomain = strings.TrimPrefix(shopDomain, "https://")
	shopDomain = strings.TrimPrefix(shopDomain, "http://")
	shopDomain = strings.TrimSuffix(shopDomain, "/")

	return &ShopifyService{
		shopDomain:  shopDomain,
		accessToken: cfg.AccessToken,
		apiVersion:  cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NormalizeGID strips the URN-style prefix from a Shopify global id
// (gid://shopify/Product/123 -> 123). Bare numeric ids pass through.
func NormalizeGID(id string) string {
	if !strings.HasPrefix(id, "gid://shopify/") {
		return id
	}
	parts := strings.Split(id, "/")
	last := parts[len(parts)-1]
	// Variant gids can carry a query suffix
	if idx := strings.Index(last, "?"); idx >= 0 {
		last = last[:idx]
	}
	return last
}

type AdminActionRequest struct {
	Action      string                 `json:"action" validate:"required"`
	ProductID   string                 `json:"productId,omitempty"`
	VariantID   string                 `json:"variantId,omitempty"`
	ImageID     string                 `json:"imageId,omitempty"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description,omitempty"`
	Price       *float64               `json:"price,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	ImageURL    string                 `json:"imageUrl,omitempty"`
	AltText     string                 `json:"altText,omitempty"`
	Variant     map[string]interface{} `json:"variant,omitempty"`
}

// Dispatch translates one action tag into the corresponding REST call.
// Multi-field edits are issued by the caller as separate actions; a
// failure mid-sequence is not rolled back.
func (s *ShopifyService) Dispatch(req *AdminActionRequest) (json.RawMessage, error) {
	productID := NormalizeGID(req.ProductID)
	variantID := NormalizeGID(req.VariantID)
	imageID := NormalizeGID(req.ImageID)

	switch req.Action {
	case ActionUpdateTitle:
		if productID == "" || req.Title == "" {
			return nil, missingFields("productId, title")
		}
		return s.do("PUT", fmt.Sprintf("products/%s.json", productID), map[string]interface{}{
			"product": map[string]interface{}{"id": productID, "title": req.Title},
		})

	case ActionUpdateDescription:
		if productID == "" {
			return nil, missingFields("productId")
		}
		return s.do("PUT", fmt.Sprintf("products/%s.json", productID), map[string]interface{}{
			"product": map[string]interface{}{"id": productID, "body_html": req.Description},
		})

	case ActionUpdateTags:
		if productID == "" {
			return nil, missingFields("productId")
		}
		return s.do("PUT", fmt.Sprintf("products/%s.json", productID), map[string]interface{}{
			"product": map[string]interface{}{"id": productID, "tags": strings.Join(req.Tags, ", ")},
		})

	case ActionUpdatePrice:
		if variantID == "" || req.Price == nil {
			return nil, missingFields("variantId, price")
		}
		return s.do("PUT", fmt.Sprintf("variants/%s.json", variantID), map[string]interface{}{
			"variant": map[string]interface{}{
				"id":    variantID,
				"price": strconv.FormatFloat(*req.Price, 'f', 2, 64),
			},
		})

	case ActionUpdateVariant:
		if variantID == "" || req.Variant == nil {
			return nil, missingFields("variantId, variant")
		}
		variant := req.Variant
		variant["id"] = variantID
		return s.do("PUT", fmt.Sprintf("variants/%s.json", variantID), map[string]interface{}{
			"variant": variant,
		})

	case ActionDeleteProduct:
		if productID == "" {
			return nil, missingFields("productId")
		}
		return s.do("DELETE", fmt.Sprintf("products/%s.json", productID), nil)

	case ActionDeleteImage:
		if productID == "" || imageID == "" {
			return nil, missingFields("productId, imageId")
		}
		return s.do("DELETE", fmt.Sprintf("products/%s/images/%s.json", productID, imageID), nil)

	case ActionAddImage:
		if productID == "" || req.ImageURL == "" {
			return nil, missingFields("productId, imageUrl")
		}
		image := map[string]interface{}{"src": req.ImageURL}
		if req.AltText != "" {
			image["alt"] = req.AltText
		}
		return s.do("POST", fmt.Sprintf("products/%s/images.json", productID), map[string]interface{}{
			"image": image,
		})

	case ActionUpdateImageAlt:
		if productID == "" || imageID == "" {
			return nil, missingFields("productId, imageId")
		}
		return s.do("PUT", fmt.Sprintf("products/%s/images/%s.json", productID, imageID), map[string]interface{}{
			"image": map[string]interface{}{"id": imageID, "alt": req.AltText},
		})

	default:
		return nil, ErrInvalidAction
	}
}

// Product shapes returned by the Admin REST products listing.
type ShopifyVariant struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	SKU               string `json:"sku"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

type ShopifyImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type ShopifyProduct struct {
	ID       int64            `json:"id"`
	Title    string           `json:"title"`
	Handle   string           `json:"handle"`
	BodyHTML string           `json:"body_html"`
	Tags     string           `json:"tags"`
	Status   string           `json:"status"`
	Variants []ShopifyVariant `json:"variants"`
	Images   []ShopifyImage   `json:"images"`
}

type productListResponse struct {
	Products []ShopifyProduct `json:"products"`
}

const productPageSize = 250

// ListProducts pages through the full product catalog with since_id
// cursoring.
func (s *ShopifyService) ListProducts() ([]ShopifyProduct, error) {
	var all []ShopifyProduct
	sinceID := int64(0)

	for {
		path := fmt.Sprintf("products.json?limit=%d&since_id=%d", productPageSize, sinceID)
		raw, err := s.do("GET", path, nil)
		if err != nil {
			return nil, err
		}

		var page productListResponse
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("failed to parse products page: %w", err)
		}

		all = append(all, page.Products...)
		if len(page.Products) < productPageSize {
			break
		}
		sinceID = page.Products[len(page.Products)-1].ID
	}

	return all, nil
}

func (s *ShopifyService) GetProduct(productID string) (*ShopifyProduct, error) {
	raw, err := s.do("GET", fmt.Sprintf("products/%s.json", NormalizeGID(productID)), nil)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Product ShopifyProduct `json:"product"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return &wrapper.Product, nil
}

func (s *ShopifyService) do(method, path string, payload interface{}) (json.RawMessage, error) {
	url := fmt.Sprintf("https://%s/admin/api/%s/%s", s.shopDomain, s.apiVersion, path)

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("Shopify request failed")
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if len(respBody) == 0 {
		respBody = []byte("{}")
	}
	return json.RawMessage(respBody), nil
}
