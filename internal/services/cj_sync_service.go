// internal/services/cj_sync_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/asterohype/backend/internal/config"
	"github.com/asterohype/backend/internal/models"
)

const (
	cjPageSize        = 100
	cjRequestTimeout  = 30 * time.Second
	cjTokenSafetyRoom = 5 * time.Minute
)

// ErrTokenExchangeThrottled is returned when a new CJ token is needed
// but the platform's issuance window has not elapsed yet.
var ErrTokenExchangeThrottled = errors.New("cj token exchange is rate limited, try again later")

// CJSyncService reconciles the Shopify catalog against the CJ
// Dropshipping catalog by product name and persists the matched cost
// figures. Matching is normalized-name exact first, then a first-match
// substring scan; the scan carries no scoring, so ambiguous titles can
// match the wrong entry.
type CJSyncService struct {
	db         *gorm.DB
	config     *config.Config
	costs      *CostService
	httpClient *http.Client

	// CJ allows roughly one token exchange per five minutes. The
	// limiter refuses early instead of blocking the request.
	tokenLimiter *rate.Limiter
}

// ShopifyProductRef is the caller-supplied snapshot of one storefront
// product. The service trusts this list and does not re-page Shopify.
type ShopifyProductRef struct {
	ID     string `json:"id" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Handle string `json:"handle,omitempty"`
}

type cjCatalogEntry struct {
	PID        string `json:"pid"`
	NameEn     string `json:"productNameEn"`
	SKU        string `json:"productSku"`
	SellPrice  string `json:"sellPrice"`
	TotalPrice string `json:"totalPrice"`
}

type cjTokenResponse struct {
	Result  bool   `json:"result"`
	Message string `json:"message"`
	Data    struct {
		AccessToken           string `json:"accessToken"`
		AccessTokenExpiryDate string `json:"accessTokenExpiryDate"`
	} `json:"data"`
}

type cjListResponse struct {
	Result  bool   `json:"result"`
	Message string `json:"message"`
	Data    struct {
		PageNum  int              `json:"pageNum"`
		PageSize int              `json:"pageSize"`
		Total    int              `json:"total"`
		List     []cjCatalogEntry `json:"list"`
	} `json:"data"`
}

type ProductSyncOutcome struct {
	ShopifyProductID string  `json:"shopify_product_id"`
	Title            string  `json:"title"`
	Matched          bool    `json:"matched"`
	Updated          bool    `json:"updated"`
	CJProductID      string  `json:"cj_product_id,omitempty"`
	CJProductName    string  `json:"cj_product_name,omitempty"`
	ProductCost      float64 `json:"product_cost,omitempty"`
	ShippingEstimate float64 `json:"shipping_estimate,omitempty"`
	Error            string  `json:"error,omitempty"`
}

type SyncResult struct {
	TotalProducts       int                  `json:"totalProducts"`
	MatchedCount        int                  `json:"matchedCount"`
	UpdatedCount        int                  `json:"updatedCount"`
	CJProductsAvailable int                  `json:"cjProductsAvailable"`
	Products            []ProductSyncOutcome `json:"products"`
}

// costAuditNote is serialized into ProductCost.Notes so each synced row
// records which CJ entry it came from.
type costAuditNote struct {
	CJProductID string    `json:"cj_product_id"`
	CJName      string    `json:"cj_name"`
	CJSKU       string    `json:"cj_sku"`
	SyncedAt    time.Time `json:"synced_at"`
}

func NewCJSyncService(db *gorm.DB, cfg *config.Config, costs *CostService) *CJSyncService {
	return &CJSyncService{
		db:           db,
		config:       cfg,
		costs:        costs,
		httpClient:   &http.Client{Timeout: cjRequestTimeout},
		tokenLimiter: rate.NewLimiter(rate.Every(5*time.Minute), 1),
	}
}

// Sync fetches the full CJ catalog and reconciles it against the given
// product snapshot. Token or catalog-fetch failures abort the whole
// run; per-product upsert failures are recorded in the outcome and the
// batch continues.
func (s *CJSyncService) Sync(ctx context.Context, products []ShopifyProductRef) (*SyncResult, error) {
	token, err := s.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	catalog, err := s.fetchCatalog(ctx, token)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*cjCatalogEntry, len(catalog))
	bySKU := make(map[string]*cjCatalogEntry, len(catalog))
	for i := range catalog {
		entry := &catalog[i]
		if key := NormalizeName(entry.NameEn); key != "" {
			if _, exists := byName[key]; !exists {
				byName[key] = entry
			}
		}
		// SKU index is populated for future matching but unused today.
		if entry.SKU != "" {
			if _, exists := bySKU[entry.SKU]; !exists {
				bySKU[entry.SKU] = entry
			}
		}
	}

	result := &SyncResult{
		TotalProducts:       len(products),
		CJProductsAvailable: len(catalog),
		Products:            make([]ProductSyncOutcome, 0, len(products)),
	}

	for _, product := range products {
		outcome := s.syncOne(product, byName, catalog)
		if outcome.Matched {
			result.MatchedCount++
		}
		if outcome.Updated {
			result.UpdatedCount++
		}
		result.Products = append(result.Products, outcome)
	}

	logrus.WithFields(logrus.Fields{
		"total_products": result.TotalProducts,
		"matched":        result.MatchedCount,
		"updated":        result.UpdatedCount,
		"cj_available":   result.CJProductsAvailable,
	}).Info("cj cost sync finished")

	return result, nil
}

func (s *CJSyncService) syncOne(product ShopifyProductRef, byName map[string]*cjCatalogEntry, catalog []cjCatalogEntry) ProductSyncOutcome {
	outcome := ProductSyncOutcome{
		ShopifyProductID: NormalizeGID(product.ID),
		Title:            product.Title,
	}

	entry := matchCatalogEntry(product.Title, byName, catalog)
	if entry == nil {
		return outcome
	}

	outcome.Matched = true
	outcome.CJProductID = entry.PID
	outcome.CJProductName = entry.NameEn

	sellPrice := parseCJPrice(entry.SellPrice)
	totalPrice := parseCJPrice(entry.TotalPrice)
	shippingEstimate := totalPrice - sellPrice
	if shippingEstimate < 0 {
		shippingEstimate = 0
	}
	outcome.ProductCost = sellPrice
	outcome.ShippingEstimate = shippingEstimate

	note, err := json.Marshal(costAuditNote{
		CJProductID: entry.PID,
		CJName:      entry.NameEn,
		CJSKU:       entry.SKU,
		SyncedAt:    time.Now().UTC(),
	})
	if err != nil {
		outcome.Error = fmt.Sprintf("failed to build audit note: %v", err)
		return outcome
	}
	notes := string(note)

	_, err = s.costs.Upsert(&UpsertCostRequest{
		ShopifyProductID: outcome.ShopifyProductID,
		ProductCost:      sellPrice,
		ShippingCost:     shippingEstimate,
		Notes:            &notes,
	})
	if err != nil {
		logrus.WithError(err).WithField("shopify_product_id", outcome.ShopifyProductID).
			Warn("cost upsert failed during sync")
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Updated = true
	return outcome
}

// matchCatalogEntry first tries an exact normalized-name hit, then a
// linear substring scan in either direction; first match wins.
func matchCatalogEntry(title string, byName map[string]*cjCatalogEntry, catalog []cjCatalogEntry) *cjCatalogEntry {
	normalizedTitle := NormalizeName(title)
	if normalizedTitle == "" {
		return nil
	}

	if entry, ok := byName[normalizedTitle]; ok {
		return entry
	}

	for i := range catalog {
		candidate := NormalizeName(catalog[i].NameEn)
		if candidate == "" {
			continue
		}
		if strings.Contains(normalizedTitle, candidate) || strings.Contains(candidate, normalizedTitle) {
			return &catalog[i]
		}
	}
	return nil
}

// NormalizeName lowercases and strips every non-alphanumeric rune.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseCJPrice reads a CJ price field, which may be a plain number or a
// range like "12.99 -- 18.50"; ranges resolve to their lower bound.
func parseCJPrice(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if idx := strings.Index(raw, "--"); idx >= 0 {
		raw = strings.TrimSpace(raw[:idx])
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

// getAccessToken returns a cached unexpired token or exchanges for a
// new one. The exchange clears previously cached tokens so the table
// only ever holds the latest row.
func (s *CJSyncService) getAccessToken(ctx context.Context) (string, error) {
	var cached models.CJAccessToken
	err := s.db.Order("created_at DESC").First(&cached).Error
	if err == nil && !cached.Expired(time.Now().Add(cjTokenSafetyRoom)) {
		return cached.AccessToken, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("database error: %w", err)
	}

	if !s.tokenLimiter.Allow() {
		return "", ErrTokenExchangeThrottled
	}

	payload, err := json.Marshal(map[string]string{
		"email":    s.config.CJ.Email,
		"password": s.config.CJ.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}

	url := fmt.Sprintf("%s/authentication/getAccessToken", strings.TrimSuffix(s.config.CJ.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cj token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cj token exchange returned status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp cjTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if !tokenResp.Result || tokenResp.Data.AccessToken == "" {
		return "", fmt.Errorf("cj token exchange rejected: %s", tokenResp.Message)
	}

	expiresAt, err := time.Parse("2006-01-02 15:04:05", tokenResp.Data.AccessTokenExpiryDate)
	if err != nil {
		// CJ tokens historically live ~15 days; fall back to a
		// conservative window when the expiry field is unparseable.
		expiresAt = time.Now().Add(24 * time.Hour)
	}

	token := &models.CJAccessToken{
		AccessToken: tokenResp.Data.AccessToken,
		ExpiresAt:   expiresAt,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.CJAccessToken{}).Error; err != nil {
			return fmt.Errorf("failed to clear cached tokens: %w", err)
		}
		if err := tx.Create(token).Error; err != nil {
			return fmt.Errorf("failed to cache token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// fetchCatalog pages through the whole CJ product list. It stops on a
// short page or when the reported total is exhausted; there is no
// max-page guard, so a huge catalog just takes longer.
func (s *CJSyncService) fetchCatalog(ctx context.Context, token string) ([]cjCatalogEntry, error) {
	var catalog []cjCatalogEntry

	for pageNum := 1; ; pageNum++ {
		url := fmt.Sprintf("%s/product/list?pageNum=%d&pageSize=%d",
			strings.TrimSuffix(s.config.CJ.BaseURL, "/"), pageNum, cjPageSize)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build catalog request: %w", err)
		}
		req.Header.Set("CJ-Access-Token", token)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("cj catalog fetch failed on page %d: %w", pageNum, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("cj catalog fetch returned status %d on page %d: %s",
				resp.StatusCode, pageNum, string(body))
		}

		var listResp cjListResponse
		if err := json.Unmarshal(body, &listResp); err != nil {
			return nil, fmt.Errorf("failed to decode catalog response: %w", err)
		}
		if !listResp.Result {
			return nil, fmt.Errorf("cj catalog fetch rejected: %s", listResp.Message)
		}

		catalog = append(catalog, listResp.Data.List...)

		if len(listResp.Data.List) < cjPageSize {
			break
		}
		if listResp.Data.Total > 0 && len(catalog) >= listResp.Data.Total {
			break
		}
	}

	return catalog, nil
}
