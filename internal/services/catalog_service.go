// internal/services/catalog_service.go
package services

import (
	"strconv"

	"github.com/asterohype/backend/internal/models"
)

// CatalogService assembles the storefront view: live Shopify products
// with the store-side overlays (overrides, offers, tags) applied on
// top. The admin view additionally carries costs, profit figures, and
// edit progress. Nothing computed here is ever written back to Shopify.
type CatalogService struct {
	shopify    *ShopifyService
	overrides  *OverrideService
	offers     *OfferService
	tags       *TagService
	costs      *CostService
	editStatus *EditStatusService
	sizes      *SizeService
}

// CatalogProduct is the merged public shape for one product.
type CatalogProduct struct {
	ShopifyProductID string                  `json:"shopify_product_id"`
	Handle           string                  `json:"handle"`
	Title            string                  `json:"title"`
	Subtitle         *string                 `json:"subtitle,omitempty"`
	Description      string                  `json:"description"`
	Price            float64                 `json:"price"`
	AboutItems       []string                `json:"about_items,omitempty"`
	Tags             []models.ProductTag     `json:"tags,omitempty"`
	Offer            *models.ProductOffer    `json:"offer,omitempty"`
	Sizes            []models.SizeConversion `json:"sizes,omitempty"`
	Images           []ShopifyImage          `json:"images,omitempty"`
	Variants         []ShopifyVariant        `json:"variants,omitempty"`
	InStock          bool                    `json:"in_stock"`
}

// AdminCatalogProduct extends the public shape with internal figures.
type AdminCatalogProduct struct {
	CatalogProduct
	Cost       *models.ProductCost `json:"cost,omitempty"`
	Profit     *ProfitBreakdown    `json:"profit,omitempty"`
	EditStatus *EditStatusView     `json:"edit_status,omitempty"`
}

func NewCatalogService(shopify *ShopifyService, overrides *OverrideService, offers *OfferService,
	tags *TagService, costs *CostService, editStatus *EditStatusService, sizes *SizeService) *CatalogService {
	return &CatalogService{
		shopify:    shopify,
		overrides:  overrides,
		offers:     offers,
		tags:       tags,
		costs:      costs,
		editStatus: editStatus,
		sizes:      sizes,
	}
}

// ListProducts returns the full storefront catalog with overlays
// applied.
func (s *CatalogService) ListProducts() ([]CatalogProduct, error) {
	products, err := s.shopify.ListProducts()
	if err != nil {
		return nil, err
	}

	overrides, err := s.overridesByProduct()
	if err != nil {
		return nil, err
	}
	offers, err := s.offers.OffersByProduct()
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.TagsByProduct()
	if err != nil {
		return nil, err
	}

	merged := make([]CatalogProduct, 0, len(products))
	for i := range products {
		productID := strconv.FormatInt(products[i].ID, 10)
		merged = append(merged, s.merge(&products[i], overrides[productID], offers[productID], tags[productID], nil))
	}
	return merged, nil
}

// GetProduct returns one merged product, including size conversions.
func (s *CatalogService) GetProduct(shopifyProductID string) (*CatalogProduct, error) {
	normalizedID := NormalizeGID(shopifyProductID)

	product, err := s.shopify.GetProduct(normalizedID)
	if err != nil {
		return nil, err
	}

	override, _ := s.overrides.Get(normalizedID)
	offer, _ := s.offers.Get(normalizedID)
	productTags, err := s.tags.TagsForProduct(normalizedID)
	if err != nil {
		return nil, err
	}
	sizes, err := s.sizes.ListForProduct(normalizedID)
	if err != nil {
		return nil, err
	}

	merged := s.merge(product, override, offer, productTags, sizes)
	return &merged, nil
}

// ListAdminProducts is the admin console listing: the public merge plus
// cost, profit, and edit-progress overlays.
func (s *CatalogService) ListAdminProducts() ([]AdminCatalogProduct, error) {
	products, err := s.ListProducts()
	if err != nil {
		return nil, err
	}

	costs, err := s.costs.CostsByProduct()
	if err != nil {
		return nil, err
	}
	statuses, err := s.editStatus.StatusByProduct()
	if err != nil {
		return nil, err
	}

	adminProducts := make([]AdminCatalogProduct, 0, len(products))
	for _, product := range products {
		adminProduct := AdminCatalogProduct{CatalogProduct: product}

		cost := costs[product.ShopifyProductID]
		adminProduct.Cost = cost
		profit := CalculateProfit(product.Price, cost)
		adminProduct.Profit = &profit

		if status, ok := statuses[product.ShopifyProductID]; ok {
			adminProduct.EditStatus = &status
		}

		adminProducts = append(adminProducts, adminProduct)
	}
	return adminProducts, nil
}

// merge applies an override on top of the raw Shopify product. Title
// splitting uses the override's separator when set; an explicit title
// override wins over splitting.
func (s *CatalogService) merge(product *ShopifyProduct, override *models.ProductOverride,
	offer *models.ProductOffer, tags []models.ProductTag, sizes []models.SizeConversion) CatalogProduct {

	merged := CatalogProduct{
		ShopifyProductID: strconv.FormatInt(product.ID, 10),
		Handle:           product.Handle,
		Title:            product.Title,
		Description:      product.BodyHTML,
		Tags:             tags,
		Offer:            offer,
		Sizes:            sizes,
		Images:           product.Images,
		Variants:         product.Variants,
	}

	if len(product.Variants) > 0 {
		if price, err := strconv.ParseFloat(product.Variants[0].Price, 64); err == nil {
			merged.Price = price
		}
		for _, variant := range product.Variants {
			if variant.InventoryQuantity > 0 {
				merged.InStock = true
				break
			}
		}
	}

	if override == nil {
		return merged
	}

	if override.TitleSeparator != nil {
		title, subtitle := models.SplitTitle(merged.Title, *override.TitleSeparator)
		merged.Title = title
		merged.Subtitle = subtitle
	}
	if override.Title != nil {
		merged.Title = *override.Title
	}
	if override.Subtitle != nil {
		merged.Subtitle = override.Subtitle
	}
	if override.Description != nil {
		merged.Description = *override.Description
	}
	if override.Price != nil {
		merged.Price = *override.Price
	}
	if len(override.AboutItems) > 0 {
		merged.AboutItems = override.AboutItems
	}

	return merged
}

func (s *CatalogService) overridesByProduct() (map[string]*models.ProductOverride, error) {
	overrides, err := s.overrides.List()
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]*models.ProductOverride, len(overrides))
	for i := range overrides {
		byProduct[overrides[i].ShopifyProductID] = &overrides[i]
	}
	return byProduct, nil
}
