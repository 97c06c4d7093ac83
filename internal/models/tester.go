// internal/models/tester.go
package models

type TesterCode struct {
	OverlayModel
	Code     string `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Label    string `json:"label" gorm:"size:100"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

// ProductTestRating records one tester's verdict per product. The
// (product, code) pair is unique; re-submitting updates in place.
type ProductTestRating struct {
	OverlayModel
	ShopifyProductID string          `json:"shopify_product_id" gorm:"size:64;not null;uniqueIndex:idx_test_ratings_product_code"`
	TesterCode       string          `json:"tester_code" gorm:"size:64;not null;uniqueIndex:idx_test_ratings_product_code"`
	Sentiment        RatingSentiment `json:"sentiment" gorm:"type:varchar(20);not null"`
	Notes            *string         `json:"notes,omitempty" gorm:"type:text"`
}
