// internal/models/stock.go
package models

import "time"

type StockNotification struct {
	OverlayModel
	Email            string             `json:"email" gorm:"size:255;not null;index"`
	ShopifyProductID string             `json:"shopify_product_id" gorm:"size:64;not null;index"`
	ShopifyVariantID *string            `json:"shopify_variant_id,omitempty" gorm:"size:64"`
	ProductTitle     string             `json:"product_title" gorm:"size:255"`
	Status           NotificationStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	SentAt           *time.Time         `json:"sent_at,omitempty"`
}
