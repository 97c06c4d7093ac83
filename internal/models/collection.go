// internal/models/collection.go
package models

import (
	"github.com/google/uuid"
)

type Collection struct {
	OverlayModel
	Name        string  `json:"name" gorm:"size:100;not null"`
	Slug        string  `json:"slug" gorm:"size:100;not null;uniqueIndex"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`

	Products []CollectionProduct `json:"products,omitempty" gorm:"foreignKey:CollectionID"`
}

type CollectionProduct struct {
	OverlayModel
	CollectionID     uuid.UUID `json:"collection_id" gorm:"type:uuid;not null;uniqueIndex:idx_collection_products_pair"`
	ShopifyProductID string    `json:"shopify_product_id" gorm:"size:64;not null;uniqueIndex:idx_collection_products_pair"`
	Position         int       `json:"position" gorm:"default:0;index"`
}
