// internal/models/tag.go
package models

import (
	"github.com/google/uuid"
)

type ProductTag struct {
	OverlayModel
	Name      string  `json:"name" gorm:"size:100;not null"`
	Slug      string  `json:"slug" gorm:"size:100;not null;uniqueIndex"`
	GroupName *string `json:"group_name,omitempty" gorm:"size:100;index"`

	Assignments []ProductTagAssignment `json:"assignments,omitempty" gorm:"foreignKey:TagID"`
}

// ProductTagAssignment joins products to tags. The unique pair makes a
// repeated assign an upsert no-op rather than an error.
type ProductTagAssignment struct {
	OverlayModel
	ShopifyProductID string    `json:"shopify_product_id" gorm:"size:64;not null;uniqueIndex:idx_tag_assignments_product_tag"`
	TagID            uuid.UUID `json:"tag_id" gorm:"type:uuid;not null;uniqueIndex:idx_tag_assignments_product_tag"`

	Tag ProductTag `json:"tag,omitempty" gorm:"foreignKey:TagID"`
}
