// internal/models/overlay.go
package models

import (
	"math"
	"strings"

	"github.com/lib/pq"
)

// ProductOverride is a store-side replacement for catalog fields. It
// supersedes the Shopify value for display only and is never written
// back to the platform.
type ProductOverride struct {
	OverlayModel
	ShopifyProductID string         `json:"shopify_product_id" gorm:"size:64;not null;uniqueIndex"`
	Title            *string        `json:"title,omitempty" gorm:"size:255"`
	Subtitle         *string        `json:"subtitle,omitempty" gorm:"size:255"`
	Description      *string        `json:"description,omitempty" gorm:"type:text"`
	Price            *float64       `json:"price,omitempty" gorm:"type:decimal(10,2)"`
	TitleSeparator   *string        `json:"title_separator,omitempty" gorm:"size:16"`
	AboutItems       pq.StringArray `json:"about_items,omitempty" gorm:"type:text[]"`
}

type ProductCost struct {
	OverlayModel
	ShopifyProductID string  `json:"shopify_product_id" gorm:"size:64;not null;uniqueIndex"`
	ProductCost      float64 `json:"product_cost" gorm:"type:decimal(10,2);not null"`
	ShippingCost     float64 `json:"shipping_cost" gorm:"type:decimal(10,2);not null"`
	Notes            *string `json:"notes,omitempty" gorm:"type:text"`
}

func (c *ProductCost) Total() float64 {
	return c.ProductCost + c.ShippingCost
}

type ProductOffer struct {
	OverlayModel
	ShopifyProductID  string   `json:"shopify_product_id" gorm:"size:64;not null;uniqueIndex"`
	OfferText         string   `json:"offer_text" gorm:"type:text"`
	OfferActive       bool     `json:"offer_active" gorm:"default:false"`
	DiscountPercent   *float64 `json:"discount_percent,omitempty" gorm:"type:decimal(5,2)"`
	OriginalPrice     *float64 `json:"original_price,omitempty" gorm:"type:decimal(10,2)"`
	LowStockThreshold *int     `json:"low_stock_threshold,omitempty"`
	LowStockAlert     bool     `json:"low_stock_alert" gorm:"default:false"`
}

const editStatusFieldCount = 9

// ProductEditStatus is an admin progress tracker, one row per product
// with nine independent done flags.
type ProductEditStatus struct {
	OverlayModel
	ShopifyProductID string `json:"shopify_product_id" gorm:"size:64;not null;uniqueIndex"`
	TitleDone        bool   `json:"title_done" gorm:"default:false"`
	PriceDone        bool   `json:"price_done" gorm:"default:false"`
	DescriptionDone  bool   `json:"description_done" gorm:"default:false"`
	AboutDone        bool   `json:"about_done" gorm:"default:false"`
	ModelDone        bool   `json:"model_done" gorm:"default:false"`
	ColorDone        bool   `json:"color_done" gorm:"default:false"`
	TagsDone         bool   `json:"tags_done" gorm:"default:false"`
	OffersDone       bool   `json:"offers_done" gorm:"default:false"`
	ImagesDone       bool   `json:"images_done" gorm:"default:false"`
}

func (s *ProductEditStatus) DoneCount() int {
	count := 0
	for _, done := range []bool{
		s.TitleDone, s.PriceDone, s.DescriptionDone, s.AboutDone,
		s.ModelDone, s.ColorDone, s.TagsDone, s.OffersDone, s.ImagesDone,
	} {
		if done {
			count++
		}
	}
	return count
}

func (s *ProductEditStatus) AllDone() bool {
	return s.DoneCount() == editStatusFieldCount
}

func (s *ProductEditStatus) CompletionPercent() int {
	return int(math.Round(float64(s.DoneCount()) / editStatusFieldCount * 100))
}

type SizeConversion struct {
	OverlayModel
	ShopifyProductID string   `json:"shopify_product_id" gorm:"size:64;not null;uniqueIndex:idx_size_conversions_product_size"`
	AsianSize        string   `json:"asian_size" gorm:"size:32;not null;uniqueIndex:idx_size_conversions_product_size"`
	LocalSize        string   `json:"local_size" gorm:"size:32;not null"`
	SizeType         SizeType `json:"size_type" gorm:"type:varchar(20);not null"`
	Notes            *string  `json:"notes,omitempty" gorm:"type:text"`
}

// SplitTitle splits a raw Shopify title into display title and subtitle
// at the first occurrence of sep. When sep is empty or absent the whole
// string is the title and the subtitle is nil.
func SplitTitle(title, sep string) (string, *string) {
	if sep == "" {
		return title, nil
	}
	idx := strings.Index(title, sep)
	if idx < 0 {
		return title, nil
	}
	subtitle := title[idx+len(sep):]
	return title[:idx], &subtitle
}
