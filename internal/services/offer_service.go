// internal/services/offer_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asterohype/backend/internal/models"
	"github.com/asterohype/backend/internal/utils"
)

type OfferService struct {
	db *gorm.DB
}

type UpsertOfferRequest struct {
	ShopifyProductID  string   `json:"shopify_product_id" validate:"required,shopify_id"`
	OfferText         string   `json:"offer_text"`
	OfferActive       bool     `json:"offer_active"`
	DiscountPercent   *float64 `json:"discount_percent,omitempty" validate:"omitempty,min=0,max=100"`
	OriginalPrice     *float64 `json:"original_price,omitempty" validate:"omitempty,min=0"`
	LowStockThreshold *int     `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
	LowStockAlert     bool     `json:"low_stock_alert"`
}

func NewOfferService(db *gorm.DB) *OfferService {
	return &OfferService{db: db}
}

func (s *OfferService) Upsert(req *UpsertOfferRequest) (*models.ProductOffer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	offer := &models.ProductOffer{
		ShopifyProductID:  NormalizeGID(req.ShopifyProductID),
		OfferText:         req.OfferText,
		OfferActive:       req.OfferActive,
		DiscountPercent:   req.DiscountPercent,
		OriginalPrice:     req.OriginalPrice,
		LowStockThreshold: req.LowStockThreshold,
		LowStockAlert:     req.LowStockAlert,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shopify_product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"offer_text", "offer_active", "discount_percent", "original_price",
			"low_stock_threshold", "low_stock_alert", "updated_at",
		}),
	}).Create(offer).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert offer: %w", err)
	}

	return s.Get(offer.ShopifyProductID)
}

func (s *OfferService) Get(shopifyProductID string) (*models.ProductOffer, error) {
	var offer models.ProductOffer
	err := s.db.Where("shopify_product_id = ?", NormalizeGID(shopifyProductID)).
		First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("offer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &offer, nil
}

func (s *OfferService) ListActive() ([]models.ProductOffer, error) {
	var offers []models.ProductOffer
	if err := s.db.Where("offer_active = ?", true).Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}
	return offers, nil
}

func (s *OfferService) OffersByProduct() (map[string]*models.ProductOffer, error) {
	var offers []models.ProductOffer
	if err := s.db.Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}

	byProduct := make(map[string]*models.ProductOffer, len(offers))
	for i := range offers {
		byProduct[offers[i].ShopifyProductID] = &offers[i]
	}
	return byProduct, nil
}

func (s *OfferService) Delete(shopifyProductID string) error {
	result := s.db.Where("shopify_product_id = ?", NormalizeGID(shopifyProductID)).
		Delete(&models.ProductOffer{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete offer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("offer not found")
	}
	return nil
}
