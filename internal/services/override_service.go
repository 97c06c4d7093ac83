// internal/services/override_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asterohype/backend/internal/models"
	"github.com/asterohype/backend/internal/utils"
)

// OverrideService manages store-side field replacements. Rows are
// created lazily on first edit; writes are last-write-wins.
type OverrideService struct {
	db *gorm.DB
}

type UpsertOverrideRequest struct {
	ShopifyProductID string   `json:"shopify_product_id" validate:"required,shopify_id"`
	Title            *string  `json:"title,omitempty"`
	Subtitle         *string  `json:"subtitle,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Price            *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	TitleSeparator   *string  `json:"title_separator,omitempty"`
	AboutItems       []string `json:"about_items,omitempty"`
}

func NewOverrideService(db *gorm.DB) *OverrideService {
	return &OverrideService{db: db}
}

func (s *OverrideService) Upsert(req *UpsertOverrideRequest) (*models.ProductOverride, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	override := &models.ProductOverride{
		ShopifyProductID: NormalizeGID(req.ShopifyProductID),
		Title:            req.Title,
		Subtitle:         req.Subtitle,
		Description:      req.Description,
		Price:            req.Price,
		TitleSeparator:   req.TitleSeparator,
		AboutItems:       req.AboutItems,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shopify_product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "subtitle", "description", "price", "title_separator", "about_items", "updated_at",
		}),
	}).Create(override).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert override: %w", err)
	}

	return s.Get(override.ShopifyProductID)
}

func (s *OverrideService) Get(shopifyProductID string) (*models.ProductOverride, error) {
	var override models.ProductOverride
	err := s.db.Where("shopify_product_id = ?", NormalizeGID(shopifyProductID)).
		First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("override not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &override, nil
}

func (s *OverrideService) List() ([]models.ProductOverride, error) {
	var overrides []models.ProductOverride
	if err := s.db.Find(&overrides).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch overrides: %w", err)
	}
	return overrides, nil
}

// ListPaged returns one page of overrides for the admin console.
func (s *OverrideService) ListPaged(params utils.PaginationParams) ([]models.ProductOverride, int64, error) {
	var total int64
	if err := s.db.Model(&models.ProductOverride{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count overrides: %w", err)
	}

	var overrides []models.ProductOverride
	query := utils.ApplySort(s.db.Model(&models.ProductOverride{}), params,
		[]string{"created_at", "updated_at", "shopify_product_id"})
	if err := utils.ApplyPagination(query, params).Find(&overrides).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch overrides: %w", err)
	}
	return overrides, total, nil
}

func (s *OverrideService) Delete(shopifyProductID string) error {
	result := s.db.Where("shopify_product_id = ?", NormalizeGID(shopifyProductID)).
		Delete(&models.ProductOverride{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete override: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("override not found")
	}
	return nil
}
