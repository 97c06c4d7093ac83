// internal/services/collection_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asterohype/backend/internal/models"
	"github.com/asterohype/backend/internal/utils"
)

// CollectionService manages curated product groupings that live
// alongside the Shopify catalog. Membership references products by
// Shopify id only; the storefront resolves details at render time.
type CollectionService struct {
	db *gorm.DB
}

type CreateCollectionRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description,omitempty"`
}

type UpdateCollectionRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type AddCollectionProductRequest struct {
	ShopifyProductID string `json:"shopify_product_id" validate:"required,shopify_id"`
	Position         int    `json:"position" validate:"min=0"`
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

func (s *CollectionService) Create(req *CreateCollectionRequest) (*models.Collection, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	collection := &models.Collection{
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.db.Create(collection).Error; err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return collection, nil
}

func (s *CollectionService) Get(id uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	err := s.db.Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, created_at ASC")
	}).First(&collection, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("collection not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &collection, nil
}

func (s *CollectionService) GetBySlug(slug string) (*models.Collection, error) {
	var collection models.Collection
	err := s.db.Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, created_at ASC")
	}).Where("slug = ? AND is_active = ?", slug, true).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("collection not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &collection, nil
}

func (s *CollectionService) List(includeInactive bool) ([]models.Collection, error) {
	query := s.db.Order("name ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var collections []models.Collection
	if err := query.Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch collections: %w", err)
	}
	return collections, nil
}

func (s *CollectionService) Update(id uuid.UUID, req *UpdateCollectionRequest) (*models.Collection, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = utils.Slugify(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return s.Get(id)
	}

	result := s.db.Model(&models.Collection{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update collection: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("collection not found")
	}
	return s.Get(id)
}

func (s *CollectionService) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&models.CollectionProduct{}).Error; err != nil {
			return fmt.Errorf("failed to delete collection memberships: %w", err)
		}
		result := tx.Delete(&models.Collection{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete collection: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.New("collection not found")
		}
		return nil
	})
}

// AddProduct is idempotent; re-adding an existing member updates its
// position.
func (s *CollectionService) AddProduct(collectionID uuid.UUID, req *AddCollectionProductRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Collection{}).Where("id = ?", collectionID).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return errors.New("collection not found")
	}

	member := &models.CollectionProduct{
		CollectionID:     collectionID,
		ShopifyProductID: NormalizeGID(req.ShopifyProductID),
		Position:         req.Position,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection_id"}, {Name: "shopify_product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"position", "updated_at"}),
	}).Create(member).Error
	if err != nil {
		return fmt.Errorf("failed to add product to collection: %w", err)
	}
	return nil
}

func (s *CollectionService) RemoveProduct(collectionID uuid.UUID, shopifyProductID string) error {
	result := s.db.Where("collection_id = ? AND shopify_product_id = ?",
		collectionID, NormalizeGID(shopifyProductID)).Delete(&models.CollectionProduct{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove product from collection: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product not in collection")
	}
	return nil
}

func (s *CollectionService) CollectionsForProduct(shopifyProductID string) ([]models.Collection, error) {
	var collections []models.Collection
	err := s.db.Joins("JOIN collection_products ON collection_products.collection_id = collections.id").
		Where("collection_products.shopify_product_id = ? AND collections.is_active = ?",
			NormalizeGID(shopifyProductID), true).
		Find(&collections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collections for product: %w", err)
	}
	return collections, nil
}
