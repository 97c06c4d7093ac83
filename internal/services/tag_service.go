// internal/services/tag_service.go
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

type TagService struct {
	db *gorm.DB
}

type CreateTagRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	GroupName *string `json:"group_name,omitempty" validate:"omitempty,max=100"`
}

type AssignTagRequest struct {
	ShopifyProductID string    `json:"shopify_product_id" validate:"required,shopify_id"`
	TagID            uuid.UUID `json:"tag_id" validate:"required"`
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) Create(req *CreateTagRequest) (*models.ProductTag, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	slug := utils.Slugify(req.Name)
	if slug == "" {
		return nil, errors.New("tag name produces an empty slug")
	}

	tag := &models.ProductTag{
		Name:      req.Name,
		Slug:      slug,
		GroupName: req.GroupName,
	}

	// Same display name twice resolves to the existing tag
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "group_name", "updated_at"}),
	}).Create(tag).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	var saved models.ProductTag
	if err := s.db.Where("slug = ?", slug).First(&saved).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &saved, nil
}

func (s *TagService) List() ([]models.ProductTag, error) {
	var tags []models.ProductTag
	if err := s.db.Order("group_name, name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	return tags, nil
}

// Delete removes a tag and its assignments in one transaction.
func (s *TagService) Delete(tagID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tagID).Delete(&models.ProductTagAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to delete tag assignments: %w", err)
		}
		result := tx.Delete(&models.ProductTag{}, tagID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete tag: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.New("tag not found")
		}
		return nil
	})
}

// Assign links a tag to a product. A duplicate assignment is a silent
// no-op, not an error.
func (s *TagService) Assign(req *AssignTagRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var tag models.ProductTag
	if err := s.db.First(&tag, req.TagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("tag not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	assignment := &models.ProductTagAssignment{
		ShopifyProductID: NormalizeGID(req.ShopifyProductID),
		TagID:            req.TagID,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shopify_product_id"}, {Name: "tag_id"}},
		DoNothing: true,
	}).Create(assignment).Error
	if err != nil {
		return fmt.Errorf("failed to assign tag: %w", err)
	}
	return nil
}

func (s *TagService) Unassign(shopifyProductID string, tagID uuid.UUID) error {
	result := s.db.Where("shopify_product_id = ? AND tag_id = ?", NormalizeGID(shopifyProductID), tagID).
		Delete(&models.ProductTagAssignment{})
	if result.Error != nil {
		return fmt.Errorf("failed to unassign tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("assignment not found")
	}
	return nil
}

func (s *TagService) TagsForProduct(shopifyProductID string) ([]models.ProductTag, error) {
	var tags []models.ProductTag
	err := s.db.
		Joins("JOIN product_tag_assignments ON product_tag_assignments.tag_id = product_tags.id").
		Where("product_tag_assignments.shopify_product_id = ?", NormalizeGID(shopifyProductID)).
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product tags: %w", err)
	}
	return tags, nil
}

// TagsByProduct returns every assignment grouped by product id, for
// catalog overlay merging in one query.
func (s *TagService) TagsByProduct() (map[string][]models.ProductTag, error) {
	var assignments []models.ProductTagAssignment
	if err := s.db.Preload("Tag").Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tag assignments: %w", err)
	}

	byProduct := make(map[string][]models.ProductTag)
	for _, a := range assignments {
		byProduct[a.ShopifyProductID] = append(byProduct[a.ShopifyProductID], a.Tag)
	}
	return byProduct, nil
}
