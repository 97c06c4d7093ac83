// internal/services/size_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asterohype/backend/internal/models"
	"github.com/asterohype/backend/internal/utils"
)

type SizeService struct {
	db *gorm.DB
}

type UpsertSizeConversionRequest struct {
	ShopifyProductID string          `json:"shopify_product_id" validate:"required,shopify_id"`
	AsianSize        string          `json:"asian_size" validate:"required,max=32"`
	LocalSize        string          `json:"local_size" validate:"omitempty,max=32"`
	SizeType         models.SizeType `json:"size_type" validate:"required,oneof=clothing shoes accessories"`
	Notes            *string         `json:"notes,omitempty"`
}

const (
	sizeNoteAuto        = "auto"
	sizeNoteNeedsReview = "needs manual review"
)

// Asian label -> EU/local label. Shoe sizes follow the common CN to EU
// offset for adult sizes.
var clothingSizeTable = map[string]string{
	"S":    "XS",
	"M":    "S",
	"L":    "M",
	"XL":   "L",
	"2XL":  "XL",
	"XXL":  "XL",
	"3XL":  "XXL",
	"XXXL": "XXL",
	"4XL":  "3XL",
}

var shoeSizeTable = map[string]string{
	"39": "38",
	"40": "39",
	"41": "40",
	"42": "41",
	"43": "42",
	"44": "43",
	"45": "44",
	"46": "45",
}

func NewSizeService(db *gorm.DB) *SizeService {
	return &SizeService{db: db}
}

// AutoConvert maps an Asian size label to its local equivalent. The
// second return reports whether the mapping came from a table or needs
// manual review.
func AutoConvert(asianSize string, sizeType models.SizeType) (string, bool) {
	size := strings.ToUpper(strings.TrimSpace(asianSize))

	switch sizeType {
	case models.SizeTypeClothing:
		if local, ok := clothingSizeTable[size]; ok {
			return local, true
		}
	case models.SizeTypeShoes:
		if local, ok := shoeSizeTable[size]; ok {
			return local, true
		}
	}
	return size, false
}

func (s *SizeService) Upsert(req *UpsertSizeConversionRequest) (*models.SizeConversion, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	localSize := req.LocalSize
	notes := req.Notes
	if localSize == "" {
		converted, auto := AutoConvert(req.AsianSize, req.SizeType)
		localSize = converted
		if notes == nil {
			note := sizeNoteAuto
			if !auto {
				note = sizeNoteNeedsReview
			}
			notes = &note
		}
	}

	conversion := &models.SizeConversion{
		ShopifyProductID: NormalizeGID(req.ShopifyProductID),
		AsianSize:        req.AsianSize,
		LocalSize:        localSize,
		SizeType:         req.SizeType,
		Notes:            notes,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shopify_product_id"}, {Name: "asian_size"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"local_size", "size_type", "notes", "updated_at",
		}),
	}).Create(conversion).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert size conversion: %w", err)
	}

	var saved models.SizeConversion
	err = s.db.Where("shopify_product_id = ? AND asian_size = ?",
		conversion.ShopifyProductID, conversion.AsianSize).First(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &saved, nil
}

func (s *SizeService) ListForProduct(shopifyProductID string) ([]models.SizeConversion, error) {
	var conversions []models.SizeConversion
	err := s.db.Where("shopify_product_id = ?", NormalizeGID(shopifyProductID)).
		Order("asian_size").Find(&conversions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch size conversions: %w", err)
	}
	return conversions, nil
}

func (s *SizeService) Delete(shopifyProductID, asianSize string) error {
	result := s.db.Where("shopify_product_id = ? AND asian_size = ?",
		NormalizeGID(shopifyProductID), asianSize).
		Delete(&models.SizeConversion{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete size conversion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("size conversion not found")
	}
	return nil
}
