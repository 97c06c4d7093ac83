// internal/services/tester_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asterohype/backend/internal/models"
	"github.com/asterohype/backend/internal/utils"
)

// TesterService runs the lightweight internal review flow: named
// invitation codes gate rating submission, one rating per
// (product, code) pair.
type TesterService struct {
	db *gorm.DB
}

// Code is optional; when omitted one is generated.
type CreateTesterCodeRequest struct {
	Code  string `json:"code" validate:"omitempty,min=4,max=64"`
	Label string `json:"label" validate:"omitempty,max=100"`
}

const generatedCodeLength = 10

type SubmitRatingRequest struct {
	ShopifyProductID string                 `json:"shopify_product_id" validate:"required,shopify_id"`
	TesterCode       string                 `json:"tester_code" validate:"required"`
	Sentiment        models.RatingSentiment `json:"sentiment" validate:"required"`
	Notes            *string                `json:"notes,omitempty"`
}

type ProductRatingSummary struct {
	ShopifyProductID string                         `json:"shopify_product_id"`
	TotalRatings     int                            `json:"total_ratings"`
	BySentiment      map[models.RatingSentiment]int `json:"by_sentiment"`
	Ratings          []models.ProductTestRating     `json:"ratings"`
}

func NewTesterService(db *gorm.DB) *TesterService {
	return &TesterService{db: db}
}

func (s *TesterService) CreateCode(req *CreateTesterCodeRequest) (*models.TesterCode, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	codeValue := req.Code
	if codeValue == "" {
		generated, err := utils.GenerateRandomString(generatedCodeLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate tester code: %w", err)
		}
		codeValue = generated
	}

	code := &models.TesterCode{
		Code:     codeValue,
		Label:    req.Label,
		IsActive: true,
	}
	if err := s.db.Create(code).Error; err != nil {
		return nil, fmt.Errorf("failed to create tester code: %w", err)
	}
	return code, nil
}

func (s *TesterService) ValidateCode(code string) (*models.TesterCode, error) {
	var testerCode models.TesterCode
	err := s.db.Where("code = ? AND is_active = ?", code, true).First(&testerCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid tester code")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &testerCode, nil
}

func (s *TesterService) DeactivateCode(code string) error {
	result := s.db.Model(&models.TesterCode{}).
		Where("code = ?", code).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate tester code: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("tester code not found")
	}
	return nil
}

// SubmitRating upserts the tester's verdict; re-submitting replaces the
// previous one for the same product.
func (s *TesterService) SubmitRating(req *SubmitRatingRequest) (*models.ProductTestRating, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !req.Sentiment.Valid() {
		return nil, errors.New("invalid sentiment value")
	}

	if _, err := s.ValidateCode(req.TesterCode); err != nil {
		return nil, err
	}

	rating := &models.ProductTestRating{
		ShopifyProductID: NormalizeGID(req.ShopifyProductID),
		TesterCode:       req.TesterCode,
		Sentiment:        req.Sentiment,
		Notes:            req.Notes,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shopify_product_id"}, {Name: "tester_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"sentiment", "notes", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	var saved models.ProductTestRating
	err = s.db.Where("shopify_product_id = ? AND tester_code = ?",
		rating.ShopifyProductID, rating.TesterCode).First(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &saved, nil
}

func (s *TesterService) SummaryForProduct(shopifyProductID string) (*ProductRatingSummary, error) {
	normalizedID := NormalizeGID(shopifyProductID)

	var ratings []models.ProductTestRating
	err := s.db.Where("shopify_product_id = ?", normalizedID).
		Order("created_at DESC").Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ratings: %w", err)
	}

	summary := &ProductRatingSummary{
		ShopifyProductID: normalizedID,
		TotalRatings:     len(ratings),
		BySentiment:      make(map[models.RatingSentiment]int),
		Ratings:          ratings,
	}
	for _, rating := range ratings {
		summary.BySentiment[rating.Sentiment]++
	}
	return summary, nil
}

func (s *TesterService) ListCodes() ([]models.TesterCode, error) {
	var codes []models.TesterCode
	if err := s.db.Order("created_at DESC").Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tester codes: %w", err)
	}
	return codes, nil
}
