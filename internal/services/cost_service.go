// internal/services/cost_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asterohype/backend/internal/models"
	"github.com/asterohype/backend/internal/utils"
)

type CostService struct {
	db *gorm.DB
}

type UpsertCostRequest struct {
	ShopifyProductID string  `json:"shopify_product_id" validate:"required,shopify_id"`
	ProductCost      float64 `json:"product_cost" validate:"min=0"`
	ShippingCost     float64 `json:"shipping_cost" validate:"min=0"`
	Notes            *string `json:"notes,omitempty"`
}

// ProfitBreakdown is computed at read time from the live selling price
// and the cost row, if any.
type ProfitBreakdown struct {
	SellingPrice float64 `json:"selling_price"`
	TotalCost    float64 `json:"total_cost"`
	Profit       float64 `json:"profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

func NewCostService(db *gorm.DB) *CostService {
	return &CostService{db: db}
}

// CalculateProfit treats a missing cost row as zero cost: the whole
// selling price is profit and the margin is 100%.
func CalculateProfit(sellingPrice float64, cost *models.ProductCost) ProfitBreakdown {
	breakdown := ProfitBreakdown{SellingPrice: sellingPrice}

	if cost == nil {
		breakdown.Profit = sellingPrice
		breakdown.ProfitMargin = 100
		return breakdown
	}

	breakdown.TotalCost = cost.Total()
	breakdown.Profit = sellingPrice - breakdown.TotalCost
	if sellingPrice != 0 {
		breakdown.ProfitMargin = breakdown.Profit / sellingPrice * 100
	}

	return breakdown
}

func (s *CostService) Upsert(req *UpsertCostRequest) (*models.ProductCost, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	cost := &models.ProductCost{
		ShopifyProductID: NormalizeGID(req.ShopifyProductID),
		ProductCost:      req.ProductCost,
		ShippingCost:     req.ShippingCost,
		Notes:            req.Notes,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shopify_product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_cost", "shipping_cost", "notes", "updated_at",
		}),
	}).Create(cost).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cost: %w", err)
	}

	return s.Get(cost.ShopifyProductID)
}

func (s *CostService) Get(shopifyProductID string) (*models.ProductCost, error) {
	var cost models.ProductCost
	err := s.db.Where("shopify_product_id = ?", NormalizeGID(shopifyProductID)).
		First(&cost).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("cost not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &cost, nil
}

func (s *CostService) List() ([]models.ProductCost, error) {
	var costs []models.ProductCost
	if err := s.db.Find(&costs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch costs: %w", err)
	}
	return costs, nil
}

// ListPaged returns one page of costs for the admin console.
func (s *CostService) ListPaged(params utils.PaginationParams) ([]models.ProductCost, int64, error) {
	var total int64
	if err := s.db.Model(&models.ProductCost{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count costs: %w", err)
	}

	var costs []models.ProductCost
	query := utils.ApplySort(s.db.Model(&models.ProductCost{}), params,
		[]string{"created_at", "updated_at", "shopify_product_id", "product_cost"})
	if err := utils.ApplyPagination(query, params).Find(&costs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch costs: %w", err)
	}
	return costs, total, nil
}

// CostsByProduct returns costs keyed by product id for overlay merging.
func (s *CostService) CostsByProduct() (map[string]*models.ProductCost, error) {
	costs, err := s.List()
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]*models.ProductCost, len(costs))
	for i := range costs {
		byProduct[costs[i].ShopifyProductID] = &costs[i]
	}
	return byProduct, nil
}

func (s *CostService) Delete(shopifyProductID string) error {
	result := s.db.Where("shopify_product_id = ?", NormalizeGID(shopifyProductID)).
		Delete(&models.ProductCost{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cost: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("cost not found")
	}
	return nil
}
