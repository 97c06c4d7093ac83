// internal/services/cost_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asterohype/backend/internal/models"
)

func TestCalculateProfitNoCostRow(t *testing.T) {
	breakdown := CalculateProfit(49.99, nil)

	assert.InDelta(t, 49.99, breakdown.SellingPrice, 0.0001)
	assert.Zero(t, breakdown.TotalCost)
	assert.InDelta(t, 49.99, breakdown.Profit, 0.0001)
	assert.InDelta(t, 100.0, breakdown.ProfitMargin, 0.0001)
}

func TestCalculateProfitWithCost(t *testing.T) {
	cost := &models.ProductCost{ProductCost: 10, ShippingCost: 5}
	breakdown := CalculateProfit(60, cost)

	assert.InDelta(t, 15.0, breakdown.TotalCost, 0.0001)
	assert.InDelta(t, 45.0, breakdown.Profit, 0.0001)
	assert.InDelta(t, 75.0, breakdown.ProfitMargin, 0.0001)
}

func TestCalculateProfitNegative(t *testing.T) {
	cost := &models.ProductCost{ProductCost: 50, ShippingCost: 20}
	breakdown := CalculateProfit(60, cost)

	assert.InDelta(t, -10.0, breakdown.Profit, 0.0001)
	assert.True(t, breakdown.ProfitMargin < 0)
}

func TestCalculateProfitZeroSellingPrice(t *testing.T) {
	cost := &models.ProductCost{ProductCost: 5}
	breakdown := CalculateProfit(0, cost)

	assert.InDelta(t, -5.0, breakdown.Profit, 0.0001)
	// Margin is left at zero rather than dividing by zero.
	assert.Zero(t, breakdown.ProfitMargin)
}
