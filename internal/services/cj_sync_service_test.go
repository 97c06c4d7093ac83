// internal/services/cj_sync_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asterohype/backend/internal/config"
	"github.com/asterohype/backend/internal/models"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "wirelessearbudspro", NormalizeName("Wireless Earbuds Pro"))
	assert.Equal(t, "wirelessearbudspro", NormalizeName("WIRELESS-EARBUDS (PRO)!"))
	assert.Equal(t, "ledstriplight5m", NormalizeName("LED Strip Light, 5m"))
	assert.Equal(t, "", NormalizeName("---"))
	assert.Equal(t, "", NormalizeName(""))
}

func TestMatchCatalogEntryExact(t *testing.T) {
	catalog := []cjCatalogEntry{
		{PID: "cj-1", NameEn: "Wireless Earbuds Pro", SKU: "WEP-01"},
		{PID: "cj-2", NameEn: "LED Strip Light", SKU: "LSL-01"},
	}
	byName := indexByName(catalog)

	entry := matchCatalogEntry("WIRELESS EARBUDS PRO", byName, catalog)
	assert.NotNil(t, entry)
	assert.Equal(t, "cj-1", entry.PID)
}

func TestMatchCatalogEntrySubstring(t *testing.T) {
	catalog := []cjCatalogEntry{
		{PID: "cj-1", NameEn: "Wireless Earbuds"},
		{PID: "cj-2", NameEn: "Wireless Earbuds Pro Max Edition"},
	}
	byName := indexByName(catalog)

	// Catalog name contained in the product title.
	entry := matchCatalogEntry("Wireless Earbuds Pro", byName, catalog)
	assert.NotNil(t, entry)
	assert.Equal(t, "cj-1", entry.PID, "linear scan takes the first containing entry")

	// Product title contained in the catalog name.
	entry = matchCatalogEntry("Pro Max Edition", byName, catalog)
	assert.NotNil(t, entry)
	assert.Equal(t, "cj-2", entry.PID)
}

func TestMatchCatalogEntryNoMatch(t *testing.T) {
	catalog := []cjCatalogEntry{
		{PID: "cj-1", NameEn: "Wireless Earbuds"},
	}
	byName := indexByName(catalog)

	assert.Nil(t, matchCatalogEntry("Ceramic Mug", byName, catalog))
	assert.Nil(t, matchCatalogEntry("", byName, catalog))
}

func TestParseCJPrice(t *testing.T) {
	assert.InDelta(t, 12.99, parseCJPrice("12.99"), 0.0001)
	assert.InDelta(t, 12.99, parseCJPrice(" 12.99 -- 18.50 "), 0.0001)
	assert.Zero(t, parseCJPrice(""))
	assert.Zero(t, parseCJPrice("n/a"))
}

func TestSyncOneClampsNegativeShippingEstimate(t *testing.T) {
	db := newServiceTestDB(t, &models.ProductCost{})
	costs := NewCostService(db)
	svc := NewCJSyncService(db, &config.Config{}, costs)

	// Total below sell price happens on discounted CJ listings; the
	// stored shipping estimate must floor at zero.
	catalog := []cjCatalogEntry{
		{PID: "cj-1", NameEn: "Wireless Earbuds Pro", SKU: "WEP-01", SellPrice: "20.00", TotalPrice: "15.00"},
	}

	outcome := svc.syncOne(ShopifyProductRef{ID: "1234567890", Title: "Wireless Earbuds Pro"},
		indexByName(catalog), catalog)

	assert.True(t, outcome.Matched)
	assert.Empty(t, outcome.Error)
	assert.InDelta(t, 20.0, outcome.ProductCost, 0.0001)
	assert.Zero(t, outcome.ShippingEstimate)

	cost, err := costs.Get("1234567890")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, cost.ProductCost, 0.0001)
	assert.Zero(t, cost.ShippingCost)
	require.NotNil(t, cost.Notes)
	assert.Contains(t, *cost.Notes, "cj-1")
}

func TestSyncOnePersistsShippingEstimate(t *testing.T) {
	db := newServiceTestDB(t, &models.ProductCost{})
	costs := NewCostService(db)
	svc := NewCJSyncService(db, &config.Config{}, costs)

	catalog := []cjCatalogEntry{
		{PID: "cj-2", NameEn: "LED Strip Light", SKU: "LSL-01", SellPrice: "12.00", TotalPrice: "18.50"},
	}

	outcome := svc.syncOne(ShopifyProductRef{ID: "9876543210", Title: "LED Strip Light"},
		indexByName(catalog), catalog)

	assert.True(t, outcome.Matched)
	assert.InDelta(t, 12.0, outcome.ProductCost, 0.0001)
	assert.InDelta(t, 6.5, outcome.ShippingEstimate, 0.0001)

	cost, err := costs.Get("9876543210")
	require.NoError(t, err)
	assert.InDelta(t, 6.5, cost.ShippingCost, 0.0001)
}

func indexByName(catalog []cjCatalogEntry) map[string]*cjCatalogEntry {
	byName := make(map[string]*cjCatalogEntry, len(catalog))
	for i := range catalog {
		if key := NormalizeName(catalog[i].NameEn); key != "" {
			if _, exists := byName[key]; !exists {
				byName[key] = &catalog[i]
			}
		}
	}
	return byName
}
