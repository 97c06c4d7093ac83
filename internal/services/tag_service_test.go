// internal/services/tag_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asterohype/backend/internal/models"
)

func TestAssignDuplicateIsSilentNoOp(t *testing.T) {
	db := newServiceTestDB(t, &models.ProductTag{}, &models.ProductTagAssignment{})
	svc := NewTagService(db)

	tag, err := svc.Create(&CreateTagRequest{Name: "Summer Drop"})
	require.NoError(t, err)

	req := &AssignTagRequest{ShopifyProductID: "1234567890", TagID: tag.ID}
	require.NoError(t, svc.Assign(req))

	// Assigning the same pair again succeeds and leaves a single row.
	require.NoError(t, svc.Assign(req))

	var count int64
	require.NoError(t, db.Model(&models.ProductTagAssignment{}).
		Where("shopify_product_id = ? AND tag_id = ?", "1234567890", tag.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateSameNameResolvesToExistingTag(t *testing.T) {
	db := newServiceTestDB(t, &models.ProductTag{}, &models.ProductTagAssignment{})
	svc := NewTagService(db)

	first, err := svc.Create(&CreateTagRequest{Name: "Summer Drop"})
	require.NoError(t, err)

	second, err := svc.Create(&CreateTagRequest{Name: "Summer Drop"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestAssignUnknownTagFails(t *testing.T) {
	db := newServiceTestDB(t, &models.ProductTag{}, &models.ProductTagAssignment{})
	svc := NewTagService(db)

	err := svc.Assign(&AssignTagRequest{ShopifyProductID: "1234567890", TagID: uuid.New()})
	assert.Error(t, err)
}
