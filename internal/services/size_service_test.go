// internal/services/size_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asterohype/backend/internal/models"
)

func TestAutoConvertClothing(t *testing.T) {
	local, ok := AutoConvert("XL", models.SizeTypeClothing)
	assert.True(t, ok)
	assert.Equal(t, "L", local)

	// Case and whitespace tolerant.
	local, ok = AutoConvert(" xxl ", models.SizeTypeClothing)
	assert.True(t, ok)
	assert.Equal(t, "XL", local)
}

func TestAutoConvertShoes(t *testing.T) {
	local, ok := AutoConvert("42", models.SizeTypeShoes)
	assert.True(t, ok)
	assert.Equal(t, "41", local)
}

func TestAutoConvertUnknown(t *testing.T) {
	local, ok := AutoConvert("OSFA", models.SizeTypeClothing)
	assert.False(t, ok)
	assert.Equal(t, "OSFA", local)

	// Accessories have no table; everything needs review.
	local, ok = AutoConvert("M", models.SizeTypeAccessories)
	assert.False(t, ok)
	assert.Equal(t, "M", local)
}
