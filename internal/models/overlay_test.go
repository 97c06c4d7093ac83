// internal/models/overlay_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTitle(t *testing.T) {
	t.Run("splits at first separator occurrence", func(t *testing.T) {
		title, subtitle := SplitTitle("Astro Hoodie | Midnight Edition", " | ")
		assert.Equal(t, "Astro Hoodie", title)
		assert.NotNil(t, subtitle)
		assert.Equal(t, "Midnight Edition", *subtitle)
	})

	t.Run("separator absent returns whole title", func(t *testing.T) {
		title, subtitle := SplitTitle("Astro Hoodie", " | ")
		assert.Equal(t, "Astro Hoodie", title)
		assert.Nil(t, subtitle)
	})

	t.Run("empty separator returns whole title", func(t *testing.T) {
		title, subtitle := SplitTitle("Astro Hoodie | Midnight", "")
		assert.Equal(t, "Astro Hoodie | Midnight", title)
		assert.Nil(t, subtitle)
	})

	t.Run("only first separator splits", func(t *testing.T) {
		title, subtitle := SplitTitle("A - B - C", " - ")
		assert.Equal(t, "A", title)
		assert.Equal(t, "B - C", *subtitle)
	})
}

func TestProductEditStatusProgress(t *testing.T) {
	status := ProductEditStatus{
		TitleDone: true,
		PriceDone: true,
	}

	assert.Equal(t, 2, status.DoneCount())
	assert.False(t, status.AllDone())
	assert.Equal(t, 22, status.CompletionPercent())

	status.DescriptionDone = true
	status.AboutDone = true
	status.ModelDone = true
	status.ColorDone = true
	status.TagsDone = true
	status.OffersDone = true
	status.ImagesDone = true

	assert.Equal(t, 9, status.DoneCount())
	assert.True(t, status.AllDone())
	assert.Equal(t, 100, status.CompletionPercent())
}

func TestProductEditStatusEmpty(t *testing.T) {
	status := ProductEditStatus{}
	assert.Equal(t, 0, status.DoneCount())
	assert.Equal(t, 0, status.CompletionPercent())
	assert.False(t, status.AllDone())
}

func TestProductCostTotal(t *testing.T) {
	cost := ProductCost{ProductCost: 12.50, ShippingCost: 3.25}
	assert.InDelta(t, 15.75, cost.Total(), 0.0001)
}
