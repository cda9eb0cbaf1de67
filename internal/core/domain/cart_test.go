package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trustedwear/storefront/internal/core/domain"
)

func sale(v float64) *float64 { return &v }

func hoodie() domain.Product {
	return domain.Product{
		ID: "m1", Name: "Street Legends Hoodie",
		Price: 100, SalePrice: sale(80),
		Category: domain.CategoryMen, Type: "Hoodies",
		Images: []string{"img"}, Sizes: []string{"S", "M", "L"},
		InStock: true,
	}
}

func cropTop() domain.Product {
	return domain.Product{
		ID: "w2", Name: "Uptown Girl Crop Top",
		Price:    50,
		Category: domain.CategoryWomen, Type: "Tops",
		Images: []string{"img"}, Sizes: []string{"XS", "S"},
		InStock: true,
	}
}

func TestCartAdd(t *testing.T) {
	t.Run("MergesSamePair", func(t *testing.T) {
		var c domain.Cart
		c = c.Add(hoodie(), "M", 2)
		c = c.Add(hoodie(), "M", 3)

		require.Len(t, c, 1)
		assert.Equal(t, 5, c[0].Quantity)
	})

	t.Run("DifferentSizeAppends", func(t *testing.T) {
		var c domain.Cart
		c = c.Add(hoodie(), "M", 1)
		c = c.Add(hoodie(), "L", 1)

		require.Len(t, c, 2)
		assert.Equal(t, "M", c[0].Size)
		assert.Equal(t, "L", c[1].Size)
	})

	t.Run("QuantityBelowOneBecomesOne", func(t *testing.T) {
		var c domain.Cart
		c = c.Add(hoodie(), "M", 0)
		c = c.Add(cropTop(), "S", -5)

		require.Len(t, c, 2)
		assert.Equal(t, 1, c[0].Quantity)
		assert.Equal(t, 1, c[1].Quantity)
	})
}

func TestCartRemove(t *testing.T) {
	var c domain.Cart
	c = c.Add(hoodie(), "M", 1)
	c = c.Add(hoodie(), "L", 1)

	c = c.Remove("m1", "M")
	require.Len(t, c, 1)
	assert.Equal(t, "L", c[0].Size)

	// absent pair leaves cart unchanged
	c = c.Remove("m1", "M")
	c = c.Remove("absent", "L")
	assert.Len(t, c, 1)
}

func TestCartSetQuantity(t *testing.T) {
	t.Run("ReplacesQuantity", func(t *testing.T) {
		var c domain.Cart
		c = c.Add(hoodie(), "M", 2)
		c = c.SetQuantity("m1", "M", 9)

		require.Len(t, c, 1)
		assert.Equal(t, 9, c[0].Quantity)
	})

	t.Run("ZeroOrBelowRemoves", func(t *testing.T) {
		var c domain.Cart
		c = c.Add(hoodie(), "M", 2)
		c = c.Add(cropTop(), "S", 1)

		c = c.SetQuantity("m1", "M", 0)
		require.Len(t, c, 1)

		c = c.SetQuantity("w2", "S", -1)
		assert.Empty(t, c)
	})

	t.Run("AbsentPairIsNoop", func(t *testing.T) {
		var c domain.Cart
		c = c.Add(hoodie(), "M", 2)

		c = c.SetQuantity("absent", "M", 5)
		require.Len(t, c, 1)
		assert.Equal(t, 2, c[0].Quantity)
	})
}

func TestCartTotalAndCount(t *testing.T) {
	var c domain.Cart
	c = c.Add(hoodie(), "M", 2)  // 80 * 2, sale price wins
	c = c.Add(cropTop(), "S", 1) // 50 * 1

	assert.InDelta(t, 210, c.Total(), 1e-9)
	assert.Equal(t, 3, c.Count())

	assert.Zero(t, domain.Cart{}.Total())
	assert.Zero(t, domain.Cart{}.Count())
}
