package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trustedwear/storefront/internal/core/domain"
)

func TestEffectivePrice(t *testing.T) {
	assert.InDelta(t, 80, hoodie().EffectivePrice(), 1e-9)
	assert.InDelta(t, 50, cropTop().EffectivePrice(), 1e-9)
}

func TestProductValidate(t *testing.T) {
	t.Run("ValidProduct", func(t *testing.T) {
		assert.NoError(t, hoodie().Validate())
	})

	invalid := []struct {
		name   string
		mutate func(*domain.Product)
	}{
		{"EmptyID", func(p *domain.Product) { p.ID = "" }},
		{"EmptyName", func(p *domain.Product) { p.Name = "" }},
		{"UnknownCategory", func(p *domain.Product) { p.Category = "pets" }},
		{"NoImages", func(p *domain.Product) { p.Images = nil }},
		{"NoSizes", func(p *domain.Product) { p.Sizes = nil }},
		{"SaleAbovePrice", func(p *domain.Product) { *p.SalePrice = 120 }},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			p := hoodie()
			tc.mutate(&p)

			err := p.Validate()
			require.ErrorIs(t, err, domain.ErrInvalidProduct)
		})
	}
}

func TestParseCategory(t *testing.T) {
	for _, s := range []string{"men", "women", "kids"} {
		got, err := domain.ParseCategory(s)
		require.NoError(t, err)
		assert.Equal(t, domain.Category(s), got)
	}

	_, err := domain.ParseCategory("unisex")
	assert.Error(t, err)
}
