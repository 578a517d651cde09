package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simares/storefront/internal/domain"
)

func swimsuit() domain.Product {
	return domain.Product{
		ID:     "p1",
		Colors: []domain.Color{{Name: "Red", Hex: "#c0392b"}, {Name: "Navy", Hex: "#1b2a4a"}},
		Sizes:  []string{"M", "L"},
		Variants: []domain.Variant{
			{ID: "v1", ColorName: "Red", Size: "M", Stock: 0},
			{ID: "v2", ColorName: "Red", Size: "L", Stock: 3},
			{ID: "v3", ColorName: "Navy", Size: "M", Stock: 2},
		},
	}
}

func TestResolveVariantExactMatch(t *testing.T) {
	p := swimsuit()

	_, ok := ResolveVariant(p, Selection{Color: "Red", Size: "M"})
	assert.False(t, ok, "out-of-stock variant must not resolve")

	v, ok := ResolveVariant(p, Selection{Color: "Red", Size: "L"})
	require.True(t, ok)
	assert.Equal(t, "v2", v.ID)
}

func TestResolveVariantNeverReturnsOutOfStock(t *testing.T) {
	p := swimsuit()
	selections := []Selection{
		{Color: "Red", Size: "M"},
		{Color: "Navy", Size: "L"},
		{Size: "M"},
		{Size: "L"},
	}
	for _, sel := range selections {
		if v, ok := ResolveVariant(p, sel); ok {
			assert.Greater(t, v.Stock, 0)
		}
	}
}

func TestResolveVariantSizeOnlyFallback(t *testing.T) {
	p := swimsuit()

	// No color chosen: first in-stock variant for the size wins.
	v, ok := ResolveVariant(p, Selection{Size: "M"})
	require.True(t, ok)
	assert.Equal(t, "v3", v.ID)

	// Once a color is chosen, resolution is exact-match only.
	_, ok = ResolveVariant(p, Selection{Color: "Red", Size: "M"})
	assert.False(t, ok)
}

func TestResolveVariantUnconstrainedProduct(t *testing.T) {
	p := domain.Product{ID: "legacy", Sizes: []string{"M"}}

	v, ok := ResolveVariant(p, Selection{Color: "Red", Size: "M"})
	require.True(t, ok)
	assert.Empty(t, v.ID, "legacy products resolve without a concrete variant id")
}

func TestStockFor(t *testing.T) {
	p := swimsuit()

	assert.Equal(t, 3, StockFor(p, "Red", "L"))
	assert.Equal(t, 0, StockFor(p, "Red", "M"))
	assert.Equal(t, 0, StockFor(p, "Red", "XL"), "absent pair is exactly 0")
	assert.Equal(t, 0, StockFor(p, "Green", "M"), "absent color is exactly 0")
}

func TestSizeAvailable(t *testing.T) {
	p := swimsuit()

	assert.True(t, SizeAvailable(p, "Red", "L"))
	assert.False(t, SizeAvailable(p, "Red", "M"))

	legacy := domain.Product{ID: "legacy"}
	assert.True(t, SizeAvailable(legacy, "Red", "M"), "no variant data assumes available")
}
