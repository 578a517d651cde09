package catalog

import "github.com/simares/storefront/internal/domain"

// Selection is a shopper's partial color/size choice. Color holds the
// canonical color name; empty means no color has been picked.
type Selection struct {
	Color string
	Size  string
}

// ResolveVariant picks the single purchasable variant for a selection.
//
// Products without a variant list are legacy entries that do not track
// inventory: any selection is satisfiable and the returned variant carries
// no id. Otherwise an exact (color, size) match with stock wins. The
// first-with-stock fallback for a size exists solely for products whose UI
// allows size-only selection; once a color has been chosen, resolution is
// exact-match only.
//
// A false result is a normal outcome, not an error: the caller disables the
// add-to-cart affordance.
func ResolveVariant(p domain.Product, sel Selection) (domain.Variant, bool) {
	if !p.HasVariants() {
		return domain.Variant{}, true
	}
	for _, v := range p.Variants {
		if v.ColorName == sel.Color && v.Size == sel.Size && v.Stock > 0 {
			return v, true
		}
	}
	if sel.Color == "" {
		for _, v := range p.Variants {
			if v.Size == sel.Size && v.Stock > 0 {
				return v, true
			}
		}
	}
	return domain.Variant{}, false
}

// StockFor returns the stock count for an exact (color, size) pair, and 0
// when the pair is absent from the variant list. Never negative.
func StockFor(p domain.Product, colorName, size string) int {
	for _, v := range p.Variants {
		if v.ColorName == colorName && v.Size == size {
			if v.Stock < 0 {
				return 0
			}
			return v.Stock
		}
	}
	return 0
}

// SizeAvailable reports whether the (color, size) pair can be purchased.
// Products without variant data are assumed available.
func SizeAvailable(p domain.Product, colorName, size string) bool {
	if !p.HasVariants() {
		return true
	}
	return StockFor(p, colorName, size) > 0
}
