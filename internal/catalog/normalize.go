// Package catalog turns heterogeneous backend product payloads into the
// canonical product shape and resolves shopper selections to purchasable
// variants. It is the single seam that absorbs payload variability; nothing
// downstream inspects raw fields.
package catalog

import (
	"github.com/simares/storefront/internal/commerce"
	"github.com/simares/storefront/internal/domain"
)

// Normalize maps a raw product payload onto the canonical shape. It is pure
// and total: any payload with an id yields a structurally valid product,
// with missing fields defaulting to empty values rather than nulls.
func Normalize(raw commerce.RawProduct) domain.Product {
	product := domain.Product{
		ID:           raw.ID.String(),
		Name:         raw.Name,
		Slug:         raw.Slug,
		Subtitle:     raw.Subtitle,
		Category:     raw.Category,
		IsNew:        raw.IsNew || raw.New,
		Description:  raw.Description,
		Material:     raw.Material,
		ShippingInfo: raw.ShippingInfo,
		Images:       normalizeImages(raw),
		Colors:       normalizeColors(raw.Colors),
		Sizes:        append([]string{}, raw.Sizes...),
		Variants:     normalizeVariants(raw.Variants),
		RelatedIDs:   normalizeRelated(raw.RelatedIDs),
	}

	product.Price, product.OriginalPrice = normalizePrice(raw)
	// OriginalPrice is the pre-discount price and exists only on sale.
	product.IsOnSale = product.OriginalPrice > 0
	return product
}

// normalizePrice picks the currently effective price and, when discounted,
// the pre-discount price. A sale_price below the base price wins; otherwise
// an explicit original_price above the effective price marks the sale.
func normalizePrice(raw commerce.RawProduct) (price, original float64) {
	price = raw.Price
	if raw.SalePrice != nil && *raw.SalePrice > 0 && *raw.SalePrice < raw.Price {
		return *raw.SalePrice, raw.Price
	}
	onSale := raw.IsOnSale || raw.Sale
	if onSale && raw.OriginalPrice != nil && *raw.OriginalPrice > price {
		return price, *raw.OriginalPrice
	}
	return price, 0
}

// normalizeImages prefers the gallery and falls back to the single primary
// image fields. Only a payload with no image field at all yields an empty
// gallery.
func normalizeImages(raw commerce.RawProduct) []string {
	if len(raw.Images) > 0 {
		return append([]string{}, raw.Images...)
	}
	if raw.Image != "" {
		return []string{raw.Image}
	}
	if raw.PrimaryImage != "" {
		return []string{raw.PrimaryImage}
	}
	return []string{}
}

// normalizeColors accepts name-only entries, using the name itself as a
// degenerate hex value.
func normalizeColors(colors []commerce.RawColor) []domain.Color {
	out := make([]domain.Color, 0, len(colors))
	for _, c := range colors {
		if c.Name == "" && c.Hex == "" {
			continue
		}
		hex := c.Hex
		if hex == "" {
			hex = c.Name
		}
		out = append(out, domain.Color{Name: c.Name, Hex: hex})
	}
	return out
}

// normalizeVariants clamps negative stock and keeps the first entry per
// (color, size) pair.
func normalizeVariants(variants []commerce.RawVariant) []domain.Variant {
	out := make([]domain.Variant, 0, len(variants))
	seen := make(map[[2]string]bool, len(variants))
	for _, v := range variants {
		pair := [2]string{v.ColorName, v.Size}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		stock := v.Stock
		if stock < 0 {
			stock = 0
		}
		out = append(out, domain.Variant{
			ID:        v.ID.String(),
			ColorName: v.ColorName,
			Size:      v.Size,
			Stock:     stock,
		})
	}
	return out
}

func normalizeRelated(ids []commerce.FlexID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id.String() == "" {
			continue
		}
		out = append(out, id.String())
	}
	return out
}
