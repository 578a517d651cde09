package domain

// Color is a selectable product color. Hex may repeat the name when the
// source payload only carried a color name.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Variant is a concrete purchasable color/size combination with its own
// stock count. At most one variant exists per (ColorName, Size) pair.
type Variant struct {
	ID        string `json:"id"`
	ColorName string `json:"color_name"`
	Size      string `json:"size"`
	Stock     int    `json:"stock"`
}

// Product is the canonical in-memory product shape. Every component other
// than the normalizer is typed against it and never inspects raw payloads.
//
// Price always reflects the currently effective price. OriginalPrice is the
// pre-discount price and is non-zero only when IsOnSale is set.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Subtitle      string    `json:"subtitle"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"original_price,omitempty"`
	IsNew         bool      `json:"is_new"`
	IsOnSale      bool      `json:"is_on_sale"`
	Images        []string  `json:"images"`
	Colors        []Color   `json:"colors"`
	Sizes         []string  `json:"sizes"`
	Variants      []Variant `json:"variants"`
	Description   string    `json:"description"`
	Material      string    `json:"material"`
	ShippingInfo  string    `json:"shipping_info"`
	RelatedIDs    []string  `json:"related_ids"`
}

// HasVariants reports whether the product tracks per-variant inventory.
// Products without a variant list are legacy entries where any selection is
// considered satisfiable.
func (p Product) HasVariants() bool {
	return len(p.Variants) > 0
}
