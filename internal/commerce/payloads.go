package commerce

import (
	"bytes"
	"encoding/json"

	"github.com/simares/storefront/internal/domain"
)

// FlexID absorbs backend identifiers that arrive as either JSON strings or
// numbers.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// RawColor accepts either a plain color-name string or a {name, hex} object.
type RawColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

func (c *RawColor) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		c.Name = name
		c.Hex = ""
		return nil
	}
	var obj struct {
		Name string `json:"name"`
		Hex  string `json:"hex"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	c.Name = obj.Name
	c.Hex = obj.Hex
	return nil
}

// RawVariant is the wire shape of a purchasable color/size combination.
type RawVariant struct {
	ID        FlexID `json:"id"`
	ColorName string `json:"color_name"`
	Size      string `json:"size"`
	Stock     int    `json:"stock"`
}

// RawProduct is the backend product payload before normalization. Several
// fields carry aliases because the backend has emitted more than one shape
// over time; the normalizer is the only consumer.
type RawProduct struct {
	ID            FlexID       `json:"id"`
	Name          string       `json:"name"`
	Slug          string       `json:"slug"`
	Subtitle      string       `json:"subtitle"`
	Category      string       `json:"category"`
	Price         float64      `json:"price"`
	SalePrice     *float64     `json:"sale_price"`
	OriginalPrice *float64     `json:"original_price"`
	New           bool         `json:"new"`
	IsNew         bool         `json:"is_new"`
	Sale          bool         `json:"sale"`
	IsOnSale      bool         `json:"is_on_sale"`
	Images        []string     `json:"images"`
	Image         string       `json:"image"`
	PrimaryImage  string       `json:"primary_image"`
	Colors        []RawColor   `json:"colors"`
	Sizes         []string     `json:"sizes"`
	Variants      []RawVariant `json:"variants"`
	Description   string       `json:"description"`
	Material      string       `json:"material"`
	ShippingInfo  string       `json:"shipping_info"`
	RelatedIDs    []FlexID     `json:"related_ids"`
}

// RawCartItem is one cart line as returned by the backend.
type RawCartItem struct {
	ID            FlexID   `json:"id"`
	ProductID     FlexID   `json:"product_id"`
	Name          string   `json:"name"`
	Subtitle      string   `json:"subtitle"`
	Images        []string `json:"images"`
	Image         string   `json:"image"`
	Price         float64  `json:"price"`
	Quantity      int      `json:"quantity"`
	SelectedColor RawColor `json:"selected_color"`
	SelectedSize  string   `json:"selected_size"`
}

// Canonical converts the wire cart line into the domain shape.
func (i RawCartItem) Canonical() domain.CartItem {
	images := i.Images
	if len(images) == 0 && i.Image != "" {
		images = []string{i.Image}
	}
	if images == nil {
		images = []string{}
	}
	qty := i.Quantity
	if qty < 1 {
		qty = 1
	}
	return domain.CartItem{
		ID:            i.ID.String(),
		ProductID:     i.ProductID.String(),
		Name:          i.Name,
		Subtitle:      i.Subtitle,
		Images:        images,
		Price:         i.Price,
		Quantity:      qty,
		SelectedColor: i.SelectedColor.Name,
		SelectedSize:  i.SelectedSize,
	}
}

// cartPayload accepts both the {items: [...]} envelope and a bare array.
type cartPayload struct {
	Items []RawCartItem `json:"items"`
}

func (p *cartPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &p.Items)
	}
	var envelope struct {
		Items []RawCartItem `json:"items"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	p.Items = envelope.Items
	return nil
}

// productsPayload accepts both the {products: [...]} envelope and a bare array.
type productsPayload struct {
	Products []RawProduct `json:"products"`
}

func (p *productsPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &p.Products)
	}
	var envelope struct {
		Products []RawProduct `json:"products"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	p.Products = envelope.Products
	return nil
}

// LoginResult is the response of POST /auth/login and /auth/register.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
