package dto

// AddCartItemRequest payload for POST /cart.
type AddCartItemRequest struct {
	VariantID string `json:"product_variant_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest payload for PUT /cart/:id.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
