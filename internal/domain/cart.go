package domain

// CartItem is one server-owned cart line. ID is the remote line identifier,
// stable across quantity updates and distinct from the product id.
type CartItem struct {
	ID            string   `json:"id"`
	ProductID     string   `json:"product_id"`
	Name          string   `json:"name"`
	Subtitle      string   `json:"subtitle"`
	Images        []string `json:"images"`
	Price         float64  `json:"price"`
	Quantity      int      `json:"quantity"`
	SelectedColor string   `json:"selected_color,omitempty"`
	SelectedSize  string   `json:"selected_size,omitempty"`
}

// Cart is the locally held, server-derived snapshot of cart contents.
// Items keep server order; totals are derived, never patched in place.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	Subtotal   float64    `json:"subtotal"`
}

// NewCart builds a cart snapshot from server items, recomputing totals.
func NewCart(items []CartItem) Cart {
	if items == nil {
		items = []CartItem{}
	}
	cart := Cart{Items: items}
	for _, item := range items {
		cart.TotalItems += item.Quantity
		cart.Subtotal += item.Price * float64(item.Quantity)
	}
	return cart
}
