package dto

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for new shoppers.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToggleWishlistRequest payload for POST /wishlist/toggle.
type ToggleWishlistRequest struct {
	ProductID string `json:"product_id"`
}

// SubscribeRequest payload for POST /newsletter/subscribe.
type SubscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
