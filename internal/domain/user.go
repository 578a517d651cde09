package domain

// User is the authenticated shopper record returned by the remote auth API.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
