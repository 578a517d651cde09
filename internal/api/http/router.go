package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simares/storefront/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Products   *handlers.ProductsHandler
	Cart       *handlers.CartHandler
	Auth       *handlers.AuthHandler
	Wishlist   *handlers.WishlistHandler
	Newsletter *handlers.NewsletterHandler
	Sessions   *SessionManager
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.Sessions.Middleware())

	api.Get("/products", cfg.Products.List)
	api.Get("/products/:slug", cfg.Products.Get)

	api.Get("/cart", cfg.Cart.Get)
	api.Post("/cart", cfg.Cart.Add)
	api.Put("/cart/:id", cfg.Cart.Update)
	api.Delete("/cart/:id", cfg.Cart.Remove)
	api.Delete("/cart", cfg.Cart.Clear)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/user", cfg.Auth.User)

	api.Get("/wishlist", cfg.Wishlist.Get)
	api.Post("/wishlist/toggle", cfg.Wishlist.Toggle)

	api.Post("/newsletter/subscribe", cfg.Newsletter.Subscribe)
}
