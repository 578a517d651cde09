package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simares/storefront/internal/catalog"
	"github.com/simares/storefront/internal/commerce"
	"github.com/simares/storefront/internal/domain"
)

// ProductsHandler serves canonical products to the browser. Raw backend
// payloads never leave the gateway un-normalized.
type ProductsHandler struct{}

// NewProductsHandler constructs handler.
func NewProductsHandler() *ProductsHandler {
	return &ProductsHandler{}
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	filter := commerce.ProductFilter{
		Category:   c.Query("category"),
		Collection: c.Query("collection"),
		Sort:       c.Query("sort"),
	}

	state := StateFromCtx(c)
	raws, err := state.Commerce.ListProducts(c.UserContext(), filter)
	if err != nil {
		return err
	}

	products := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, catalog.Normalize(raw))
	}
	return c.JSON(fiber.Map{"data": products})
}

// Get handles GET /api/products/:slug.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	state := StateFromCtx(c)
	raw, err := state.Commerce.GetProduct(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}

	product := catalog.Normalize(raw)
	return c.JSON(fiber.Map{"data": product})
}
