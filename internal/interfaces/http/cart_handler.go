package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freshmarket/market-api/internal/application/catalog"
	"github.com/freshmarket/market-api/internal/application/dto"
	"github.com/freshmarket/market-api/internal/domain"
)

// CartHandler serves the caller's server-side cart (protected).
type CartHandler struct {
	uc *catalog.UseCase
}

// NewCartHandler builds the handler.
func NewCartHandler(uc *catalog.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Add godoc
// @Summary      Add a product to the cart
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "product id"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId is required"})
	}
	if err := h.uc.AddToCart(c.UserContext(), GetUserID(c), in.ProductID); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "could not add to cart"})
	}
	return h.Get(c)
}

// Get godoc
// @Summary      Get the cart
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Cart(c.UserContext(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "could not load cart"})
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Empty the cart
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      204  "cart emptied"
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.ClearCart(c.UserContext(), GetUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "could not clear cart"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
