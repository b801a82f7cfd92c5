package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freshmarket/market-api/internal/application/catalog"
	"github.com/freshmarket/market-api/internal/application/dto"
	"github.com/freshmarket/market-api/internal/domain/repository"
)

// ProductHandler serves the catalog listing (protected).
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler builds the handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      List products with filters and pagination
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        category    query  string  false  "exact category name"
// @Param        priceRange  query  string  false  "below10 | between10And20 | above20"
// @Param        search      query  string  false  "substring match on description"
// @Param        page        query  int     false  "page number"      default(1)
// @Param        pageSize    query  int     false  "items per page"   default(8)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Category:   c.Query("category"),
		PriceRange: c.Query("priceRange"),
		Search:     c.Query("search"),
	}
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", catalog.DefaultPageSize)
	if pageSize > 100 {
		pageSize = 100
	}
	out, err := h.uc.List(c.UserContext(), filter, page, pageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "could not list products"})
	}
	return c.JSON(out)
}
