package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freshmarket/market-api/internal/application/dto"
	"github.com/freshmarket/market-api/internal/application/sales"
	"github.com/freshmarket/market-api/internal/domain"
	"github.com/freshmarket/market-api/internal/domain/entity"
)

// SalesHandler serves per-product sales reporting (protected). The detail
// level is decided here from the session role, never from client state.
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler builds the handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

func managerDetail(c *fiber.Ctx) bool {
	role := GetRole(c)
	return role == entity.RoleManager || role == entity.RoleAdmin
}

// ProductSales godoc
// @Summary      Sales summary for a product
// @Description  Totals for every authenticated user; sale rows and daily series only for Manager or Admin sessions.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   query  string  true  "product id"
// @Success      200  {object}  dto.ProductSalesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product-sales [get]
func (h *SalesHandler) ProductSales(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.uc.ProductSales(c.UserContext(), id, managerDetail(c))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "could not load sales"})
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Download the sales report PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   query  string  true  "product id"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/product-sales/report [get]
func (h *SalesHandler) ReportPDF(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	pdfBytes, err := h.uc.ReportPDF(c.UserContext(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "could not generate report"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales-report.pdf"`)
	return c.Send(pdfBytes)
}
