package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freshmarket/market-api/internal/application/account"
	"github.com/freshmarket/market-api/internal/application/catalog"
	"github.com/freshmarket/market-api/internal/application/sales"
	"github.com/freshmarket/market-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AccountUC *account.UseCase
	CatalogUC *catalog.UseCase
	SalesUC   *sales.UseCase
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Accounts (public)
	accounts := api.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Post("/register", accountHandler.Register)
	accounts.Get("/confirmemail", accountHandler.ConfirmEmail)
	accounts.Post("/login", accountHandler.Login)
	accounts.Post("/forgotpassword", accountHandler.ForgotPassword)
	accounts.Post("/resetpassword", accountHandler.ResetPassword)

	// Everything below requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catalog
	productHandler := NewProductHandler(deps.CatalogUC)
	protected.Get("/products", productHandler.List)

	// Cart
	cartHandler := NewCartHandler(deps.CatalogUC)
	protected.Get("/cart", cartHandler.Get)
	protected.Post("/cart/items", cartHandler.Add)
	protected.Delete("/cart", cartHandler.Clear)

	// Sales reporting; the PDF download is manager-gated.
	salesHandler := NewSalesHandler(deps.SalesUC)
	protected.Get("/product-sales", salesHandler.ProductSales)
	protected.Get("/product-sales/report",
		RequireRole(entity.RoleManager, entity.RoleAdmin),
		salesHandler.ReportPDF,
	)
}
