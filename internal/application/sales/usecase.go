// Package sales builds the per-product sales reports: public totals for
// every authenticated user, detailed rows and time series for managers.
package sales

import (
	"context"

	"github.com/freshmarket/market-api/internal/application/dto"
	"github.com/freshmarket/market-api/internal/domain"
	"github.com/freshmarket/market-api/internal/domain/entity"
	"github.com/freshmarket/market-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ReportPDFGenerator renders a sales report into PDF bytes.
type ReportPDFGenerator interface {
	GenerateSalesReport(ctx context.Context, report *dto.ProductSalesResponse) ([]byte, error)
}

// UseCase implements the sales reporting operations.
type UseCase struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	reports  repository.SalesReportRepository
	pdf      ReportPDFGenerator
}

// NewUseCase builds the sales use case.
func NewUseCase(products repository.ProductRepository, salesRepo repository.SaleRepository, reports repository.SalesReportRepository, pdf ReportPDFGenerator) *UseCase {
	return &UseCase{products: products, sales: salesRepo, reports: reports, pdf: pdf}
}

// ProductSales returns the sales summary for a product. When detail is
// true (Manager or Admin caller) the response also carries the individual
// sale rows and the per-day series; the flag is decided server-side from
// the session role, never trusted from the client.
func (uc *UseCase) ProductSales(ctx context.Context, productID string, detail bool) (*dto.ProductSalesResponse, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	revenue, quantity, count, err := uc.reports.GetProductTotals(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductSalesResponse{
		ProductID:     product.ID,
		ProductName:   product.Name,
		TotalRevenue:  revenue,
		TotalQuantity: quantity,
		SaleCount:     count,
	}
	if !detail {
		return out, nil
	}

	rows, err := uc.sales.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out.Sales = make([]dto.SaleResponse, 0, len(rows))
	for _, s := range rows {
		out.Sales = append(out.Sales, toSaleResponse(s))
	}

	series, err := uc.reports.GetDailySales(ctx, productID)
	if err != nil {
		return nil, err
	}
	out.Series = make([]dto.DailySalesPoint, 0, len(series))
	for _, p := range series {
		out.Series = append(out.Series, dto.DailySalesPoint{
			Day:      p.Day.Format(dateLayout),
			Revenue:  p.Revenue,
			Quantity: p.Quantity,
		})
	}
	return out, nil
}

// ReportPDF renders the detailed report as a PDF. Callers reach this only
// through the manager-gated route.
func (uc *UseCase) ReportPDF(ctx context.Context, productID string) ([]byte, error) {
	report, err := uc.ProductSales(ctx, productID, true)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateSalesReport(ctx, report)
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		SaleID:   s.ID,
		Price:    s.Price,
		Qty:      s.Qty,
		SaleDate: s.Date.Format(dateLayout),
	}
}
