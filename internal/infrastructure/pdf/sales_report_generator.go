// Package pdf renders the manager sales report with Maroto v2.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────┐
//	│  HEADER: product name           │  report date          │
//	│  ─────────────────────────────────────────────────────  │
//	│  TOTALS: revenue / units / sale count                   │
//	│  ─────────────────────────────────────────────────────  │
//	│  TABLE: Date | Price | Qty                              │
//	└─────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/freshmarket/market-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 32, Green: 104, Blue: 43}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// SalesReportGenerator implements sales.ReportPDFGenerator with Maroto v2.
type SalesReportGenerator struct{}

// NewSalesReportGenerator builds the generator.
func NewSalesReportGenerator() *SalesReportGenerator { return &SalesReportGenerator{} }

// GenerateSalesReport renders the report and returns its bytes.
func (g *SalesReportGenerator) GenerateSalesReport(_ context.Context, report *dto.ProductSalesResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Sales Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, sale := range report.Sales {
		m.AddRows(saleRow(sale))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(report *dto.ProductSalesResponse) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("SALES REPORT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(report.ProductName, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New("Generated: "+time.Now().Format("2006-01-02"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

func totalsRow(report *dto.ProductSalesResponse) core.Row {
	return row.New(12).Add(
		col.New(4).Add(
			text.New("Total revenue", props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New("$"+report.TotalRevenue.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
		),
		col.New(4).Add(
			text.New("Units sold", props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", report.TotalQuantity), props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
		),
		col.New(4).Add(
			text.New("Sales", props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", report.SaleCount), props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		text.NewCol(4, "Date", header),
		text.NewCol(4, "Price", header),
		text.NewCol(4, "Qty", header),
	)
}

func saleRow(sale dto.SaleResponse) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	return row.New(6).Add(
		text.NewCol(4, sale.SaleDate, cell),
		text.NewCol(4, "$"+sale.Price.StringFixed(2), cell),
		text.NewCol(4, fmt.Sprintf("%d", sale.Qty), cell),
	)
}
