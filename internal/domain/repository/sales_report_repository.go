package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesResult is one point of the per-product sales time series.
// Produced by the DB; the use case turns it into a DTO.
type DailySalesResult struct {
	Day      time.Time
	Revenue  decimal.Decimal
	Quantity int64
}

// SalesReportRepository defines the read-only reporting queries.
// Implementations must not modify data.
type SalesReportRepository interface {
	// GetProductTotals returns total revenue (price*qty summed), total units
	// and sale count for a product. COALESCE to zero when there are no sales.
	GetProductTotals(ctx context.Context, productID string) (revenue decimal.Decimal, quantity int64, count int64, err error)

	// GetDailySales returns the per-day revenue/quantity series for a product,
	// oldest day first.
	GetDailySales(ctx context.Context, productID string) ([]DailySalesResult, error)
}
