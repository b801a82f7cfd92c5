package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/freshmarket/market-api/internal/domain/repository"
)

var _ repository.SalesReportRepository = (*SalesReportRepo)(nil)

// SalesReportRepo read-only reporting queries over the sales table.
type SalesReportRepo struct {
	pool *pgxpool.Pool
}

// NewSalesReportRepository builds the reporting adapter.
func NewSalesReportRepository(pool *pgxpool.Pool) *SalesReportRepo {
	return &SalesReportRepo{pool: pool}
}

// GetProductTotals sums revenue (price*qty), units and row count for one
// product. COALESCE yields zeros for a product without sales.
func (r *SalesReportRepo) GetProductTotals(ctx context.Context, productID string) (revenue decimal.Decimal, quantity int64, count int64, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(price * qty), 0) AS revenue,
	    COALESCE(SUM(qty), 0)         AS quantity,
	    COUNT(*)                      AS sale_count
	FROM sales
	WHERE product_id = $1`
	err = r.pool.QueryRow(ctx, query, productID).Scan(&revenue, &quantity, &count)
	if err != nil {
		return decimal.Zero, 0, 0, fmt.Errorf("report.GetProductTotals: %w", err)
	}
	return revenue, quantity, count, nil
}

// GetDailySales groups one product's sales by day, oldest day first.
func (r *SalesReportRepo) GetDailySales(ctx context.Context, productID string) ([]repository.DailySalesResult, error) {
	const query = `
	SELECT
	    date_trunc('day', sale_date) AS day,
	    SUM(price * qty)             AS revenue,
	    SUM(qty)                     AS quantity
	FROM sales
	WHERE product_id = $1
	GROUP BY day
	ORDER BY day`
	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("report.GetDailySales: %w", err)
	}
	defer rows.Close()
	var results []repository.DailySalesResult
	for rows.Next() {
		var row repository.DailySalesResult
		if err := rows.Scan(&row.Day, &row.Revenue, &row.Quantity); err != nil {
			return nil, fmt.Errorf("report.GetDailySales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
