package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freshmarket/market-api/internal/domain/entity"
	"github.com/freshmarket/market-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implements the SaleRepository port on PostgreSQL.
type SaleRepo struct {
	pool *pgxpool.Pool
}

// NewSaleRepository builds the sale persistence adapter.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepo {
	return &SaleRepo{pool: pool}
}

// Upsert inserts the sale or refreshes it when the feed id already exists.
func (r *SaleRepo) Upsert(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, feed_id, price, qty, sale_date, product_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (feed_id) DO UPDATE
		SET price = EXCLUDED.price,
		    qty = EXCLUDED.qty,
		    sale_date = EXCLUDED.sale_date,
		    product_id = EXCLUDED.product_id`
	_, err := r.pool.Exec(ctx, query,
		sale.ID, sale.FeedID, sale.Price, sale.Qty, sale.Date, nullString(sale.ProductID),
	)
	if err != nil {
		return fmt.Errorf("upsert sale: %w", err)
	}
	return nil
}

// ListByProduct returns every sale of a product, oldest first.
func (r *SaleRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Sale, error) {
	query := `
		SELECT id, feed_id, price, qty, sale_date, COALESCE(product_id, '')
		FROM sales WHERE product_id = $1 ORDER BY sale_date, id`
	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.FeedID, &s.Price, &s.Qty, &s.Date, &s.ProductID); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
