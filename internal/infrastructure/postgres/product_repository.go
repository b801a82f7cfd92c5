package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freshmarket/market-api/internal/domain/entity"
	"github.com/freshmarket/market-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements the ProductRepository port on PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository builds the product persistence adapter.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Upsert inserts the product or, when the feed id already exists, updates
// the mutable columns in place.
func (r *ProductRepo) Upsert(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, feed_id, name, description, image_url, sale_price, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (feed_id) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    image_url = EXCLUDED.image_url,
		    sale_price = EXCLUDED.sale_price,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(ctx, query,
		product.ID, product.FeedID, product.Name, product.Description, product.ImageURL,
		product.SalePrice, product.OwnerID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// GetByID returns one product with its categories, or (nil, nil).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.findOne(ctx, `WHERE p.id = $1`, id)
}

// GetByFeedID returns one product by its upstream feed key, or (nil, nil).
func (r *ProductRepo) GetByFeedID(ctx context.Context, feedID int64) (*entity.Product, error) {
	return r.findOne(ctx, `WHERE p.feed_id = $1`, feedID)
}

func (r *ProductRepo) findOne(ctx context.Context, where string, arg any) (*entity.Product, error) {
	query := `
		SELECT p.id, p.feed_id, p.name, p.description, p.image_url, p.sale_price, p.owner_id, p.created_at, p.updated_at
		FROM products p ` + where
	var p entity.Product
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.FeedID, &p.Name, &p.Description, &p.ImageURL, &p.SalePrice, &p.OwnerID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := r.loadCategories(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every product with its categories, newest first.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT id, feed_id, name, description, image_url, sale_price, owner_id, created_at, updated_at
		FROM products ORDER BY created_at DESC, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	byID := map[string]*entity.Product{}
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.FeedID, &p.Name, &p.Description, &p.ImageURL, &p.SalePrice, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// One pass over categories instead of a query per product.
	catRows, err := r.pool.Query(ctx, `SELECT id, name, product_id FROM categories WHERE product_id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer catRows.Close()
	for catRows.Next() {
		var c entity.Category
		if err := catRows.Scan(&c.ID, &c.Name, &c.ProductID); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if p, ok := byID[c.ProductID]; ok {
			p.Categories = append(p.Categories, c)
		}
	}
	return list, catRows.Err()
}

// ReplaceCategories swaps the category set of one product.
func (r *ProductRepo) ReplaceCategories(ctx context.Context, productID string, categories []entity.Category) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin categories tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}
	for _, c := range categories {
		if _, err := tx.Exec(ctx,
			`INSERT INTO categories (id, name, product_id) VALUES ($1, $2, $3)`,
			c.ID, c.Name, productID,
		); err != nil {
			return fmt.Errorf("insert category: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// DistinctCategories returns the sorted set of category names in use.
func (r *ProductRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan category name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (r *ProductRepo) loadCategories(ctx context.Context, p *entity.Product) error {
	rows, err := r.pool.Query(ctx, `SELECT id, name, product_id FROM categories WHERE product_id = $1`, p.ID)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ProductID); err != nil {
			return fmt.Errorf("scan category: %w", err)
		}
		p.Categories = append(p.Categories, c)
	}
	return rows.Err()
}
