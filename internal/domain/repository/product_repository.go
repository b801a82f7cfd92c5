package repository

import (
	"context"

	"github.com/freshmarket/market-api/internal/domain/entity"
)

// ProductFilter is the server-side filter set for the catalog listing.
// Filters are independent and AND-combined; zero values mean "no filter".
type ProductFilter struct {
	Category   string // exact category name
	PriceRange string // below10 | between10And20 | above20
	Search     string // substring match on description, case/accent-insensitive
}

// ProductRepository is the persistence port for Product (DIP).
type ProductRepository interface {
	Upsert(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByFeedID(ctx context.Context, feedID int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ReplaceCategories(ctx context.Context, productID string, categories []entity.Category) error
	DistinctCategories(ctx context.Context) ([]string, error)
}

// SaleRepository is the persistence port for Sale (DIP).
type SaleRepository interface {
	Upsert(ctx context.Context, sale *entity.Sale) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.Sale, error)
}
