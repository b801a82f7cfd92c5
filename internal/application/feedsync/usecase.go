// Package feedsync imports the upstream product feed into the local
// catalog so listing and reporting run on server-side data.
package feedsync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshmarket/market-api/internal/domain/entity"
	"github.com/freshmarket/market-api/internal/domain/repository"
	"github.com/freshmarket/market-api/pkg/logger"
)

// FeedProduct is one item of the upstream products feed.
type FeedProduct struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	SalePrice   decimal.Decimal `json:"salePrice"`
}

// FeedSale is one row of the upstream per-product sales feed.
type FeedSale struct {
	SaleID   int64           `json:"saleId"`
	Price    decimal.Decimal `json:"salePrice"`
	Qty      int             `json:"saleQty"`
	SaleDate string          `json:"saleDate"` // YYYY-MM-DD
}

// Client fetches the two upstream feeds.
type Client interface {
	Products(ctx context.Context) ([]FeedProduct, error)
	ProductSales(ctx context.Context, feedID int64) ([]FeedSale, error)
}

// UseCase runs one sync pass over the feed.
type UseCase struct {
	client   Client
	products repository.ProductRepository
	sales    repository.SaleRepository
	ownerID  string // user that owns imported products (FK is required)
	log      *logger.Logger
}

// NewUseCase builds the feed sync use case.
func NewUseCase(client Client, products repository.ProductRepository, sales repository.SaleRepository, ownerID string, log *logger.Logger) *UseCase {
	return &UseCase{client: client, products: products, sales: sales, ownerID: ownerID, log: log}
}

// Sync fetches the product feed and upserts products, categories and sale
// rows keyed by feed id. Rows violating the non-negativity invariant are
// skipped and logged, never stored.
func (uc *UseCase) Sync(ctx context.Context) error {
	items, err := uc.client.Products(ctx)
	if err != nil {
		return fmt.Errorf("feedsync: fetch products: %w", err)
	}

	now := time.Now()
	var synced, skipped int
	for _, item := range items {
		product, err := uc.syncProduct(ctx, item, now)
		if err != nil {
			return err
		}
		n, err := uc.syncSales(ctx, product, item.ID)
		if err != nil {
			return err
		}
		synced++
		skipped += n
	}
	uc.log.Info().Int("products", synced).Int("skipped_sales", skipped).Msg("feedsync: sync complete")
	return nil
}

func (uc *UseCase) syncProduct(ctx context.Context, item FeedProduct, now time.Time) (*entity.Product, error) {
	product, err := uc.products.GetByFeedID(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("feedsync: lookup product %d: %w", item.ID, err)
	}
	if product == nil {
		product = &entity.Product{
			ID:        uuid.New().String(),
			FeedID:    item.ID,
			OwnerID:   uc.ownerID,
			CreatedAt: now,
		}
	}
	product.Name = item.Name
	product.Description = item.Description
	product.ImageURL = item.Image
	product.SalePrice = item.SalePrice
	product.UpdatedAt = now
	if err := uc.products.Upsert(ctx, product); err != nil {
		return nil, fmt.Errorf("feedsync: upsert product %d: %w", item.ID, err)
	}

	var categories []entity.Category
	if item.Category != "" {
		categories = append(categories, entity.Category{
			ID:        uuid.New().String(),
			Name:      item.Category,
			ProductID: product.ID,
		})
	}
	if err := uc.products.ReplaceCategories(ctx, product.ID, categories); err != nil {
		return nil, fmt.Errorf("feedsync: categories for product %d: %w", item.ID, err)
	}
	return product, nil
}

// syncSales upserts the sale rows of one product and returns how many were
// skipped for violating the price/qty invariant.
func (uc *UseCase) syncSales(ctx context.Context, product *entity.Product, feedID int64) (int, error) {
	rows, err := uc.client.ProductSales(ctx, feedID)
	if err != nil {
		return 0, fmt.Errorf("feedsync: fetch sales for product %d: %w", feedID, err)
	}
	var skipped int
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", row.SaleDate)
		if err != nil {
			uc.log.Warn().Int64("sale", row.SaleID).Str("date", row.SaleDate).Msg("feedsync: unparseable sale date")
			skipped++
			continue
		}
		sale := &entity.Sale{
			ID:        uuid.New().String(),
			FeedID:    row.SaleID,
			Price:     row.Price,
			Qty:       row.Qty,
			Date:      date,
			ProductID: product.ID,
		}
		if !sale.Valid() {
			uc.log.Warn().Int64("sale", row.SaleID).Msg("feedsync: negative price or qty")
			skipped++
			continue
		}
		if err := uc.sales.Upsert(ctx, sale); err != nil {
			return skipped, fmt.Errorf("feedsync: upsert sale %d: %w", row.SaleID, err)
		}
	}
	return skipped, nil
}
