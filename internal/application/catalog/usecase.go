// Package catalog serves the product listing with server-side filtering
// and pagination, and the per-user cart.
package catalog

import (
	"context"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/freshmarket/market-api/internal/application/dto"
	"github.com/freshmarket/market-api/internal/domain"
	"github.com/freshmarket/market-api/internal/domain/entity"
	"github.com/freshmarket/market-api/internal/domain/repository"
)

// DefaultPageSize matches the storefront grid: eight products per page.
const DefaultPageSize = 8

// Price bucket boundaries for the priceRange filter.
var (
	priceTen    = decimal.NewFromInt(10)
	priceTwenty = decimal.NewFromInt(20)
)

// UseCase implements the catalog operations.
type UseCase struct {
	products repository.ProductRepository
	carts    repository.CartRepository
}

// NewUseCase builds the catalog use case.
func NewUseCase(products repository.ProductRepository, carts repository.CartRepository) *UseCase {
	return &UseCase{products: products, carts: carts}
}

// List applies the three AND-combined filters (category equality, price
// bucket, substring match on description) and paginates the result.
func (uc *UseCase) List(ctx context.Context, filter repository.ProductFilter, page, pageSize int) (*dto.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	all, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.products.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []*entity.Product
	search := Normalize(filter.Search)
	for _, p := range all {
		if !matchesCategory(p, filter.Category) {
			continue
		}
		if !matchesPriceRange(p.SalePrice, filter.PriceRange) {
			continue
		}
		if search != "" && !strings.Contains(Normalize(p.Description), search) {
			continue
		}
		filtered = append(filtered, p)
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	out := &dto.ProductListResponse{
		Products:   make([]dto.ProductResponse, 0, end-start),
		Categories: categories,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
	for _, p := range filtered[start:end] {
		out.Products = append(out.Products, toProductResponse(p))
	}
	return out, nil
}

// AddToCart appends the product to the caller's cart. Re-adding the same
// product is allowed; order of insertion is preserved.
func (uc *UseCase) AddToCart(ctx context.Context, userID, productID string) error {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.carts.Push(ctx, userID, productID)
}

// Cart resolves the caller's cart items and running total. Products that
// vanished from the catalog since they were added are skipped.
func (uc *UseCase) Cart(ctx context.Context, userID string) (*dto.CartResponse, error) {
	ids, err := uc.carts.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.CartResponse{Items: make([]dto.ProductResponse, 0, len(ids)), Total: decimal.Zero}
	for _, id := range ids {
		p, err := uc.products.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		out.Items = append(out.Items, toProductResponse(p))
		out.Total = out.Total.Add(p.SalePrice)
	}
	out.Count = len(out.Items)
	return out, nil
}

// ClearCart empties the caller's cart.
func (uc *UseCase) ClearCart(ctx context.Context, userID string) error {
	return uc.carts.Clear(ctx, userID)
}

func matchesCategory(p *entity.Product, category string) bool {
	if category == "" {
		return true
	}
	for _, c := range p.Categories {
		if c.Name == category {
			return true
		}
	}
	return false
}

func matchesPriceRange(price decimal.Decimal, bucket string) bool {
	switch bucket {
	case "":
		return true
	case "below10":
		return price.LessThan(priceTen)
	case "between10And20":
		return price.GreaterThanOrEqual(priceTen) && price.LessThanOrEqual(priceTwenty)
	case "above20":
		return price.GreaterThan(priceTwenty)
	default:
		return true // unknown bucket behaves as "all prices"
	}
}

// searchNormalizer lowercases after stripping combining marks, so
// "Jalapeño" matches "jalapeno".
var searchNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a string for case- and accent-insensitive matching.
func Normalize(s string) string {
	folded, _, err := transform.String(searchNormalizer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		SalePrice:   p.SalePrice,
		Categories:  names,
	}
}
