package catalog_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmarket/market-api/internal/application/catalog"
	"github.com/freshmarket/market-api/internal/domain"
	"github.com/freshmarket/market-api/internal/domain/entity"
	"github.com/freshmarket/market-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products []*entity.Product
}

func (r *memProductRepo) Upsert(_ context.Context, product *entity.Product) error {
	for i, p := range r.products {
		if p.FeedID == product.FeedID {
			r.products[i] = product
			return nil
		}
	}
	r.products = append(r.products, product)
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetByFeedID(_ context.Context, feedID int64) (*entity.Product, error) {
	for _, p := range r.products {
		if p.FeedID == feedID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	return r.products, nil
}

func (r *memProductRepo) ReplaceCategories(_ context.Context, productID string, categories []entity.Category) error {
	for _, p := range r.products {
		if p.ID == productID {
			p.Categories = categories
		}
	}
	return nil
}

func (r *memProductRepo) DistinctCategories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	for _, p := range r.products {
		for _, c := range p.Categories {
			seen[c.Name] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

type memCartRepo struct {
	items map[string][]string
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{items: map[string][]string{}}
}

func (r *memCartRepo) Push(_ context.Context, userID, productID string) error {
	r.items[userID] = append(r.items[userID], productID)
	return nil
}

func (r *memCartRepo) Items(_ context.Context, userID string) ([]string, error) {
	return r.items[userID], nil
}

func (r *memCartRepo) Clear(_ context.Context, userID string) error {
	delete(r.items, userID)
	return nil
}

func product(id string, price string, category, description string) *entity.Product {
	return &entity.Product{
		ID:          id,
		Name:        "Product " + id,
		Description: description,
		SalePrice:   decimal.RequireFromString(price),
		Categories:  []entity.Category{{ID: id + "-cat", Name: category, ProductID: id}},
	}
}

func newFixture(products ...*entity.Product) (*catalog.UseCase, *memProductRepo, *memCartRepo) {
	repo := &memProductRepo{products: products}
	carts := newMemCartRepo()
	return catalog.NewUseCase(repo, carts), repo, carts
}

// ──────────────────────────────────────────────────────────────────────────────
// Listing — filters
// ──────────────────────────────────────────────────────────────────────────────

func TestList_NoFilters_ReturnsEverything(t *testing.T) {
	uc, _, _ := newFixture(
		product("p1", "5.00", "Fruits", "Sweet red apples"),
		product("p2", "15.00", "Vegetables", "Fresh green broccoli"),
		product("p3", "25.00", "Fruits", "Imported mangoes"),
	)

	out, err := uc.List(context.Background(), repository.ProductFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.Len(t, out.Products, 3)
	assert.Equal(t, []string{"Fruits", "Vegetables"}, out.Categories)
}

func TestList_CategoryFilter(t *testing.T) {
	uc, _, _ := newFixture(
		product("p1", "5.00", "Fruits", "Sweet red apples"),
		product("p2", "15.00", "Vegetables", "Fresh green broccoli"),
	)

	out, err := uc.List(context.Background(), repository.ProductFilter{Category: "Fruits"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "p1", out.Products[0].ID)

	// The category list is for the whole catalog, not the filtered page.
	assert.Equal(t, []string{"Fruits", "Vegetables"}, out.Categories)
}

func TestList_PriceBuckets(t *testing.T) {
	uc, _, _ := newFixture(
		product("cheap", "9.99", "Fruits", "a"),
		product("low", "10.00", "Fruits", "b"),
		product("high", "20.00", "Fruits", "c"),
		product("dear", "20.01", "Fruits", "d"),
	)

	cases := []struct {
		bucket string
		want   []string
	}{
		{"below10", []string{"cheap"}},
		{"between10And20", []string{"low", "high"}}, // bounds are inclusive
		{"above20", []string{"dear"}},
		{"no-such-bucket", []string{"cheap", "low", "high", "dear"}},
	}
	for _, tc := range cases {
		t.Run(tc.bucket, func(t *testing.T) {
			out, err := uc.List(context.Background(), repository.ProductFilter{PriceRange: tc.bucket}, 1, 10)
			require.NoError(t, err)
			var got []string
			for _, p := range out.Products {
				got = append(got, p.ID)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestList_SearchIsCaseAndAccentInsensitive(t *testing.T) {
	uc, _, _ := newFixture(
		product("p1", "5.00", "Vegetables", "Jalapeño peppers, extra hot"),
		product("p2", "5.00", "Fruits", "Plain bananas"),
	)

	for _, query := range []string{"jalapeno", "JALAPEÑO", "Jalapeno"} {
		out, err := uc.List(context.Background(), repository.ProductFilter{Search: query}, 1, 10)
		require.NoError(t, err)
		require.Len(t, out.Products, 1, "query %q", query)
		assert.Equal(t, "p1", out.Products[0].ID)
	}
}

func TestList_FiltersCombineWithAND(t *testing.T) {
	uc, _, _ := newFixture(
		product("p1", "5.00", "Fruits", "Sweet red apples"),
		product("p2", "5.00", "Vegetables", "Sweet red peppers"),
		product("p3", "25.00", "Fruits", "Sweet dried apples"),
	)

	out, err := uc.List(context.Background(), repository.ProductFilter{
		Category:   "Fruits",
		PriceRange: "below10",
		Search:     "sweet",
	}, 1, 10)
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "p1", out.Products[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listing — pagination
// ──────────────────────────────────────────────────────────────────────────────

func TestList_Pagination(t *testing.T) {
	var products []*entity.Product
	for i := 1; i <= 10; i++ {
		products = append(products, product(fmt.Sprintf("p%02d", i), "5.00", "Fruits", "x"))
	}
	uc, _, _ := newFixture(products...)

	first, err := uc.List(context.Background(), repository.ProductFilter{}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultPageSize, first.PageSize)
	assert.Len(t, first.Products, 8)
	assert.Equal(t, 10, first.Total)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, "p01", first.Products[0].ID)

	second, err := uc.List(context.Background(), repository.ProductFilter{}, 2, 0)
	require.NoError(t, err)
	assert.Len(t, second.Products, 2)
	assert.Equal(t, "p09", second.Products[0].ID)
}

func TestList_PageBeyondEnd_IsEmptyNotError(t *testing.T) {
	uc, _, _ := newFixture(product("p1", "5.00", "Fruits", "x"))

	out, err := uc.List(context.Background(), repository.ProductFilter{}, 99, 8)
	require.NoError(t, err)
	assert.Empty(t, out.Products)
	assert.Equal(t, 1, out.Total)
}

func TestList_TotalCountsFilteredSetNotPage(t *testing.T) {
	var products []*entity.Product
	for i := 1; i <= 9; i++ {
		products = append(products, product(fmt.Sprintf("p%d", i), "5.00", "Fruits", "x"))
	}
	products = append(products, product("veg", "5.00", "Vegetables", "x"))
	uc, _, _ := newFixture(products...)

	out, err := uc.List(context.Background(), repository.ProductFilter{Category: "Fruits"}, 1, 4)
	require.NoError(t, err)
	assert.Len(t, out.Products, 4)
	assert.Equal(t, 9, out.Total, "total reflects the filtered set, not the page")
	assert.Equal(t, 3, out.TotalPages)
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalize
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalize(t *testing.T) {
	assert.Equal(t, "jalapeno", catalog.Normalize("Jalapeño"))
	assert.Equal(t, "creme fraiche", catalog.Normalize("Crème Fraîche"))
	assert.Equal(t, "plain", catalog.Normalize("plain"))
	assert.Equal(t, "", catalog.Normalize(""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cart
// ──────────────────────────────────────────────────────────────────────────────

func TestCart_AddPreservesDuplicatesAndOrder(t *testing.T) {
	uc, _, _ := newFixture(
		product("p1", "2.50", "Fruits", "x"),
		product("p2", "4.00", "Fruits", "y"),
	)
	ctx := context.Background()

	require.NoError(t, uc.AddToCart(ctx, "u1", "p1"))
	require.NoError(t, uc.AddToCart(ctx, "u1", "p2"))
	require.NoError(t, uc.AddToCart(ctx, "u1", "p1"))

	cart, err := uc.Cart(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 3, cart.Count)
	assert.Equal(t, "p1", cart.Items[0].ID)
	assert.Equal(t, "p2", cart.Items[1].ID)
	assert.Equal(t, "p1", cart.Items[2].ID)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("9.00")), "total %s", cart.Total)
}

func TestCart_AddUnknownProduct_NotFound(t *testing.T) {
	uc, _, _ := newFixture(product("p1", "2.50", "Fruits", "x"))

	err := uc.AddToCart(context.Background(), "u1", "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCart_IsolatedPerUser(t *testing.T) {
	uc, _, _ := newFixture(product("p1", "2.50", "Fruits", "x"))
	ctx := context.Background()

	require.NoError(t, uc.AddToCart(ctx, "u1", "p1"))

	other, err := uc.Cart(ctx, "u2")
	require.NoError(t, err)
	assert.Zero(t, other.Count)
}

func TestCart_Clear(t *testing.T) {
	uc, _, _ := newFixture(product("p1", "2.50", "Fruits", "x"))
	ctx := context.Background()

	require.NoError(t, uc.AddToCart(ctx, "u1", "p1"))
	require.NoError(t, uc.ClearCart(ctx, "u1"))

	cart, err := uc.Cart(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, cart.Count)
	assert.True(t, cart.Total.IsZero())
}

func TestCart_SkipsProductsRemovedFromCatalog(t *testing.T) {
	uc, repo, _ := newFixture(
		product("p1", "2.50", "Fruits", "x"),
		product("p2", "4.00", "Fruits", "y"),
	)
	ctx := context.Background()

	require.NoError(t, uc.AddToCart(ctx, "u1", "p1"))
	require.NoError(t, uc.AddToCart(ctx, "u1", "p2"))

	// p2 disappears from the catalog after it was added.
	repo.products = repo.products[:1]

	cart, err := uc.Cart(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 1, cart.Count)
	assert.Equal(t, "p1", cart.Items[0].ID)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("2.50")))
}
