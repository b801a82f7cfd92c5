package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/freshmarket/market-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo stores each user's cart as a Redis list: RPUSH preserves
// insertion order and keeps duplicates.
type CartRepo struct {
	rdb *redis.Client
}

// NewCartRepository builds the cart adapter.
func NewCartRepository(rdb *redis.Client) *CartRepo {
	return &CartRepo{rdb: rdb}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// Push appends a product id to the user's cart.
func (r *CartRepo) Push(ctx context.Context, userID, productID string) error {
	if err := r.rdb.RPush(ctx, cartKey(userID), productID).Err(); err != nil {
		return fmt.Errorf("cart push: %w", err)
	}
	return nil
}

// Items returns the cart contents in insertion order.
func (r *CartRepo) Items(ctx context.Context, userID string) ([]string, error) {
	items, err := r.rdb.LRange(ctx, cartKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("cart items: %w", err)
	}
	return items, nil
}

// Clear removes the user's cart.
func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	if err := r.rdb.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}
