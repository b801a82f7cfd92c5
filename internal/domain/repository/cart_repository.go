package repository

import "context"

// CartRepository stores each user's cart as an ordered sequence of product
// ids. The same product may appear more than once; order of insertion is
// preserved.
type CartRepository interface {
	Push(ctx context.Context, userID, productID string) error
	Items(ctx context.Context, userID string) ([]string, error)
	Clear(ctx context.Context, userID string) error
}
