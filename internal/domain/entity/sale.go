package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a single recorded sale of a product. Price and Qty are
// non-negative; ProductID may be empty when the sale is orphaned.
type Sale struct {
	ID        string
	FeedID    int64
	Price     decimal.Decimal
	Qty       int
	Date      time.Time
	ProductID string
}

// Valid reports whether the sale satisfies the non-negativity invariant.
func (s *Sale) Valid() bool {
	return !s.Price.IsNegative() && s.Qty >= 0
}
