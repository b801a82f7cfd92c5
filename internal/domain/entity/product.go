package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. FeedID keys the row to the upstream product
// feed so syncs can upsert instead of duplicating.
type Product struct {
	ID          string
	FeedID      int64
	Name        string
	Description string
	ImageURL    string
	SalePrice   decimal.Decimal
	OwnerID     string // owning user, required
	Categories  []Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
