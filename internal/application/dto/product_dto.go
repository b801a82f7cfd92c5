package dto

import "github.com/shopspring/decimal"

// ProductResponse one catalog item as served to clients.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image"`
	SalePrice   decimal.Decimal `json:"salePrice"`
	Categories  []string        `json:"categories"`
}

// ProductListResponse paged catalog listing plus the distinct category set
// the filter UI needs.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Categories []string          `json:"categories"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}
