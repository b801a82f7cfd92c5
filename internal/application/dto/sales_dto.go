package dto

import "github.com/shopspring/decimal"

// SaleResponse one sale row (managers only).
type SaleResponse struct {
	SaleID   string          `json:"saleId"`
	Price    decimal.Decimal `json:"salePrice"`
	Qty      int             `json:"saleQty"`
	SaleDate string          `json:"saleDate"` // YYYY-MM-DD
}

// DailySalesPoint one point of the sales time series (managers only).
type DailySalesPoint struct {
	Day      string          `json:"day"` // YYYY-MM-DD
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity int64           `json:"quantity"`
}

// ProductSalesResponse sales summary for a product. Sales and Series are
// omitted for callers without the Manager or Admin role.
type ProductSalesResponse struct {
	ProductID     string            `json:"productId"`
	ProductName   string            `json:"productName"`
	TotalRevenue  decimal.Decimal   `json:"totalRevenue"`
	TotalQuantity int64             `json:"totalQuantity"`
	SaleCount     int64             `json:"saleCount"`
	Sales         []SaleResponse    `json:"sales,omitempty"`
	Series        []DailySalesPoint `json:"series,omitempty"`
}
