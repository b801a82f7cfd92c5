package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest input for adding a product to the caller's cart.
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// CartResponse the caller's cart: items in insertion order (duplicates
// allowed) and the running total.
type CartResponse struct {
	Items []ProductResponse `json:"items"`
	Count int               `json:"count"`
	Total decimal.Decimal   `json:"total"`
}
