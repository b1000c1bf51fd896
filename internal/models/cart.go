package models

import "time"

// CartLine is a denormalized copy of the product fields the cart needs plus a quantity.
type CartLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

type CartSnapshot struct {
	Lines      []CartLine `json:"lines"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

type Receipt struct {
	Lines      []CartLine `json:"lines"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
	PlacedAt   time.Time  `json:"placed_at"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
