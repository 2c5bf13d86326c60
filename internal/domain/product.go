package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level below which a product shows up on
// the seller dashboard as needing replenishment.
const LowStockThreshold = 10

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"image_url,omitempty"`
	StockQuantity *int            `json:"stock_quantity,omitempty"`
	Category      string          `json:"category,omitempty"`
	SellerID      string          `json:"seller_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LowStock reports whether the product's stock is tracked and below the
// replenishment threshold. Products without a stock quantity never count.
func (p Product) LowStock() bool {
	return p.StockQuantity != nil && *p.StockQuantity < LowStockThreshold
}
