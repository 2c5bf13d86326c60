package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ParseOrderStatus maps a case-insensitive string to a known status. The
// second return value is false for unknown values so filters can ignore them.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(normalizeEnum(s)) {
	case OrderStatusPending:
		return OrderStatusPending, true
	case OrderStatusProcessing:
		return OrderStatusProcessing, true
	case OrderStatusShipped:
		return OrderStatusShipped, true
	case OrderStatusDelivered:
		return OrderStatusDelivered, true
	case OrderStatusCancelled:
		return OrderStatusCancelled, true
	}
	return "", false
}

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

type ProductRefKind string

const (
	// ProductRefLive means the catalog row existed when the order was placed.
	ProductRefLive ProductRefKind = "live"
	// ProductRefSnapshot means the catalog row was gone at purchase time and
	// the line item carries only the values submitted with the cart.
	ProductRefSnapshot ProductRefKind = "snapshot"
)

// ProductRef identifies the product a line item was created from. Name and
// price are frozen on the OrderItem itself, so a snapshot ref never breaks
// a historical order no matter what happens to the catalog.
type ProductRef struct {
	ProductID string         `json:"product_id"`
	Kind      ProductRefKind `json:"kind"`
}

type OrderItem struct {
	ID       string          `json:"id"`
	Product  ProductRef      `json:"product"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal is the exact decimal price × quantity for this line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingInfo is a denormalized copy of the recipient details taken at
// checkout. It is not linked to a User row.
type ShippingInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

type Order struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id,omitempty"`
	Items    []OrderItem     `json:"items"`
	Total    decimal.Decimal `json:"total"`
	Status   OrderStatus     `json:"status"`
	Shipping ShippingInfo    `json:"shipping_info"`
	// CustomerName is joined from the user row when loading; empty for
	// guest orders. Used by order search and customer sorting.
	CustomerName string    `json:"customer_name,omitempty"`
	OrderDate    time.Time `json:"order_date"`
}
