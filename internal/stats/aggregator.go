// Package stats computes the seller and admin dashboard figures. Every
// call is a fresh point-in-time scan over the stores; nothing is cached
// or maintained incrementally. That is fine at marketplace scale today —
// revisit before the catalog or order volume stops fitting a full scan.
package stats

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/marketway/storefront/internal/domain"
)

type productLister interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
}

type orderLister interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
}

type userLister interface {
	ListAll(ctx context.Context) ([]domain.User, error)
}

type SellerStats struct {
	TotalProducts    int             `json:"totalProducts"`
	TotalOrders      int             `json:"totalOrders"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	LowStockProducts int             `json:"lowStockProducts"`
}

type AdminStats struct {
	TotalUsers  int `json:"totalUsers"`
	AdminCount  int `json:"adminCount"`
	SellerCount int `json:"sellerCount"`
	UserCount   int `json:"userCount"`
}

type Aggregator struct {
	products productLister
	orders   orderLister
	users    userLister
}

func NewAggregator(products productLister, orders orderLister, users userLister) *Aggregator {
	return &Aggregator{products: products, orders: orders, users: users}
}

// Seller cross-references the catalog and the order log for one seller.
// An order counts once no matter how many of its items belong to the
// seller, and revenue sums only the seller's own items within each order.
// Ownership is resolved through the current catalog: items whose product
// has since been deleted attribute to no seller.
func (a *Aggregator) Seller(ctx context.Context, sellerID string) (*SellerStats, error) {
	products, err := a.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	orders, err := a.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}

	stats := &SellerStats{TotalRevenue: decimal.Zero}
	ownedProducts := make(map[string]bool)
	for _, p := range products {
		// Platform-owned products have no seller and attribute to no one.
		if p.SellerID == "" || p.SellerID != sellerID {
			continue
		}
		stats.TotalProducts++
		ownedProducts[p.ID] = true
		if p.LowStock() {
			stats.LowStockProducts++
		}
	}

	for _, order := range orders {
		matched := false
		for _, item := range order.Items {
			if !ownedProducts[item.Product.ProductID] {
				continue
			}
			matched = true
			stats.TotalRevenue = stats.TotalRevenue.Add(item.Subtotal())
		}
		if matched {
			stats.TotalOrders++
		}
	}

	return stats, nil
}

// System counts accounts per role for the admin dashboard.
func (a *Aggregator) System(ctx context.Context) (*AdminStats, error) {
	users, err := a.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}

	stats := &AdminStats{TotalUsers: len(users)}
	for _, u := range users {
		switch u.Role {
		case domain.RoleAdmin:
			stats.AdminCount++
		case domain.RoleSeller:
			stats.SellerCount++
		case domain.RoleUser:
			stats.UserCount++
		}
	}

	return stats, nil
}
