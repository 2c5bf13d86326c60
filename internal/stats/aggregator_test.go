package stats

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketway/storefront/internal/domain"
)

type fixedProducts []domain.Product

func (f fixedProducts) ListAll(context.Context) ([]domain.Product, error) { return f, nil }

type fixedOrders []domain.Order

func (f fixedOrders) ListAll(context.Context) ([]domain.Order, error) { return f, nil }

type fixedUsers []domain.User

func (f fixedUsers) ListAll(context.Context) ([]domain.User, error) { return f, nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(i int) *int { return &i }

func liveItem(productID, name, price string, qty int) domain.OrderItem {
	return domain.OrderItem{
		Product:  domain.ProductRef{ProductID: productID, Kind: domain.ProductRefLive},
		Name:     name,
		Price:    dec(price),
		Quantity: qty,
	}
}

func TestAggregator_SellerScopedRevenue(t *testing.T) {
	products := fixedProducts{
		{ID: "prod-1", Name: "Mouse", Price: dec("20.00"), SellerID: "seller-5", StockQuantity: intPtr(3)},
		{ID: "prod-2", Name: "Keyboard", Price: dec("50.00"), SellerID: "seller-9", StockQuantity: intPtr(20)},
	}
	orders := fixedOrders{
		{
			ID:        "order-1",
			Status:    domain.OrderStatusPending,
			OrderDate: time.Now().UTC(),
			Items: []domain.OrderItem{
				liveItem("prod-1", "Mouse", "20.00", 2),
				liveItem("prod-2", "Keyboard", "50.00", 1),
			},
			Total: dec("90.00"),
		},
	}

	aggregator := NewAggregator(products, orders, fixedUsers{})

	t.Run("seller 5 sees only its own items", func(t *testing.T) {
		got, err := aggregator.Seller(context.Background(), "seller-5")
		if err != nil {
			t.Fatalf("seller stats: %v", err)
		}
		if got.TotalProducts != 1 {
			t.Errorf("totalProducts: expected 1, got %d", got.TotalProducts)
		}
		if got.TotalOrders != 1 {
			t.Errorf("totalOrders: expected 1, got %d", got.TotalOrders)
		}
		if !got.TotalRevenue.Equal(dec("40.00")) {
			t.Errorf("totalRevenue: expected 40.00 (only the Mouse items), got %s", got.TotalRevenue)
		}
		if got.LowStockProducts != 1 {
			t.Errorf("lowStockProducts: Mouse at stock 3 is below the threshold, got %d", got.LowStockProducts)
		}
	})

	t.Run("seller 9 sees the same order with its own revenue", func(t *testing.T) {
		got, err := aggregator.Seller(context.Background(), "seller-9")
		if err != nil {
			t.Fatalf("seller stats: %v", err)
		}
		if got.TotalOrders != 1 {
			t.Errorf("totalOrders: expected 1, got %d", got.TotalOrders)
		}
		if !got.TotalRevenue.Equal(dec("50.00")) {
			t.Errorf("totalRevenue: expected 50.00, got %s", got.TotalRevenue)
		}
		if got.LowStockProducts != 0 {
			t.Errorf("lowStockProducts: stock 20 is fine, got %d", got.LowStockProducts)
		}
	})

	t.Run("uninvolved seller sees nothing", func(t *testing.T) {
		got, err := aggregator.Seller(context.Background(), "seller-404")
		if err != nil {
			t.Fatalf("seller stats: %v", err)
		}
		if got.TotalProducts != 0 || got.TotalOrders != 0 || !got.TotalRevenue.IsZero() {
			t.Errorf("expected empty stats, got %+v", got)
		}
	})
}

func TestAggregator_DistinctOrderCount(t *testing.T) {
	products := fixedProducts{
		{ID: "prod-1", Name: "Mouse", Price: dec("20.00"), SellerID: "seller-5"},
		{ID: "prod-3", Name: "Mat", Price: dec("10.00"), SellerID: "seller-5"},
	}
	// One order with three seller-5 items must count once.
	orders := fixedOrders{
		{
			ID: "order-1",
			Items: []domain.OrderItem{
				liveItem("prod-1", "Mouse", "20.00", 1),
				liveItem("prod-1", "Mouse", "20.00", 2),
				liveItem("prod-3", "Mat", "10.00", 1),
			},
		},
		{
			ID: "order-2",
			Items: []domain.OrderItem{
				liveItem("prod-3", "Mat", "10.00", 5),
			},
		},
	}

	aggregator := NewAggregator(products, orders, fixedUsers{})

	got, err := aggregator.Seller(context.Background(), "seller-5")
	if err != nil {
		t.Fatalf("seller stats: %v", err)
	}
	if got.TotalOrders != 2 {
		t.Errorf("totalOrders: expected 2 distinct orders, got %d", got.TotalOrders)
	}
	if !got.TotalRevenue.Equal(dec("120.00")) {
		t.Errorf("totalRevenue: expected 120.00, got %s", got.TotalRevenue)
	}
}

func TestAggregator_DeletedProductAttributesToNoSeller(t *testing.T) {
	// The product behind this snapshot item is gone from the catalog.
	orders := fixedOrders{
		{
			ID: "order-1",
			Items: []domain.OrderItem{
				{
					Product:  domain.ProductRef{ProductID: "prod-99", Kind: domain.ProductRefSnapshot},
					Name:     "Deleted Widget",
					Price:    dec("5.00"),
					Quantity: 1,
				},
			},
		},
	}

	aggregator := NewAggregator(fixedProducts{}, orders, fixedUsers{})

	got, err := aggregator.Seller(context.Background(), "seller-5")
	if err != nil {
		t.Fatalf("seller stats: %v", err)
	}
	if got.TotalOrders != 0 || !got.TotalRevenue.IsZero() {
		t.Errorf("snapshot items must not attribute to any seller, got %+v", got)
	}
}

func TestAggregator_SystemRoleCounts(t *testing.T) {
	users := fixedUsers{
		{ID: "1", Role: domain.RoleAdmin},
		{ID: "2", Role: domain.RoleSeller},
		{ID: "3", Role: domain.RoleSeller},
		{ID: "4", Role: domain.RoleUser},
		{ID: "5", Role: domain.RoleUser},
		{ID: "6", Role: domain.RoleUser},
	}

	aggregator := NewAggregator(fixedProducts{}, fixedOrders{}, users)

	got, err := aggregator.System(context.Background())
	if err != nil {
		t.Fatalf("system stats: %v", err)
	}
	if got.TotalUsers != 6 {
		t.Errorf("totalUsers: expected 6, got %d", got.TotalUsers)
	}
	if got.AdminCount != 1 || got.SellerCount != 2 || got.UserCount != 3 {
		t.Errorf("role counts wrong: %+v", got)
	}
}
