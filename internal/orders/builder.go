package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketway/storefront/internal/domain"
	"github.com/marketway/storefront/internal/query"
)

type userResolver interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type productResolver interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
}

type orderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// ItemInput is one cart entry as submitted by the client. Price and
// Quantity are pointers so that a missing field can be told apart from a
// zero; both are validated before the order is committed.
type ItemInput struct {
	ProductID string           `json:"product_id"`
	Name      string           `json:"name"`
	Price     *decimal.Decimal `json:"price"`
	Quantity  *int             `json:"quantity"`
}

type BuildInput struct {
	UserID   string              `json:"user_id"`
	Shipping domain.ShippingInfo `json:"shipping_info"`
	Items    []ItemInput         `json:"items"`
}

// Service validates cart submissions and materializes them into orders.
type Service struct {
	users    userResolver
	products productResolver
	orders   orderStore
}

func NewService(users userResolver, products productResolver, orders orderStore) *Service {
	return &Service{users: users, products: products, orders: orders}
}

// Build constructs and persists an order from a cart submission.
//
// Each item is resolved against the catalog; a product that has been
// deleted since it was added to the cart does NOT fail the order — the
// line falls back to a snapshot ref carrying the submitted id, name and
// price. Carts must survive catalog drift.
//
// The total is always computed server-side from the per-item submissions.
// Persistence is all-or-nothing: a validation failure on any item commits
// nothing.
func (s *Service) Build(ctx context.Context, input BuildInput) (*domain.Order, error) {
	order := &domain.Order{
		Status:    domain.OrderStatusPending,
		Shipping:  input.Shipping,
		OrderDate: time.Now().UTC(),
	}

	if input.UserID != "" {
		user, err := s.users.GetByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("user %s: %w", input.UserID, domain.ErrNotFound)
			}
			return nil, fmt.Errorf("resolve user: %w", err)
		}
		order.UserID = user.ID
		order.CustomerName = user.Name
	}

	total := decimal.Zero
	order.Items = make([]domain.OrderItem, 0, len(input.Items))
	for _, submitted := range input.Items {
		ref := domain.ProductRef{ProductID: submitted.ProductID, Kind: domain.ProductRefLive}
		if _, err := s.products.GetByID(ctx, submitted.ProductID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("resolve product %s: %w", submitted.ProductID, err)
			}
			ref.Kind = domain.ProductRefSnapshot
		}

		if submitted.Quantity == nil || *submitted.Quantity <= 0 {
			return nil, domain.ItemError(domain.ErrInvalidQuantity, submitted.Name)
		}
		if submitted.Price == nil {
			return nil, domain.ItemError(domain.ErrInvalidPrice, submitted.Name)
		}

		item := domain.OrderItem{
			Product:  ref,
			Name:     submitted.Name,
			Price:    *submitted.Price,
			Quantity: *submitted.Quantity,
		}
		total = total.Add(item.Subtotal())
		order.Items = append(order.Items, item)
	}
	order.Total = total

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	return order, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, criteria query.Criteria) ([]domain.Order, error) {
	all, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return query.Orders(all, criteria), nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListBySeller returns the orders containing at least one item whose
// product currently belongs to the seller, narrowed by the usual listing
// criteria. Ownership is resolved through the catalog, so items for
// deleted products never surface in any seller's view.
func (s *Service) ListBySeller(ctx context.Context, sellerID string, criteria query.Criteria) ([]domain.Order, error) {
	owned, err := s.products.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller products: %w", err)
	}
	ownedIDs := make(map[string]bool, len(owned))
	for _, p := range owned {
		ownedIDs[p.ID] = true
	}

	all, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	matched := make([]domain.Order, 0, len(all))
	for _, order := range all {
		for _, item := range order.Items {
			if ownedIDs[item.Product.ProductID] {
				matched = append(matched, order)
				break
			}
		}
	}

	return query.Orders(matched, criteria), nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	return s.orders.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}
