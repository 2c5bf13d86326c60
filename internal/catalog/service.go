package catalog

import (
	"context"
	"fmt"

	"github.com/marketway/storefront/internal/domain"
	"github.com/marketway/storefront/internal/query"
)

type productStore interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// assetDeleter removes an uploaded image from the asset host. Failures are
// swallowed by the implementation; a product mutation never fails because
// cleanup did.
type assetDeleter interface {
	DeleteBestEffort(ctx context.Context, imageURL string)
}

type Service struct {
	products productStore
	assets   assetDeleter
}

func NewService(products productStore, assets assetDeleter) *Service {
	return &Service{products: products, assets: assets}
}

func (s *Service) List(ctx context.Context, criteria query.Criteria) ([]domain.Product, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return query.Products(products, criteria), nil
}

func (s *Service) ListBySeller(ctx context.Context, sellerID string, criteria query.Criteria) ([]domain.Product, error) {
	products, err := s.products.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller products: %w", err)
	}
	return query.Products(products, criteria), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Create stores a new product. An empty sellerID means platform-owned.
func (s *Service) Create(ctx context.Context, product domain.Product, sellerID string) (*domain.Product, error) {
	product.SellerID = sellerID
	if err := s.products.Create(ctx, &product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

// Update rewrites a product's fields. A non-empty sellerID scopes the call
// to the seller workflow: the caller must own the product, and ownership
// itself is never changed. When the image URL changes, the old asset is
// removed best-effort.
func (s *Service) Update(ctx context.Context, id string, updated domain.Product, sellerID string) (*domain.Product, error) {
	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sellerID != "" && current.SellerID != sellerID {
		return nil, domain.ErrNotOwner
	}

	if current.ImageURL != "" && current.ImageURL != updated.ImageURL {
		s.assets.DeleteBestEffort(ctx, current.ImageURL)
	}

	updated.ID = current.ID
	updated.SellerID = current.SellerID
	updated.CreatedAt = current.CreatedAt
	if err := s.products.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a product, cleaning up its image asset best-effort first.
// A non-empty sellerID restricts deletion to the product's owner.
func (s *Service) Delete(ctx context.Context, id string, sellerID string) error {
	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sellerID != "" && current.SellerID != sellerID {
		return domain.ErrNotOwner
	}

	if current.ImageURL != "" {
		s.assets.DeleteBestEffort(ctx, current.ImageURL)
	}

	return s.products.Delete(ctx, id)
}
