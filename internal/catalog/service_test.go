package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/marketway/storefront/internal/domain"
	"github.com/marketway/storefront/internal/query"
)

type fakeProductStore struct {
	products map[string]domain.Product
	nextID   int
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[string]domain.Product{}, nextID: 1}
}

func (f *fakeProductStore) Create(_ context.Context, p *domain.Product) error {
	p.ID = string(rune('0' + f.nextID))
	f.nextID++
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductStore) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProductStore) ListAll(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductStore) ListBySeller(_ context.Context, sellerID string) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range f.products {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) Update(_ context.Context, p *domain.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductStore) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

type recordingAssetDeleter struct {
	deleted []string
}

func (d *recordingAssetDeleter) DeleteBestEffort(_ context.Context, imageURL string) {
	d.deleted = append(d.deleted, imageURL)
}

func TestService_SellerOwnership(t *testing.T) {
	ctx := context.Background()
	store := newFakeProductStore()
	assets := &recordingAssetDeleter{}
	service := NewService(store, assets)

	created, err := service.Create(ctx, domain.Product{Name: "Mouse", Price: decimal.RequireFromString("20.00")}, "seller-5")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.SellerID != "seller-5" {
		t.Fatalf("expected seller id to be set, got %q", created.SellerID)
	}

	t.Run("foreign seller cannot update", func(t *testing.T) {
		_, err := service.Update(ctx, created.ID, domain.Product{Name: "Hijacked"}, "seller-9")
		if !errors.Is(err, domain.ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("foreign seller cannot delete", func(t *testing.T) {
		err := service.Delete(ctx, created.ID, "seller-9")
		if !errors.Is(err, domain.ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("owner update keeps ownership", func(t *testing.T) {
		updated, err := service.Update(ctx, created.ID, domain.Product{Name: "Mouse v2", Price: decimal.RequireFromString("22.00")}, "seller-5")
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.SellerID != "seller-5" {
			t.Fatalf("update must not change seller id, got %q", updated.SellerID)
		}
	})
}

func TestService_ImageCleanup(t *testing.T) {
	ctx := context.Background()
	store := newFakeProductStore()
	assets := &recordingAssetDeleter{}
	service := NewService(store, assets)

	created, err := service.Create(ctx, domain.Product{
		Name:     "Keyboard",
		Price:    decimal.RequireFromString("50.00"),
		ImageURL: "https://assets.test/kb-old.jpg",
	}, "seller-9")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("replacing the image deletes the old asset", func(t *testing.T) {
		_, err := service.Update(ctx, created.ID, domain.Product{
			Name:     "Keyboard",
			Price:    decimal.RequireFromString("50.00"),
			ImageURL: "https://assets.test/kb-new.jpg",
		}, "seller-9")
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if len(assets.deleted) != 1 || assets.deleted[0] != "https://assets.test/kb-old.jpg" {
			t.Fatalf("expected old asset deleted, got %v", assets.deleted)
		}
	})

	t.Run("keeping the image deletes nothing", func(t *testing.T) {
		before := len(assets.deleted)
		_, err := service.Update(ctx, created.ID, domain.Product{
			Name:     "Keyboard",
			Price:    decimal.RequireFromString("55.00"),
			ImageURL: "https://assets.test/kb-new.jpg",
		}, "seller-9")
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if len(assets.deleted) != before {
			t.Fatalf("unchanged image url must not trigger cleanup, got %v", assets.deleted)
		}
	})

	t.Run("deleting the product deletes its asset", func(t *testing.T) {
		if err := service.Delete(ctx, created.ID, "seller-9"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		last := assets.deleted[len(assets.deleted)-1]
		if last != "https://assets.test/kb-new.jpg" {
			t.Fatalf("expected current asset deleted, got %q", last)
		}
	})
}

func TestService_DeleteMissingProduct(t *testing.T) {
	service := NewService(newFakeProductStore(), &recordingAssetDeleter{})

	err := service.Delete(context.Background(), "missing", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_ListAppliesCriteria(t *testing.T) {
	ctx := context.Background()
	store := newFakeProductStore()
	service := NewService(store, &recordingAssetDeleter{})

	for _, p := range []domain.Product{
		{Name: "Laptop Stand", Price: decimal.RequireFromString("35.00"), SellerID: "s1"},
		{Name: "Monitor", Price: decimal.RequireFromString("180.00"), SellerID: "s1"},
		{Name: "Desk Mat", Price: decimal.RequireFromString("15.00"), SellerID: "s2"},
	} {
		product := p
		if _, err := service.Create(ctx, product, product.SellerID); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := service.ListBySeller(ctx, "s1", query.Criteria{Search: "lap"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Laptop Stand" {
		t.Fatalf("expected only the matching seller product, got %v", got)
	}
}
