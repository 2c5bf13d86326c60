package worker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/marketway/storefront/internal/domain"
)

type fakeOrderStore struct {
	orders map[string]*domain.Order
}

func (f *fakeOrderStore) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = status
	copied := *o
	return &copied, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func eventPayload(t *testing.T, orderID string) []byte {
	t.Helper()
	data, err := json.Marshal(domain.OrderCreatedEvent{
		OrderID:   orderID,
		Total:     "90.00",
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return data
}

func TestOrderCreatedHandler(t *testing.T) {
	t.Run("advances pending order to processing", func(t *testing.T) {
		store := &fakeOrderStore{orders: map[string]*domain.Order{
			"order-1": {ID: "order-1", Status: domain.OrderStatusPending},
		}}
		handler := NewOrderCreatedHandler(store, testLogger())

		if err := handler.Handle(context.Background(), eventPayload(t, "order-1")); err != nil {
			t.Fatalf("handle: %v", err)
		}
		if got := store.orders["order-1"].Status; got != domain.OrderStatusProcessing {
			t.Errorf("expected PROCESSING, got %s", got)
		}
	})

	t.Run("redelivery does not regress a shipped order", func(t *testing.T) {
		store := &fakeOrderStore{orders: map[string]*domain.Order{
			"order-1": {ID: "order-1", Status: domain.OrderStatusShipped},
		}}
		handler := NewOrderCreatedHandler(store, testLogger())

		if err := handler.Handle(context.Background(), eventPayload(t, "order-1")); err != nil {
			t.Fatalf("handle: %v", err)
		}
		if got := store.orders["order-1"].Status; got != domain.OrderStatusShipped {
			t.Errorf("status must stay SHIPPED, got %s", got)
		}
	})

	t.Run("missing order surfaces the error", func(t *testing.T) {
		handler := NewOrderCreatedHandler(&fakeOrderStore{orders: map[string]*domain.Order{}}, testLogger())
		if err := handler.Handle(context.Background(), eventPayload(t, "order-404")); err == nil {
			t.Fatal("expected an error for an unknown order")
		}
	})

	t.Run("malformed payload surfaces the error", func(t *testing.T) {
		handler := NewOrderCreatedHandler(&fakeOrderStore{orders: map[string]*domain.Order{}}, testLogger())
		if err := handler.Handle(context.Background(), []byte("{not json")); err == nil {
			t.Fatal("expected an error for malformed payload")
		}
	})
}
