// Package worker drains order.created events and moves freshly placed
// orders from PENDING into PROCESSING so seller dashboards pick them up.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/marketway/storefront/internal/domain"
)

type orderStatusStore interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type OrderCreatedHandler struct {
	orders orderStatusStore
	logger *slog.Logger
}

func NewOrderCreatedHandler(orders orderStatusStore, logger *slog.Logger) *OrderCreatedHandler {
	return &OrderCreatedHandler{orders: orders, logger: logger}
}

func (h *OrderCreatedHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order created event: %w", err)
	}

	h.logger.Info("processing order created event", "order_id", event.OrderID, "items", len(event.Items))

	order, err := h.orders.GetByID(ctx, event.OrderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", event.OrderID, err)
	}

	// Only freshly placed orders advance. A redelivered event for an
	// order a seller already moved along is a no-op.
	if order.Status != domain.OrderStatusPending {
		h.logger.Info("order already past pending, skipping", "order_id", order.ID, "status", order.Status)
		return nil
	}

	if _, err := h.orders.UpdateStatus(ctx, order.ID, domain.OrderStatusProcessing); err != nil {
		return fmt.Errorf("advance order %s to processing: %w", order.ID, err)
	}

	h.logger.Info("order moved to processing", "order_id", order.ID)
	return nil
}
