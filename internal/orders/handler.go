package orders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/marketway/storefront/internal/domain"
	"github.com/marketway/storefront/internal/httpapi"
	"github.com/marketway/storefront/internal/query"
)

type eventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Handler struct {
	service  *Service
	producer eventPublisher
	logger   *slog.Logger
}

// NewHandler wires the order endpoints. producer may be nil when no broker
// is configured; order placement works the same without it.
func NewHandler(service *Service, producer eventPublisher, logger *slog.Logger) *Handler {
	return &Handler{service: service, producer: producer, logger: logger}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input BuildInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpapi.WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.Build(r.Context(), input)
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}

	if h.producer != nil {
		event := domain.OrderCreatedEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			Items:     order.Items,
			Total:     order.Total.String(),
			Timestamp: order.OrderDate,
		}
		if err := h.producer.Publish(r.Context(), order.ID, event); err != nil {
			h.logger.Error("failed to publish order created event", "error", err, "order_id", order.ID)
		}
	}

	h.logger.Info("order created", "order_id", order.ID, "total", order.Total.String(), "items", len(order.Items))
	httpapi.WriteJSON(w, h.logger, http.StatusCreated, order)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, h.logger, http.StatusOK, order)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	criteria := query.Criteria{
		Search: values.Get("search"),
		Kind:   values.Get("status"),
		Sort:   values.Get("sort"),
	}

	orders, err := h.service.List(r.Context(), criteria)
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, h.logger, http.StatusOK, orders)
}

func (h *Handler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListByUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, h.logger, http.StatusOK, orders)
}

func (h *Handler) HandleListBySeller(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	criteria := query.Criteria{
		Search: values.Get("search"),
		Kind:   values.Get("status"),
		Sort:   values.Get("sort"),
	}

	orders, err := h.service.ListBySeller(r.Context(), r.PathValue("sellerId"), criteria)
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, h.logger, http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	status, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		httpapi.WriteError(w, h.logger, http.StatusBadRequest, "unknown order status")
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("order status updated", "order_id", order.ID, "status", order.Status)
	httpapi.WriteJSON(w, h.logger, http.StatusOK, order)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("order deleted", "order_id", id)
	w.WriteHeader(http.StatusNoContent)
}
