package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/marketway/storefront/internal/domain"
	"github.com/marketway/storefront/internal/httpapi"
	"github.com/marketway/storefront/internal/query"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type productRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"image_url"`
	StockQuantity *int            `json:"stock_quantity"`
	Category      string          `json:"category"`
}

func (req productRequest) toProduct() domain.Product {
	return domain.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
	}
}

// criteriaFromQuery reads the optional filter/sort parameters shared by the
// product listing endpoints. Malformed price bounds are dropped rather than
// rejected, matching the pipeline's leniency for unknown enum values.
func criteriaFromQuery(values url.Values) query.Criteria {
	c := query.Criteria{
		Search: values.Get("search"),
		Kind:   values.Get("category"),
		Sort:   values.Get("sort"),
	}
	if raw := values.Get("min_price"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			c.MinPrice = &d
		}
	}
	if raw := values.Get("max_price"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			c.MaxPrice = &d
		}
	}
	return c
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), criteriaFromQuery(r.URL.Query()))
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, h.logger, http.StatusOK, products)
}

func (h *Handler) HandleListBySeller(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("sellerId")
	products, err := h.service.ListBySeller(r.Context(), sellerID, criteriaFromQuery(r.URL.Query()))
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, h.logger, http.StatusOK, products)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, h.logger, http.StatusOK, product)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, "")
}

func (h *Handler) HandleCreateForSeller(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, r.PathValue("sellerId"))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, sellerID string) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.service.Create(r.Context(), req.toProduct(), sellerID)
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("product created", "product_id", product.ID, "seller_id", sellerID)
	httpapi.WriteJSON(w, h.logger, http.StatusCreated, product)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, "")
}

func (h *Handler) HandleUpdateForSeller(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, r.PathValue("sellerId"))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, sellerID string) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.service.Update(r.Context(), r.PathValue("id"), req.toProduct(), sellerID)
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("product updated", "product_id", product.ID)
	httpapi.WriteJSON(w, h.logger, http.StatusOK, product)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, "")
}

func (h *Handler) HandleDeleteForSeller(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, r.PathValue("sellerId"))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, sellerID string) {
	id := r.PathValue("id")
	if err := h.service.Delete(r.Context(), id, sellerID); err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("product deleted", "product_id", id)
	w.WriteHeader(http.StatusNoContent)
}
