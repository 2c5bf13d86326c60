package stats

import (
	"log/slog"
	"net/http"

	"github.com/marketway/storefront/internal/httpapi"
)

type Handler struct {
	aggregator *Aggregator
	logger     *slog.Logger
}

func NewHandler(aggregator *Aggregator, logger *slog.Logger) *Handler {
	return &Handler{aggregator: aggregator, logger: logger}
}

func (h *Handler) HandleSeller(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("sellerId")
	if sellerID == "" {
		httpapi.WriteError(w, h.logger, http.StatusBadRequest, "missing seller id")
		return
	}

	sellerStats, err := h.aggregator.Seller(r.Context(), sellerID)
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, h.logger, http.StatusOK, sellerStats)
}

func (h *Handler) HandleSystem(w http.ResponseWriter, r *http.Request) {
	systemStats, err := h.aggregator.System(r.Context())
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, h.logger, http.StatusOK, systemStats)
}
