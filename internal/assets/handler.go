package assets

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/marketway/storefront/internal/httpapi"
)

type Handler struct {
	client *Client
	logger *slog.Logger
}

func NewHandler(client *Client, logger *slog.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// HandleUpload accepts a multipart form with a single "file" part and
// responds with the public URL of the stored image.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+4096)

	file, header, err := r.FormFile("file")
	if err != nil {
		httpapi.WriteError(w, h.logger, http.StatusBadRequest, "missing file part")
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.client.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrUploadRejected):
			httpapi.WriteError(w, h.logger, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUploadFailed):
			h.logger.Error("image upload failed", "error", err)
			httpapi.WriteError(w, h.logger, http.StatusBadGateway, "image upload failed")
		default:
			httpapi.WriteDomainError(w, h.logger, err)
		}
		return
	}

	httpapi.WriteJSON(w, h.logger, http.StatusCreated, map[string]string{"url": url})
}
