// Package assets talks to the external image host. Products keep only
// the public URL the host hands back; the bytes never touch Postgres.
package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
)

var (
	ErrUploadRejected = errors.New("upload rejected")
	ErrUploadFailed   = errors.New("upload failed")
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 5 << 20

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
}

type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, client *http.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload streams an image to the asset host and returns its public URL.
// Validation failures come back as ErrUploadRejected; anything that goes
// wrong between us and the host is ErrUploadFailed.
func (c *Client) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	if !allowedContentTypes[contentType] {
		return "", fmt.Errorf("%w: unsupported content type %q", ErrUploadRejected, contentType)
	}
	if size > MaxUploadBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrUploadRejected, MaxUploadBytes)
	}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	var oversize error
	streamed := make(chan struct{})
	go func() {
		defer close(streamed)
		part, err := form.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		// Guard the stream too, the declared size is client-supplied.
		copied, err := io.Copy(part, io.LimitReader(body, MaxUploadBytes+1))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if copied > MaxUploadBytes {
			oversize = fmt.Errorf("%w: file exceeds %d bytes", ErrUploadRejected, MaxUploadBytes)
			pw.CloseWithError(oversize)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images", pr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		// A failed Do has closed the request body, so the streaming
		// goroutine has exited; wait for it and oversize is settled.
		<-streamed
		if oversize != nil {
			return "", oversize
		}
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: asset host returned %d", ErrUploadFailed, resp.StatusCode)
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("%w: decode host response: %v", ErrUploadFailed, err)
	}
	if uploaded.URL == "" {
		return "", fmt.Errorf("%w: asset host returned no url", ErrUploadFailed)
	}
	return uploaded.URL, nil
}

// DeleteBestEffort removes a previously uploaded image. Failures are
// logged and swallowed, a stale file on the host never blocks catalog
// writes.
func (c *Client) DeleteBestEffort(ctx context.Context, imageURL string) {
	if imageURL == "" {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, imageURL, nil)
	if err != nil {
		c.logger.Warn("asset delete skipped", "url", imageURL, "error", err)
		return
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("asset delete failed", "url", imageURL, "error", err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode != http.StatusNotFound {
		c.logger.Warn("asset delete failed", "url", imageURL, "status", resp.StatusCode)
	}
}
