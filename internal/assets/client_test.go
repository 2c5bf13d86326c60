package assets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Upload(t *testing.T) {
	t.Run("uploads and returns the host url", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/images" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			file, header, err := r.FormFile("file")
			if err != nil {
				t.Fatalf("host could not read file part: %v", err)
			}
			defer func() { _ = file.Close() }()
			if header.Filename != "mouse.png" {
				t.Errorf("expected filename mouse.png, got %s", header.Filename)
			}
			body, _ := io.ReadAll(file)
			if string(body) != "png-bytes" {
				t.Errorf("unexpected payload: %s", body)
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"url": "https://cdn.test/images/abc123.png"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), testLogger())
		url, err := client.Upload(context.Background(), "mouse.png", "image/png", 9, strings.NewReader("png-bytes"))
		if err != nil {
			t.Fatalf("upload: %v", err)
		}
		if url != "https://cdn.test/images/abc123.png" {
			t.Errorf("unexpected url: %s", url)
		}
	})

	t.Run("rejects disallowed content type without contacting the host", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("host must not be contacted for a rejected upload")
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), testLogger())
		_, err := client.Upload(context.Background(), "evil.sh", "application/x-sh", 4, strings.NewReader("boom"))
		if !errors.Is(err, ErrUploadRejected) {
			t.Fatalf("expected ErrUploadRejected, got %v", err)
		}
	})

	t.Run("rejects oversized upload", func(t *testing.T) {
		client := NewClient("http://unused", http.DefaultClient, testLogger())
		_, err := client.Upload(context.Background(), "big.jpg", "image/jpeg", MaxUploadBytes+1, strings.NewReader(""))
		if !errors.Is(err, ErrUploadRejected) {
			t.Fatalf("expected ErrUploadRejected, got %v", err)
		}
	})

	t.Run("rejects stream larger than its declared size", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Drain whatever arrives; the client must abort on its own.
			_, _ = io.Copy(io.Discard, r.Body)
			_, _ = w.Write([]byte(`{"url": "https://cdn.test/images/never.png"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), testLogger())
		oversized := io.MultiReader(
			strings.NewReader(strings.Repeat("x", MaxUploadBytes)),
			strings.NewReader("y"),
		)
		_, err := client.Upload(context.Background(), "liar.png", "image/png", 10, oversized)
		if !errors.Is(err, ErrUploadRejected) {
			t.Fatalf("expected ErrUploadRejected for an understated size, got %v", err)
		}
	})

	t.Run("host error becomes UploadFailed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "disk full", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), testLogger())
		_, err := client.Upload(context.Background(), "mouse.png", "image/png", 3, strings.NewReader("abc"))
		if !errors.Is(err, ErrUploadFailed) {
			t.Fatalf("expected ErrUploadFailed, got %v", err)
		}
	})

	t.Run("unreachable host becomes UploadFailed", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", http.DefaultClient, testLogger())
		_, err := client.Upload(context.Background(), "mouse.png", "image/png", 3, strings.NewReader("abc"))
		if !errors.Is(err, ErrUploadFailed) {
			t.Fatalf("expected ErrUploadFailed, got %v", err)
		}
	})
}

func TestClient_DeleteBestEffort(t *testing.T) {
	t.Run("issues a DELETE against the image url", func(t *testing.T) {
		deleted := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodDelete && r.URL.Path == "/images/abc123.png" {
				deleted = true
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), testLogger())
		client.DeleteBestEffort(context.Background(), server.URL+"/images/abc123.png")
		if !deleted {
			t.Error("expected a DELETE request")
		}
	})

	t.Run("swallows failures", func(t *testing.T) {
		client := NewClient("http://unused", http.DefaultClient, testLogger())
		// Unreachable host, must not panic or error.
		client.DeleteBestEffort(context.Background(), "http://127.0.0.1:1/images/x.png")
		client.DeleteBestEffort(context.Background(), "")
	})
}

func TestHandler_HandleUpload_MissingFile(t *testing.T) {
	client := NewClient("http://unused", http.DefaultClient, testLogger())
	handler := NewHandler(client, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/images", strings.NewReader("not multipart"))
	rec := httptest.NewRecorder()
	handler.HandleUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
