package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/andybalholm/brotli"

	"github.com/pgherardini/ainewswire/internal/config"
	"github.com/pgherardini/ainewswire/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func testClient() *Client {
	return NewClient(config.DefaultConfig(), testLogger)
}

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("request missing User-Agent")
		}
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	body, err := testClient().Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(body) != "payload" {
		t.Errorf("body = %q", body)
	}
}

func TestClientGetGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		zw := gzip.NewWriter(w)
		zw.Write([]byte("compressed payload"))
		zw.Close()
	}))
	defer srv.Close()

	body, err := testClient().Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(body) != "compressed payload" {
		t.Errorf("body = %q", body)
	}
}

func TestClientGetBrotli(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		bw := brotli.NewWriter(w)
		bw.Write([]byte("brotli payload"))
		bw.Close()
	}))
	defer srv.Close()

	body, err := testClient().Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(body) != "brotli payload" {
		t.Errorf("body = %q", body)
	}
}

func TestClientGetErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient().Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}

	var fe *types.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %T, want *types.FetchError", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
	}
}

func TestClientGetEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := testClient().Get(context.Background(), srv.URL)
	if !errors.Is(err, types.ErrEmptyResponse) {
		t.Fatalf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestClientGetBodyLimit(t *testing.T) {
	big := make([]byte, 1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(big)
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Fetcher.MaxBodySize = 100
	body, err := NewClient(cfg, testLogger).Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(body) != 100 {
		t.Errorf("body truncated to %d bytes, want 100", len(body))
	}
}
