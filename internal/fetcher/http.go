package fetcher

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/pgherardini/ainewswire/internal/config"
	"github.com/pgherardini/ainewswire/internal/types"
)

// Client downloads binary artifacts (PDFs) over plain HTTP. TLS
// relaxation is explicit, one-time process configuration here rather
// than ambient global state.
type Client struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	logger      *slog.Logger
}

// NewClient creates an HTTP download client.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.Fetcher.TLSInsecure,
		},
		// Decompression is handled here, brotli included.
		DisableCompression: true,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Search.Timeout,
		},
		userAgent:   cfg.Fetcher.UserAgent,
		maxBodySize: cfg.Fetcher.MaxBodySize,
		logger:      logger.With("component", "http_client"),
	}
}

// Get fetches a URL and returns the decompressed body.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &types.FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status")}
	}

	reader, err := decompressReader(resp.Body, resp.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, Err: err}
	}

	body, err := io.ReadAll(io.LimitReader(reader, c.maxBodySize))
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, Err: err}
	}
	if len(body) == 0 {
		return nil, &types.FetchError{URL: rawURL, Err: types.ErrEmptyResponse}
	}

	c.logger.Debug("download complete", "url", rawURL, "size", len(body), "duration", time.Since(start))
	return body, nil
}

// decompressReader wraps the body reader according to Content-Encoding.
// Handles gzip, deflate, and brotli (br) encodings.
func decompressReader(body io.Reader, encoding string) (io.Reader, error) {
	switch encoding {
	case "gzip":
		return gzip.NewReader(body)
	case "deflate":
		return flate.NewReader(body), nil
	case "br":
		return brotli.NewReader(body), nil
	default:
		return body, nil
	}
}
