package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultTimeout bounds a single catalog download.
const DefaultTimeout = 15 * time.Second

// MaxCatalogBytes is the default cap on a catalog response body.
const MaxCatalogBytes = 64 << 20

var errNoURL = errors.New("source: catalog URL is not configured")

// ErrCatalogTooLarge is returned when a response body exceeds the fetcher's
// byte limit. A partial catalog is never returned.
var ErrCatalogTooLarge = errors.New("source: catalog exceeds size limit")

// Fetcher returns the raw bytes of the catalog export.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// StatusError reports a non-2xx response from the catalog host.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("source: unexpected status %d from %s", e.StatusCode, e.URL)
}

// HTTPFetcher downloads the catalog from a URL, typically a published
// spreadsheet CSV export.
type HTTPFetcher struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
	// MaxBytes caps the body size. Zero means MaxCatalogBytes.
	MaxBytes int64
}

// NewHTTPFetcher creates an HTTPFetcher with the default timeout.
func NewHTTPFetcher(url string) *HTTPFetcher {
	return &HTTPFetcher{URL: url, Timeout: DefaultTimeout}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if f.URL == "" {
		return nil, errNoURL
	}
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("source: build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	httpClient := f.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: f.URL}
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = MaxCatalogBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("source: read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w (%d bytes) from %s", ErrCatalogTooLarge, limit, f.URL)
	}
	return body, nil
}

// FileFetcher reads the catalog from a local file.
type FileFetcher struct {
	Path string
}

func (f *FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", f.Path, err)
	}
	return data, nil
}
