// Package source implements domain.CatalogSource over HTTP and over a local
// directory.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"alltagslabor/internal/domain"
)

const userAgent = "alltagslabor/1.0"

// maxBodySize caps a dataset download.
const maxBodySize = 32 << 20

// HTTPSource downloads datasets from a raw-file endpoint of a git host.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
	maxBody    int64
}

// NewHTTPSource creates a source rooted at baseURL.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBody: maxBodySize,
	}
}

// URLFor returns the download URL of a language's dataset.
func (s *HTTPSource) URLFor(lang domain.Language) string {
	return s.fileURL(lang.File)
}

func (s *HTTPSource) fileURL(name string) string {
	return fmt.Sprintf("%s/%s?ref_type=heads", s.baseURL, name)
}

// Fetch retrieves the raw dataset JSON of lang.
func (s *HTTPSource) Fetch(ctx context.Context, lang domain.Language) ([]byte, error) {
	return s.FetchFile(ctx, lang.File)
}

// FetchFile retrieves any file stored next to the datasets.
func (s *HTTPSource) FetchFile(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.fileURL(name), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code fetching %s: %d", name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if int64(len(body)) > s.maxBody {
		return nil, fmt.Errorf("%s exceeds %d bytes", name, s.maxBody)
	}
	return body, nil
}
