package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPSource fetches dataset files below BaseURL. The date stamp query makes
// intermediate caches keep a file for one calendar day at most.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	Now     func() time.Time
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 60 * time.Second},
		Now:     time.Now,
	}
}

func (s *HTTPSource) URL(name string) string {
	return fmt.Sprintf("%s/%s?d=%s", s.BaseURL, url.PathEscape(name), DateStamp(s.Now()))
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(name), nil)
	if err != nil {
		return nil, err
	}
	res, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatasetUnavailable, name, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", ErrDatasetUnavailable, name, res.StatusCode)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatasetUnavailable, name, err)
	}
	return data, nil
}
