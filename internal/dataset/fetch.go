package dataset

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultURL is the CSV export of the NYC taxi payment sheet.
const DefaultURL = "https://docs.google.com/spreadsheets/d/1PB_KHJWbgh_48OIalrvQqpPOKEPo2uKdIEDzgizsvIw/export?format=csv"

// DefaultTimeout bounds a remote fetch.
const DefaultTimeout = 10 * time.Second

// Source produces the raw payment records.
type Source interface {
	Fetch(ctx context.Context) ([]string, error)
	Name() string
}

// HTTPSource downloads a CSV document over HTTP.
type HTTPSource struct {
	URL     string
	Column  string
	Timeout time.Duration
	Client  *http.Client
}

// Name implements Source.
func (s *HTTPSource) Name() string {
	return ExportURL(s.URL)
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(s.URL) == "" {
		return nil, fmt.Errorf("data url is empty")
	}
	resp, err := httpRequest(ctx, s.client(), ExportURL(s.URL))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	records, err := ParseCSV(resp.Body, s.Column)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Name(), err)
	}
	return records, nil
}

func (s *HTTPSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func httpRequest(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// FileSource reads a local CSV file.
type FileSource struct {
	Path   string
	Column string
}

// Name implements Source.
func (s *FileSource) Name() string {
	return "file://" + s.Path
}

// Fetch implements Source.
func (s *FileSource) Fetch(_ context.Context) ([]string, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only data file.
			_ = cerr
		}
	}()
	records, err := ParseCSV(file, s.Column)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}
	return records, nil
}

// ExportURL rewrites a Google Sheets share link into its CSV export URL.
// Other URLs are returned unchanged.
func ExportURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "docs.google.com/spreadsheets/") {
		return raw
	}
	idx := strings.Index(raw, "/edit")
	if idx < 0 {
		return raw
	}
	return raw[:idx] + "/export?format=csv"
}
