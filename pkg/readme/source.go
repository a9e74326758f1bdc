package readme

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultURL is the raw dfmt README on the master branch.
const DefaultURL = "https://raw.githubusercontent.com/dlang-community/dfmt/master/README.md"

// Source produces the markdown document to parse.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// HTTPSource performs a single GET without headers or authentication.
type HTTPSource struct {
	URL     string
	Client  *http.Client  // nil uses http.DefaultClient
	Timeout time.Duration // zero leaves the transport default in place
}

// NewHTTPSource creates a source for url using the default client.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{URL: url}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", ErrFetch, s.URL, err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrFetch, s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrFetch, s.URL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body of %s: %w", ErrFetch, s.URL, err)
	}
	return body, nil
}

func (s *HTTPSource) String() string {
	return s.URL
}

// FileSource reads a local copy of the README.
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return data, nil
}

func (s *FileSource) String() string {
	return s.Path
}
