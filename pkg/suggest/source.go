package suggest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxPayload caps how much of a data source response is read.
const maxPayload = 4 << 20

// HTTPSource queries a JSON endpoint with GET {Endpoint}?{Param}={query}.
type HTTPSource struct {
	Endpoint string
	Param    string
	Client   *http.Client
}

// NewHTTPSource creates a source using http.DefaultClient. Timeouts come from
// the request context set by the Fetcher.
func NewHTTPSource(endpoint, param string) *HTTPSource {
	if param == "" {
		param = DefaultOptions().SearchParam
	}
	return &HTTPSource{Endpoint: endpoint, Param: param, Client: http.DefaultClient}
}

// Search performs the request and returns the raw body of a 2xx answer.
func (s *HTTPSource) Search(ctx context.Context, query string) ([]byte, error) {
	u, err := url.Parse(s.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", s.Endpoint, err)
	}
	if query != "" {
		params := u.Query()
		params.Set(s.Param, query)
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxPayload))
		return nil, &StatusError{Code: resp.StatusCode}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPayload))
}
