package random

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// DefaultURL asks random.org for one decimal fraction with two digits.
const DefaultURL = "https://www.random.org/decimal-fractions/?num=1&dec=2&col=1&format=plain&rnd=new"

// DefaultTimeout bounds a single HTTP draw.
const DefaultTimeout = 5 * time.Second

// maxBodyBytes caps how much of a response is read; a valid draw is a few bytes.
const maxBodyBytes = 64

// HTTPSource fetches draws from a plain-text HTTP endpoint.
type HTTPSource struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		s.client.Timeout = d
	}
}

// WithHTTPClient replaces the HTTP client. The client's Timeout is used as-is.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = c
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) HTTPOption {
	return func(s *HTTPSource) {
		s.logger = l
	}
}

// NewHTTPSource creates a source that GETs url for every draw.
// An empty url selects DefaultURL.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	if url == "" {
		url = DefaultURL
	}
	s := &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: DefaultTimeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next performs one request and parses the body as a draw.
func (s *HTTPSource) Next(ctx context.Context) (float64, error) {
	s.logger.Debug("fetching random number", "url", s.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			s.logger.Error("request to random source timed out", "url", s.url)
			return 0, fmt.Errorf("%w: request to random source timed out: %v", ErrUnavailable, err)
		}
		s.logger.Error("request to random source failed", "url", s.url, "error", err)
		return 0, fmt.Errorf("%w: request to random source failed: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error("random source returned error status", "status", resp.StatusCode)
		return 0, fmt.Errorf("%w: request to random source failed: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	v, err := Parse(string(body))
	if err != nil {
		s.logger.Error("invalid response from random source", "body", string(body))
		return 0, err
	}

	s.logger.Info("received random number", "value", v)
	return v, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
