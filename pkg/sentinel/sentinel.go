// Package sentinel integrates with an upstream Sentinel-2 imagery service.
//
// The upstream is an optional collaborator: when it is unreachable, errors,
// or is simply not configured, the evidence pipeline proceeds with fully
// synthetic tile generation. Upstream failure is therefore never surfaced
// to callers as a pipeline failure.
package sentinel

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/disintegration/imaging"

	"github.com/kisan-depin/dmrv/pkg/errors"
	"github.com/kisan-depin/dmrv/pkg/geo"
	"github.com/kisan-depin/dmrv/pkg/httputil"
	"github.com/kisan-depin/dmrv/pkg/observability"
)

// DefaultBBoxSize is the bounding-box half-width in degrees requested
// around a coordinate (~1.1 km at the equator).
const DefaultBBoxSize = 0.01

// DateRange bounds the acquisition window of requested imagery.
type DateRange struct {
	Start string `json:"date_start"` // ISO date, e.g. "2025-10-01"
	End   string `json:"date_end"`   // ISO date, e.g. "2025-11-30"
}

// Fetcher retrieves real satellite imagery for a coordinate.
// Implementations must treat every failure as recoverable: callers fall
// back to synthetic generation on any error.
type Fetcher interface {
	FetchTile(ctx context.Context, coord geo.Coordinate, dates DateRange) (image.Image, error)
}

// Client fetches atmospherically corrected Sentinel-2 L2A tiles from a
// Copernicus-style HTTP endpoint.
type Client struct {
	baseURL  string
	bboxSize float64
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBBoxSize overrides the bounding-box size in degrees.
func WithBBoxSize(deg float64) Option {
	return func(c *Client) { c.bboxSize = deg }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a tile client for the given endpoint base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		bboxSize: DefaultBBoxSize,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchTile requests a rendered tile for the bounding box around coord.
// Transient failures (network errors, 5xx) are retried with backoff; all
// remaining failures come back wrapped as UPSTREAM_UNAVAILABLE.
func (c *Client) FetchTile(ctx context.Context, coord geo.Coordinate, dates DateRange) (image.Image, error) {
	west, south, east, north := coord.BBox(c.bboxSize)

	q := url.Values{}
	q.Set("west", fmt.Sprintf("%f", west))
	q.Set("south", fmt.Sprintf("%f", south))
	q.Set("east", fmt.Sprintf("%f", east))
	q.Set("north", fmt.Sprintf("%f", north))
	if dates.Start != "" {
		q.Set("date_start", dates.Start)
	}
	if dates.End != "" {
		q.Set("date_end", dates.End)
	}

	reqURL := c.baseURL + "/tiles?" + q.Encode()

	var img image.Image
	err := httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}

		observability.HTTP().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
			return httputil.Retryable(err)
		}
		defer resp.Body.Close()
		observability.HTTP().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

		if resp.StatusCode >= 500 {
			return httputil.Retryable(fmt.Errorf("upstream returned %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("upstream returned %s", resp.Status)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return httputil.Retryable(err)
		}

		decoded, err := imaging.Decode(bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("decode tile: %w", err)
		}
		img = decoded
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstreamUnavailable, err,
			"fetch tile for %s", coord.Key())
	}
	return img, nil
}

// Ensure Client implements Fetcher.
var _ Fetcher = (*Client)(nil)
