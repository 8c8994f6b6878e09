// Package geo provides the HTTP client for the external geocoding and
// routing service used by delivery fee quoting.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Client encapsulates HTTP interaction with the geocoding and routing
// service. Network failures and server errors surface as
// ports.ErrUpstreamUnavailable so callers can degrade instead of failing.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      GeocodeCache
}

// GeocodeCache stores resolved coordinates for an address. Get returns
// ok=false on a miss; both methods must tolerate backend outages by
// returning an error the client can ignore.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (kernel.GeoPoint, bool, error)
	Set(ctx context.Context, address string, point kernel.GeoPoint) error
}

// Option configures the Client.
type Option func(*Client)

// WithCache installs a geocode result cache.
func WithCache(cache GeocodeCache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a geo service client for the given base address.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type geocodeResponse struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

type routeResponse struct {
	DistanceKm float64 `json:"distanceKm"`
}

// Geocode resolves a free-form address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return kernel.GeoPoint{}, fmt.Errorf("geocode: address is empty")
	}

	if c.cache != nil {
		if point, ok, err := c.cache.Get(ctx, address); err == nil && ok {
			return point, nil
		}
	}

	var result geocodeResponse
	query := url.Values{"q": {address}}
	if err := c.call(ctx, "/geocode", query, &result); err != nil {
		return kernel.GeoPoint{}, err
	}

	point, err := kernel.NewGeoPoint(result.Lng, result.Lat)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("geocode: %w", err)
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, address, point)
	}
	return point, nil
}

// DrivingDistanceKm resolves the driving distance between two points.
func (c *Client) DrivingDistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error) {
	var result routeResponse
	query := url.Values{
		"fromLng": {formatCoord(from.Lng())},
		"fromLat": {formatCoord(from.Lat())},
		"toLng":   {formatCoord(to.Lng())},
		"toLat":   {formatCoord(to.Lat())},
	}
	if err := c.call(ctx, "/route", query, &result); err != nil {
		return 0, err
	}

	if result.DistanceKm < 0 {
		return 0, fmt.Errorf("route: negative distance %f", result.DistanceKm)
	}
	return result.DistanceKm, nil
}

// call performs a GET with one retry on transport errors and 5xx responses.
func (c *Client) call(ctx context.Context, path string, query url.Values, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("geo client not configured: %w", ports.ErrUpstreamUnavailable)
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		err := c.doCall(ctx, path, query, out)
		if err == nil {
			return nil
		}
		lastErr = err
		// Only transient upstream failures are worth a second attempt.
		if !errors.Is(err, ports.ErrUpstreamUnavailable) || ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) doCall(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", path, ports.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%s: status %d: %w", path, resp.StatusCode, ports.ErrUpstreamUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", path, err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
