// Package api provides the client for the Electricity Maps carbon
// intensity API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"k8s.io/klog/v2"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/config"
)

// defaultRateLimit guards against a zero rate limit in the configuration
const defaultRateLimit = 10

// HTTPClient interface allows mocking http.Client in tests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client handles interactions with the carbon intensity API
type Client struct {
	apiConfig   config.ElectricityMapsAPIConfig
	cacheConfig config.APICacheConfig
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	cache       CacheInterface
}

// CarbonIntensityData represents a carbon intensity reading for a zone
type CarbonIntensityData struct {
	// Zone is the Electricity Maps zone the reading applies to
	Zone string

	// CarbonIntensity is the location-based intensity in gCO2eq/kWh
	CarbonIntensity float64

	// MarketCarbonIntensity is the market-based intensity in gCO2eq/kWh.
	// Only meaningful when HasMarketData is true; most zones do not report it.
	MarketCarbonIntensity float64

	// HasMarketData indicates whether the API reported a market-based value
	HasMarketData bool

	// EmissionFactorType describes the accounting method (e.g. lifecycle)
	EmissionFactorType string

	// IsEstimated indicates the reading is a model estimate rather than measured
	IsEstimated bool

	// Timestamp of the reading
	Timestamp time.Time
}

// carbonIntensityResponse mirrors the JSON payload returned by the API.
// CarbonIntensity is a pointer so a missing value can be distinguished from
// a legitimate zero reading.
type carbonIntensityResponse struct {
	Zone                  string    `json:"zone"`
	CarbonIntensity       *float64  `json:"carbonIntensity"`
	MarketCarbonIntensity *float64  `json:"marketCarbonIntensity"`
	EmissionFactorType    string    `json:"emissionFactorType"`
	IsEstimated           bool      `json:"isEstimated"`
	Datetime              time.Time `json:"datetime"`
}

// ClientOption allows customizing the client
type ClientOption func(*Client)

// WithHTTPClient allows injecting a custom HTTP client
func WithHTTPClient(client HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// CacheInterface is the cache the client consults before issuing requests
type CacheInterface interface {
	Get(zone string) (*CarbonIntensityData, bool)
	Set(zone string, data *CarbonIntensityData)
}

// WithCache adds a cache to the client
func WithCache(cache CacheInterface) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// NewClient creates a new API client
func NewClient(apiCfg config.ElectricityMapsAPIConfig, cacheCfg config.APICacheConfig, opts ...ClientOption) *Client {
	client := &Client{
		apiConfig:   apiCfg,
		cacheConfig: cacheCfg,
		httpClient: &http.Client{
			Timeout: cacheCfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(ensureNonZero(cacheCfg.RateLimit, defaultRateLimit)), 1),
	}

	// Apply options
	for _, opt := range opts {
		opt(client)
	}

	return client
}

// GetCarbonIntensity fetches carbon intensity data for a zone with
// rate limiting and retries
func (c *Client) GetCarbonIntensity(ctx context.Context, zone string) (*CarbonIntensityData, error) {
	// First check the cache if available
	if c.cache != nil {
		if data, fresh := c.cache.Get(zone); fresh {
			klog.V(2).InfoS("Using cached carbon intensity data",
				"zone", zone,
				"intensity", data.CarbonIntensity)
			return data, nil
		}
	}

	// Cache miss or no cache configured, fetch from API
	var lastErr error
	for attempt := 0; attempt <= c.cacheConfig.MaxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("context cancelled: %v", err)
		}

		data, err := c.doRequest(ctx, zone)
		if err == nil {
			// Store successful result in cache if available
			if c.cache != nil {
				c.cache.Set(zone, data)
				klog.V(2).InfoS("Stored carbon intensity data in cache",
					"zone", zone,
					"intensity", data.CarbonIntensity)
			}
			return data, nil
		}
		lastErr = err
		klog.V(2).InfoS("API request failed, retrying",
			"attempt", attempt+1,
			"maxRetries", c.cacheConfig.MaxRetries,
			"error", err)

		if attempt == c.cacheConfig.MaxRetries {
			break
		}

		// Wait with context awareness
		timer := time.NewTimer(c.getBackoffDuration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("context cancelled during backoff: %v", ctx.Err())
		case <-timer.C:
		}
	}
	return nil, fmt.Errorf("all retries failed: %v", lastErr)
}

func (c *Client) doRequest(ctx context.Context, zone string) (*CarbonIntensityData, error) {
	// Validate inputs
	if zone == "" {
		return nil, fmt.Errorf("zone cannot be empty")
	}

	// Create request with context
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiConfig.URL+zone, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	klog.V(2).InfoS("Making carbon API request",
		"url", req.URL.String(),
		"zone", zone,
		"hasApiKey", c.apiConfig.APIKey != "")

	// Add headers
	req.Header.Set("auth-token", c.apiConfig.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// Execute request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	// Handle response status
	switch resp.StatusCode {
	case http.StatusOK:
		// Continue processing
	case http.StatusPaymentRequired, http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limit exceeded")
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("invalid API key")
	case http.StatusNotFound:
		return nil, fmt.Errorf("zone not found: %s", zone)
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Decode response
	var payload carbonIntensityResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %v", err)
	}

	// A missing intensity means the zone has no data right now; callers treat
	// this as unavailable rather than assuming a default
	if payload.CarbonIntensity == nil {
		return nil, fmt.Errorf("carbon intensity missing in response for zone %s", zone)
	}
	if *payload.CarbonIntensity < 0 {
		return nil, fmt.Errorf("invalid carbon intensity value: %f", *payload.CarbonIntensity)
	}

	data := &CarbonIntensityData{
		Zone:               payload.Zone,
		CarbonIntensity:    *payload.CarbonIntensity,
		EmissionFactorType: payload.EmissionFactorType,
		IsEstimated:        payload.IsEstimated,
		Timestamp:          payload.Datetime,
	}

	if payload.MarketCarbonIntensity != nil {
		if *payload.MarketCarbonIntensity < 0 {
			return nil, fmt.Errorf("invalid market carbon intensity value: %f", *payload.MarketCarbonIntensity)
		}
		data.MarketCarbonIntensity = *payload.MarketCarbonIntensity
		data.HasMarketData = true
	}

	// Fill fields the API may omit
	if data.Zone == "" {
		data.Zone = zone
	}
	if data.Timestamp.IsZero() {
		data.Timestamp = time.Now()
	}

	return data, nil
}

func (c *Client) getBackoffDuration(attempt int) time.Duration {
	// Exponential backoff with jitter
	backoff := c.cacheConfig.RetryDelay * time.Duration(1<<uint(attempt))
	maxBackoff := 1 * time.Minute
	if backoff > maxBackoff {
		backoff = maxBackoff
	}

	// Add jitter (±20%)
	jitter := time.Duration(float64(backoff) * (0.8 + 0.4*float64(time.Now().UnixNano()%100)/100.0))
	return jitter
}

// GetURL returns the base URL used for API requests
func (c *Client) GetURL() string {
	return c.apiConfig.URL
}

// ensureNonZero makes sure a configured value is positive
func ensureNonZero(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
