// Package producthunt fetches daily product launches from the Product Hunt
// GraphQL API, aggregating a day's pages into one cached result and serving
// lightweight vote-count refreshes.
package producthunt

import (
	"fmt"
	"net/http"

	"github.com/anatolykoptev/go-producthunt/cache"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const instrumentationName = "github.com/anatolykoptev/go-producthunt"

// Client is the top-level Product Hunt client.
type Client struct {
	httpClient *http.Client
	tokens     *TokenManager
	cache      *cache.Cache[*PostsResponse]
	tracer     trace.Tracer
	cfg        ClientConfig

	// days coalesces concurrent aggregations of the same date.
	days singleflight.Group
}

// NewClient creates a fully-wired Product Hunt client.
// It fails with *ConfigError when credentials are missing.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg.defaults()

	tokens, err := NewTokenManager(cfg)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	return &Client{
		httpClient: cfg.HTTPClient,
		tokens:     tokens,
		cache:      cache.New[*PostsResponse](cache.WithClock(cfg.Now)),
		tracer:     cfg.TracerProvider.Tracer(instrumentationName),
		cfg:        cfg,
	}, nil
}

// Tokens returns the client's token manager.
func (c *Client) Tokens() *TokenManager {
	return c.tokens
}

// Cache returns the response cache shared by page and day fetches.
func (c *Client) Cache() *cache.Cache[*PostsResponse] {
	return c.cache
}

// CacheStats reports the age and remaining lifetime of every cached response.
func (c *Client) CacheStats() []cache.EntryStats {
	return c.cache.Stats()
}

// recordAPICall calls the metrics hook if configured.
func (c *Client) recordAPICall(operation string, success bool) {
	if c.cfg.MetricsHook != nil {
		c.cfg.MetricsHook(operation, success)
	}
}
