package producthunt

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ClientConfig holds all configuration for the Product Hunt client.
type ClientConfig struct {
	// ClientID is the OAuth application key.
	ClientID string

	// ClientSecret is the OAuth application secret.
	ClientSecret string

	// GraphQLURL overrides the GraphQL endpoint.
	GraphQLURL string

	// OAuthURL overrides the OAuth token endpoint.
	OAuthURL string

	// HTTPClient is used for all outbound calls. When nil, a client with
	// HTTPTimeout is created.
	HTTPClient *http.Client

	// HTTPTimeout bounds each outbound request.
	HTTPTimeout time.Duration

	// Location is the timezone whose calendar days are fetched.
	// Default: time.Local
	Location *time.Location

	// TracerProvider supplies the tracer for upstream spans.
	// Default: the global OpenTelemetry provider.
	TracerProvider trace.TracerProvider

	// MetricsHook is called on each upstream request for external metrics collection.
	// operation is the GraphQL operation or "oauth", success indicates the outcome.
	MetricsHook func(operation string, success bool)

	// Now overrides the wall clock for token and cache expiry.
	Now func() time.Time
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *ClientConfig) defaults() {
	if cfg.GraphQLURL == "" {
		cfg.GraphQLURL = defaultGraphQLURL
	}
	if cfg.OAuthURL == "" {
		cfg.OAuthURL = defaultOAuthURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 15 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{
			Timeout: cfg.HTTPTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
}
