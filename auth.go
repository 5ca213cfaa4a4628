package producthunt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	// tokenRefreshMargin is subtracted from the reported lifetime so a token
	// checked as valid does not expire before the request using it lands.
	tokenRefreshMargin = 5 * time.Minute

	// defaultTokenLifetime applies when the token response omits expires_in.
	defaultTokenLifetime = 3600 // seconds
)

// TokenManager acquires and caches an OAuth bearer token using the
// client-credentials grant, refreshing it before expiry.
type TokenManager struct {
	clientID     string
	clientSecret string
	url          string
	httpClient   *http.Client
	tracer       trace.Tracer
	now          func() time.Time
	metricsHook  func(operation string, success bool)

	mu    sync.Mutex
	token *oauth2.Token

	refresh singleflight.Group
}

// NewTokenManager creates a token manager. It fails with *ConfigError when
// the client ID or secret is empty.
func NewTokenManager(cfg ClientConfig) (*TokenManager, error) {
	cfg.defaults()

	var missing []string
	if cfg.ClientID == "" {
		missing = append(missing, "client id")
	}
	if cfg.ClientSecret == "" {
		missing = append(missing, "client secret")
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Missing: missing}
	}

	return &TokenManager{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		url:          cfg.OAuthURL,
		httpClient:   cfg.HTTPClient,
		tracer:       cfg.TracerProvider.Tracer(instrumentationName),
		now:          cfg.Now,
		metricsHook:  cfg.MetricsHook,
	}, nil
}

// AccessToken returns a valid bearer token value, exchanging client
// credentials when the cached token is missing or expired.
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	tok, err := m.Token(ctx)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// Token returns the cached token or performs a fresh exchange.
// Concurrent cold-start callers share one exchange.
func (m *TokenManager) Token(ctx context.Context) (*oauth2.Token, error) {
	if tok, ok := m.cached(); ok {
		return tok, nil
	}

	v, err, _ := m.refresh.Do("token", func() (any, error) {
		if tok, ok := m.cached(); ok {
			return tok, nil
		}
		return m.exchange(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*oauth2.Token), nil
}

// Invalidate drops the cached token so the next call re-authenticates.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	m.token = nil
	m.mu.Unlock()
}

// cached returns the current token and whether it is still usable.
func (m *TokenManager) cached() (*oauth2.Token, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == nil || !m.now().Before(m.token.Expiry) {
		return nil, false
	}
	return m.token, true
}

// exchange performs the client-credentials grant and stores the result.
func (m *TokenManager) exchange(ctx context.Context) (*oauth2.Token, error) {
	ctx, span := m.tracer.Start(ctx, "producthunt.oauth", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	tok, err := m.doExchange(ctx)
	if m.metricsHook != nil {
		m.metricsHook("oauth", err == nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("oauth token exchange failed", slog.Any("error", err))
		return nil, err
	}

	m.mu.Lock()
	m.token = tok
	m.mu.Unlock()

	slog.Info("oauth token acquired", slog.Time("refresh_at", tok.Expiry))
	return tok, nil
}

func (m *TokenManager) doExchange(ctx context.Context) (*oauth2.Token, error) {
	payload, err := json.Marshal(map[string]string{
		"client_id":     m.clientID,
		"client_secret": m.clientSecret,
		"grant_type":    "client_credentials",
	})
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("encode token request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(payload))
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	setJSONHeaders(req)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	defer resp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("read token response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AuthError{Status: resp.StatusCode, Body: truncateBytes(body, 200)}
	}

	var tok oauth2.Token
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, &AuthError{Err: fmt.Errorf("decode token response: %w", err)}
	}
	if tok.AccessToken == "" {
		return nil, &AuthError{Err: errNoAccessToken}
	}

	lifetime := tok.ExpiresIn
	if lifetime == 0 {
		lifetime = defaultTokenLifetime
	}
	tok.Expiry = m.now().Add(time.Duration(lifetime)*time.Second - tokenRefreshMargin)
	return &tok, nil
}
