package producthunt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredentials is wrapped by ConfigError when the OAuth client ID or secret is empty.
var ErrMissingCredentials = errors.New("product hunt client id and secret are required")

// errNoAccessToken is wrapped by AuthError when the token endpoint answers 2xx without a token.
var errNoAccessToken = errors.New("no access token received from product hunt")

// ConfigError reports a fixed configuration problem. Retrying will not help.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: missing %s: %v", strings.Join(e.Missing, ", "), ErrMissingCredentials)
}

func (e *ConfigError) Unwrap() error {
	return ErrMissingCredentials
}

// AuthError reports a failed OAuth client-credentials exchange.
// Status is zero when no HTTP response was received.
type AuthError struct {
	Status int
	Body   string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("oauth failed: HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("oauth failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// UpstreamHTTPError reports a non-2xx response from the GraphQL endpoint.
type UpstreamHTTPError struct {
	Status int
	Body   string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("graphql HTTP %d: %s", e.Status, e.Body)
}

// UpstreamGraphQLError reports an application-level error inside a 2xx GraphQL response.
// Message is the first reported error message.
type UpstreamGraphQLError struct {
	Message string
}

func (e *UpstreamGraphQLError) Error() string {
	return "graphql error: " + e.Message
}

// InvalidDateError reports a date that is not a YYYY-MM-DD calendar day.
type InvalidDateError struct {
	Date string
	Err  error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: want YYYY-MM-DD", e.Date)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

// graphQLError inspects a response body for a GraphQL error envelope.
// It returns nil when the body has no errors or is not JSON.
func graphQLError(body []byte) error {
	var errResp struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &errResp) != nil || len(errResp.Errors) == 0 {
		return nil
	}
	msg := errResp.Errors[0].Message
	if msg == "" {
		msg = "GraphQL error"
	}
	return &UpstreamGraphQLError{Message: msg}
}
