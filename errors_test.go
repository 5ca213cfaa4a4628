package producthunt

import (
	"errors"
	"testing"
)

func TestGraphQLError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string // empty means no error
	}{
		{"no errors", `{"data":{"posts":{}}}`, ""},
		{"empty errors", `{"errors":[]}`, ""},
		{"single error", `{"errors":[{"message":"Invalid query"}]}`, "Invalid query"},
		{"first of many", `{"errors":[{"message":"first"},{"message":"second"}]}`, "first"},
		{"blank message", `{"errors":[{"message":""}]}`, "GraphQL error"},
		{"errors with data", `{"data":null,"errors":[{"message":"rate limited"}]}`, "rate limited"},
		{"invalid json", `{invalid`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := graphQLError([]byte(tt.body))
			if tt.expected == "" {
				if err != nil {
					t.Fatalf("graphQLError(%s) = %v, want nil", tt.body, err)
				}
				return
			}
			var gqlErr *UpstreamGraphQLError
			if !errors.As(err, &gqlErr) {
				t.Fatalf("graphQLError(%s) = %v, want *UpstreamGraphQLError", tt.body, err)
			}
			if gqlErr.Message != tt.expected {
				t.Fatalf("message = %q, want %q", gqlErr.Message, tt.expected)
			}
		})
	}
}

func TestConfigErrorWrapsSentinel(t *testing.T) {
	err := error(&ConfigError{Missing: []string{"client id"}})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatal("expected ConfigError to match ErrMissingCredentials")
	}
}

func TestAuthErrorMessage(t *testing.T) {
	withStatus := &AuthError{Status: 401, Body: "bad client"}
	if withStatus.Error() != "oauth failed: HTTP 401: bad client" {
		t.Fatalf("unexpected message %q", withStatus.Error())
	}

	noToken := &AuthError{Err: errNoAccessToken}
	if !errors.Is(noToken, errNoAccessToken) {
		t.Fatal("expected AuthError to unwrap its cause")
	}
}
