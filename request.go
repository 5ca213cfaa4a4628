package producthunt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// graphQLRequest is the POST body accepted by the GraphQL endpoint.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// doGraphQL executes one authenticated GraphQL POST and returns the raw body.
// Non-2xx responses fail with *UpstreamHTTPError, error envelopes with
// *UpstreamGraphQLError. Nothing is retried here.
func (c *Client) doGraphQL(ctx context.Context, op Operation, variables map[string]any) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "producthunt.graphql",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("graphql.operation.name", op.Name)))
	defer span.End()

	body, err := c.postGraphQL(ctx, op, variables)
	c.recordAPICall(op.Name, err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return body, nil
}

func (c *Client) postGraphQL(ctx context.Context, op Operation, variables map[string]any) ([]byte, error) {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(graphQLRequest{Query: op.Query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", op.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GraphQLURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	setJSONHeaders(req)
	tok.SetAuthHeader(req)

	slog.Debug("graphql request", slog.String("operation", op.Name), slog.Any("variables", variables))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op.Name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("graphql non-2xx",
			slog.String("operation", op.Name),
			slog.Int("status", resp.StatusCode),
			slog.String("body", truncateBytes(body, 500)))
		if resp.StatusCode == http.StatusUnauthorized {
			c.tokens.Invalidate()
		}
		return nil, &UpstreamHTTPError{Status: resp.StatusCode, Body: truncateBytes(body, 200)}
	}

	if err := graphQLError(body); err != nil {
		slog.Warn("graphql error envelope", slog.String("operation", op.Name), slog.Any("error", err))
		return nil, err
	}
	return body, nil
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
