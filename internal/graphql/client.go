// Package graphql provides a pooled, authenticated GraphQL HTTP client for
// communicating with the Fly.io GraphQL API, and the raw-query MCP tool
// built on top of it.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flyops/fly-mcp/internal/config"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxIdlePerHost = 5

	// maxBodySnippet bounds how much raw body text a ProtocolError carries.
	maxBodySnippet = 300
)

// HTTPClient is a concrete implementation of the Client interface that sends
// GraphQL requests over HTTP using a shared pooled transport. The pool and
// bearer token are fixed at construction time; the client holds no other
// state and is safe for concurrent use.
type HTTPClient struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewHTTPClient constructs an HTTPClient from the provided FlyConfig.
// It returns an error if cfg.URL is empty. When cfg.Timeout is zero or
// negative, a default timeout of 30 seconds is used; the same applies to
// cfg.MaxIdlePerHost and its default of 5. An empty API token is accepted at
// construction time but will cause Execute to return an error.
func NewHTTPClient(cfg config.FlyConfig) (*HTTPClient, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("graphql: URL is required")
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = defaultTimeout
	}

	maxIdle := cfg.MaxIdlePerHost
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdlePerHost
	}

	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: maxIdle,
			},
		},
		endpoint: cfg.URL,
		token:    cfg.Token,
	}, nil
}

// graphqlRequest is the JSON body shape for a GraphQL HTTP request.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Execute sends a GraphQL query to the configured endpoint and returns the
// raw JSON bytes of the "data" field on success. Variables may be nil, in
// which case the "variables" key is omitted from the request body.
//
// Failures are classified:
//   - *TransportError for a non-2xx HTTP status (body preserved, not parsed)
//   - *ProtocolError when the body does not decode as the response envelope
//   - *UpstreamError when GraphQL errors are reported and no data is present
//   - ErrMissingData when neither data nor errors are present
//
// Per GraphQL partial-result semantics, a present data field is returned as
// success even when field-level errors accompany it.
func (c *HTTPClient) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	if c.token == "" {
		return nil, fmt.Errorf("graphql: API token is not configured")
	}

	reqBody := graphqlRequest{
		Query:     query,
		Variables: variables,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("graphql: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("graphql: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphql: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Read the whole body up front so the raw text is available for
	// diagnostics regardless of how decoding goes.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("graphql: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Status: resp.StatusCode, Body: string(raw)}
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &ProtocolError{Err: err, Snippet: snippet(raw, maxBodySnippet)}
	}

	if dataPresent(envelope.Data) {
		return envelope.Data, nil
	}

	if len(envelope.Errors) > 0 {
		msgs := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			msgs[i] = e.Message
		}
		return nil, &UpstreamError{Messages: msgs}
	}

	return nil, ErrMissingData
}

// Query executes a GraphQL operation through c and decodes the data field
// into a value of type T. Decode schemas for the known Fly.io queries live
// alongside the queries that use them.
func Query[T any](ctx context.Context, c Client, query string, variables map[string]any) (T, error) {
	var out T

	data, err := c.Execute(ctx, query, variables)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("graphql: decode data: %w", err)
	}
	return out, nil
}

// dataPresent reports whether the data field carries a usable value. A nil
// RawMessage means the key was absent; the literal "null" counts as absent
// too.
func dataPresent(data json.RawMessage) bool {
	return len(data) > 0 && !bytes.Equal(data, []byte("null"))
}

// snippet returns at most n bytes of raw as a string.
func snippet(raw []byte, n int) string {
	if len(raw) <= n {
		return string(raw)
	}
	return string(raw[:n])
}
