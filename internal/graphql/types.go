package graphql

import (
	"context"
	"encoding/json"
)

// GraphQLError represents a single error returned in a GraphQL response.
// Path segments may be strings or integers, so they are kept as raw values.
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// Envelope is the wire shape of every GraphQL response: an optional data
// object alongside an optional list of errors. Data is nil when the "data"
// key is absent and the literal "null" when the key is present but null.
type Envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Client defines the interface for executing GraphQL queries.
type Client interface {
	Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error)
}
