package graphql

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingData is returned when a response carries neither a data field nor
// any errors. That combination violates the GraphQL over-HTTP contract, so it
// is reported distinctly from upstream-declared errors.
var ErrMissingData = errors.New("graphql: response missing data field")

// TransportError reports a non-2xx HTTP status from the upstream endpoint.
// The raw body text is preserved for diagnostics; no JSON parsing is
// attempted on such responses.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("graphql: request failed: HTTP %d - %s", e.Status, e.Body)
}

// ProtocolError reports a 2xx response whose body did not parse as the
// expected {data, errors} envelope. Snippet holds a bounded prefix of the raw
// body.
type ProtocolError struct {
	Err     error
	Snippet string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("graphql: decode response: %v | raw: %s", e.Err, e.Snippet)
}

// Unwrap returns the underlying parse error.
func (e *ProtocolError) Unwrap() error { return e.Err }

// UpstreamError reports GraphQL errors returned with no usable data at all.
// Messages preserves the upstream ordering.
type UpstreamError struct {
	Messages []string
}

func (e *UpstreamError) Error() string {
	return "graphql: upstream errors: " + e.Joined()
}

// Joined returns every upstream error message comma-joined in original order.
func (e *UpstreamError) Joined() string {
	return strings.Join(e.Messages, ", ")
}
