// Package tools holds the registration plumbing and shared result helpers
// used by every fly-mcp tool handler.
package tools

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/flyops/fly-mcp/internal/safety"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Registration couples a tool definition with the handler that serves it.
// The fly packages each build their own []Registration so main can register
// the whole surface in one pass.
type Registration struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
}

// RegisterAll installs the given registrations on the MCP server.
func RegisterAll(s *server.MCPServer, registrations []Registration) {
	for _, r := range registrations {
		s.AddTool(r.Tool, r.Handler)
	}
}

// JSONResult marshals v to indented JSON and returns an mcp.CallToolResult.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error marshaling result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// ErrorResult returns an mcp.CallToolResult that describes an error condition.
func ErrorResult(msg string) *mcp.CallToolResult {
	return mcp.NewToolResultText(fmt.Sprintf("error: %s", msg))
}

// LogAudit logs a method invocation to the audit logger, silently ignoring a
// nil logger.
func LogAudit(audit *safety.AuditLogger, method string, params map[string]any, result string, start time.Time) {
	if audit == nil {
		return
	}
	_ = audit.Log(safety.AuditEntry{
		Timestamp: start,
		Method:    method,
		Params:    params,
		Result:    result,
		Duration:  time.Since(start),
	})
}
