// Package mcptools exposes the plugin's dispatch methods as MCP tools so a
// host can call them over the MCP protocol.
package mcptools

import (
	"context"
	"time"

	"github.com/flyops/fly-mcp/internal/safety"
	"github.com/flyops/fly-mcp/internal/service"
	"github.com/flyops/fly-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names, one per dispatch method.
const (
	toolNameHealth   = "fly_health"
	toolNameApps     = "fly_apps"
	toolNameStatus   = "fly_status"
	toolNameMachines = "fly_machines"
	toolNameUser     = "fly_user"
	toolNameRegions  = "fly_regions"
	toolNameSecrets  = "fly_secrets"
	toolNameRestart  = "fly_restart"
	toolNameScale    = "fly_scale"
)

// ServiceTools returns one tool registration per dispatch method of svc.
// Each handler collects its arguments into a flat parameter bag and routes it
// through svc.Dispatch, so parameter validation and safety policy live in one
// place.
func ServiceTools(svc service.Service, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		{
			Tool: mcp.NewTool(toolNameHealth,
				mcp.WithDescription("Report Fly.io API connectivity and plugin version."),
			),
			Handler: dispatchHandler(svc, audit, toolNameHealth, "health", nil),
		},
		{
			Tool: mcp.NewTool(toolNameApps,
				mcp.WithDescription("List Fly.io applications visible to the authenticated user."),
				mcp.WithNumber("limit",
					mcp.DefaultNumber(25),
					mcp.Description("Maximum number of applications to return."),
				),
			),
			Handler: dispatchHandler(svc, audit, toolNameApps, "apps", func(req mcp.CallToolRequest) map[string]any {
				return map[string]any{"limit": req.GetInt("limit", 25)}
			}),
		},
		{
			Tool: mcp.NewTool(toolNameStatus,
				mcp.WithDescription("Get the combined status of an application: app, machines, allocations."),
				mcp.WithString("app",
					mcp.Required(),
					mcp.Description("The application name."),
				),
			),
			Handler: dispatchHandler(svc, audit, toolNameStatus, "status", appParam),
		},
		{
			Tool: mcp.NewTool(toolNameMachines,
				mcp.WithDescription("List the machines of an application."),
				mcp.WithString("app",
					mcp.Required(),
					mcp.Description("The application name."),
				),
			),
			Handler: dispatchHandler(svc, audit, toolNameMachines, "machines", appParam),
		},
		{
			Tool: mcp.NewTool(toolNameUser,
				mcp.WithDescription("Get the authenticated user's profile and organizations."),
			),
			Handler: dispatchHandler(svc, audit, toolNameUser, "user", nil),
		},
		{
			Tool: mcp.NewTool(toolNameRegions,
				mcp.WithDescription("List all Fly.io platform regions."),
			),
			Handler: dispatchHandler(svc, audit, toolNameRegions, "regions", nil),
		},
		{
			Tool: mcp.NewTool(toolNameSecrets,
				mcp.WithDescription("Manage application secrets: list, set, or delete."),
				mcp.WithString("app",
					mcp.Required(),
					mcp.Description("The application name."),
				),
				mcp.WithString("action",
					mcp.DefaultString("list"),
					mcp.Description("One of: list, set, delete."),
				),
				mcp.WithString("key",
					mcp.Description("Secret name, required for set and delete."),
				),
				mcp.WithString("value",
					mcp.Description("Secret value, required for set."),
				),
			),
			Handler: dispatchHandler(svc, audit, toolNameSecrets, "secrets", func(req mcp.CallToolRequest) map[string]any {
				params := map[string]any{
					"app":    req.GetString("app", ""),
					"action": req.GetString("action", "list"),
				}
				args := req.GetArguments()
				if key := req.GetString("key", ""); key != "" {
					params["key"] = key
				}
				// A provided-but-empty value is forwarded; secret values may
				// legitimately be empty.
				if value, ok := args["value"].(string); ok {
					params["value"] = value
				}
				return params
			}),
		},
		{
			Tool: mcp.NewTool(toolNameRestart,
				mcp.WithDescription("Restart all machines of an application."),
				mcp.WithString("app",
					mcp.Required(),
					mcp.Description("The application name."),
				),
			),
			Handler: dispatchHandler(svc, audit, toolNameRestart, "restart", appParam),
		},
		{
			Tool: mcp.NewTool(toolNameScale,
				mcp.WithDescription("Start or stop a single machine of an application."),
				mcp.WithString("app",
					mcp.Required(),
					mcp.Description("The application name."),
				),
				mcp.WithString("machine_id",
					mcp.Required(),
					mcp.Description("The machine ID to act on."),
				),
				mcp.WithString("action",
					mcp.Required(),
					mcp.Description("One of: start, stop."),
				),
			),
			Handler: dispatchHandler(svc, audit, toolNameScale, "scale", func(req mcp.CallToolRequest) map[string]any {
				return map[string]any{
					"app":        req.GetString("app", ""),
					"machine_id": req.GetString("machine_id", ""),
					"action":     req.GetString("action", ""),
				}
			}),
		},
	}
}

// appParam collects the single required "app" argument.
func appParam(req mcp.CallToolRequest) map[string]any {
	return map[string]any{"app": req.GetString("app", "")}
}

// dispatchHandler adapts one dispatch method to an MCP tool handler. collect
// may be nil for methods without parameters.
func dispatchHandler(
	svc service.Service,
	audit *safety.AuditLogger,
	toolName, method string,
	collect func(req mcp.CallToolRequest) map[string]any,
) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		params := map[string]any{}
		if collect != nil {
			params = collect(req)
		}

		result, err := svc.Dispatch(ctx, method, params)
		if err != nil {
			tools.LogAudit(audit, toolName, params, "error: "+err.Error(), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolName, params, "ok", start)
		return tools.JSONResult(result), nil
	}
}
