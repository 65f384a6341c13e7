package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tberndt/sheetfeed/internal/instrumentation"
	"github.com/tberndt/sheetfeed/internal/server"
)

// ToolHandlerFunc is the mcp-go tool handler signature.
type ToolHandlerFunc = mcpserver.ToolHandlerFunc

// InstrumentedToolHandler wraps a tool handler with invocation metrics.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandlerFunc) ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		result, err := handler(ctx, request)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}
		sc.Metrics().RecordToolInvocation(ctx, toolName, status, time.Since(start))

		return result, err
	}
}

// InstrumentedToolHandlerWithService additionally records the Google service
// and operation behind the tool, so the same call shows up in both the MCP
// tool metrics and the Google API operation metrics.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithService("my_tool", "drive", "list", sc, handler))
func InstrumentedToolHandlerWithService(toolName, serviceName, operation string, sc *server.ServerContext, handler ToolHandlerFunc) ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}

		metrics := sc.Metrics()
		metrics.RecordToolInvocation(ctx, toolName, status, duration)
		metrics.RecordGoogleAPIOperation(ctx, serviceName, operation, status, duration)

		return result, err
	}
}
