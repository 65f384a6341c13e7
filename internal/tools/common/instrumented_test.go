package common

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tberndt/sheetfeed/internal/server"
)

func newHandlerResult(text string) *mcp.CallToolResult {
	return mcp.NewToolResultText(text)
}

func TestInstrumentedToolHandlerPassesThrough(t *testing.T) {
	sc := server.NewServerContext(context.Background(), nil, nil, false)

	called := false
	handler := InstrumentedToolHandler("test_tool", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return newHandlerResult("done"), nil
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Error("Expected wrapped handler to be called")
	}
	if result.IsError {
		t.Error("Expected a success result")
	}
}

func TestInstrumentedToolHandlerPropagatesError(t *testing.T) {
	sc := server.NewServerContext(context.Background(), nil, nil, false)

	wantErr := errors.New("boom")
	handler := InstrumentedToolHandlerWithService("test_tool", "drive", "list", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, wantErr
	})

	_, err := handler(context.Background(), mcp.CallToolRequest{})
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected wrapped handler error, got %v", err)
	}
}
