package toolset

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tickdone/ticktick-mcp/internal/instrumentation"
	"github.com/tickdone/ticktick-mcp/internal/server"
	"github.com/tickdone/ticktick-mcp/internal/ticktick"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	client, err := ticktick.NewClient("test-token")
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	sc, err := server.NewServerContext(context.Background(), client, false)
	if err != nil {
		t.Fatalf("NewServerContext() error: %v", err)
	}
	return NewRegistry(sc)
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("content is not text: %T", result.Content[0])
	}
	return text.Text
}

func TestRegister_RejectsDuplicates(t *testing.T) {
	r := newTestRegistry(t)
	tool := mcp.NewTool("get_projects", mcp.WithDescription("test"))
	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}

	if err := r.Register(tool, instrumentation.OperationList, handler); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := r.Register(tool, instrumentation.OperationList, handler); err == nil {
		t.Error("Register() of duplicate expected error, got nil")
	}
}

func TestTools_PreservesRegistrationOrder(t *testing.T) {
	r := newTestRegistry(t)
	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}

	names := []string{"get_projects", "get_tasks", "create_task"}
	for _, name := range names {
		if err := r.Register(mcp.NewTool(name, mcp.WithDescription("test")), instrumentation.OperationList, handler); err != nil {
			t.Fatalf("Register(%q) error: %v", name, err)
		}
	}

	tools := r.Tools()
	if len(tools) != len(names) {
		t.Fatalf("Tools() returned %d tools, want %d", len(tools), len(names))
	}
	for i, want := range names {
		if tools[i].Name != want {
			t.Errorf("Tools()[%d] = %q, want %q", i, tools[i].Name, want)
		}
	}
}

func TestDispatch_UnknownTool(t *testing.T) {
	r := newTestRegistry(t)

	result, err := r.Dispatch(context.Background(), "no_such_tool", mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if got := textContent(t, result); got != "Unknown tool: no_such_tool" {
		t.Errorf("Dispatch() = %q, want %q", got, "Unknown tool: no_such_tool")
	}
}

func TestDispatch_ConvertsHandlerErrorToTextResult(t *testing.T) {
	r := newTestRegistry(t)
	tool := mcp.NewTool("get_projects", mcp.WithDescription("test"))
	if err := r.Register(tool, instrumentation.OperationList, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, errors.New("remote service unavailable")
	}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	result, err := r.Dispatch(context.Background(), "get_projects", mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Dispatch() error: %v, want nil (errors become text results)", err)
	}
	want := "❌ Error: remote service unavailable"
	if got := textContent(t, result); got != want {
		t.Errorf("Dispatch() = %q, want %q", got, want)
	}
}

func TestDispatch_PassesThroughSuccess(t *testing.T) {
	r := newTestRegistry(t)
	tool := mcp.NewTool("get_projects", mcp.WithDescription("test"))
	if err := r.Register(tool, instrumentation.OperationList, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("Found 2 projects"), nil
	}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	result, err := r.Dispatch(context.Background(), "get_projects", mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if got := textContent(t, result); got != "Found 2 projects" {
		t.Errorf("Dispatch() = %q, want %q", got, "Found 2 projects")
	}
}
