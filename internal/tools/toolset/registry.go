package toolset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tickdone/ticktick-mcp/internal/logging"
	"github.com/tickdone/ticktick-mcp/internal/server"
	"github.com/tickdone/ticktick-mcp/internal/tools/common"
)

// entry pairs a tool definition with its handler and the API operation type
// it maps to (for metrics).
type entry struct {
	tool      mcp.Tool
	operation string
	handler   common.ToolHandlerFunc
}

// Registry collects tool definitions before they are attached to an MCP
// server. Keeping the catalog in one place allows dispatch by name (for
// tests and doc generation) and a stable registration order.
//
// Registration happens once during startup; the registry is read-only
// afterwards and safe for concurrent dispatch.
type Registry struct {
	sc      *server.ServerContext
	names   []string
	entries map[string]entry
}

// NewRegistry creates an empty registry bound to the given server context
func NewRegistry(sc *server.ServerContext) *Registry {
	return &Registry{
		sc:      sc,
		entries: make(map[string]entry),
	}
}

// Register adds a tool to the registry. Registering the same name twice is
// a programming error and fails loudly.
func (r *Registry) Register(tool mcp.Tool, operation string, handler common.ToolHandlerFunc) error {
	if _, exists := r.entries[tool.Name]; exists {
		return fmt.Errorf("tool %q is already registered", tool.Name)
	}
	r.names = append(r.names, tool.Name)
	r.entries[tool.Name] = entry{tool: tool, operation: operation, handler: handler}
	return nil
}

// Tools returns all registered tool definitions in registration order
func (r *Registry) Tools() []mcp.Tool {
	tools := make([]mcp.Tool, 0, len(r.names))
	for _, name := range r.names {
		tools = append(tools, r.entries[name].tool)
	}
	return tools
}

// Dispatch invokes the named tool's wrapped handler. An unknown name is
// answered with a plain text result, not a protocol error, so the calling
// agent can read and recover from it.
func (r *Registry) Dispatch(ctx context.Context, name string, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, ok := r.entries[name]
	if !ok {
		return mcp.NewToolResultText("Unknown tool: " + name), nil
	}
	return r.wrap(name, e)(ctx, request)
}

// Attach registers every tool with the MCP server
func (r *Registry) Attach(s *mcpserver.MCPServer) {
	for _, name := range r.names {
		e := r.entries[name]
		s.AddTool(e.tool, mcpserver.ToolHandlerFunc(r.wrap(name, e)))
	}
}

// wrap layers error conversion over the instrumented handler. Handler
// errors become readable text results; the protocol call itself always
// succeeds so the agent sees the failure and can adjust.
func (r *Registry) wrap(name string, e entry) common.ToolHandlerFunc {
	instrumented := common.InstrumentedToolHandlerWithOperation(name, e.operation, r.sc, e.handler)

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := instrumented(ctx, request)
		if err != nil {
			slog.Error("tool failed",
				logging.Tool(name),
				logging.Err(err),
			)
			return mcp.NewToolResultText("❌ Error: " + err.Error()), nil
		}
		return result, nil
	}
}
