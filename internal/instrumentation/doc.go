// Package instrumentation provides OpenTelemetry instrumentation for the
// ticktick-mcp server.
//
// # Metrics
//
// Server/HTTP metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// TickTick API metrics:
//   - ticktick_api_operations_total: Counter of API operations by operation and status
//   - ticktick_api_operation_duration_seconds: Histogram of API operation durations
//
// MCP tool metrics:
//   - mcp_tool_invocations_total: Counter of tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of tool execution durations
//
// # Tracing
//
// Spans are created for MCP tool invocations (tool.<name>) and TickTick API
// calls (ticktick.<operation>). Tracing is off by default; enable it with
// TRACING_EXPORTER=otlp or TRACING_EXPORTER=stdout.
//
// # Configuration
//
// All knobs come from environment variables, see DefaultConfig. Metrics
// default to the Prometheus exporter, served on a dedicated port by the
// server package.
package instrumentation
