// Package common provides shared helpers for MCP tool handlers, primarily
// the instrumentation wrapper that adds tracing, metrics and logging around
// each tool invocation.
package common
