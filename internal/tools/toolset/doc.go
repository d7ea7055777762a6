// Package toolset maintains the catalog of MCP tools exposed by the
// server. Tool packages register their definitions here; the registry wraps
// each handler with instrumentation and error conversion before attaching
// it to the MCP server.
package toolset
