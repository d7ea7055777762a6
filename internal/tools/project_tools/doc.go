// Package project_tools implements the MCP tools for TickTick projects:
// listing, detail views, and the mutating operations (create, update,
// delete). Deleting a project cascades to its tasks on the remote side.
package project_tools
