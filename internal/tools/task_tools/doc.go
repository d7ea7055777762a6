// Package task_tools implements the MCP tools for TickTick tasks: listing
// and filtering (all, per project, due today, overdue, by priority, by tag),
// detail views, and the mutating operations (create, update, complete,
// delete, add checklist items).
//
// Mutating tools are only registered when the server permits writes.
package task_tools
