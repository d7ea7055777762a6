// Package logging provides structured logging utilities built on the
// standard library's slog package.
//
// It centralizes attribute naming (operation, tool, project_id, task_id,
// status, error) so log lines stay queryable, and keeps all output on
// stderr because the stdio transport owns stdout.
//
// Tokens are never logged directly; use SanitizeToken for any log line that
// needs to acknowledge a credential's presence.
package logging
