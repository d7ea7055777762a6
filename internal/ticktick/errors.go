package ticktick

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that a project or task is absent from the set the
// TickTick API returned. It is produced by client-side scans (GetProject,
// GetTask), not by the remote service itself.
type NotFoundError struct {
	// Kind is the entity type that was looked up ("project" or "task")
	Kind string

	// ID is the identifier that could not be resolved
	ID string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// AccessDeniedError indicates an HTTP 401 or 403 response from the TickTick
// API. Aggregation operations recover from this per project by skipping the
// inaccessible project; everywhere else it propagates.
type AccessDeniedError struct {
	// Op is the operation that failed (e.g., "listProjects", "getProjectData")
	Op string

	// StatusCode is the HTTP status the API returned (401 or 403)
	StatusCode int
}

// Error implements the error interface
func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("ticktick %s: access denied (HTTP %d), check that TICKTICK_ACCESS_TOKEN is valid", e.Op, e.StatusCode)
}

// TransportError indicates a network-level failure (connection refused,
// timeout, DNS). It is never recovered from; a single attempt per call.
type TransportError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying transport error
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("ticktick %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError indicates a non-2xx response other than 401/403. The status
// and body text are carried verbatim so the caller can surface them.
type RemoteError struct {
	// Op is the operation that failed
	Op string

	// StatusCode is the HTTP status the API returned
	StatusCode int

	// Body is the response body text, possibly empty
	Body string
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("ticktick %s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("ticktick %s: HTTP %d", e.Op, e.StatusCode)
}

// ParseError indicates a due date that is neither a plain date nor an
// ISO-8601 date-time with offset.
type ParseError struct {
	// Value is the input that could not be parsed
	Value string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse due date %q: expected YYYY-MM-DD or an ISO-8601 date-time with offset", e.Value)
}

// isAccessDenied reports whether err is (or wraps) an AccessDeniedError.
func isAccessDenied(err error) bool {
	var denied *AccessDeniedError
	return errors.As(err, &denied)
}
