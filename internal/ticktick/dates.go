package ticktick

import "time"

// Due date layouts accepted by ParseDueDate. TickTick sends offsets without
// a colon ("+0000"); RFC 3339 forms are accepted as well.
var dueDateLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
}

// dateOnlyLen is the length of a plain "YYYY-MM-DD" due date.
const dateOnlyLen = 10

// NormalizeDueDate expands a plain date to midnight UTC in the wire format
// the TickTick API expects. Full date-times pass through unchanged.
func NormalizeDueDate(due string) string {
	if len(due) == dateOnlyLen {
		return due + "T00:00:00+0000"
	}
	return due
}

// ParseDueDate parses a due date strictly: either a plain "YYYY-MM-DD" (read
// as midnight UTC) or an ISO-8601 date-time with a UTC offset. Anything else
// fails with a ParseError rather than being silently skipped.
func ParseDueDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &ParseError{Value: value}
	}
	if len(value) == dateOnlyLen {
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return time.Time{}, &ParseError{Value: value}
		}
		return t, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Value: value}
}

// localDate returns the caller's local calendar date as "YYYY-MM-DD".
// Due-today filtering compares this against the leading characters of the
// task's due date string. No timezone normalization is applied; that is a
// known limitation of the due-today view, kept deliberately.
func localDate(now time.Time) string {
	return now.Format("2006-01-02")
}
