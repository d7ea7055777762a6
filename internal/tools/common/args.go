package common

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Arguments extracts the argument map from a tool request. A missing or
// differently typed payload yields an empty map rather than a panic.
func Arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

// StringArg returns the named string argument, or "" when absent.
func StringArg(args map[string]interface{}, key string) string {
	value, _ := args[key].(string)
	return value
}

// RequiredStringArg returns the named string argument or an error when it
// is missing or empty.
func RequiredStringArg(args map[string]interface{}, key string) (string, error) {
	value, _ := args[key].(string)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

// IntArg returns the named integer argument. JSON numbers arrive as
// float64, so both representations are accepted. Returns (fallback, true)
// when the argument is absent; (0, false) when it is present but not a
// number.
func IntArg(args map[string]interface{}, key string, fallback int) (int, bool) {
	raw, present := args[key]
	if !present {
		return fallback, true
	}
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// StringSliceArg returns the named array-of-strings argument. Elements that
// are not strings are rejected.
func StringSliceArg(args map[string]interface{}, key string) ([]string, error) {
	raw, present := args[key]
	if !present {
		return nil, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be an array of strings", key)
		}
		out = append(out, s)
	}
	return out, nil
}
