package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestAttributeHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("call finished",
		Operation("listTasks"),
		Tool("get_tasks"),
		Project("p1"),
		Status(StatusSuccess),
	)

	out := buf.String()
	for _, want := range []string{
		"operation=listTasks",
		"tool=get_tasks",
		"project_id=p1",
		"status=success",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestErr_NilProducesNoAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("ok", Err(nil))
	if strings.Contains(buf.String(), "error=") {
		t.Errorf("Err(nil) produced an error attribute: %q", buf.String())
	}
}

func TestWithTool(t *testing.T) {
	var buf bytes.Buffer
	logger := WithTool(slog.New(slog.NewTextHandler(&buf, nil)), "create_task")

	logger.Info("invoked")
	if !strings.Contains(buf.String(), "tool=create_task") {
		t.Errorf("log output %q missing tool attribute", buf.String())
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "empty", token: "", want: "<empty>"},
		{name: "masked", token: "secret-token", want: "[token:12 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeToken(tt.token); got != tt.want {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, got, tt.want)
			}
			if tt.token != "" && strings.Contains(SanitizeToken(tt.token), tt.token) {
				t.Errorf("SanitizeToken(%q) leaked token content", tt.token)
			}
		})
	}
}
