package cmd

import (
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name     string
		toolName string
		expected string
	}{
		{
			name:     "task list tool",
			toolName: "get_tasks",
			expected: "Task Tools",
		},
		{
			name:     "task write tool",
			toolName: "create_task",
			expected: "Task Tools",
		},
		{
			name:     "tag tool",
			toolName: "get_all_tags",
			expected: "Task Tools",
		},
		{
			name:     "subtask tool",
			toolName: "add_subtask",
			expected: "Task Tools",
		},
		{
			name:     "project tool",
			toolName: "get_projects",
			expected: "Project Tools",
		},
		{
			name:     "project write tool",
			toolName: "delete_project",
			expected: "Project Tools",
		},
		{
			name:     "unknown tool",
			toolName: "something_else",
			expected: "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getCategoryFromToolName(tt.toolName)
			if got != tt.expected {
				t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.toolName, got, tt.expected)
			}
		})
	}
}

func TestGenerateToolMarkdown(t *testing.T) {
	tool := mcp.NewTool("get_task",
		mcp.WithDescription("Get details of a single task"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
	)

	md := generateToolMarkdown(tool)

	if !strings.Contains(md, "### get_task") {
		t.Errorf("expected tool heading, got:\n%s", md)
	}
	if !strings.Contains(md, "Get details of a single task") {
		t.Errorf("expected description, got:\n%s", md)
	}
	if !strings.Contains(md, "- `project_id` (required): Project ID") {
		t.Errorf("expected required project_id argument, got:\n%s", md)
	}
	if !strings.Contains(md, "- `task_id` (required): Task ID") {
		t.Errorf("expected required task_id argument, got:\n%s", md)
	}
}

func TestGenerateToolsMarkdown_GroupsByCategory(t *testing.T) {
	tools := []mcp.Tool{
		mcp.NewTool("get_tasks", mcp.WithDescription("List tasks")),
		mcp.NewTool("get_projects", mcp.WithDescription("List projects")),
	}

	md := generateToolsMarkdown(tools)

	if !strings.Contains(md, "# MCP Tools Reference") {
		t.Errorf("expected document header, got:\n%s", md)
	}
	if !strings.Contains(md, "## Task Tools") {
		t.Errorf("expected Task Tools section, got:\n%s", md)
	}
	if !strings.Contains(md, "## Project Tools") {
		t.Errorf("expected Project Tools section, got:\n%s", md)
	}
	if !strings.Contains(md, "- [Project Tools](#project-tools)") {
		t.Errorf("expected table of contents entry, got:\n%s", md)
	}

	// Projects sort before Tasks in the body.
	if strings.Index(md, "## Project Tools") > strings.Index(md, "## Task Tools") {
		t.Errorf("expected categories sorted alphabetically, got:\n%s", md)
	}
}
