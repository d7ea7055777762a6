package task_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickdone/ticktick-mcp/internal/server"
	"github.com/tickdone/ticktick-mcp/internal/ticktick"
	"github.com/tickdone/ticktick-mcp/internal/tools/toolset"
)

var readToolNames = []string{
	"get_tasks", "get_task", "get_today_tasks", "get_overdue_tasks",
	"get_tasks_by_priority", "get_tasks_by_tag", "get_all_tags",
}

var writeToolNames = []string{
	"create_task", "update_task", "complete_task", "delete_task", "add_subtask",
}

func newRegistry(t *testing.T, baseURL string, readOnly bool) *toolset.Registry {
	t.Helper()
	opts := []ticktick.Option{}
	if baseURL != "" {
		opts = append(opts, ticktick.WithBaseURL(baseURL))
	}
	client, err := ticktick.NewClient("test-token", opts...)
	require.NoError(t, err)
	sc, err := server.NewServerContext(context.Background(), client, readOnly)
	require.NoError(t, err)
	r := toolset.NewRegistry(sc)
	require.NoError(t, RegisterTaskTools(r, sc))
	return r
}

func callTool(t *testing.T, r *toolset.Registry, name string, args map[string]interface{}) string {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := r.Dispatch(context.Background(), name, req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func toolNames(r *toolset.Registry) []string {
	var names []string
	for _, tool := range r.Tools() {
		names = append(names, tool.Name)
	}
	return names
}

func TestRegisterTaskTools_ReadOnlyOmitsWriteTools(t *testing.T) {
	r := newRegistry(t, "", true)

	names := toolNames(r)
	for _, want := range readToolNames {
		assert.Contains(t, names, want)
	}
	for _, banned := range writeToolNames {
		assert.NotContains(t, names, banned)
	}
}

func TestRegisterTaskTools_WriteModeHasFullCatalog(t *testing.T) {
	r := newRegistry(t, "", false)

	names := toolNames(r)
	for _, want := range append(append([]string{}, readToolNames...), writeToolNames...) {
		assert.Contains(t, names, want)
	}
}

func TestCreateTask_MissingTitle(t *testing.T) {
	r := newRegistry(t, "", false)

	got := callTool(t, r, "create_task", map[string]interface{}{})
	assert.Equal(t, "❌ Error: title is required", got)
}

func TestCreateTask_RejectsInvalidPriority(t *testing.T) {
	r := newRegistry(t, "", false)

	got := callTool(t, r, "create_task", map[string]interface{}{
		"title":    "X",
		"priority": float64(2),
	})
	assert.Equal(t, "❌ Error: priority must be 0, 1, 3 or 5", got)
}

func TestGetTasksByPriority_RejectsInvalidMinimum(t *testing.T) {
	r := newRegistry(t, "", false)

	got := callTool(t, r, "get_tasks_by_priority", map[string]interface{}{
		"min_priority": float64(0),
	})
	assert.Equal(t, "❌ Error: min_priority must be 1, 3 or 5", got)
}

func TestGetTodayTasks_EmptyAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode([]ticktick.Project{})
	}))
	defer srv.Close()

	r := newRegistry(t, srv.URL, true)

	got := callTool(t, r, "get_today_tasks", nil)
	assert.Equal(t, "✅ No tasks due today!", got)
}

func TestGetTasks_RendersAggregatedList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/project", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode([]ticktick.Project{{ID: "p1", Name: "Work"}})
	})
	mux.HandleFunc("/project/p1/data", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(ticktick.ProjectData{
			Project: ticktick.Project{ID: "p1", Name: "Work"},
			Tasks: []ticktick.Task{
				{ID: "t1", ProjectID: "p1", Title: "Write report", Priority: ticktick.PriorityHigh},
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := newRegistry(t, srv.URL, true)

	got := callTool(t, r, "get_tasks", nil)
	assert.Contains(t, got, "Found 1 task(s):")
	assert.Contains(t, got, "🔴 Write report [Work]")
	assert.Contains(t, got, "ID: t1 | Project ID: p1")
}

func TestGetTasks_RemoteFailureBecomesErrorText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := newRegistry(t, srv.URL, true)

	got := callTool(t, r, "get_tasks", nil)
	assert.Contains(t, got, "❌ Error:")
}
