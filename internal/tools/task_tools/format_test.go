package task_tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tickdone/ticktick-mcp/internal/ticktick"
)

func TestFormatTaskLine(t *testing.T) {
	tests := []struct {
		name string
		task ticktick.Task
		want string
	}{
		{
			name: "bare task",
			task: ticktick.Task{Title: "Buy milk"},
			want: "⚪ Buy milk",
		},
		{
			name: "high priority with project and due date",
			task: ticktick.Task{
				Title:       "Write report",
				Priority:    ticktick.PriorityHigh,
				ProjectName: "Work",
				DueDate:     "2026-08-27T18:00:00.000+0000",
			},
			want: "🔴 Write report [Work] 📅 2026-08-27",
		},
		{
			name: "medium priority with tags",
			task: ticktick.Task{
				Title:    "Plan trip",
				Priority: ticktick.PriorityMedium,
				Tags:     []string{"travel", "family"},
			},
			want: "🟡 Plan trip 🏷️ travel, family",
		},
		{
			name: "low priority short due date",
			task: ticktick.Task{
				Title:    "Water plants",
				Priority: ticktick.PriorityLow,
				DueDate:  "2026-09-01",
			},
			want: "🔵 Water plants 📅 2026-09-01",
		},
		{
			name: "untitled with out-of-range priority",
			task: ticktick.Task{Priority: 2},
			want: "⚪ Untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTaskLine(tt.task))
		})
	}
}

func TestFormatTaskList(t *testing.T) {
	assert.Equal(t, "No tasks found.", formatTaskList(nil))

	got := formatTaskList([]ticktick.Task{
		{ID: "t1", ProjectID: "p1", Title: "A"},
		{ID: "t2", ProjectID: "p1", Title: "B"},
	})
	assert.True(t, strings.HasPrefix(got, "Found 2 task(s):\n"), "got %q", got)
	assert.Contains(t, got, "  • ⚪ A")
	assert.Contains(t, got, "    ID: t1 | Project ID: p1")
	assert.Contains(t, got, "  • ⚪ B")
}

func TestFormatTaskDetail(t *testing.T) {
	task := &ticktick.Task{
		ID:        "t1",
		ProjectID: "p1",
		Title:     "Release",
		Content:   "Ship the thing.",
		Items: []ticktick.ChecklistItem{
			{Title: "Tag version", Status: 1},
			{Title: "Announce", Status: 0},
		},
	}

	got := formatTaskDetail(task)
	assert.Contains(t, got, "⚪ Release")
	assert.Contains(t, got, "ID: t1 | Project ID: p1")
	assert.Contains(t, got, "Ship the thing.")
	assert.Contains(t, got, "Checklist:")
	assert.Contains(t, got, "  ✅ Tag version")
	assert.Contains(t, got, "  ⬜ Announce")
}

func TestFormatTaskDetail_NoChecklistSection(t *testing.T) {
	got := formatTaskDetail(&ticktick.Task{ID: "t1", ProjectID: "p1", Title: "Plain"})
	assert.NotContains(t, got, "Checklist:")
}
