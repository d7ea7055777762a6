package project_tools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tickdone/ticktick-mcp/internal/ticktick"
)

func TestFormatProjectList(t *testing.T) {
	tests := []struct {
		name     string
		projects []ticktick.Project
		want     string
	}{
		{
			name:     "empty",
			projects: nil,
			want:     "No projects found.",
		},
		{
			name: "two projects",
			projects: []ticktick.Project{
				{ID: "p1", Name: "Work"},
				{ID: "p2", Name: "Home"},
			},
			want: "Found 2 project(s):\n\n  • Work\n    ID: p1\n  • Home\n    ID: p2",
		},
		{
			name: "missing fields fall back",
			projects: []ticktick.Project{
				{},
			},
			want: "Found 1 project(s):\n\n  • Untitled\n    ID: N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatProjectList(tt.projects))
		})
	}
}

func TestFormatProjectDetail(t *testing.T) {
	tests := []struct {
		name    string
		project ticktick.Project
		want    string
	}{
		{
			name:    "minimal",
			project: ticktick.Project{ID: "p1", Name: "Work"},
			want:    "📋 Work\nID: p1",
		},
		{
			name: "all fields",
			project: ticktick.Project{
				ID:       "p2",
				Name:     "Home",
				Color:    "#F18181",
				ViewMode: "kanban",
				Kind:     "TASK",
				Closed:   true,
			},
			want: "📋 Home\nID: p2\nColor: #F18181\nView mode: kanban\nKind: TASK\nStatus: closed",
		},
		{
			name:    "untitled",
			project: ticktick.Project{ID: "p3"},
			want:    "📋 Untitled\nID: p3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatProjectDetail(&tt.project))
		})
	}
}
