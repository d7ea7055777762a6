package project_tools

import (
	"fmt"
	"strings"

	"github.com/tickdone/ticktick-mcp/internal/ticktick"
)

// formatProjectList renders a bulleted project list with an ID line per
// project.
func formatProjectList(projects []ticktick.Project) string {
	if len(projects) == 0 {
		return "No projects found."
	}

	lines := []string{fmt.Sprintf("Found %d project(s):\n", len(projects))}
	for _, p := range projects {
		name := p.Name
		if name == "" {
			name = "Untitled"
		}
		id := p.ID
		if id == "" {
			id = "N/A"
		}
		lines = append(lines, "  • "+name, "    ID: "+id)
	}

	return strings.Join(lines, "\n")
}

// formatProjectDetail renders the full view of a single project.
func formatProjectDetail(p *ticktick.Project) string {
	name := p.Name
	if name == "" {
		name = "Untitled"
	}

	lines := []string{
		"📋 " + name,
		"ID: " + p.ID,
	}
	if p.Color != "" {
		lines = append(lines, "Color: "+p.Color)
	}
	if p.ViewMode != "" {
		lines = append(lines, "View mode: "+p.ViewMode)
	}
	if p.Kind != "" {
		lines = append(lines, "Kind: "+p.Kind)
	}
	if p.Closed {
		lines = append(lines, "Status: closed")
	}

	return strings.Join(lines, "\n")
}
