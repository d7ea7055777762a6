package task_tools

import (
	"fmt"
	"strings"

	"github.com/tickdone/ticktick-mcp/internal/ticktick"
)

// Priority glyphs, keyed by the non-contiguous TickTick priority values.
var priorityGlyphs = map[int]string{
	ticktick.PriorityNone:   "⚪",
	ticktick.PriorityLow:    "🔵",
	ticktick.PriorityMedium: "🟡",
	ticktick.PriorityHigh:   "🔴",
}

// priorityGlyph returns the display glyph for a priority value, falling back
// to the "none" glyph for values outside the enumeration.
func priorityGlyph(priority int) string {
	if glyph, ok := priorityGlyphs[priority]; ok {
		return glyph
	}
	return priorityGlyphs[ticktick.PriorityNone]
}

// formatTaskLine renders a task as a single summary line:
//
//	🔴 Write report [Work] 📅 2026-08-27 🏷️ urgent, office
func formatTaskLine(t ticktick.Task) string {
	title := t.Title
	if title == "" {
		title = "Untitled"
	}

	parts := []string{priorityGlyph(t.Priority) + " " + title}
	if t.ProjectName != "" {
		parts = append(parts, "["+t.ProjectName+"]")
	}
	if t.DueDate != "" {
		due := t.DueDate
		if len(due) > 10 {
			due = due[:10]
		}
		parts = append(parts, "📅 "+due)
	}
	if len(t.Tags) > 0 {
		parts = append(parts, "🏷️ "+strings.Join(t.Tags, ", "))
	}

	return strings.Join(parts, " ")
}

// formatTaskList renders a bulleted task list with an ID line per task.
func formatTaskList(tasks []ticktick.Task) string {
	if len(tasks) == 0 {
		return "No tasks found."
	}

	lines := []string{fmt.Sprintf("Found %d task(s):\n", len(tasks))}
	for _, t := range tasks {
		id := t.ID
		if id == "" {
			id = "N/A"
		}
		projectID := t.ProjectID
		if projectID == "" {
			projectID = "N/A"
		}
		lines = append(lines,
			"  • "+formatTaskLine(t),
			fmt.Sprintf("    ID: %s | Project ID: %s", id, projectID),
		)
	}

	return strings.Join(lines, "\n")
}

// formatTaskDetail renders the full view of a single task, the only place
// checklist items are shown.
func formatTaskDetail(t *ticktick.Task) string {
	lines := []string{
		formatTaskLine(*t),
		fmt.Sprintf("ID: %s | Project ID: %s", t.ID, t.ProjectID),
	}

	if t.Content != "" {
		lines = append(lines, "", t.Content)
	}

	if len(t.Items) > 0 {
		lines = append(lines, "", "Checklist:")
		for _, item := range t.Items {
			glyph := "⬜"
			if item.Status == 1 {
				glyph = "✅"
			}
			lines = append(lines, "  "+glyph+" "+item.Title)
		}
	}

	return strings.Join(lines, "\n")
}
