package task_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tickdone/ticktick-mcp/internal/instrumentation"
	"github.com/tickdone/ticktick-mcp/internal/server"
	"github.com/tickdone/ticktick-mcp/internal/ticktick"
	"github.com/tickdone/ticktick-mcp/internal/tools/common"
	"github.com/tickdone/ticktick-mcp/internal/tools/toolset"
)

// validPriorities is the TickTick priority enumeration.
var validPriorities = map[int]bool{
	ticktick.PriorityNone:   true,
	ticktick.PriorityLow:    true,
	ticktick.PriorityMedium: true,
	ticktick.PriorityHigh:   true,
}

// RegisterTaskTools registers all task-related tools with the registry.
// Write tools are only registered when the server allows mutations.
func RegisterTaskTools(r *toolset.Registry, sc *server.ServerContext) error {
	if err := registerReadTools(r, sc); err != nil {
		return fmt.Errorf("failed to register task read tools: %w", err)
	}

	if sc.ReadOnly() {
		return nil
	}

	if err := registerWriteTools(r, sc); err != nil {
		return fmt.Errorf("failed to register task write tools: %w", err)
	}
	return nil
}

func registerReadTools(r *toolset.Registry, sc *server.ServerContext) error {
	getTasksTool := mcp.NewTool("get_tasks",
		mcp.WithDescription("Get tasks from TickTick. Can filter by project or get all tasks."),
		mcp.WithString("project_id",
			mcp.Description("Project ID to filter tasks. If not provided, returns tasks from all projects."),
		),
	)
	if err := r.Register(getTasksTool, instrumentation.OperationList, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		tasks, err := sc.Client().ListTasks(ctx, common.StringArg(args, "project_id"))
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(formatTaskList(tasks)), nil
	}); err != nil {
		return err
	}

	getTaskTool := mcp.NewTool("get_task",
		mcp.WithDescription("Get the full details of a single task, including its checklist"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID where the task belongs"),
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
	)
	if err := r.Register(getTaskTool, instrumentation.OperationGet, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		projectID, err := common.RequiredStringArg(args, "project_id")
		if err != nil {
			return nil, err
		}
		taskID, err := common.RequiredStringArg(args, "task_id")
		if err != nil {
			return nil, err
		}

		task, err := sc.Client().GetTask(ctx, projectID, taskID)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(formatTaskDetail(task)), nil
	}); err != nil {
		return err
	}

	todayTool := mcp.NewTool("get_today_tasks",
		mcp.WithDescription("Get all tasks due today"),
	)
	if err := r.Register(todayTool, instrumentation.OperationList, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, err := sc.Client().ListTasksDueToday(ctx)
		if err != nil {
			return nil, err
		}
		if len(tasks) == 0 {
			return mcp.NewToolResultText("✅ No tasks due today!"), nil
		}
		return mcp.NewToolResultText("📅 Tasks due TODAY:\n\n" + formatTaskList(tasks)), nil
	}); err != nil {
		return err
	}

	overdueTool := mcp.NewTool("get_overdue_tasks",
		mcp.WithDescription("Get all tasks whose due date has passed"),
	)
	if err := r.Register(overdueTool, instrumentation.OperationList, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, err := sc.Client().ListOverdueTasks(ctx)
		if err != nil {
			return nil, err
		}
		if len(tasks) == 0 {
			return mcp.NewToolResultText("✅ No overdue tasks!"), nil
		}
		return mcp.NewToolResultText("⏰ Overdue tasks:\n\n" + formatTaskList(tasks)), nil
	}); err != nil {
		return err
	}

	priorityTool := mcp.NewTool("get_tasks_by_priority",
		mcp.WithDescription("Get tasks with at least the given priority (🔴 high, 🟡 medium, 🔵 low)"),
		mcp.WithNumber("min_priority",
			mcp.Description("Minimum priority level: 1=Low, 3=Medium, 5=High. Default is 3 (Medium+High)."),
		),
	)
	if err := r.Register(priorityTool, instrumentation.OperationList, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		min, ok := common.IntArg(args, "min_priority", ticktick.PriorityMedium)
		if !ok || (min != ticktick.PriorityLow && min != ticktick.PriorityMedium && min != ticktick.PriorityHigh) {
			return nil, fmt.Errorf("min_priority must be 1, 3 or 5")
		}

		tasks, err := sc.Client().ListTasksByPriority(ctx, min)
		if err != nil {
			return nil, err
		}
		if len(tasks) == 0 {
			return mcp.NewToolResultText(formatTaskList(tasks)), nil
		}

		label := map[int]string{
			ticktick.PriorityLow:    "Low+",
			ticktick.PriorityMedium: "Medium+",
			ticktick.PriorityHigh:   "High",
		}[min]
		return mcp.NewToolResultText(fmt.Sprintf("🎯 %s priority tasks:\n\n%s", label, formatTaskList(tasks))), nil
	}); err != nil {
		return err
	}

	tagTool := mcp.NewTool("get_tasks_by_tag",
		mcp.WithDescription("Get tasks carrying a given tag (case-insensitive match)"),
		mcp.WithString("tag",
			mcp.Required(),
			mcp.Description("Tag to filter by"),
		),
	)
	if err := r.Register(tagTool, instrumentation.OperationList, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		tag, err := common.RequiredStringArg(args, "tag")
		if err != nil {
			return nil, err
		}

		tasks, err := sc.Client().ListTasksByTag(ctx, tag)
		if err != nil {
			return nil, err
		}
		if len(tasks) == 0 {
			return mcp.NewToolResultText(formatTaskList(tasks)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("🏷️ Tasks tagged %q:\n\n%s", tag, formatTaskList(tasks))), nil
	}); err != nil {
		return err
	}

	allTagsTool := mcp.NewTool("get_all_tags",
		mcp.WithDescription("Get all tags in use across all tasks, sorted alphabetically"),
	)
	if err := r.Register(allTagsTool, instrumentation.OperationList, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := sc.Client().ListAllTags(ctx)
		if err != nil {
			return nil, err
		}
		if len(tags) == 0 {
			return mcp.NewToolResultText("No tags found."), nil
		}

		lines := []string{fmt.Sprintf("Found %d tag(s):\n", len(tags))}
		for _, tag := range tags {
			lines = append(lines, "  • "+tag)
		}
		return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
	}); err != nil {
		return err
	}

	return nil
}

func registerWriteTools(r *toolset.Registry, sc *server.ServerContext) error {
	createTool := mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task in TickTick"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title (required)"),
		),
		mcp.WithString("project_id",
			mcp.Description("Project ID. If not provided, task goes to Inbox."),
		),
		mcp.WithString("content",
			mcp.Description("Task description/notes"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority: 0=None, 1=Low, 3=Medium, 5=High"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date in YYYY-MM-DD format, or a full ISO timestamp"),
		),
		mcp.WithArray("subtasks",
			mcp.Description("Checklist item titles, in order"),
		),
	)
	if err := r.Register(createTool, instrumentation.OperationCreate, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		title, err := common.RequiredStringArg(args, "title")
		if err != nil {
			return nil, err
		}
		priority, ok := common.IntArg(args, "priority", ticktick.PriorityNone)
		if !ok || !validPriorities[priority] {
			return nil, fmt.Errorf("priority must be 0, 1, 3 or 5")
		}
		subtasks, err := common.StringSliceArg(args, "subtasks")
		if err != nil {
			return nil, err
		}

		task, err := sc.Client().CreateTask(ctx, ticktick.TaskInput{
			Title:     title,
			ProjectID: common.StringArg(args, "project_id"),
			Content:   common.StringArg(args, "content"),
			Priority:  priority,
			DueDate:   common.StringArg(args, "due_date"),
			Subtasks:  subtasks,
		})
		if err != nil {
			return nil, err
		}

		id := task.ID
		if id == "" {
			id = "N/A"
		}
		return mcp.NewToolResultText(fmt.Sprintf("✅ Task created: %s\nID: %s", task.Title, id)), nil
	}); err != nil {
		return err
	}

	updateTool := mcp.NewTool("update_task",
		mcp.WithDescription("Update an existing task. Only the provided fields are changed; an empty title is ignored."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID where the task belongs"),
		),
		mcp.WithString("title",
			mcp.Description("New task title"),
		),
		mcp.WithString("content",
			mcp.Description("New task description"),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority: 0=None, 1=Low, 3=Medium, 5=High"),
		),
		mcp.WithString("due_date",
			mcp.Description("New due date in YYYY-MM-DD format, or a full ISO timestamp"),
		),
	)
	if err := r.Register(updateTool, instrumentation.OperationUpdate, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		taskID, err := common.RequiredStringArg(args, "task_id")
		if err != nil {
			return nil, err
		}
		projectID, err := common.RequiredStringArg(args, "project_id")
		if err != nil {
			return nil, err
		}

		update := ticktick.TaskUpdate{
			Title:   common.StringArg(args, "title"),
			DueDate: common.StringArg(args, "due_date"),
		}
		if raw, present := args["content"]; present {
			content, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("content must be a string")
			}
			update.Content = &content
		}
		if _, present := args["priority"]; present {
			priority, ok := common.IntArg(args, "priority", 0)
			if !ok || !validPriorities[priority] {
				return nil, fmt.Errorf("priority must be 0, 1, 3 or 5")
			}
			update.Priority = &priority
		}

		task, err := sc.Client().UpdateTask(ctx, taskID, projectID, update)
		if err != nil {
			return nil, err
		}

		title := task.Title
		if title == "" {
			title = "Untitled"
		}
		return mcp.NewToolResultText("✅ Task updated: " + title), nil
	}); err != nil {
		return err
	}

	completeTool := mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task as complete"),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID where the task belongs"),
		),
	)
	if err := r.Register(completeTool, instrumentation.OperationComplete, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		taskID, err := common.RequiredStringArg(args, "task_id")
		if err != nil {
			return nil, err
		}
		projectID, err := common.RequiredStringArg(args, "project_id")
		if err != nil {
			return nil, err
		}

		if err := sc.Client().CompleteTask(ctx, taskID, projectID); err != nil {
			return nil, err
		}
		return mcp.NewToolResultText("✅ Task marked as complete!"), nil
	}); err != nil {
		return err
	}

	deleteTool := mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task"),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID where the task belongs"),
		),
	)
	if err := r.Register(deleteTool, instrumentation.OperationDelete, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		taskID, err := common.RequiredStringArg(args, "task_id")
		if err != nil {
			return nil, err
		}
		projectID, err := common.RequiredStringArg(args, "project_id")
		if err != nil {
			return nil, err
		}

		if err := sc.Client().DeleteTask(ctx, taskID, projectID); err != nil {
			return nil, err
		}
		return mcp.NewToolResultText("🗑️ Task deleted."), nil
	}); err != nil {
		return err
	}

	subtaskTool := mcp.NewTool("add_subtask",
		mcp.WithDescription("Add a checklist item to an existing task. Note: concurrent checklist edits to the same task can overwrite each other."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID where the task belongs"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Checklist item title"),
		),
	)
	if err := r.Register(subtaskTool, instrumentation.OperationUpdate, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		taskID, err := common.RequiredStringArg(args, "task_id")
		if err != nil {
			return nil, err
		}
		projectID, err := common.RequiredStringArg(args, "project_id")
		if err != nil {
			return nil, err
		}
		title, err := common.RequiredStringArg(args, "title")
		if err != nil {
			return nil, err
		}

		task, err := sc.Client().AddSubtask(ctx, taskID, projectID, title)
		if err != nil {
			return nil, err
		}

		parent := task.Title
		if parent == "" {
			parent = "Untitled"
		}
		return mcp.NewToolResultText(fmt.Sprintf("✅ Subtask %q added to: %s", title, parent)), nil
	}); err != nil {
		return err
	}

	return nil
}
