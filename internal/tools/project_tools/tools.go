package project_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tickdone/ticktick-mcp/internal/instrumentation"
	"github.com/tickdone/ticktick-mcp/internal/server"
	"github.com/tickdone/ticktick-mcp/internal/ticktick"
	"github.com/tickdone/ticktick-mcp/internal/tools/common"
	"github.com/tickdone/ticktick-mcp/internal/tools/toolset"
)

var validViewModes = map[string]bool{
	ticktick.ViewModeList:     true,
	ticktick.ViewModeKanban:   true,
	ticktick.ViewModeTimeline: true,
}

var validKinds = map[string]bool{
	ticktick.KindTask: true,
	ticktick.KindNote: true,
}

// RegisterProjectTools registers all project-related tools with the
// registry. Write tools are only registered when the server allows
// mutations.
func RegisterProjectTools(r *toolset.Registry, sc *server.ServerContext) error {
	if err := registerReadTools(r, sc); err != nil {
		return fmt.Errorf("failed to register project read tools: %w", err)
	}

	if sc.ReadOnly() {
		return nil
	}

	if err := registerWriteTools(r, sc); err != nil {
		return fmt.Errorf("failed to register project write tools: %w", err)
	}
	return nil
}

func registerReadTools(r *toolset.Registry, sc *server.ServerContext) error {
	listTool := mcp.NewTool("get_projects",
		mcp.WithDescription("Get all projects (lists) from TickTick"),
	)
	if err := r.Register(listTool, instrumentation.OperationList, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := sc.Client().ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(formatProjectList(projects)), nil
	}); err != nil {
		return err
	}

	getTool := mcp.NewTool("get_project",
		mcp.WithDescription("Get details of a single project"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
	)
	if err := r.Register(getTool, instrumentation.OperationGet, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		projectID, err := common.RequiredStringArg(args, "project_id")
		if err != nil {
			return nil, err
		}

		project, err := sc.Client().GetProject(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(formatProjectDetail(project)), nil
	}); err != nil {
		return err
	}

	return nil
}

func registerWriteTools(r *toolset.Registry, sc *server.ServerContext) error {
	createTool := mcp.NewTool("create_project",
		mcp.WithDescription("Create a new project (list) in TickTick"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name (required)"),
		),
		mcp.WithString("color",
			mcp.Description("Hex color string, e.g. \"#F18181\""),
		),
		mcp.WithString("view_mode",
			mcp.Description("View mode: list, kanban or timeline"),
		),
		mcp.WithString("kind",
			mcp.Description("Project kind: TASK or NOTE"),
		),
	)
	if err := r.Register(createTool, instrumentation.OperationCreate, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		name, err := common.RequiredStringArg(args, "name")
		if err != nil {
			return nil, err
		}
		input, err := projectInput(args, name)
		if err != nil {
			return nil, err
		}

		project, err := sc.Client().CreateProject(ctx, input)
		if err != nil {
			return nil, err
		}

		id := project.ID
		if id == "" {
			id = "N/A"
		}
		return mcp.NewToolResultText(fmt.Sprintf("✅ Project created: %s\nID: %s", project.Name, id)), nil
	}); err != nil {
		return err
	}

	updateTool := mcp.NewTool("update_project",
		mcp.WithDescription("Update an existing project. Only the provided fields are changed."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
		mcp.WithString("name",
			mcp.Description("New project name"),
		),
		mcp.WithString("color",
			mcp.Description("New hex color string"),
		),
		mcp.WithString("view_mode",
			mcp.Description("New view mode: list, kanban or timeline"),
		),
		mcp.WithString("kind",
			mcp.Description("New project kind: TASK or NOTE"),
		),
	)
	if err := r.Register(updateTool, instrumentation.OperationUpdate, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		projectID, err := common.RequiredStringArg(args, "project_id")
		if err != nil {
			return nil, err
		}
		input, err := projectInput(args, common.StringArg(args, "name"))
		if err != nil {
			return nil, err
		}

		project, err := sc.Client().UpdateProject(ctx, projectID, input)
		if err != nil {
			return nil, err
		}

		name := project.Name
		if name == "" {
			name = "Untitled"
		}
		return mcp.NewToolResultText("✅ Project updated: " + name), nil
	}); err != nil {
		return err
	}

	deleteTool := mcp.NewTool("delete_project",
		mcp.WithDescription("Delete a project. WARNING: this permanently deletes the project AND all tasks in it."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
	)
	if err := r.Register(deleteTool, instrumentation.OperationDelete, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Arguments(request)

		projectID, err := common.RequiredStringArg(args, "project_id")
		if err != nil {
			return nil, err
		}

		if err := sc.Client().DeleteProject(ctx, projectID); err != nil {
			return nil, err
		}
		return mcp.NewToolResultText("🗑️ Project deleted."), nil
	}); err != nil {
		return err
	}

	return nil
}

// projectInput validates the shared optional project fields.
func projectInput(args map[string]interface{}, name string) (ticktick.ProjectInput, error) {
	input := ticktick.ProjectInput{
		Name:     name,
		Color:    common.StringArg(args, "color"),
		ViewMode: common.StringArg(args, "view_mode"),
		Kind:     common.StringArg(args, "kind"),
	}
	if input.ViewMode != "" && !validViewModes[input.ViewMode] {
		return ticktick.ProjectInput{}, fmt.Errorf("view_mode must be list, kanban or timeline")
	}
	if input.Kind != "" && !validKinds[input.Kind] {
		return ticktick.ProjectInput{}, fmt.Errorf("kind must be TASK or NOTE")
	}
	return input, nil
}
