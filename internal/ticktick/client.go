package ticktick

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/tickdone/ticktick-mcp/internal/logging"
)

const (
	// DefaultBaseURL is the TickTick Open API origin.
	DefaultBaseURL = "https://api.ticktick.com/open/v1"

	// requestTimeout bounds every API call. The remote service's latency is
	// unpredictable, so this is deliberately generous. There is no retry,
	// backoff or circuit breaking: a single attempt per call.
	requestTimeout = 30 * time.Second
)

// Client provides authenticated access to the TickTick Open API, plus the
// client-side aggregation the API does not offer directly (cross-project
// task listing, tag and priority filters).
//
// The client is stateless beyond the bearer token it was constructed with;
// nothing is cached and every read re-fetches from the remote service.
type Client struct {
	rc     *resty.Client
	now    func() time.Time
	logger logging.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API origin. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.rc.SetBaseURL(baseURL)
	}
}

// WithLogger replaces the client's debug logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new TickTick client using the given bearer token
func NewClient(accessToken string, opts ...Option) (*Client, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("access token cannot be empty")
	}

	c := &Client{
		rc: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetAuthToken(accessToken).
			SetTimeout(requestTimeout),
		now:    time.Now,
		logger: logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request performs a single authenticated API call and decodes the response
// into out (which may be nil for calls without a useful body). A 204 or
// empty body is treated as an empty success.
func (c *Client) request(ctx context.Context, op, method, path string, body, out interface{}) error {
	req := c.rc.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", uuid.NewString())

	if body != nil {
		req = req.
			SetHeader("Content-Type", "application/json").
			SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	status := resp.StatusCode()
	c.logger.Debug("api request finished",
		logging.KeyOperation, op,
		logging.KeyStatus, status,
		logging.KeyDuration, resp.Time(),
	)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AccessDeniedError{Op: op, StatusCode: status}
	case status >= 400:
		return &RemoteError{Op: op, StatusCode: status, Body: strings.TrimSpace(string(resp.Body()))}
	}

	if out == nil || status == http.StatusNoContent || len(resp.Body()) == 0 {
		return nil
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("ticktick %s: failed to decode response: %w", op, err)
	}
	return nil
}

// ListProjects lists all projects visible to the authenticated user
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.request(ctx, "listProjects", http.MethodGet, "/project", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject retrieves a project by ID. The Open API has no direct
// single-project fetch for arbitrary metadata, so this scans the listed set;
// O(n) in project count, acceptable for the expected small n.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == projectID {
			return &projects[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "project", ID: projectID}
}

// GetProjectData retrieves a project together with its task set
func (c *Client) GetProjectData(ctx context.Context, projectID string) (*ProjectData, error) {
	var data ProjectData
	if err := c.request(ctx, "getProjectData", http.MethodGet, "/project/"+projectID+"/data", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListTasks lists tasks, optionally scoped to a single project. With an
// empty projectID it aggregates: list all projects, fetch each project's
// task set in listing order, annotate each task with its project's name and
// concatenate. No cross-project sort is applied.
//
// The aggregate is best-effort: a project whose fetch fails with an access
// error (e.g. permission revoked) is skipped, while transport and remote
// errors propagate.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]Task, error) {
	if projectID != "" {
		data, err := c.GetProjectData(ctx, projectID)
		if err != nil {
			return nil, err
		}
		for i := range data.Tasks {
			data.Tasks[i].ProjectName = data.Project.Name
		}
		return data.Tasks, nil
	}

	projects, err := c.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	var all []Task
	for _, p := range projects {
		data, err := c.GetProjectData(ctx, p.ID)
		if err != nil {
			if isAccessDenied(err) {
				// Skip projects we can't access
				continue
			}
			return nil, err
		}
		for i := range data.Tasks {
			data.Tasks[i].ProjectName = p.Name
		}
		all = append(all, data.Tasks...)
	}
	return all, nil
}

// ListTasksDueToday returns tasks whose due date falls on the caller's local
// calendar date. The comparison is a plain string prefix match on the due
// date's date part; see localDate for the timezone caveat.
func (c *Client) ListTasksDueToday(ctx context.Context) ([]Task, error) {
	all, err := c.ListTasks(ctx, "")
	if err != nil {
		return nil, err
	}

	today := localDate(c.now())
	var due []Task
	for _, t := range all {
		if t.DueDate != "" && strings.HasPrefix(t.DueDate, today) {
			due = append(due, t)
		}
	}
	return due, nil
}

// ListOverdueTasks returns tasks whose due date lies strictly before the
// caller's current local time. Tasks with missing or unparseable due dates
// are excluded, not errored.
func (c *Client) ListOverdueTasks(ctx context.Context) ([]Task, error) {
	all, err := c.ListTasks(ctx, "")
	if err != nil {
		return nil, err
	}

	now := c.now()
	var overdue []Task
	for _, t := range all {
		if t.DueDate == "" {
			continue
		}
		due, err := ParseDueDate(t.DueDate)
		if err != nil {
			continue
		}
		if due.Before(now) {
			overdue = append(overdue, t)
		}
	}
	return overdue, nil
}

// ListTasksByPriority returns tasks with priority >= min. Priorities are the
// non-contiguous TickTick enumeration: 0=None, 1=Low, 3=Medium, 5=High.
func (c *Client) ListTasksByPriority(ctx context.Context, min int) ([]Task, error) {
	all, err := c.ListTasks(ctx, "")
	if err != nil {
		return nil, err
	}

	var matched []Task
	for _, t := range all {
		if t.Priority >= min {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// ListTasksByTag returns tasks carrying the given tag, compared
// case-insensitively.
func (c *Client) ListTasksByTag(ctx context.Context, tag string) ([]Task, error) {
	all, err := c.ListTasks(ctx, "")
	if err != nil {
		return nil, err
	}

	var matched []Task
	for _, t := range all {
		for _, tg := range t.Tags {
			if strings.EqualFold(tg, tag) {
				matched = append(matched, t)
				break
			}
		}
	}
	return matched, nil
}

// ListAllTags returns the union of all tags across all tasks,
// lexicographically sorted with duplicates removed.
func (c *Client) ListAllTags(ctx context.Context) ([]string, error) {
	all, err := c.ListTasks(ctx, "")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, t := range all {
		for _, tg := range t.Tags {
			if _, ok := seen[tg]; !ok {
				seen[tg] = struct{}{}
				tags = append(tags, tg)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// CreateTask creates a new task. Title is the only required field; a plain
// date due date is expanded to midnight UTC before transmission, and
// subtasks become checklist items with sort positions in input order.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("task title cannot be empty")
	}

	payload := map[string]interface{}{
		"title": input.Title,
	}
	if input.ProjectID != "" {
		payload["projectId"] = input.ProjectID
	}
	if input.Content != "" {
		payload["content"] = input.Content
	}
	if input.Priority != 0 {
		payload["priority"] = input.Priority
	}
	if input.DueDate != "" {
		payload["dueDate"] = NormalizeDueDate(input.DueDate)
	}
	if len(input.Subtasks) > 0 {
		items := make([]ChecklistItem, len(input.Subtasks))
		for i, title := range input.Subtasks {
			items[i] = ChecklistItem{Title: title, SortOrder: int64(i)}
		}
		payload["items"] = items
	}

	var task Task
	if err := c.request(ctx, "createTask", http.MethodPost, "/task", payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask updates an existing task. Task and project IDs are always
// sent; of the remaining fields only those provided are included in the
// payload. An empty title is treated as not provided, so a title cannot be
// cleared through this path (a quirk of the original behavior, preserved).
func (c *Client) UpdateTask(ctx context.Context, taskID, projectID string, input TaskUpdate) (*Task, error) {
	if taskID == "" || projectID == "" {
		return nil, fmt.Errorf("task ID and project ID are required")
	}

	payload := map[string]interface{}{
		"id":        taskID,
		"projectId": projectID,
	}
	if input.Title != "" {
		payload["title"] = input.Title
	}
	if input.Content != nil {
		payload["content"] = *input.Content
	}
	if input.Priority != nil {
		payload["priority"] = *input.Priority
	}
	if input.DueDate != "" {
		payload["dueDate"] = NormalizeDueDate(input.DueDate)
	}

	var task Task
	if err := c.request(ctx, "updateTask", http.MethodPost, "/task/"+taskID, payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CompleteTask marks a task as complete
func (c *Client) CompleteTask(ctx context.Context, taskID, projectID string) error {
	return c.request(ctx, "completeTask", http.MethodPost,
		"/project/"+projectID+"/task/"+taskID+"/complete", nil, nil)
}

// DeleteTask deletes a task
func (c *Client) DeleteTask(ctx context.Context, taskID, projectID string) error {
	return c.request(ctx, "deleteTask", http.MethodDelete,
		"/project/"+projectID+"/task/"+taskID, nil, nil)
}

// GetTask retrieves a single task by locating it in its project's task set.
// Fails with NotFoundError if the project has no task with that ID.
func (c *Client) GetTask(ctx context.Context, projectID, taskID string) (*Task, error) {
	data, err := c.GetProjectData(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range data.Tasks {
		if data.Tasks[i].ID == taskID {
			data.Tasks[i].ProjectName = data.Project.Name
			return &data.Tasks[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "task", ID: taskID}
}

// AddSubtask appends a checklist item to a task and resubmits the full
// checklist, preserving the relative order of existing items.
//
// This is a read-modify-write with no concurrency protection: the Open API
// exposes no optimistic-concurrency token, so two concurrent callers
// modifying the same task's checklist will race and one update will be
// lost. Known limitation.
func (c *Client) AddSubtask(ctx context.Context, taskID, projectID, title string) (*Task, error) {
	if title == "" {
		return nil, fmt.Errorf("subtask title cannot be empty")
	}

	task, err := c.GetTask(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}

	var next int64
	for _, item := range task.Items {
		if item.SortOrder >= next {
			next = item.SortOrder + 1
		}
	}
	items := append(append([]ChecklistItem{}, task.Items...), ChecklistItem{
		Title:     title,
		SortOrder: next,
	})

	payload := map[string]interface{}{
		"id":        taskID,
		"projectId": projectID,
		"items":     items,
	}

	var updated Task
	if err := c.request(ctx, "addSubtask", http.MethodPost, "/task/"+taskID, payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CreateProject creates a new project
func (c *Client) CreateProject(ctx context.Context, input ProjectInput) (*Project, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("project name cannot be empty")
	}

	payload := map[string]interface{}{
		"name": input.Name,
	}
	if input.Color != "" {
		payload["color"] = input.Color
	}
	if input.ViewMode != "" {
		payload["viewMode"] = input.ViewMode
	}
	if input.Kind != "" {
		payload["kind"] = input.Kind
	}

	var project Project
	if err := c.request(ctx, "createProject", http.MethodPost, "/project", payload, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject updates a project; only provided fields are sent
func (c *Client) UpdateProject(ctx context.Context, projectID string, input ProjectInput) (*Project, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project ID is required")
	}

	payload := map[string]interface{}{}
	if input.Name != "" {
		payload["name"] = input.Name
	}
	if input.Color != "" {
		payload["color"] = input.Color
	}
	if input.ViewMode != "" {
		payload["viewMode"] = input.ViewMode
	}
	if input.Kind != "" {
		payload["kind"] = input.Kind
	}

	var project Project
	if err := c.request(ctx, "updateProject", http.MethodPost, "/project/"+projectID, payload, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project. The remote service cascade-deletes the
// project's tasks; this is irreversible and there is no local confirmation
// step. Confirming is the calling agent's responsibility.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.request(ctx, "deleteProject", http.MethodDelete, "/project/"+projectID, nil, nil)
}
