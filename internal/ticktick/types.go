package ticktick

// Task priority levels as defined by the TickTick API. The enumeration is
// non-contiguous and must be preserved exactly as-is on the wire.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 3
	PriorityHigh   = 5
)

// Project view modes
const (
	ViewModeList     = "list"
	ViewModeKanban   = "kanban"
	ViewModeTimeline = "timeline"
)

// Project kinds
const (
	KindTask = "TASK"
	KindNote = "NOTE"
)

// Project represents a TickTick project (list)
type Project struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`    // Hex color string, e.g. "#F18181"
	ViewMode string `json:"viewMode,omitempty"` // "list", "kanban" or "timeline"
	Kind     string `json:"kind,omitempty"`     // "TASK" or "NOTE"
	Closed   bool   `json:"closed,omitempty"`
}

// ChecklistItem is a sub-task nested under a parent task
type ChecklistItem struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Status    int    `json:"status"` // 0 = open, 1 = completed
	SortOrder int64  `json:"sortOrder"`
}

// Task represents a TickTick task
type Task struct {
	ID        string          `json:"id,omitempty"`
	ProjectID string          `json:"projectId,omitempty"`
	Title     string          `json:"title"`
	Content   string          `json:"content,omitempty"`
	Priority  int             `json:"priority,omitempty"` // 0, 1, 3 or 5
	Status    int             `json:"status,omitempty"`   // 0 = open, 2 = completed
	DueDate   string          `json:"dueDate,omitempty"`  // ISO-8601, date or date-time
	Tags      []string        `json:"tags,omitempty"`
	Items     []ChecklistItem `json:"items,omitempty"`

	// ProjectName is filled in client-side when tasks are aggregated across
	// projects. It is not part of the remote record and is never sent back.
	ProjectName string `json:"-"`
}

// ProjectData is the payload of the project-with-tasks endpoint
type ProjectData struct {
	Project Project `json:"project"`
	Tasks   []Task  `json:"tasks"`
}

// TaskInput represents the input for creating a task. Title is the only
// required field.
type TaskInput struct {
	Title     string
	ProjectID string // Empty means the task goes to the Inbox
	Content   string
	Priority  int // 0, 1, 3 or 5
	DueDate   string
	Subtasks  []string // Becomes the checklist, sort positions in input order
}

// TaskUpdate represents the input for updating a task. Only non-zero fields
// are sent. Content and Priority use pointers so an explicit empty string or
// zero can be transmitted. An empty Title is treated as "not provided", so
// a title cannot be cleared through this path.
type TaskUpdate struct {
	Title    string
	Content  *string
	Priority *int
	DueDate  string
}

// ProjectInput represents the input for creating or updating a project
type ProjectInput struct {
	Name     string
	Color    string
	ViewMode string // "list", "kanban" or "timeline"
	Kind     string // "TASK" or "NOTE"
}
