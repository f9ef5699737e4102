package domain

import (
	"time"
)

// GeneralTasksProjectID is the fixed id of the project that collects tasks
// not assigned to any user-created project.
const GeneralTasksProjectID = "general-tasks"

const (
	ColumnTodo       = "todo"
	ColumnInProgress = "inProgress"
	ColumnDone       = "done"
)

type KanbanColumn struct {
	ID    string
	Title string
}

// IsDefaultColumn reports whether id is one of the reserved system columns.
// Callers must not rename or delete these.
func IsDefaultColumn(id string) bool {
	return id == ColumnTodo || id == ColumnInProgress || id == ColumnDone
}

// DefaultColumns returns a fresh copy of the three system columns.
func DefaultColumns() []KanbanColumn {
	return []KanbanColumn{
		{ID: ColumnTodo, Title: "To Do"},
		{ID: ColumnInProgress, Title: "In Progress"},
		{ID: ColumnDone, Title: "Done"},
	}
}

type Project struct {
	ID             string
	Name           string
	Description    string
	Color          string
	Type           ProjectType
	StartDate      time.Time
	EndDate        *time.Time
	Tasks          []Task
	Columns        []KanbanColumn
	Files          []FileAttachment
	ParentCourseID string
}

// IsCourse reports whether the project is a course. Courses get per-class
// events instead of a single deadline.
func (p *Project) IsCourse() bool {
	return p.Type == ProjectCourse
}

// IsGeneral reports whether p is the general-tasks singleton.
func (p *Project) IsGeneral() bool {
	return p.ID == GeneralTasksProjectID
}

// HasColumn reports whether the project has a column with the given id.
func (p *Project) HasColumn(id string) bool {
	for _, c := range p.Columns {
		if c.ID == id {
			return true
		}
	}
	return false
}

// TaskIndex returns the position of the task with the given id, or -1.
func (p *Project) TaskIndex(taskID string) int {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// CountDone returns the number of completed tasks.
func (p *Project) CountDone() int {
	n := 0
	for _, t := range p.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// NewGeneralTasksProject returns the singleton project created at startup.
func NewGeneralTasksProject(now time.Time) Project {
	return Project{
		ID:        GeneralTasksProjectID,
		Name:      "General Tasks",
		Color:     "#6b7280",
		Type:      ProjectNone,
		StartDate: StartOfDay(now),
		Columns:   DefaultColumns(),
	}
}

// DisplayID returns the best short identifier for display.
// Generated ids are truncated to 8 characters.
func DisplayID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
