package store

import (
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
)

// Action is one entry of the store's closed action vocabulary.
type Action interface {
	// Kind names the action in logs, e.g. "ADD_EVENT".
	Kind() string
	isAction()
}

type action struct{}

func (action) isAction() {}

// ── events ───────────────────────────────────────────────────────────────────

type AddEvent struct {
	action
	Event domain.Event
}

type UpdateEvent struct {
	action
	Event domain.Event
}

type DeleteEvent struct {
	action
	ID string
}

func (AddEvent) Kind() string    { return "ADD_EVENT" }
func (UpdateEvent) Kind() string { return "UPDATE_EVENT" }
func (DeleteEvent) Kind() string { return "DELETE_EVENT" }

// ── projects ─────────────────────────────────────────────────────────────────

// NewProject is the payload of AddProject: either a PlainProject or a
// CourseFromTemplateGroup.
type NewProject interface {
	project() domain.Project
}

// PlainProject creates a project with no schedule attached.
type PlainProject struct {
	Project domain.Project
}

// CourseFromTemplateGroup creates a course and binds one recurring class to
// every schedule template named TemplateGroupName.
type CourseFromTemplateGroup struct {
	Project           domain.Project
	TemplateGroupName string
}

func (p PlainProject) project() domain.Project            { return p.Project }
func (c CourseFromTemplateGroup) project() domain.Project { return c.Project }

type AddProject struct {
	action
	New NewProject
}

// ProjectPatch lists the fields UpdateProject merges; nil means unchanged.
type ProjectPatch struct {
	Name           *string
	Description    *string
	Color          *string
	Type           *domain.ProjectType
	StartDate      *time.Time
	EndDate        *time.Time
	ClearEndDate   bool
	Files          []domain.FileAttachment
	ParentCourseID *string
}

type UpdateProject struct {
	action
	ID    string
	Patch ProjectPatch
}

type DeleteProject struct {
	action
	ID string
}

func (AddProject) Kind() string    { return "ADD_PROJECT" }
func (UpdateProject) Kind() string { return "UPDATE_PROJECT" }
func (DeleteProject) Kind() string { return "DELETE_PROJECT" }

// ── tasks ────────────────────────────────────────────────────────────────────

type AddTask struct {
	action
	Task domain.Task
}

// UpdateTask replaces the task with the same id inside Task.ProjectID.
type UpdateTask struct {
	action
	Task domain.Task
}

type DeleteTask struct {
	action
	ProjectID string
	TaskID    string
}

// UpdateTaskStatus moves a task to a column; Completed follows the done column.
type UpdateTaskStatus struct {
	action
	ProjectID string
	TaskID    string
	ColumnID  string
}

func (AddTask) Kind() string          { return "ADD_TASK" }
func (UpdateTask) Kind() string       { return "UPDATE_TASK" }
func (DeleteTask) Kind() string       { return "DELETE_TASK" }
func (UpdateTaskStatus) Kind() string { return "UPDATE_TASK_STATUS" }

// ── subtasks ─────────────────────────────────────────────────────────────────

type AddSubtask struct {
	action
	ProjectID string
	TaskID    string
	Subtask   domain.Subtask
}

type UpdateSubtask struct {
	action
	ProjectID string
	TaskID    string
	Subtask   domain.Subtask
}

type DeleteSubtask struct {
	action
	ProjectID string
	TaskID    string
	SubtaskID string
}

func (AddSubtask) Kind() string    { return "ADD_SUBTASK" }
func (UpdateSubtask) Kind() string { return "UPDATE_SUBTASK" }
func (DeleteSubtask) Kind() string { return "DELETE_SUBTASK" }

// ── schedule templates ───────────────────────────────────────────────────────

type AddScheduleTemplate struct {
	action
	Template domain.ScheduleTemplate
}

type UpdateScheduleTemplate struct {
	action
	Template domain.ScheduleTemplate
}

type DeleteScheduleTemplate struct {
	action
	ID string
}

func (AddScheduleTemplate) Kind() string    { return "ADD_SCHEDULE_TEMPLATE" }
func (UpdateScheduleTemplate) Kind() string { return "UPDATE_SCHEDULE_TEMPLATE" }
func (DeleteScheduleTemplate) Kind() string { return "DELETE_SCHEDULE_TEMPLATE" }

// ── recurring classes ────────────────────────────────────────────────────────

type AddRecurringClass struct {
	action
	Class domain.RecurringClass
}

type UpdateRecurringClass struct {
	action
	Class domain.RecurringClass
}

type DeleteRecurringClass struct {
	action
	ID string
}

func (AddRecurringClass) Kind() string    { return "ADD_RECURRING_CLASS" }
func (UpdateRecurringClass) Kind() string { return "UPDATE_RECURRING_CLASS" }
func (DeleteRecurringClass) Kind() string { return "DELETE_RECURRING_CLASS" }

// ── kanban columns ───────────────────────────────────────────────────────────

type AddColumn struct {
	action
	ProjectID string
	Column    domain.KanbanColumn
}

type UpdateColumn struct {
	action
	ProjectID string
	Column    domain.KanbanColumn
}

// DeleteColumn removes a column. With ReassignTo empty the column's tasks are
// dropped along with it; otherwise they move to ReassignTo.
type DeleteColumn struct {
	action
	ProjectID  string
	ColumnID   string
	ReassignTo string
}

// ReorderColumns moves the column at From to position To (splice, not swap).
type ReorderColumns struct {
	action
	ProjectID string
	From      int
	To        int
}

func (AddColumn) Kind() string      { return "ADD_COLUMN" }
func (UpdateColumn) Kind() string   { return "UPDATE_COLUMN" }
func (DeleteColumn) Kind() string   { return "DELETE_COLUMN" }
func (ReorderColumns) Kind() string { return "REORDER_COLUMNS" }

// ── modals ───────────────────────────────────────────────────────────────────

// ToggleEventModal opens the event modal with an optional event to edit and
// an optional pre-selected date, or closes it.
type ToggleEventModal struct {
	action
	Event *domain.Event
	Date  *time.Time
}

type ToggleProjectModal struct {
	action
	Project *domain.Project
}

type ToggleTaskModal struct {
	action
	Task *domain.Task
}

type ToggleScheduleTemplateModal struct {
	action
	Template *domain.ScheduleTemplate
}

type ToggleRecurringClassModal struct {
	action
	Class *domain.RecurringClass
}

type CloseModals struct{ action }

type ShowConfirmation struct {
	action
	Request ConfirmationRequest
}

// CloseConfirmation clears the pending confirmation. A non-zero ID only
// clears the request with that id.
type CloseConfirmation struct {
	action
	ID uint64
}

func (ToggleEventModal) Kind() string            { return "TOGGLE_EVENT_MODAL" }
func (ToggleProjectModal) Kind() string          { return "TOGGLE_PROJECT_MODAL" }
func (ToggleTaskModal) Kind() string             { return "TOGGLE_TASK_MODAL" }
func (ToggleScheduleTemplateModal) Kind() string { return "TOGGLE_SCHEDULE_TEMPLATE_MODAL" }
func (ToggleRecurringClassModal) Kind() string   { return "TOGGLE_RECURRING_CLASS_MODAL" }
func (CloseModals) Kind() string                 { return "CLOSE_MODALS" }
func (ShowConfirmation) Kind() string            { return "SHOW_CONFIRMATION_MODAL" }
func (CloseConfirmation) Kind() string           { return "CLOSE_CONFIRMATION_MODAL" }
