package testutil

import (
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/google/uuid"
)

// Day returns midnight UTC of the given date.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ID = id
	}
}

func WithProjectType(t domain.ProjectType) ProjectOption {
	return func(p *domain.Project) {
		p.Type = t
	}
}

func WithStartDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = d
	}
}

func WithEndDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.EndDate = &d
	}
}

func WithProjectColor(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Color = c
	}
}

func WithTasks(tasks ...domain.Task) ProjectOption {
	return func(p *domain.Project) {
		p.Tasks = append(p.Tasks, tasks...)
	}
}

func NewTestProject(name string, opts ...ProjectOption) domain.Project {
	p := domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     "#3b82f6",
		Type:      domain.ProjectNone,
		StartDate: Day(2024, time.January, 1),
		Columns:   domain.DefaultColumns(),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithColumn(columnID string) TaskOption {
	return func(t *domain.Task) {
		t.ColumnID = columnID
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithSubtasks(subtasks ...domain.Subtask) TaskOption {
	return func(t *domain.Task) {
		t.Subtasks = append(t.Subtasks, subtasks...)
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		ColumnID:  domain.ColumnTodo,
		Priority:  domain.PriorityMedium,
		ProjectID: projectID,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Template options
type TemplateOption func(*domain.ScheduleTemplate)

func WithTemplateID(id string) TemplateOption {
	return func(t *domain.ScheduleTemplate) {
		t.ID = id
	}
}

func WithTemplateColor(c string) TemplateOption {
	return func(t *domain.ScheduleTemplate) {
		t.Color = c
	}
}

func NewTestTemplate(name string, day domain.Weekday, start, end string, opts ...TemplateOption) domain.ScheduleTemplate {
	t := domain.ScheduleTemplate{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     "#10b981",
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Recurring class options
type ClassOption func(*domain.RecurringClass)

func WithClassID(id string) ClassOption {
	return func(rc *domain.RecurringClass) {
		rc.ID = id
	}
}

func WithClassProject(projectID string) ClassOption {
	return func(rc *domain.RecurringClass) {
		rc.ProjectID = projectID
	}
}

func NewTestClass(title, templateID string, start, end time.Time, opts ...ClassOption) domain.RecurringClass {
	rc := domain.RecurringClass{
		ID:                 uuid.New().String(),
		Title:              title,
		ScheduleTemplateID: templateID,
		StartDate:          start,
		EndDate:            end,
	}
	for _, opt := range opts {
		opt(&rc)
	}
	return rc
}
