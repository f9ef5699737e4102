package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatProjectList(t *testing.T) {
	now := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	projects := []domain.Project{
		domain.NewGeneralTasksProject(now),
		{
			ID:        "12345678-aaaa-bbbb-cccc-1234567890ab",
			Name:      "Algebra",
			Type:      domain.ProjectCourse,
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   &end,
			Tasks:     []domain.Task{{ID: "t1", Completed: true}, {ID: "t2"}},
		},
	}

	out := stripANSI(FormatProjectList(projects, now))

	assert.Contains(t, out, "PROJECTS")
	assert.Contains(t, out, "General Tasks")
	assert.Contains(t, out, "12345678")
	assert.NotContains(t, out, "aaaa-bbbb")
	assert.Contains(t, out, "Course")
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "In 12d")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "no tasks")
}

func TestFormatProjectInspect(t *testing.T) {
	now := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	p := domain.Project{
		ID:        "p1",
		Name:      "Algebra",
		Type:      domain.ProjectCourse,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Columns:   domain.DefaultColumns(),
		Tasks: []domain.Task{
			{ID: "t1", Title: "Write quiz", ColumnID: domain.ColumnInProgress, Subtasks: []domain.Subtask{
				{ID: "s1", Title: "Draft questions", Completed: true},
				{ID: "s2", Title: "Answer key"},
			}},
		},
	}
	data := ProjectInspectData{
		Project: p,
		Classes: []domain.RecurringClass{{ID: "c1", Title: "Algebra Mon", GroupName: "Algebra 1"}},
		Deadlines: []domain.Event{
			{ID: "task-deadline-t1", Title: "Write quiz", Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		},
		Now: now,
	}

	out := stripANSI(FormatProjectInspect(data))

	assert.Contains(t, out, "Algebra")
	assert.Contains(t, out, "CLASSES")
	assert.Contains(t, out, "Algebra Mon")
	assert.Contains(t, out, "DEADLINES")
	assert.Contains(t, out, "In 2d")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "Draft questions")
	assert.Contains(t, out, "Answer key")
	assert.Contains(t, out, "1/2")
}

func TestFormatProjectInspect_NoTasks(t *testing.T) {
	out := stripANSI(FormatProjectInspect(ProjectInspectData{
		Project: domain.Project{ID: "p1", Name: "Empty"},
		Now:     time.Now(),
	}))
	assert.Contains(t, out, "No tasks")
}
