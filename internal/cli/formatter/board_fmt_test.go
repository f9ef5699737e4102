package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatBoard(t *testing.T) {
	now := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	p := domain.Project{
		ID:      "p1",
		Name:    "Algebra",
		Color:   "#3b82f6",
		Columns: domain.DefaultColumns(),
		Tasks: []domain.Task{
			{ID: "t1", Title: "Grade quiz", ColumnID: domain.ColumnTodo, Priority: domain.PriorityHigh, DueDate: &due},
			{ID: "t2", Title: "Print handouts", ColumnID: domain.ColumnDone, Completed: true, Priority: domain.PriorityLow},
		},
	}

	out := stripANSI(FormatBoard(p, now))

	assert.Contains(t, out, "Algebra")
	assert.Contains(t, out, "To Do")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "Done")
	assert.Contains(t, out, "Grade quiz")
	assert.Contains(t, out, "Tomorrow")
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "empty")
	assert.Contains(t, out, "1/2")
}

func TestFormatBoard_NoColumns(t *testing.T) {
	out := stripANSI(FormatBoard(domain.Project{Name: "Bare"}, time.Now()))
	assert.Contains(t, out, "no columns")
}
