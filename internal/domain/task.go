package domain

import "time"

type Subtask struct {
	ID        string
	Title     string
	Completed bool
}

type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	ColumnID    string
	Priority    Priority
	DueDate     *time.Time
	ProjectID   string
	Subtasks    []Subtask
	Files       []FileAttachment
}

// Normalize applies the defaults a stored task must carry: the general-tasks
// project when none is set, the todo column and medium priority.
func (t Task) Normalize() Task {
	if t.ProjectID == "" {
		t.ProjectID = GeneralTasksProjectID
	}
	if t.ColumnID == "" {
		t.ColumnID = ColumnTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return t
}

// MoveTo places the task in a column and keeps Completed in step with the
// done column.
func (t Task) MoveTo(columnID string) Task {
	t.ColumnID = columnID
	t.Completed = columnID == ColumnDone
	return t
}

// SubtaskProgress returns completed and total subtask counts.
func (t *Task) SubtaskProgress() (done, total int) {
	for _, s := range t.Subtasks {
		if s.Completed {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// IsOverdue reports whether an open task's due date is before now's day.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return StartOfDay(*t.DueDate).Before(StartOfDay(now))
}
