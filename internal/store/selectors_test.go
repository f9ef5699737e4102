package store

import (
	"testing"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectorFixture() State {
	s := fresh()
	s = Reduce(s, AddScheduleTemplate{Template: testutil.NewTestTemplate("Geometry", domain.Tuesday, "10:00", "11:00", testutil.WithTemplateID("geo-tue"))})
	s = Reduce(s, AddScheduleTemplate{Template: testutil.NewTestTemplate("Algebra", domain.Monday, "08:00", "09:00", testutil.WithTemplateID("alg-mon"))})
	s = Reduce(s, AddScheduleTemplate{Template: testutil.NewTestTemplate("Algebra", domain.Thursday, "08:00", "09:00", testutil.WithTemplateID("alg-thu"))})

	course := testutil.NewTestProject("Algebra I", testutil.WithProjectID("alg"), testutil.WithEndDate(day(2024, 1, 12)))
	s = Reduce(s, AddProject{New: CourseFromTemplateGroup{Project: course, TemplateGroupName: "Algebra"}})
	plain := testutil.NewTestProject("Parent night", testutil.WithProjectID("night"), testutil.WithEndDate(day(2024, 1, 20)))
	s = Reduce(s, AddProject{New: PlainProject{Project: plain}})
	s = Reduce(s, AddTask{Task: testutil.NewTestTask("night", "Invitations", testutil.WithTaskID("inv"), testutil.WithDueDate(day(2024, 1, 9)))})
	s = Reduce(s, AddEvent{Event: domain.Event{ID: "allday", Title: "PD day", Date: day(2024, 1, 8)}})
	return s
}

func TestSelectors_Projects(t *testing.T) {
	s := selectorFixture()

	var active []string
	for _, p := range s.ActiveProjects() {
		active = append(active, p.ID)
	}
	assert.Equal(t, []string{"alg", "night"}, active)

	courses := s.Courses()
	require.Len(t, courses, 1)
	assert.Equal(t, "alg", courses[0].ID)

	task, ok := s.FindTask("inv")
	require.True(t, ok)
	assert.Equal(t, "night", task.ProjectID)

	assert.Len(t, s.TasksInColumn("night", domain.ColumnTodo), 1)
	assert.Empty(t, s.TasksInColumn("night", domain.ColumnDone))
	assert.Nil(t, s.TasksInColumn("missing", domain.ColumnTodo))
}

func TestSelectors_EventsBetweenOrdersByDayThenTime(t *testing.T) {
	s := selectorFixture()

	events := s.EventsBetween(day(2024, 1, 8), day(2024, 1, 9))
	var titles []string
	for _, e := range events {
		titles = append(titles, e.Title)
	}
	// Jan 8: all-day PD day, then the 08:00 class. Jan 9: task deadline.
	assert.Equal(t, []string{"PD day", "Algebra I", "Task due: Invitations"}, titles)

	assert.Len(t, s.EventsOn(day(2024, 1, 11)), 1)
	assert.Empty(t, s.EventsOn(day(2024, 1, 13)))
}

func TestSelectors_UpcomingDeadlines(t *testing.T) {
	s := selectorFixture()
	now := time.Date(2024, 1, 9, 15, 0, 0, 0, time.UTC)

	all := s.UpcomingDeadlines(now, 0)
	require.Len(t, all, 2)
	assert.Equal(t, domain.TaskDeadlineID("inv"), all[0].ID)
	assert.Equal(t, domain.ProjectDeadlineID("night"), all[1].ID)

	assert.Len(t, s.UpcomingDeadlines(now, 1), 1)
	assert.Len(t, s.UpcomingDeadlines(day(2024, 1, 10), 0), 1)
}

func TestSelectors_TemplateGroups(t *testing.T) {
	s := selectorFixture()

	assert.Equal(t, []string{"Algebra", "Geometry"}, s.TemplateGroupNames())
	groups := s.TemplateGroups()
	assert.Len(t, groups["Algebra"], 2)
	assert.Len(t, groups["Geometry"], 1)
	assert.Len(t, s.ClassesForProject("alg"), 2)
	assert.Empty(t, s.ClassesForProject("night"))
}
