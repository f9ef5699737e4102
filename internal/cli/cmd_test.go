package cli

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/teachdesk/internal/config"
	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/drive"
	"github.com/alexanderramin/teachdesk/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow is Wednesday 2024-01-03 10:00 UTC.
var testNow = time.Date(2024, time.January, 3, 10, 0, 0, 0, time.UTC)

// testApp wires an App over a fresh store, a fixed clock, sequential ids and
// a Drive client in demo mode.
func testApp(t *testing.T) *App {
	t.Helper()
	n := 0
	return &App{
		Store: store.New(store.WithClock(func() time.Time { return testNow })),
		Drive: drive.New(config.DriveConfig{}),
		Loc:   time.UTC,
		Now:   func() time.Time { return testNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id%03d", n)
		},
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func mustExec(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, out)
	return out
}

// --- Root command ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "teachdesk")
	assert.Contains(t, out, "calendar")
}

// --- Events ---

func TestEventAdd(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "event", "add", "--title", "Staff meeting", "--date", "2024-01-04",
		"--start", "15:00", "--end", "16:00")
	assert.Contains(t, out, "Added event Staff meeting on 2024-01-04")

	e, ok := app.state().EventByID("id001")
	require.True(t, ok)
	assert.Equal(t, "Staff meeting", e.Title)
	assert.Equal(t, "15:00", e.StartTime)
	assert.Equal(t, domain.EventMeeting, e.Type)
	assert.Equal(t, domain.OriginUser, e.Origin.Kind)
	assert.Equal(t, time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC), e.Date)
}

func TestEventAdd_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"end before start", []string{"--start", "16:00", "--end", "15:00"}, "must be after"},
		{"end without start", []string{"--end", "15:00"}, "--end requires --start"},
		{"bad type", []string{"--type", "party"}, "invalid event type"},
		{"bad date", []string{"--date", "04/01/2024"}, "invalid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			args := append([]string{"event", "add", "--title", "X", "--date", "2024-01-04"}, tt.args...)
			_, err := executeCmd(t, app, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, app.state().Events)
		})
	}
}

func TestEventUpdate_ChangesOnlyGivenFlags(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "event", "add", "--title", "Parent night", "--date", "2024-01-10",
		"--start", "18:00", "--type", "personal")

	mustExec(t, app, "event", "update", "id001", "--title", "Parents' evening", "--all-day")

	e, ok := app.state().EventByID("id001")
	require.True(t, ok)
	assert.Equal(t, "Parents' evening", e.Title)
	assert.Equal(t, domain.EventPersonal, e.Type)
	assert.Empty(t, e.StartTime)
	assert.True(t, e.AllDay())
}

func TestEventUpdate_DerivedEventRefused(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "project", "add", "--name", "Report cards", "--start", "2024-01-01", "--end", "2024-01-20")

	_, err := executeCmd(t, app, "event", "update", domain.ProjectDeadlineID("id001"), "--title", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project's end date")
}

func TestEventRemove_NonInteractiveNeedsYes(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "event", "add", "--title", "Drill", "--date", "today")

	_, err := executeCmd(t, app, "event", "remove", "id001")
	require.ErrorIs(t, err, errNeedsYes)
	assert.Len(t, app.state().Events, 1)

	out := mustExec(t, app, "event", "remove", "Drill", "--yes")
	assert.Contains(t, out, "Removed event Drill")
	assert.Empty(t, app.state().Events)
}

func TestEventRemove_InteractiveDecline(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	var asked []string
	app.Ask = func(title, message string) (bool, error) {
		asked = append(asked, title, message)
		return false, nil
	}
	mustExec(t, app, "event", "add", "--title", "Drill", "--date", "2024-01-05")

	out := mustExec(t, app, "event", "remove", "id001")
	assert.Contains(t, out, "Cancelled.")
	assert.Len(t, app.state().Events, 1)
	require.Len(t, asked, 2)
	assert.Equal(t, "Delete event?", asked[0])
	assert.Contains(t, asked[1], `"Drill" on 2024-01-05`)
	assert.Nil(t, app.state().UI.Confirmation, "answered request must close the modal")
}

func TestEventRemove_InteractiveAccept(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	app.Ask = func(string, string) (bool, error) { return true, nil }
	mustExec(t, app, "event", "add", "--title", "Drill", "--date", "2024-01-05")

	mustExec(t, app, "event", "remove", "id001")
	assert.Empty(t, app.state().Events)
	assert.Nil(t, app.state().UI.Confirmation)
}

func TestEventList_HidesDerivedUnlessAll(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "event", "add", "--title", "Assembly", "--date", "2024-01-08")
	mustExec(t, app, "project", "add", "--name", "Grading", "--end", "2024-01-12")

	out := mustExec(t, app, "event", "list")
	assert.Contains(t, out, "Assembly")
	assert.NotContains(t, out, "Due: Grading")

	out = mustExec(t, app, "event", "list", "--all")
	assert.Contains(t, out, "Due: Grading")
}

func TestEventShow(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "event", "add", "--title", "Field trip", "--date", "2024-01-12",
		"--description", "Science museum")

	out := mustExec(t, app, "event", "show", "Field trip")
	assert.Contains(t, out, "Field trip")
	assert.Contains(t, out, "Science museum")
}

// --- Projects ---

func TestProjectAdd_WithEndDateDerivesDeadline(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "project", "add", "--name", "Science fair", "--type", "administrative",
		"--end", "2024-02-01")
	assert.Contains(t, out, "Created project Science fair")

	st := app.state()
	p, ok := st.ProjectByID("id001")
	require.True(t, ok)
	assert.Equal(t, domain.ProjectAdministrative, p.Type)
	assert.Equal(t, time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC), p.StartDate)
	assert.Len(t, p.Columns, 3)

	dl, ok := st.EventByID(domain.ProjectDeadlineID("id001"))
	require.True(t, ok)
	assert.Equal(t, "Due: Science fair", dl.Title)
}

func TestProjectAdd_EndBeforeStart(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "add", "--name", "Bad", "--start", "2024-02-01", "--end", "2024-01-01")
	require.Error(t, err)
	assert.Len(t, app.state().Projects, 1)
}

func TestProjectAdd_CourseFromTemplateGroup(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "template", "add", "--name", "Algebra", "--day", "monday",
		"--start", "08:00", "--end", "09:00")

	out := mustExec(t, app, "project", "add", "--name", "Algebra I", "--template-group", "Algebra",
		"--start", "2024-01-01", "--end", "2024-01-15")
	assert.Contains(t, out, "Scheduled 3 class sessions from 1 slots of Algebra")

	st := app.state()
	p, ok := st.ProjectByID("id002")
	require.True(t, ok)
	assert.Equal(t, domain.ProjectCourse, p.Type)
	require.Len(t, st.ClassesForProject(p.ID), 1)
}

func TestProjectAdd_UnknownTemplateGroup(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "add", "--name", "X", "--template-group", "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Nope" not found`)
}

func TestProjectAdd_ParentMustBeCourse(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "project", "add", "--name", "Personal")
	_, err := executeCmd(t, app, "project", "add", "--name", "Unit 1", "--course", "Personal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a course")

	mustExec(t, app, "project", "add", "--name", "Biology", "--type", "course")
	mustExec(t, app, "project", "add", "--name", "Unit 1", "--course", "Biology")
	course, err := resolveProject(app.state(), "biology")
	require.NoError(t, err)
	p, err := resolveProject(app.state(), "Unit 1")
	require.NoError(t, err)
	assert.Equal(t, course.ID, p.ParentCourseID)
}

func TestProjectUpdate_ClearEndRemovesDeadline(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "project", "add", "--name", "Grading", "--end", "2024-01-20")
	_, ok := app.state().EventByID(domain.ProjectDeadlineID("id001"))
	require.True(t, ok)

	mustExec(t, app, "project", "update", "id001", "--clear-end", "--name", "Grading Q1")

	st := app.state()
	p, _ := st.ProjectByID("id001")
	assert.Equal(t, "Grading Q1", p.Name)
	assert.Nil(t, p.EndDate)
	_, ok = st.EventByID(domain.ProjectDeadlineID("id001"))
	assert.False(t, ok)
}

func TestProjectRemove(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "project", "add", "--name", "Old club")

	_, err := executeCmd(t, app, "project", "remove", domain.GeneralTasksProjectID, "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be removed")

	mustExec(t, app, "project", "remove", "Old club", "--yes")
	_, ok := app.state().ProjectByID("id001")
	assert.False(t, ok)
}

func TestProjectListAndInspect(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "project", "add", "--name", "Chemistry", "--type", "course")
	mustExec(t, app, "task", "add", "--title", "Write quiz", "--project", "Chemistry")

	out := mustExec(t, app, "project", "list", "--courses")
	assert.Contains(t, out, "Chemistry")
	assert.NotContains(t, out, "General Tasks")

	out = mustExec(t, app, "project", "inspect", "chemistry")
	assert.Contains(t, out, "Chemistry")
	assert.Contains(t, out, "Write quiz")
}
