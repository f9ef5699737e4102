package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/store"
)

// resolve finds the single item matching input by, in order: exact id,
// unique id prefix, case-insensitive name.
func resolve[T any](kind, input string, items []T, id, name func(T) string) (T, error) {
	var zero T
	input = strings.TrimSpace(input)
	if input == "" {
		return zero, fmt.Errorf("%s ID is required", kind)
	}

	for _, it := range items {
		if id(it) == input {
			return it, nil
		}
	}

	var prefixed []T
	for _, it := range items {
		if strings.HasPrefix(id(it), input) {
			prefixed = append(prefixed, it)
		}
	}
	switch len(prefixed) {
	case 1:
		return prefixed[0], nil
	case 0:
	default:
		return zero, fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(prefixed))
	}

	var named []T
	for _, it := range items {
		if strings.EqualFold(name(it), input) {
			named = append(named, it)
		}
	}
	switch len(named) {
	case 1:
		return named[0], nil
	case 0:
		return zero, fmt.Errorf("%s not found: %q", kind, input)
	default:
		return zero, fmt.Errorf("%s name %q is ambiguous (%d matches); use the ID", kind, input, len(named))
	}
}

func resolveProject(st store.State, input string) (domain.Project, error) {
	return resolve("project", input, st.Projects,
		func(p domain.Project) string { return p.ID },
		func(p domain.Project) string { return p.Name })
}

// resolveProjectOrGeneral resolves input, or returns the general tasks
// project when input is empty.
func resolveProjectOrGeneral(st store.State, input string) (domain.Project, error) {
	if input == "" {
		if p, ok := st.GeneralTasks(); ok {
			return p, nil
		}
		return domain.Project{}, fmt.Errorf("general tasks project is missing")
	}
	return resolveProject(st, input)
}

func resolveEvent(st store.State, input string) (domain.Event, error) {
	return resolve("event", input, st.Events,
		func(e domain.Event) string { return e.ID },
		func(e domain.Event) string { return e.Title })
}

func resolveTemplate(st store.State, input string) (domain.ScheduleTemplate, error) {
	return resolve("template", input, st.ScheduleTemplates,
		func(t domain.ScheduleTemplate) string { return t.ID },
		func(t domain.ScheduleTemplate) string { return t.Name })
}

func resolveClass(st store.State, input string) (domain.RecurringClass, error) {
	return resolve("class", input, st.RecurringClasses,
		func(rc domain.RecurringClass) string { return rc.ID },
		func(rc domain.RecurringClass) string { return rc.Title })
}

// resolveTask finds a task within projectInput, or across every project
// when projectInput is empty.
func resolveTask(st store.State, projectInput, input string) (domain.Project, domain.Task, error) {
	var projects []domain.Project
	if projectInput != "" {
		p, err := resolveProject(st, projectInput)
		if err != nil {
			return domain.Project{}, domain.Task{}, err
		}
		projects = []domain.Project{p}
	} else {
		projects = st.Projects
	}

	var tasks []domain.Task
	for _, p := range projects {
		tasks = append(tasks, p.Tasks...)
	}
	t, err := resolve("task", input, tasks,
		func(t domain.Task) string { return t.ID },
		func(t domain.Task) string { return t.Title })
	if err != nil {
		return domain.Project{}, domain.Task{}, err
	}
	p, _ := st.ProjectByID(t.ProjectID)
	return p, t, nil
}

func resolveSubtask(t domain.Task, input string) (domain.Subtask, error) {
	return resolve("subtask", input, t.Subtasks,
		func(s domain.Subtask) string { return s.ID },
		func(s domain.Subtask) string { return s.Title })
}

// resolveColumn matches a column by exact id or case-insensitive title.
func resolveColumn(p domain.Project, input string) (domain.KanbanColumn, error) {
	for _, c := range p.Columns {
		if c.ID == input {
			return c, nil
		}
	}
	for _, c := range p.Columns {
		if strings.EqualFold(c.Title, input) || strings.EqualFold(c.ID, input) {
			return c, nil
		}
	}
	return domain.KanbanColumn{}, fmt.Errorf("column %q not found in project %s", input, p.Name)
}

// ── flag parsing ─────────────────────────────────────────────────────────────

const dateLayout = "2006-01-02"

// parseDate reads YYYY-MM-DD, "today", "tomorrow" or "yesterday" as
// midnight in the app's zone.
func (a *App) parseDate(s string) (time.Time, error) {
	today := domain.StartOfDay(a.now())
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), a.loc())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return d, nil
}

func (a *App) parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := a.parseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// validateTimes checks an optional HH:MM pair: an end needs a start and
// must come after it.
func validateTimes(start, end string) error {
	if start == "" {
		if end != "" {
			return fmt.Errorf("--end requires --start")
		}
		return nil
	}
	s, err := domain.ParseClock(start)
	if err != nil {
		return err
	}
	if end == "" {
		return nil
	}
	e, err := domain.ParseClock(end)
	if err != nil {
		return err
	}
	if e <= s {
		return fmt.Errorf("end time %s must be after start time %s", end, start)
	}
	return nil
}

func parseEventType(s string) (domain.EventType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidEventTypes[s] {
		return "", fmt.Errorf("invalid event type %q (class, meeting, deadline, personal, assignment)", s)
	}
	return domain.EventType(s), nil
}

func parseProjectType(s string) (domain.ProjectType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidProjectTypes[s] {
		return "", fmt.Errorf("invalid project type %q (none, course, administrative, personal)", s)
	}
	return domain.ProjectType(s), nil
}

func parsePriority(s string) (domain.Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidPriorities[s] {
		return "", fmt.Errorf("invalid priority %q (low, medium, high)", s)
	}
	return domain.Priority(s), nil
}
