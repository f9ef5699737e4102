package store

import (
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
)

// GeneralTasks returns the catch-all project. It is always present in a
// state built by InitialState.
func (s State) GeneralTasks() (domain.Project, bool) {
	return s.ProjectByID(domain.GeneralTasksProjectID)
}

// ActiveProjects returns every project except the general-tasks bucket.
func (s State) ActiveProjects() []domain.Project {
	return filter(s.Projects, func(p *domain.Project) bool { return !p.IsGeneral() })
}

// Courses returns the projects of type course.
func (s State) Courses() []domain.Project {
	return filter(s.Projects, func(p *domain.Project) bool { return p.IsCourse() })
}

func (s State) ProjectByID(id string) (domain.Project, bool) {
	if idx := s.projectIndex(id); idx >= 0 {
		return s.Projects[idx], true
	}
	return domain.Project{}, false
}

func (s State) EventByID(id string) (domain.Event, bool) {
	if idx := s.eventIndex(id); idx >= 0 {
		return s.Events[idx], true
	}
	return domain.Event{}, false
}

func (s State) TemplateByID(id string) (domain.ScheduleTemplate, bool) {
	if idx := s.templateIndex(id); idx >= 0 {
		return s.ScheduleTemplates[idx], true
	}
	return domain.ScheduleTemplate{}, false
}

func (s State) ClassByID(id string) (domain.RecurringClass, bool) {
	if idx := s.classIndex(id); idx >= 0 {
		return s.RecurringClasses[idx], true
	}
	return domain.RecurringClass{}, false
}

// FindTask searches every project for a task id.
func (s State) FindTask(taskID string) (domain.Task, bool) {
	for i := range s.Projects {
		if idx := s.Projects[i].TaskIndex(taskID); idx >= 0 {
			return s.Projects[i].Tasks[idx], true
		}
	}
	return domain.Task{}, false
}

// TasksInColumn returns the project's tasks sitting in columnID, in board order.
func (s State) TasksInColumn(projectID, columnID string) []domain.Task {
	p, ok := s.ProjectByID(projectID)
	if !ok {
		return nil
	}
	return filter(p.Tasks, func(t *domain.Task) bool { return t.ColumnID == columnID })
}

// EventsBetween returns events whose calendar day falls in [from, to], both
// days inclusive, ordered by date then start time.
func (s State) EventsBetween(from, to time.Time) []domain.Event {
	lo := domain.StartOfDay(from)
	hi := domain.StartOfDay(to)
	out := filter(s.Events, func(e *domain.Event) bool {
		day := e.Day()
		return !day.Before(lo) && !day.After(hi)
	})
	sortEvents(out)
	return out
}

// EventsOn returns the events on day's calendar date.
func (s State) EventsOn(day time.Time) []domain.Event {
	return s.EventsBetween(day, day)
}

// UpcomingDeadlines returns up to limit deadline events on or after now's
// day. A non-positive limit returns all of them.
func (s State) UpcomingDeadlines(now time.Time, limit int) []domain.Event {
	today := domain.StartOfDay(now)
	out := filter(s.Events, func(e *domain.Event) bool {
		return e.IsDeadline() && !e.Day().Before(today)
	})
	sortEvents(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TemplateGroups groups schedule templates by name; each group is one class
// section with one slot per template.
func (s State) TemplateGroups() map[string][]domain.ScheduleTemplate {
	groups := make(map[string][]domain.ScheduleTemplate)
	for _, tpl := range s.ScheduleTemplates {
		groups[tpl.Name] = append(groups[tpl.Name], tpl)
	}
	return groups
}

// TemplateGroupNames returns the distinct template names, sorted.
func (s State) TemplateGroupNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, tpl := range s.ScheduleTemplates {
		if !seen[tpl.Name] {
			seen[tpl.Name] = true
			names = append(names, tpl.Name)
		}
	}
	slices.Sort(names)
	return names
}

// ClassesForProject returns the recurring classes attached to a project.
func (s State) ClassesForProject(projectID string) []domain.RecurringClass {
	return filter(s.RecurringClasses, func(rc *domain.RecurringClass) bool {
		return rc.ProjectID == projectID
	})
}

func sortEvents(events []domain.Event) {
	slices.SortStableFunc(events, func(a, b domain.Event) int {
		if c := a.Day().Compare(b.Day()); c != 0 {
			return c
		}
		// All-day events sort before timed ones ("" < "HH:MM").
		if c := strings.Compare(a.StartTime, b.StartTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
