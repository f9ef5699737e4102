package generation

import (
	"github.com/alexanderramin/teachdesk/internal/domain"
)

// ProjectDeadlineEvents returns one deadline marker per project that has an
// end date. Courses are skipped; their classes carry the schedule instead.
func ProjectDeadlineEvents(projects []domain.Project) []domain.Event {
	var events []domain.Event
	for _, p := range projects {
		if p.EndDate == nil || p.IsCourse() {
			continue
		}
		events = append(events, domain.Event{
			ID:          domain.ProjectDeadlineID(p.ID),
			Title:       "Due: " + p.Name,
			Description: p.Description,
			Date:        *p.EndDate,
			Type:        domain.EventDeadline,
			Color:       p.Color,
			ProjectID:   p.ID,
			Origin:      domain.Origin{Kind: domain.OriginProjectDeadline, SourceID: p.ID},
		})
	}
	return events
}

// TaskDeadlineEvents returns one deadline marker per task with a due date,
// completed or not, across every project.
func TaskDeadlineEvents(projects []domain.Project) []domain.Event {
	var events []domain.Event
	for _, p := range projects {
		for _, t := range p.Tasks {
			if t.DueDate == nil {
				continue
			}
			events = append(events, domain.Event{
				ID:          domain.TaskDeadlineID(t.ID),
				Title:       "Task due: " + t.Title,
				Description: t.Description,
				Date:        *t.DueDate,
				Type:        domain.EventDeadline,
				Color:       p.Color,
				ProjectID:   p.ID,
				Files:       t.Files,
				Origin:      domain.Origin{Kind: domain.OriginTaskDeadline, SourceID: t.ID},
			})
		}
	}
	return events
}

// DeadlineEvents returns project deadlines followed by task deadlines.
func DeadlineEvents(projects []domain.Project) []domain.Event {
	return append(ProjectDeadlineEvents(projects), TaskDeadlineEvents(projects)...)
}

// UpdateAllEvents replaces the deadline subset of events with a fresh
// derivation from projects. Other events keep their order.
func UpdateAllEvents(events []domain.Event, projects []domain.Project) []domain.Event {
	out := filterEvents(events, func(e *domain.Event) bool {
		return !e.IsDeadline()
	})
	return append(out, DeadlineEvents(projects)...)
}
