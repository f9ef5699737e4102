package store

import (
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
)

// State is one immutable snapshot of the session. Reducers never write into
// a snapshot's slices; every change builds new ones.
type State struct {
	Events            []domain.Event
	Projects          []domain.Project
	ScheduleTemplates []domain.ScheduleTemplate
	RecurringClasses  []domain.RecurringClass
	UI                UIState
}

// UIState holds transient modal visibility and selections for the view layer.
type UIState struct {
	EventModalOpen bool
	SelectedEvent  *domain.Event
	SelectedDate   *time.Time

	ProjectModalOpen bool
	SelectedProject  *domain.Project

	TaskModalOpen bool
	SelectedTask  *domain.Task

	TemplateModalOpen bool
	SelectedTemplate  *domain.ScheduleTemplate

	RecurringClassModalOpen bool
	SelectedRecurringClass  *domain.RecurringClass

	Confirmation *ConfirmationRequest
}

// ConfirmationRequest is the record behind the confirmation modal. The view
// calls exactly one of OnConfirm or OnCancel.
type ConfirmationRequest struct {
	ID        uint64
	Title     string
	Message   string
	OnConfirm func()
	OnCancel  func()
}

// InitialState returns a fresh session: the general-tasks project and
// nothing else.
func InitialState(now time.Time) State {
	return State{
		Projects: []domain.Project{domain.NewGeneralTasksProject(now)},
	}
}

func (s State) projectIndex(id string) int {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) templateIndex(id string) int {
	for i := range s.ScheduleTemplates {
		if s.ScheduleTemplates[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) classIndex(id string) int {
	for i := range s.RecurringClasses {
		if s.RecurringClasses[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) eventIndex(id string) int {
	for i := range s.Events {
		if s.Events[i].ID == id {
			return i
		}
	}
	return -1
}

// withProject returns a copy of s whose project at idx is replaced by p.
func (s State) withProject(idx int, p domain.Project) State {
	projects := make([]domain.Project, len(s.Projects))
	copy(projects, s.Projects)
	projects[idx] = p
	s.Projects = projects
	return s
}

// replaceAt returns a copy of items with items[idx] set to v.
func replaceAt[T any](items []T, idx int, v T) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[idx] = v
	return out
}

// removeAt returns a copy of items without items[idx].
func removeAt[T any](items []T, idx int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}

// appendCopy returns a new slice holding items followed by v.
func appendCopy[T any](items []T, v ...T) []T {
	out := make([]T, 0, len(items)+len(v))
	out = append(out, items...)
	return append(out, v...)
}

// filter returns a new slice with the items keep accepts.
func filter[T any](items []T, keep func(*T) bool) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
