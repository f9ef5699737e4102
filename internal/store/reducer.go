package store

import (
	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/generation"
)

// Reduce applies one action to a state snapshot and returns the next one.
// It never fails: actions that reference unknown ids, or that would touch
// events owned by the derivation layer, leave the state unchanged.
func Reduce(s State, a Action) State {
	next, _ := reduce(s, a)
	return next
}

// reduce reports whether the action changed anything, for diagnostics.
func reduce(s State, a Action) (State, bool) {
	switch a := a.(type) {
	case AddEvent:
		return addEvent(s, a.Event)
	case UpdateEvent:
		return updateEvent(s, a.Event)
	case DeleteEvent:
		return deleteEvent(s, a.ID)

	case AddProject:
		return addProject(s, a.New)
	case UpdateProject:
		return updateProject(s, a.ID, a.Patch)
	case DeleteProject:
		return deleteProject(s, a.ID)

	case AddTask:
		return addTask(s, a.Task)
	case UpdateTask:
		return updateTask(s, a.Task)
	case DeleteTask:
		return deleteTask(s, a.ProjectID, a.TaskID)
	case UpdateTaskStatus:
		return updateTaskStatus(s, a.ProjectID, a.TaskID, a.ColumnID)

	case AddSubtask:
		return addSubtask(s, a.ProjectID, a.TaskID, a.Subtask)
	case UpdateSubtask:
		return updateSubtask(s, a.ProjectID, a.TaskID, a.Subtask)
	case DeleteSubtask:
		return deleteSubtask(s, a.ProjectID, a.TaskID, a.SubtaskID)

	case AddScheduleTemplate:
		return addTemplate(s, a.Template)
	case UpdateScheduleTemplate:
		return updateTemplate(s, a.Template)
	case DeleteScheduleTemplate:
		return deleteTemplate(s, a.ID)

	case AddRecurringClass:
		return addClass(s, a.Class)
	case UpdateRecurringClass:
		return updateClass(s, a.Class)
	case DeleteRecurringClass:
		return deleteClass(s, a.ID)

	case AddColumn:
		return addColumn(s, a.ProjectID, a.Column)
	case UpdateColumn:
		return updateColumn(s, a.ProjectID, a.Column)
	case DeleteColumn:
		return deleteColumn(s, a.ProjectID, a.ColumnID, a.ReassignTo)
	case ReorderColumns:
		return reorderColumns(s, a.ProjectID, a.From, a.To)

	case ToggleEventModal:
		return toggleEventModal(s, a), true
	case ToggleProjectModal:
		return toggleProjectModal(s, a), true
	case ToggleTaskModal:
		return toggleTaskModal(s, a), true
	case ToggleScheduleTemplateModal:
		return toggleTemplateModal(s, a), true
	case ToggleRecurringClassModal:
		return toggleClassModal(s, a), true
	case CloseModals:
		return closeModals(s), true
	case ShowConfirmation:
		req := a.Request
		s.UI.Confirmation = &req
		return s, true
	case CloseConfirmation:
		if s.UI.Confirmation == nil || (a.ID != 0 && s.UI.Confirmation.ID != a.ID) {
			return s, false
		}
		s.UI.Confirmation = nil
		return s, true
	}
	return s, false
}

// rederiveDeadlines recomputes the deadline subset of the event list from
// the current projects. Every project or task mutation ends here.
func rederiveDeadlines(s State) State {
	s.Events = generation.UpdateAllEvents(s.Events, s.Projects)
	return s
}

// ── events ───────────────────────────────────────────────────────────────────

func addEvent(s State, e domain.Event) (State, bool) {
	if e.ID == "" || e.IsDerived() || s.eventIndex(e.ID) >= 0 {
		return s, false
	}
	e.Origin = domain.Origin{Kind: domain.OriginUser}
	s.Events = appendCopy(s.Events, e)
	return s, true
}

func updateEvent(s State, e domain.Event) (State, bool) {
	idx := s.eventIndex(e.ID)
	if idx < 0 || s.Events[idx].IsDerived() || e.IsDerived() {
		return s, false
	}
	e.Origin = domain.Origin{Kind: domain.OriginUser}
	s.Events = replaceAt(s.Events, idx, e)
	return s, true
}

func deleteEvent(s State, id string) (State, bool) {
	idx := s.eventIndex(id)
	if idx < 0 || s.Events[idx].IsDerived() {
		return s, false
	}
	s.Events = removeAt(s.Events, idx)
	return s, true
}

// ── modals ───────────────────────────────────────────────────────────────────

func toggleEventModal(s State, a ToggleEventModal) State {
	s.UI.EventModalOpen = !s.UI.EventModalOpen
	if s.UI.EventModalOpen {
		s.UI.SelectedEvent = a.Event
		s.UI.SelectedDate = a.Date
	} else {
		s.UI.SelectedEvent = nil
		s.UI.SelectedDate = nil
	}
	return s
}

func toggleProjectModal(s State, a ToggleProjectModal) State {
	s.UI.ProjectModalOpen = !s.UI.ProjectModalOpen
	s.UI.SelectedProject = nil
	if s.UI.ProjectModalOpen {
		s.UI.SelectedProject = a.Project
	}
	return s
}

func toggleTaskModal(s State, a ToggleTaskModal) State {
	s.UI.TaskModalOpen = !s.UI.TaskModalOpen
	s.UI.SelectedTask = nil
	if s.UI.TaskModalOpen {
		s.UI.SelectedTask = a.Task
	}
	return s
}

func toggleTemplateModal(s State, a ToggleScheduleTemplateModal) State {
	s.UI.TemplateModalOpen = !s.UI.TemplateModalOpen
	s.UI.SelectedTemplate = nil
	if s.UI.TemplateModalOpen {
		s.UI.SelectedTemplate = a.Template
	}
	return s
}

func toggleClassModal(s State, a ToggleRecurringClassModal) State {
	s.UI.RecurringClassModalOpen = !s.UI.RecurringClassModalOpen
	s.UI.SelectedRecurringClass = nil
	if s.UI.RecurringClassModalOpen {
		s.UI.SelectedRecurringClass = a.Class
	}
	return s
}

// closeModals clears every modal flag and selection. A pending confirmation
// is left alone; only its own callbacks close it.
func closeModals(s State) State {
	confirmation := s.UI.Confirmation
	s.UI = UIState{Confirmation: confirmation}
	return s
}
