package store

import (
	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/generation"
)

func addTemplate(s State, tpl domain.ScheduleTemplate) (State, bool) {
	if tpl.ID == "" || s.templateIndex(tpl.ID) >= 0 {
		return s, false
	}
	s.ScheduleTemplates = appendCopy(s.ScheduleTemplates, tpl)
	return s, true
}

// updateTemplate replaces the template and re-expands every class bound to
// it, since their occurrences depend on the slot's day and times.
func updateTemplate(s State, tpl domain.ScheduleTemplate) (State, bool) {
	idx := s.templateIndex(tpl.ID)
	if idx < 0 {
		return s, false
	}
	s.ScheduleTemplates = replaceAt(s.ScheduleTemplates, idx, tpl)
	for _, rc := range s.RecurringClasses {
		if rc.ScheduleTemplateID == tpl.ID {
			s.Events = generation.RegenerateRecurringClass(s.Events, rc, tpl)
		}
	}
	return s, true
}

// deleteTemplate cascades to the recurring classes bound to the template and
// to every event carrying its id.
func deleteTemplate(s State, id string) (State, bool) {
	idx := s.templateIndex(id)
	if idx < 0 {
		return s, false
	}
	s.ScheduleTemplates = removeAt(s.ScheduleTemplates, idx)

	removedClasses := make(map[string]bool)
	s.RecurringClasses = filter(s.RecurringClasses, func(rc *domain.RecurringClass) bool {
		if rc.ScheduleTemplateID == id {
			removedClasses[rc.ID] = true
			return false
		}
		return true
	})
	s.Events = filter(s.Events, func(e *domain.Event) bool {
		if e.ScheduleTemplateID == id {
			return false
		}
		return !(e.Origin.Kind == domain.OriginRecurring && removedClasses[e.Origin.SourceID])
	})
	return s, true
}

func addClass(s State, rc domain.RecurringClass) (State, bool) {
	tIdx := s.templateIndex(rc.ScheduleTemplateID)
	if rc.ID == "" || tIdx < 0 || s.classIndex(rc.ID) >= 0 {
		return s, false
	}
	tpl := s.ScheduleTemplates[tIdx]
	if rc.GroupName == "" {
		rc.GroupName = tpl.Name
	}
	s.RecurringClasses = appendCopy(s.RecurringClasses, rc)
	s.Events = generation.RegenerateRecurringClass(s.Events, rc, tpl)
	return s, true
}

func updateClass(s State, rc domain.RecurringClass) (State, bool) {
	idx := s.classIndex(rc.ID)
	tIdx := s.templateIndex(rc.ScheduleTemplateID)
	if idx < 0 || tIdx < 0 {
		return s, false
	}
	tpl := s.ScheduleTemplates[tIdx]
	if rc.GroupName == "" {
		rc.GroupName = tpl.Name
	}
	s.RecurringClasses = replaceAt(s.RecurringClasses, idx, rc)
	s.Events = generation.RegenerateRecurringClass(s.Events, rc, tpl)
	return s, true
}

func deleteClass(s State, id string) (State, bool) {
	idx := s.classIndex(id)
	if idx < 0 {
		return s, false
	}
	s.RecurringClasses = removeAt(s.RecurringClasses, idx)
	s.Events = generation.WithoutRecurringClass(s.Events, id)
	return s, true
}
