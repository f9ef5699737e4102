package store

import (
	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/generation"
)

// ── projects ─────────────────────────────────────────────────────────────────

func addProject(s State, np NewProject) (State, bool) {
	if np == nil {
		return s, false
	}
	p := np.project()
	if p.ID == "" || s.projectIndex(p.ID) >= 0 {
		return s, false
	}
	if p.Type == "" {
		p.Type = domain.ProjectNone
	}
	if len(p.Columns) == 0 {
		p.Columns = domain.DefaultColumns()
	} else {
		p.Columns = appendCopy(p.Columns)
	}
	tasks := make([]domain.Task, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		t.ProjectID = p.ID
		tasks = append(tasks, t.Normalize())
	}
	p.Tasks = tasks

	course, isCourse := np.(CourseFromTemplateGroup)
	if isCourse {
		p.Type = domain.ProjectCourse
	}
	s.Projects = appendCopy(s.Projects, p)
	if isCourse && course.TemplateGroupName != "" {
		s = bindTemplateGroup(s, p, course.TemplateGroupName)
	}
	return rederiveDeadlines(s), true
}

// bindTemplateGroup creates one recurring class per template in the group,
// spanning the course's dates (or through Dec 31 of the start year when the
// course is open-ended), and expands each into events.
func bindTemplateGroup(s State, p domain.Project, group string) State {
	end := domain.EndOfYear(p.StartDate)
	if p.EndDate != nil {
		end = *p.EndDate
	}
	for _, tpl := range s.ScheduleTemplates {
		if tpl.Name != group {
			continue
		}
		rc := domain.RecurringClass{
			ID:                 p.ID + "-" + tpl.ID,
			Title:              p.Name,
			Description:        p.Description,
			ScheduleTemplateID: tpl.ID,
			StartDate:          p.StartDate,
			EndDate:            end,
			Color:              domain.CoalesceStr(p.Color, tpl.Color),
			GroupName:          group,
			ProjectID:          p.ID,
		}
		if s.classIndex(rc.ID) >= 0 {
			continue
		}
		s.RecurringClasses = appendCopy(s.RecurringClasses, rc)
		s.Events = appendCopy(s.Events, generation.RecurringEvents(rc, tpl)...)
	}
	return s
}

func updateProject(s State, id string, patch ProjectPatch) (State, bool) {
	idx := s.projectIndex(id)
	if idx < 0 {
		return s, false
	}
	p := s.Projects[idx]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		end := *patch.EndDate
		p.EndDate = &end
	}
	if patch.ClearEndDate {
		p.EndDate = nil
	}
	if patch.Files != nil {
		p.Files = appendCopy(patch.Files)
	}
	if patch.ParentCourseID != nil {
		p.ParentCourseID = *patch.ParentCourseID
	}
	return rederiveDeadlines(s.withProject(idx, p)), true
}

// deleteProject removes the project, every event linked to it and its
// recurring classes. Tasks go with the project. The general-tasks project
// cannot be deleted.
func deleteProject(s State, id string) (State, bool) {
	idx := s.projectIndex(id)
	if idx < 0 || id == domain.GeneralTasksProjectID {
		return s, false
	}
	s.Projects = removeAt(s.Projects, idx)

	removedClasses := make(map[string]bool)
	s.RecurringClasses = filter(s.RecurringClasses, func(rc *domain.RecurringClass) bool {
		if rc.ProjectID == id {
			removedClasses[rc.ID] = true
			return false
		}
		return true
	})
	s.Events = filter(s.Events, func(e *domain.Event) bool {
		if e.ProjectID == id {
			return false
		}
		return !(e.Origin.Kind == domain.OriginRecurring && removedClasses[e.Origin.SourceID])
	})
	return rederiveDeadlines(s), true
}

// ── tasks ────────────────────────────────────────────────────────────────────

func ownerID(projectID string) string {
	return domain.CoalesceStr(projectID, domain.GeneralTasksProjectID)
}

// mutateTask applies fn to one task and re-derives deadlines.
func mutateTask(s State, projectID, taskID string, fn func(domain.Task) domain.Task) (State, bool) {
	pIdx := s.projectIndex(ownerID(projectID))
	if pIdx < 0 {
		return s, false
	}
	p := s.Projects[pIdx]
	tIdx := p.TaskIndex(taskID)
	if tIdx < 0 {
		return s, false
	}
	p.Tasks = replaceAt(p.Tasks, tIdx, fn(p.Tasks[tIdx]))
	return rederiveDeadlines(s.withProject(pIdx, p)), true
}

func addTask(s State, t domain.Task) (State, bool) {
	t = t.Normalize()
	idx := s.projectIndex(t.ProjectID)
	if t.ID == "" || idx < 0 {
		return s, false
	}
	p := s.Projects[idx]
	if p.TaskIndex(t.ID) >= 0 {
		return s, false
	}
	p.Tasks = appendCopy(p.Tasks, t)
	return rederiveDeadlines(s.withProject(idx, p)), true
}

func updateTask(s State, t domain.Task) (State, bool) {
	t = t.Normalize()
	return mutateTask(s, t.ProjectID, t.ID, func(domain.Task) domain.Task {
		return t
	})
}

func deleteTask(s State, projectID, taskID string) (State, bool) {
	pIdx := s.projectIndex(ownerID(projectID))
	if pIdx < 0 {
		return s, false
	}
	p := s.Projects[pIdx]
	tIdx := p.TaskIndex(taskID)
	if tIdx < 0 {
		return s, false
	}
	p.Tasks = removeAt(p.Tasks, tIdx)
	return rederiveDeadlines(s.withProject(pIdx, p)), true
}

func updateTaskStatus(s State, projectID, taskID, columnID string) (State, bool) {
	if columnID == "" {
		return s, false
	}
	return mutateTask(s, projectID, taskID, func(t domain.Task) domain.Task {
		return t.MoveTo(columnID)
	})
}

// ── subtasks ─────────────────────────────────────────────────────────────────

func subtaskIndex(t domain.Task, id string) int {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			return i
		}
	}
	return -1
}

// mutateSubtasks edits one task's subtask list. Subtasks never carry dates,
// so deadlines are left alone.
func mutateSubtasks(s State, projectID, taskID string, fn func([]domain.Subtask) ([]domain.Subtask, bool)) (State, bool) {
	pIdx := s.projectIndex(ownerID(projectID))
	if pIdx < 0 {
		return s, false
	}
	p := s.Projects[pIdx]
	tIdx := p.TaskIndex(taskID)
	if tIdx < 0 {
		return s, false
	}
	t := p.Tasks[tIdx]
	subtasks, ok := fn(t.Subtasks)
	if !ok {
		return s, false
	}
	t.Subtasks = subtasks
	p.Tasks = replaceAt(p.Tasks, tIdx, t)
	return s.withProject(pIdx, p), true
}

func addSubtask(s State, projectID, taskID string, st domain.Subtask) (State, bool) {
	if st.ID == "" {
		return s, false
	}
	return mutateSubtasks(s, projectID, taskID, func(list []domain.Subtask) ([]domain.Subtask, bool) {
		if subtaskIndex(domain.Task{Subtasks: list}, st.ID) >= 0 {
			return nil, false
		}
		return appendCopy(list, st), true
	})
}

func updateSubtask(s State, projectID, taskID string, st domain.Subtask) (State, bool) {
	return mutateSubtasks(s, projectID, taskID, func(list []domain.Subtask) ([]domain.Subtask, bool) {
		idx := subtaskIndex(domain.Task{Subtasks: list}, st.ID)
		if idx < 0 {
			return nil, false
		}
		return replaceAt(list, idx, st), true
	})
}

func deleteSubtask(s State, projectID, taskID, subtaskID string) (State, bool) {
	return mutateSubtasks(s, projectID, taskID, func(list []domain.Subtask) ([]domain.Subtask, bool) {
		idx := subtaskIndex(domain.Task{Subtasks: list}, subtaskID)
		if idx < 0 {
			return nil, false
		}
		return removeAt(list, idx), true
	})
}

// ── columns ──────────────────────────────────────────────────────────────────

func columnIndex(p domain.Project, id string) int {
	for i := range p.Columns {
		if p.Columns[i].ID == id {
			return i
		}
	}
	return -1
}

func addColumn(s State, projectID string, col domain.KanbanColumn) (State, bool) {
	idx := s.projectIndex(ownerID(projectID))
	if idx < 0 || col.ID == "" {
		return s, false
	}
	p := s.Projects[idx]
	if columnIndex(p, col.ID) >= 0 {
		return s, false
	}
	p.Columns = appendCopy(p.Columns, col)
	return s.withProject(idx, p), true
}

func updateColumn(s State, projectID string, col domain.KanbanColumn) (State, bool) {
	idx := s.projectIndex(ownerID(projectID))
	if idx < 0 {
		return s, false
	}
	p := s.Projects[idx]
	cIdx := columnIndex(p, col.ID)
	if cIdx < 0 {
		return s, false
	}
	p.Columns = replaceAt(p.Columns, cIdx, col)
	return s.withProject(idx, p), true
}

// deleteColumn removes a column. Tasks in it are dropped unless reassignTo
// names another column of the project, in which case they move there.
func deleteColumn(s State, projectID, columnID, reassignTo string) (State, bool) {
	idx := s.projectIndex(ownerID(projectID))
	if idx < 0 {
		return s, false
	}
	p := s.Projects[idx]
	cIdx := columnIndex(p, columnID)
	if cIdx < 0 {
		return s, false
	}
	if reassignTo != "" && (reassignTo == columnID || columnIndex(p, reassignTo) < 0) {
		return s, false
	}
	p.Columns = removeAt(p.Columns, cIdx)

	if reassignTo == "" {
		p.Tasks = filter(p.Tasks, func(t *domain.Task) bool {
			return t.ColumnID != columnID
		})
	} else {
		tasks := make([]domain.Task, len(p.Tasks))
		for i, t := range p.Tasks {
			if t.ColumnID == columnID {
				t = t.MoveTo(reassignTo)
			}
			tasks[i] = t
		}
		p.Tasks = tasks
	}
	return rederiveDeadlines(s.withProject(idx, p)), true
}

func reorderColumns(s State, projectID string, from, to int) (State, bool) {
	idx := s.projectIndex(ownerID(projectID))
	if idx < 0 {
		return s, false
	}
	p := s.Projects[idx]
	n := len(p.Columns)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return s, false
	}
	moved := p.Columns[from]
	cols := removeAt(p.Columns, from)
	out := make([]domain.KanbanColumn, 0, n)
	out = append(out, cols[:to]...)
	out = append(out, moved)
	p.Columns = append(out, cols[to:]...)
	return s.withProject(idx, p), true
}
