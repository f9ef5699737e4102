package domain

import (
	"fmt"
	"time"
)

const (
	projectDeadlinePrefix = "project-deadline-"
	taskDeadlinePrefix    = "task-deadline-"
	recurringPrefix       = "recurring-"
)

// Origin records which entity an event was synthesized from.
// The zero value is a user-authored event.
type Origin struct {
	Kind     OriginKind
	SourceID string
}

type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	StartTime   string // "HH:MM", empty for all-day
	EndTime     string
	Type        EventType
	Color       string

	ProjectID          string
	ScheduleTemplateID string
	GroupName          string

	Files  []FileAttachment
	Origin Origin
}

// IsDerived reports whether the event is owned by the derivation layer.
func (e *Event) IsDerived() bool {
	return e.Origin.Kind != "" && e.Origin.Kind != OriginUser
}

// IsDeadline reports whether the event was generated from a project or task due date.
func (e *Event) IsDeadline() bool {
	return e.Origin.Kind == OriginProjectDeadline || e.Origin.Kind == OriginTaskDeadline
}

// OwnedBy reports whether the event was generated from the given source.
func (e *Event) OwnedBy(kind OriginKind, sourceID string) bool {
	return e.Origin.Kind == kind && e.Origin.SourceID == sourceID
}

// AllDay reports whether the event has no start time.
func (e *Event) AllDay() bool {
	return e.StartTime == ""
}

// Day returns the event's calendar date at midnight in its own location.
func (e *Event) Day() time.Time {
	return StartOfDay(e.Date)
}

func ProjectDeadlineID(projectID string) string {
	return projectDeadlinePrefix + projectID
}

func TaskDeadlineID(taskID string) string {
	return taskDeadlinePrefix + taskID
}

// RecurringEventID builds the deterministic id of one occurrence of a recurring class.
func RecurringEventID(classID string, at time.Time) string {
	return fmt.Sprintf("%s%s-%d", recurringPrefix, classID, at.UnixMilli())
}
