package domain

type EventType string

const (
	EventClass      EventType = "class"
	EventMeeting    EventType = "meeting"
	EventDeadline   EventType = "deadline"
	EventPersonal   EventType = "personal"
	EventAssignment EventType = "assignment"
)

// ValidEventTypes is the canonical set of accepted event type strings.
var ValidEventTypes = map[string]bool{
	"class": true, "meeting": true, "deadline": true,
	"personal": true, "assignment": true,
}

// OriginKind says who owns an event. Everything except OriginUser is
// regenerated wholesale from its source entity.
type OriginKind string

const (
	OriginUser            OriginKind = "user"
	OriginProjectDeadline OriginKind = "project_deadline"
	OriginTaskDeadline    OriginKind = "task_deadline"
	OriginRecurring       OriginKind = "recurring"
)

type ProjectType string

const (
	ProjectNone           ProjectType = "none"
	ProjectCourse         ProjectType = "course"
	ProjectAdministrative ProjectType = "administrative"
	ProjectPersonal       ProjectType = "personal"
)

// ValidProjectTypes is the canonical set of accepted project type strings.
var ValidProjectTypes = map[string]bool{
	"none": true, "course": true, "administrative": true, "personal": true,
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "medium": true, "high": true,
}

type AttachmentSource string

const (
	SourceLocal AttachmentSource = "local"
	SourceDrive AttachmentSource = "drive"
)
