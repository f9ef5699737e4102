package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatAgenda_Empty(t *testing.T) {
	now := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	assert.Contains(t, stripANSI(FormatAgenda(nil, nil, now)), "No events")
}

func TestFormatAgenda_GroupsByDay(t *testing.T) {
	now := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	mon := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	wed := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	events := []domain.Event{
		{ID: "e1", Title: "Algebra 1", Date: mon, StartTime: "09:00", EndTime: "10:00", Type: domain.EventClass, ProjectID: "p1"},
		{ID: "e2", Title: "Staff meeting", Date: mon, StartTime: "15:00", EndTime: "16:00", Type: domain.EventMeeting},
		{
			ID: domain.ProjectDeadlineID("p1"), Title: "Algebra Due", Date: wed, Type: domain.EventDeadline,
			Origin: domain.Origin{Kind: domain.OriginProjectDeadline, SourceID: "p1"},
		},
	}

	out := stripANSI(FormatAgenda(events, map[string]string{"p1": "Algebra"}, now))

	assert.Equal(t, 1, strings.Count(out, "Mon, Jan 8"))
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "Wed, Jan 10")
	assert.Contains(t, out, "09:00-10:00")
	assert.Contains(t, out, "all day")
	assert.Contains(t, out, "Staff meeting")
	assert.Contains(t, out, "(auto)")
	assert.Contains(t, out, "Algebra")

	// Monday's events come before Wednesday's heading.
	assert.Less(t, strings.Index(out, "Staff meeting"), strings.Index(out, "Wed, Jan 10"))
}

func TestFormatEventDetail(t *testing.T) {
	now := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	e := domain.Event{
		ID:          "e1",
		Title:       "Parent night",
		Description: "Room 204",
		Date:        time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
		StartTime:   "18:00",
		EndTime:     "19:30",
		Type:        domain.EventMeeting,
		Files: []domain.FileAttachment{
			{ID: "f1", Name: "agenda.pdf", MimeType: "application/pdf", Size: 2048, URL: "file:///tmp/agenda.pdf"},
		},
	}

	out := stripANSI(FormatEventDetail(e, now))

	assert.Contains(t, out, "Parent night")
	assert.Contains(t, out, "Tomorrow")
	assert.Contains(t, out, "18:00-19:30")
	assert.Contains(t, out, "Room 204")
	assert.Contains(t, out, "agenda.pdf")
	assert.Contains(t, out, "2.0 KB")
	assert.NotContains(t, out, "SOURCE")
}
