package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
)

// FormatAgenda renders events grouped by day. Events must already be in
// display order. projectNames maps project ids to names for the detail
// column; unknown ids are left out.
func FormatAgenda(events []domain.Event, projectNames map[string]string, now time.Time) string {
	if len(events) == 0 {
		return Dim("No events in this range.")
	}

	var b strings.Builder
	var current time.Time
	for i, e := range events {
		day := e.Day()
		if i == 0 || !day.Equal(current) {
			if i > 0 {
				b.WriteString("\n")
			}
			current = day
			heading := StyleHeader.Render(HumanDate(day, now))
			if rel := RelativeDateFrom(day, now); rel == "Today" || rel == "Tomorrow" {
				heading += " " + Dim(rel)
			}
			b.WriteString(heading + "\n")
		}
		b.WriteString(agendaLine(e, projectNames) + "\n")
	}
	return b.String()
}

func agendaLine(e domain.Event, projectNames map[string]string) string {
	clock := fmt.Sprintf("%-11s", ClockRange(e.StartTime, e.EndTime))
	parts := []string{
		"  " + Dim(clock),
		Swatch(e.Color),
		StyleFg.Render(e.Title),
		EventTypeBadge(e.Type),
	}
	if name, ok := projectNames[e.ProjectID]; ok && name != "" {
		parts = append(parts, StylePurple.Render(name))
	}
	if e.IsDerived() {
		parts = append(parts, Dim("(auto)"))
	}
	if n := len(e.Files); n > 0 {
		parts = append(parts, Dim(fmt.Sprintf("📎%d", n)))
	}
	parts = append(parts, TruncID(e.ID))
	return strings.Join(parts, " ")
}

// FormatEventDetail renders one event with its attachments.
func FormatEventDetail(e domain.Event, now time.Time) string {
	var b strings.Builder
	b.WriteString(Swatch(e.Color) + " " + Bold(e.Title) + "  " + EventTypeBadge(e.Type) + "\n\n")
	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-8s", label)), value))
	}
	row("ID", e.ID)
	row("DATE", HumanDate(e.Day(), now)+" "+Dim("("+RelativeDateFrom(e.Day(), now)+")"))
	row("TIME", ClockRange(e.StartTime, e.EndTime))
	if e.GroupName != "" {
		row("GROUP", e.GroupName)
	}
	if e.IsDerived() {
		row("SOURCE", string(e.Origin.Kind)+" "+Dim(e.Origin.SourceID))
	}
	if e.Description != "" {
		b.WriteString("\n" + StyleFg.Render(e.Description) + "\n")
	}
	if len(e.Files) > 0 {
		b.WriteString("\n" + FormatAttachments(e.Files))
	}
	return RenderBox("Event", strings.TrimRight(b.String(), "\n"))
}

// FormatAttachments renders a file list with sizes and links.
func FormatAttachments(files []domain.FileAttachment) string {
	if len(files) == 0 {
		return Dim("No attachments.")
	}
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		size := Dim("--")
		if f.Size > 0 {
			size = HumanSize(f.Size)
		}
		rows = append(rows, []string{StyleFg.Render(f.Name), Dim(f.MimeType), size, StyleBlue.Render(f.URL)})
	}
	return RenderTable([]string{"FILE", "TYPE", "SIZE", "LINK"}, rows)
}
