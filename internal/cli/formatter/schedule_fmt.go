package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teachdesk/internal/domain"
)

// FormatTemplateList renders schedule templates grouped by name, in the
// order given by names.
func FormatTemplateList(groups map[string][]domain.ScheduleTemplate, names []string) string {
	if len(names) == 0 {
		return Dim("No schedule templates. Add one with 'template add' or 'template import'.")
	}

	rows := make([][]string, 0)
	for _, name := range names {
		for i, t := range groups[name] {
			label := ""
			if i == 0 {
				label = Swatch(t.Color) + " " + Bold(name)
			}
			rows = append(rows, []string{
				label,
				StyleFg.Render(t.DayOfWeek.String()),
				StyleFg.Render(ClockRange(t.StartTime, t.EndTime)),
				TruncID(t.ID),
			})
		}
	}
	return RenderBox("Schedule", RenderTable([]string{"GROUP", "DAY", "TIME", "ID"}, rows))
}

// FormatClassList renders recurring classes with their slot and project.
func FormatClassList(classes []domain.RecurringClass, templates map[string]domain.ScheduleTemplate, projectNames map[string]string) string {
	if len(classes) == 0 {
		return Dim("No recurring classes.")
	}

	rows := make([][]string, 0, len(classes))
	for _, rc := range classes {
		slot := Dim("--")
		if t, ok := templates[rc.ScheduleTemplateID]; ok {
			slot = StyleFg.Render(t.DayOfWeek.String()[:3] + " " + ClockRange(t.StartTime, t.EndTime))
		}
		project := Dim("--")
		if name, ok := projectNames[rc.ProjectID]; ok {
			project = StylePurple.Render(name)
		}
		rows = append(rows, []string{
			TruncID(rc.ID),
			Swatch(rc.Color) + " " + Bold(rc.Title),
			slot,
			StyleFg.Render(rc.StartDate.Format("2006-01-02") + " → " + rc.EndDate.Format("2006-01-02")),
			project,
		})
	}
	return RenderBox("Classes", RenderTable([]string{"ID", "TITLE", "SLOT", "RANGE", "PROJECT"}, rows))
}

// FormatTemplateGroupSummary renders one line per group, e.g. "Algebra 1 (3 slots)".
func FormatTemplateGroupSummary(groups map[string][]domain.ScheduleTemplate, names []string) string {
	var b strings.Builder
	for _, name := range names {
		n := len(groups[name])
		unit := "slots"
		if n == 1 {
			unit = "slot"
		}
		b.WriteString("  " + StyleGreen.Render(name) + " " + Dim(fmt.Sprintf("(%d %s)", n, unit)) + "\n")
	}
	return b.String()
}
