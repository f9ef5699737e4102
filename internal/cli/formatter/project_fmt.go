package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ProjectInspectData holds everything the project inspect view renders.
type ProjectInspectData struct {
	Project   domain.Project
	Parent    *domain.Project
	Classes   []domain.RecurringClass
	Deadlines []domain.Event
	Now       time.Time
}

// FormatProjectList renders projects as a table inside a bordered box.
func FormatProjectList(projects []domain.Project, now time.Time) string {
	headers := []string{"ID", "NAME", "TYPE", "PROGRESS", "START", "END"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		end := Dim("--")
		if p.EndDate != nil {
			end = RelativeDateStyled(*p.EndDate, now)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Swatch(p.Color) + " " + Bold(p.Name),
			ProjectTypeBadge(p.Type),
			RenderTaskProgress(p.CountDone(), len(p.Tasks), 10),
			StyleFg.Render(p.StartDate.Format("2006-01-02")),
			end,
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectInspect renders a project card: metadata on the left, task
// tree on the right.
func FormatProjectInspect(data ProjectInspectData) string {
	left := buildMetadataPanel(data)
	right := buildTaskPanel(data.Project)
	return RenderBox("", lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
}

func buildMetadataPanel(data ProjectInspectData) string {
	p := data.Project
	var b strings.Builder

	b.WriteString(Swatch(p.Color) + " " + StyleBold.Render(p.Name) + "\n")
	b.WriteString(ProjectTypeBadge(p.Type) + "\n\n")

	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-7s", label)), value))
	}
	row("ID", Dim(p.ID))
	row("START", StyleFg.Render(HumanDate(p.StartDate, data.Now)))
	if p.EndDate != nil {
		row("END", RelativeDateStyled(*p.EndDate, data.Now)+" "+Dim("("+p.EndDate.Format("Jan 2, 2006")+")"))
	}
	if data.Parent != nil {
		row("COURSE", StylePurple.Render(data.Parent.Name))
	}
	row("FILES", StyleFg.Render(fmt.Sprintf("%d", len(p.Files))))
	if p.Description != "" {
		b.WriteString("\n" + StyleFg.Render(p.Description) + "\n")
	}

	if len(data.Classes) > 0 {
		b.WriteString("\n" + StyleHeader.Render("CLASSES") + "\n")
		for _, rc := range data.Classes {
			b.WriteString(fmt.Sprintf("%s %s %s\n", Swatch(rc.Color), StyleFg.Render(rc.Title), Dim(rc.GroupName)))
		}
	}

	if len(data.Deadlines) > 0 {
		b.WriteString("\n" + StyleHeader.Render("DEADLINES") + "\n")
		for _, e := range data.Deadlines {
			b.WriteString(fmt.Sprintf("%s  %s\n", RelativeDateStyled(e.Date, data.Now), StyleFg.Render(e.Title)))
		}
	}

	return lipgloss.NewStyle().Width(48).Render(b.String())
}

func buildTaskPanel(p domain.Project) string {
	header := StyleHeader.Render("TASKS") + " " + RenderTaskProgress(p.CountDone(), len(p.Tasks), 10)
	if len(p.Tasks) == 0 {
		return header + "\n" + Dim("No tasks")
	}

	var items []TreeItem
	for _, col := range p.Columns {
		var tasks []domain.Task
		for _, t := range p.Tasks {
			if t.ColumnID == col.ID {
				tasks = append(tasks, t)
			}
		}
		if len(tasks) == 0 {
			continue
		}
		items = append(items, TreeItem{Title: col.Title, Detail: fmt.Sprintf("%d", len(tasks))})
		for i, t := range tasks {
			items = append(items, TreeItem{
				Title:  t.Title + " " + TruncID(t.ID),
				Level:  1,
				IsLast: i == len(tasks)-1,
				Done:   t.Completed,
				Active: col.ID == domain.ColumnInProgress,
				Detail: SubtaskBadge(t),
			})
			for j, st := range t.Subtasks {
				items = append(items, TreeItem{
					Title:  st.Title + " " + TruncID(st.ID),
					Level:  2,
					IsLast: j == len(t.Subtasks)-1,
					Done:   st.Completed,
				})
			}
		}
	}
	return header + "\n" + RenderTree(items)
}
