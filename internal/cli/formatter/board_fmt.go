package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const boardColumnWidth = 30

// FormatBoard renders a project's kanban columns side by side.
func FormatBoard(p domain.Project, now time.Time) string {
	header := Swatch(p.Color) + " " + Bold(p.Name) + "  " +
		RenderTaskProgress(p.CountDone(), len(p.Tasks), 12)

	if len(p.Columns) == 0 {
		return header + "\n\n" + Dim("This project has no columns.")
	}

	columns := make([]string, 0, len(p.Columns)*2)
	for i, col := range p.Columns {
		if i > 0 {
			columns = append(columns, " ")
		}
		columns = append(columns, renderColumn(p, col, now))
	}
	return header + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func renderColumn(p domain.Project, col domain.KanbanColumn, now time.Time) string {
	var cards []string
	for _, t := range p.Tasks {
		if t.ColumnID == col.ID {
			cards = append(cards, renderCard(t, now))
		}
	}

	title := StyleHeader.Render(col.Title) + " " + Dim(fmt.Sprintf("(%d)", len(cards)))
	body := Dim("empty")
	if len(cards) > 0 {
		body = strings.Join(cards, "\n\n")
	}

	return lipgloss.NewStyle().
		Width(boardColumnWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1).
		Render(title + "\n" + Dim(col.ID) + "\n\n" + body)
}

func renderCard(t domain.Task, now time.Time) string {
	title := StyleFg.Render(t.Title)
	if t.Completed {
		title = StyleGreen.Render("✔ ") + Dim(t.Title)
	}

	meta := []string{PriorityIndicator(t.Priority)}
	if t.DueDate != nil {
		due := RelativeDateStyled(*t.DueDate, now)
		if t.Completed {
			due = Dim(RelativeDateFrom(*t.DueDate, now))
		}
		meta = append(meta, due)
	}
	if badge := SubtaskBadge(t); badge != "" {
		meta = append(meta, StyleBlue.Render(badge))
	}
	if n := len(t.Files); n > 0 {
		meta = append(meta, Dim(fmt.Sprintf("📎%d", n)))
	}
	return title + "\n" + strings.Join(meta, " ") + "\n" + TruncID(t.ID)
}
