package formatter

import (
	"fmt"
	"strings"
)

// FormatShellWelcome renders the banner shown on shell startup.
func FormatShellWelcome() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(StylePurple.Render("  teachdesk") + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n")
	b.WriteString("\n")
	b.WriteString("  " + StyleGreen.Render("today") + StyleDim.Render("          What's on today") + "\n")
	b.WriteString("  " + StyleGreen.Render("calendar") + StyleDim.Render("       The next two weeks") + "\n")
	b.WriteString("  " + StyleGreen.Render("board [project]") + StyleDim.Render(" Kanban board") + "\n")
	b.WriteString("  " + StyleGreen.Render("projects") + StyleDim.Render("       List your projects") + "\n")
	b.WriteString("  " + StyleGreen.Render("help") + StyleDim.Render("           Show all commands") + "\n")
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  Tab accepts a suggestion. Up/Down walk history.") + "\n")

	return b.String()
}

// helpCategory groups commands under a section header for the help display.
type helpCategory struct {
	title    string
	commands [][]string
}

func renderHelpCategory(cat helpCategory) string {
	var b strings.Builder
	b.WriteString("\n " + StyleHeader.Render(strings.ToUpper(cat.title)) + "\n")
	for _, c := range cat.commands {
		b.WriteString(fmt.Sprintf("  %-34s %s\n", StyleGreen.Render(c[0]), StyleDim.Render(c[1])))
	}
	return b.String()
}

// FormatShellHelp renders the categorized command reference.
func FormatShellHelp() string {
	categories := []helpCategory{
		{
			title: "Calendar",
			commands: [][]string{
				{"today", "Events for today"},
				{"calendar [--from --to]", "Agenda for a date range"},
				{"calendar export FILE", "Write the calendar as .ics"},
				{"event add|update|remove|show", "Manage your own events"},
			},
		},
		{
			title: "Projects",
			commands: [][]string{
				{"projects", "List projects"},
				{"project add|update|remove", "Manage projects and courses"},
				{"inspect <project>", "Project details and task tree"},
				{"board [project]", "Kanban board (general tasks by default)"},
			},
		},
		{
			title: "Tasks",
			commands: [][]string{
				{"task add|update|move|remove", "Manage tasks"},
				{"task attach --file|--drive", "Attach a file to a task"},
				{"subtask add|done|remove", "Manage checklist items"},
				{"column add|rename|remove|move", "Manage board columns"},
			},
		},
		{
			title: "Schedule",
			commands: [][]string{
				{"template add|update|remove|list", "Weekly time slots"},
				{"template import FILE", "Load slots from a YAML timetable"},
				{"class add|update|remove|list", "Recurring classes"},
			},
		},
		{
			title: "Drive",
			commands: [][]string{
				{"drive signin|signout|status", "Google Drive session"},
				{"drive ls [folder] | search Q", "Browse files"},
				{"drive link FILEID", "Create a shareable link"},
			},
		},
		{
			title: "Utilities",
			commands: [][]string{
				{"help", "Show this command reference"},
				{"clear", "Clear the screen"},
				{"exit / quit", "Quit teachdesk"},
			},
		},
	}

	var b strings.Builder
	for _, cat := range categories {
		b.WriteString(renderHelpCategory(cat))
	}
	b.WriteString("\n" + StyleDim.Render("Entities resolve by id, id prefix or name. Destructive commands ask first."))

	return RenderBox("Commands", b.String())
}

// FormatConfirmation renders a pending confirmation request.
func FormatConfirmation(title, message string) string {
	out := StyleYellow.Render(title)
	if message != "" {
		out += "\n" + StyleFg.Render(message)
	}
	return out + "\n" + Dim("Enter y to confirm, anything else to cancel.")
}

// FormatError renders an error line in the shell's error style.
func FormatError(err error) string {
	return StyleRed.Render("Error: " + err.Error())
}
