package formatter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

// Swatch renders a small block in the entity's own color. Invalid or empty
// colors fall back to the dim palette entry.
func Swatch(hex string) string {
	c := ColorDim
	if hexColor.MatchString(hex) {
		c = lipgloss.Color(hex)
	}
	return lipgloss.NewStyle().Foreground(c).Render("■")
}

// PriorityStyle returns the style for a task priority.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMedium:
		return StyleYellow
	case domain.PriorityLow:
		return StyleBlue
	default:
		return StyleDim
	}
}

// PriorityIndicator returns a colored marker such as "▲ high".
func PriorityIndicator(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("▲ high")
	case domain.PriorityMedium:
		return StyleYellow.Render("● medium")
	case domain.PriorityLow:
		return StyleBlue.Render("▽ low")
	default:
		return StyleDim.Render("● " + string(p))
	}
}

// EventTypeBadge returns a short colored label for an event type.
func EventTypeBadge(t domain.EventType) string {
	switch t {
	case domain.EventClass:
		return StyleGreen.Render("class")
	case domain.EventMeeting:
		return StyleBlue.Render("meeting")
	case domain.EventDeadline:
		return StyleRed.Render("deadline")
	case domain.EventAssignment:
		return StyleYellow.Render("assignment")
	case domain.EventPersonal:
		return StylePurple.Render("personal")
	default:
		return StyleDim.Render(string(t))
	}
}

// ProjectTypeBadge returns a capitalized, purple-styled project type label.
func ProjectTypeBadge(t domain.ProjectType) string {
	if t == "" || t == domain.ProjectNone {
		return StyleDim.Render("--")
	}
	s := string(t)
	return StylePurple.Render(strings.ToUpper(s[:1]) + s[1:])
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
