package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2024, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"later today", now.Add(11 * time.Hour), "Today"},
		{"tomorrow morning", time.Date(2024, 2, 8, 1, 0, 0, 0, time.UTC), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.AddDate(0, 0, 3), "In 3d"},
		{"3 days past", now.AddDate(0, 0, -3), "3d ago"},
		{"10 days future", now.AddDate(0, 0, 10), "In 10d"},
		{"3 weeks future", now.AddDate(0, 0, 21), "In 3w"},
		{"3 months future", now.AddDate(0, 0, 90), "In 3mo"},
		{"2 weeks past", now.AddDate(0, 0, -14), "2w ago"},
		{"3 months past", now.AddDate(0, 0, -90), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestHumanDate(t *testing.T) {
	now := time.Date(2024, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Mon, Jan 8", HumanDate(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Sep 30, 2022", HumanDate(time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC), now))
}

func TestClockRange(t *testing.T) {
	assert.Equal(t, "all day", ClockRange("", ""))
	assert.Equal(t, "09:00", ClockRange("09:00", ""))
	assert.Equal(t, "09:00-10:30", ClockRange("09:00", "10:30"))
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{248_331, "242.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanSize(tt.in))
		})
	}
}

func TestSubtaskBadge(t *testing.T) {
	assert.Empty(t, SubtaskBadge(domain.Task{}))

	task := domain.Task{Subtasks: []domain.Subtask{
		{ID: "a", Completed: true},
		{ID: "b"},
		{ID: "c", Completed: true},
	}}
	assert.Equal(t, "2/3", SubtaskBadge(task))
}

func TestPriorityIndicator(t *testing.T) {
	assert.Contains(t, stripANSI(PriorityIndicator(domain.PriorityHigh)), "high")
	assert.Contains(t, stripANSI(PriorityIndicator(domain.PriorityMedium)), "medium")
	assert.Contains(t, stripANSI(PriorityIndicator(domain.PriorityLow)), "low")
}

func TestProjectTypeBadge(t *testing.T) {
	assert.Contains(t, stripANSI(ProjectTypeBadge(domain.ProjectCourse)), "Course")
	assert.Contains(t, stripANSI(ProjectTypeBadge(domain.ProjectNone)), "--")
	assert.Contains(t, stripANSI(ProjectTypeBadge("")), "--")
}

func TestSwatch_FallsBackOnInvalidColor(t *testing.T) {
	assert.Contains(t, stripANSI(Swatch("#3b82f6")), "■")
	assert.Contains(t, stripANSI(Swatch("blue")), "■")
	assert.Contains(t, stripANSI(Swatch("")), "■")
}

func TestTruncID(t *testing.T) {
	got := stripANSI(TruncID("a1b2c3d4-e5f6-7890-abcd-ef1234567890"))
	assert.Equal(t, "a1b2c3d4", got)

	assert.Equal(t, "short", stripANSI(TruncID("short")))
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("test", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	result := RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}
