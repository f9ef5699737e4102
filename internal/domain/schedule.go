package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is a Monday-indexed day of the week: 0 = Monday … 6 = Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// WeekdayOf converts a time.Weekday (Sunday = 0) to the Monday-indexed form.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// ParseWeekday accepts full or three-letter English day names
// (case-insensitive) or a number 0-6.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		d := Weekday(n)
		if !d.Valid() {
			return 0, fmt.Errorf("weekday %d out of range 0-6", n)
		}
		return d, nil
	}
	for i, name := range weekdayNames {
		lower := strings.ToLower(name)
		if s == lower || s == lower[:3] {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

type ScheduleTemplate struct {
	ID          string
	Name        string
	Color       string
	DayOfWeek   Weekday
	StartTime   string
	EndTime     string
	Description string
}

// Validate checks the slot times: both must be HH:MM and end must be after start.
func (t *ScheduleTemplate) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("template name is required")
	}
	if !t.DayOfWeek.Valid() {
		return fmt.Errorf("day of week %d out of range 0-6", int(t.DayOfWeek))
	}
	start, err := ParseClock(t.StartTime)
	if err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	end, err := ParseClock(t.EndTime)
	if err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if end <= start {
		return fmt.Errorf("end time %s must be after start time %s", t.EndTime, t.StartTime)
	}
	return nil
}

type RecurringClass struct {
	ID                 string
	Title              string
	Description        string
	ScheduleTemplateID string
	StartDate          time.Time
	EndDate            time.Time
	Color              string
	GroupName          string
	ProjectID          string
	Files              []FileAttachment
}

// ParseClock parses an "HH:MM" string into minutes after midnight.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || len(m) != 2 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

// AtClock returns day's midnight plus the clock time. An unparsable clock
// leaves the date at midnight.
func AtClock(day time.Time, clock string) time.Time {
	base := StartOfDay(day)
	mins, err := ParseClock(clock)
	if err != nil {
		return base
	}
	return time.Date(base.Year(), base.Month(), base.Day(), mins/60, mins%60, 0, 0, base.Location())
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfYear returns December 31 of t's year at midnight.
func EndOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, t.Location())
}
