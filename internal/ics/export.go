// Package ics writes the event list as an iCalendar feed.
package ics

import (
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	ical "github.com/arran4/golang-ical"
)

const (
	productID   = "-//teachdesk//calendar export//EN"
	uidDomain   = "@teachdesk"
	defaultSpan = time.Hour
)

// Export writes events as a VCALENDAR. Each event's calendar date and
// HH:MM times are read as wall-clock times in loc. Events without a start
// time become all-day entries.
func Export(w io.Writer, events []domain.Event, loc *time.Location) error {
	return export(w, events, loc, time.Now())
}

func export(w io.Writer, events []domain.Event, loc *time.Location, stamp time.Time) error {
	if loc == nil {
		loc = time.Local
	}
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("teachdesk")
	cal.SetXWRTimezone(loc.String())

	for _, e := range events {
		ve := cal.AddEvent(e.ID + uidDomain)
		ve.SetDtStampTime(stamp)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Type != "" {
			ve.AddProperty(ical.ComponentPropertyCategories, string(e.Type))
		}
		if e.Color != "" {
			ve.AddProperty(ical.ComponentProperty("COLOR"), e.Color)
		}

		day := wallDay(e.Date, loc)
		if e.AllDay() {
			ve.SetAllDayStartAt(day)
			ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}
		start, end := span(day, e.StartTime, e.EndTime)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	return nil
}

// wallDay keeps t's calendar date and moves it to midnight in loc.
func wallDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// span resolves the start and end instants. A missing or non-positive end
// falls back to one hour after the start.
func span(day time.Time, startClock, endClock string) (time.Time, time.Time) {
	start := domain.AtClock(day, startClock)
	if endClock == "" {
		return start, start.Add(defaultSpan)
	}
	end := domain.AtClock(day, endClock)
	if !end.After(start) {
		end = start.Add(defaultSpan)
	}
	return start, end
}
