// Package generation computes derived calendar events from the entities
// that own them: weekly class occurrences from recurring classes and
// deadline markers from project end dates and task due dates.
//
// Everything here is pure. Callers replace the whole derived subset of the
// event list rather than patching it.
package generation

import (
	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/teambition/rrule-go"
)

var rruleWeekdays = [...]rrule.Weekday{
	rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU,
}

// RecurringEvents expands a recurring class against its weekly slot into one
// event per week on tpl.DayOfWeek, from rc.StartDate through rc.EndDate
// inclusive. Dates are interpreted in rc.StartDate's location.
// An end date before the start date yields no events.
func RecurringEvents(rc domain.RecurringClass, tpl domain.ScheduleTemplate) []domain.Event {
	if !tpl.DayOfWeek.Valid() {
		return nil
	}
	start := domain.StartOfDay(rc.StartDate)
	endDay := domain.StartOfDay(rc.EndDate.In(start.Location()))
	if endDay.Before(start) {
		return nil
	}

	offset := (int(tpl.DayOfWeek) - int(domain.WeekdayOf(start)) + 7) % 7
	first := start.AddDate(0, 0, offset)
	if first.After(endDay) {
		return nil
	}

	// UNTIL at the slot's start time on the last day keeps the day-granular
	// "occurrence date <= end date" comparison.
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Interval:  1,
		Byweekday: []rrule.Weekday{rruleWeekdays[tpl.DayOfWeek]},
		Dtstart:   domain.AtClock(first, tpl.StartTime),
		Until:     domain.AtClock(endDay, tpl.StartTime),
	})
	if err != nil {
		return nil
	}

	occurrences := r.All()
	events := make([]domain.Event, 0, len(occurrences))
	for _, at := range occurrences {
		events = append(events, domain.Event{
			ID:                 domain.RecurringEventID(rc.ID, at),
			Title:              rc.Title,
			Description:        domain.CoalesceStr(rc.Description, tpl.Description),
			Date:               at,
			StartTime:          tpl.StartTime,
			EndTime:            tpl.EndTime,
			Type:               domain.EventClass,
			Color:              domain.CoalesceStr(rc.Color, tpl.Color),
			ProjectID:          rc.ProjectID,
			ScheduleTemplateID: tpl.ID,
			GroupName:          domain.CoalesceStr(rc.GroupName, tpl.Name),
			Files:              rc.Files,
			Origin:             domain.Origin{Kind: domain.OriginRecurring, SourceID: rc.ID},
		})
	}
	return events
}

// WithoutRecurringClass returns events minus every occurrence generated for classID.
func WithoutRecurringClass(events []domain.Event, classID string) []domain.Event {
	return filterEvents(events, func(e *domain.Event) bool {
		return !e.OwnedBy(domain.OriginRecurring, classID)
	})
}

// RegenerateRecurringClass drops the class's previous occurrences and appends
// a fresh expansion.
func RegenerateRecurringClass(events []domain.Event, rc domain.RecurringClass, tpl domain.ScheduleTemplate) []domain.Event {
	out := WithoutRecurringClass(events, rc.ID)
	return append(out, RecurringEvents(rc, tpl)...)
}

// filterEvents returns a new slice holding the events keep accepts.
// The input slice is never modified.
func filterEvents(events []domain.Event, keep func(*domain.Event) bool) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for i := range events {
		if keep(&events[i]) {
			out = append(out, events[i])
		}
	}
	return out
}
