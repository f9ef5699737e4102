// Package timetable imports weekly schedule template groups from YAML.
//
// A file lists groups; each group becomes one ScheduleTemplate per slot,
// all sharing the group's name:
//
//	groups:
//	  - name: Algebra
//	    color: "#2563eb"
//	    slots:
//	      - {day: monday, start: "08:00", end: "09:30"}
//	      - {day: thu, start: "08:00", end: "09:30"}
package timetable

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSlot wraps every validation failure of a group or slot.
var ErrInvalidSlot = errors.New("invalid timetable slot")

// File is the YAML document layout.
type File struct {
	Groups []Group `yaml:"groups"`
}

type Group struct {
	Name        string `yaml:"name"`
	Color       string `yaml:"color"`
	Description string `yaml:"description"`
	Slots       []Slot `yaml:"slots"`
}

// Slot is one weekly meeting. Day accepts English day names, three-letter
// abbreviations or 0-6 with 0 = Monday.
type Slot struct {
	Day   string `yaml:"day"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Parse decodes a timetable and returns one validated template per slot,
// in file order. Unknown keys are rejected.
func Parse(r io.Reader) ([]domain.ScheduleTemplate, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode timetable: %w", err)
	}
	return f.Templates()
}

// Load reads and parses a timetable file.
func Load(path string) ([]domain.ScheduleTemplate, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timetable: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

// Templates converts the document into schedule templates with fresh ids.
func (f File) Templates() ([]domain.ScheduleTemplate, error) {
	var out []domain.ScheduleTemplate
	for gi, g := range f.Groups {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: group %d has no name", ErrInvalidSlot, gi+1)
		}
		if len(g.Slots) == 0 {
			return nil, fmt.Errorf("%w: group %q has no slots", ErrInvalidSlot, name)
		}
		for si, s := range g.Slots {
			day, err := domain.ParseWeekday(s.Day)
			if err != nil {
				return nil, fmt.Errorf("%w: %s slot %d: %v", ErrInvalidSlot, name, si+1, err)
			}
			tpl := domain.ScheduleTemplate{
				ID:          uuid.New().String(),
				Name:        name,
				Color:       g.Color,
				DayOfWeek:   day,
				StartTime:   strings.TrimSpace(s.Start),
				EndTime:     strings.TrimSpace(s.End),
				Description: g.Description,
			}
			if err := tpl.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %s slot %d: %v", ErrInvalidSlot, name, si+1, err)
			}
			out = append(out, tpl)
		}
	}
	return out, nil
}
