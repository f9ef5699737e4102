package timetable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
groups:
  - name: Algebra
    color: "#2563eb"
    description: Room 204
    slots:
      - {day: monday, start: "08:00", end: "09:30"}
      - {day: Thu, start: "08:00", end: "09:30"}
  - name: Homeroom
    slots:
      - day: 4
        start: "07:45"
        end: "08:00"
`

func TestParse_ExpandsGroupsIntoSlots(t *testing.T) {
	tpls, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, tpls, 3)

	assert.Equal(t, "Algebra", tpls[0].Name)
	assert.Equal(t, domain.Monday, tpls[0].DayOfWeek)
	assert.Equal(t, "08:00", tpls[0].StartTime)
	assert.Equal(t, "09:30", tpls[0].EndTime)
	assert.Equal(t, "#2563eb", tpls[0].Color)
	assert.Equal(t, "Room 204", tpls[0].Description)
	assert.Equal(t, domain.Thursday, tpls[1].DayOfWeek)
	assert.Equal(t, "Homeroom", tpls[2].Name)
	assert.Equal(t, domain.Friday, tpls[2].DayOfWeek)

	ids := map[string]bool{}
	for _, tpl := range tpls {
		assert.NotEmpty(t, tpl.ID)
		ids[tpl.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestParse_RejectsInvalidSlots(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"end before start", "groups: [{name: A, slots: [{day: mon, start: '10:00', end: '09:00'}]}]"},
		{"bad clock", "groups: [{name: A, slots: [{day: mon, start: '8am', end: '09:00'}]}]"},
		{"bad day", "groups: [{name: A, slots: [{day: someday, start: '08:00', end: '09:00'}]}]"},
		{"day out of range", "groups: [{name: A, slots: [{day: 7, start: '08:00', end: '09:00'}]}]"},
		{"no name", "groups: [{slots: [{day: mon, start: '08:00', end: '09:00'}]}]"},
		{"no slots", "groups: [{name: A}]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.doc))
			assert.ErrorIs(t, err, ErrInvalidSlot)
		})
	}
}

func TestParse_UnknownKeysAndEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader("groups: [{name: A, room: 12, slots: []}]"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSlot)

	tpls, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tpls)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timetable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	tpls, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, tpls, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
