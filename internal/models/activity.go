package models

import (
	"strings"
	"time"

	"github.com/julianstephens/habit-tracker/internal/constants"
)

// Activity is a scheduled, time-boxed task or event
type Activity struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Time        string `json:"time" yaml:"time"` // display string, e.g. "18:00"
	Date        string `json:"date" yaml:"date"` // ISO date or ISO timestamp
	Duration    int    `json:"duration" yaml:"duration"`
	IsCompleted bool   `json:"isCompleted" yaml:"isCompleted"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Color       string `json:"color" yaml:"color"`
}

// ActivityFields carries every caller-supplied Activity attribute; the store assigns ID
type ActivityFields struct {
	Name        string
	Type        string
	Time        string
	Date        string
	Duration    int
	IsCompleted bool
	Notes       string
	Color       string
}

// Build materializes the fields into an Activity with the given id
func (f ActivityFields) Build(id string) Activity {
	return Activity{
		ID:          id,
		Name:        f.Name,
		Type:        f.Type,
		Time:        f.Time,
		Date:        f.Date,
		Duration:    f.Duration,
		IsCompleted: f.IsCompleted,
		Notes:       f.Notes,
		Color:       f.Color,
	}
}

// Day parses the activity date in loc. Both plain dates (2024-01-15) and
// full ISO timestamps are accepted; timestamps are converted into loc first.
func (a Activity) Day(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	s := strings.TrimSpace(a.Date)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(constants.DateFormat, s, loc); err == nil {
		return t, true
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.In(loc)
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}

// OnDay reports whether the activity is scheduled on the calendar day of d
func (a Activity) OnDay(d time.Time) bool {
	day, ok := a.Day(d.Location())
	if !ok {
		return false
	}
	y1, m1, d1 := day.Date()
	y2, m2, d2 := d.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
