package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habit-tracker/internal/models"
)

type HabitStatus string

const (
	HabitsAll HabitStatus = "all"
	// HabitsActive are habits not yet completed today
	HabitsActive    HabitStatus = "active"
	HabitsCompleted HabitStatus = "completed"
)

type ActivityStatus string

const (
	ActivitiesAll       ActivityStatus = "all"
	ActivitiesPending   ActivityStatus = "pending"
	ActivitiesCompleted ActivityStatus = "completed"
)

// ParseHabitStatus maps user input to a HabitStatus; empty means all
func ParseHabitStatus(s string) (HabitStatus, error) {
	switch st := HabitStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return HabitsAll, nil
	case HabitsAll, HabitsActive, HabitsCompleted:
		return st, nil
	}
	return "", fmt.Errorf("invalid habit status %q (expected all, active or completed)", s)
}

func ParseActivityStatus(s string) (ActivityStatus, error) {
	switch st := ActivityStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return ActivitiesAll, nil
	case ActivitiesAll, ActivitiesPending, ActivitiesCompleted:
		return st, nil
	}
	return "", fmt.Errorf("invalid activity status %q (expected all, pending or completed)", s)
}

// HabitFilter selects habits. Zero values match everything.
type HabitFilter struct {
	Status   HabitStatus
	Category string
	// Search matches a case-insensitive substring of the name
	Search string
}

func (f HabitFilter) Match(h models.Habit) bool {
	switch f.Status {
	case HabitsActive:
		if h.CompletedToday {
			return false
		}
	case HabitsCompleted:
		if !h.CompletedToday {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(h.Category, f.Category) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(h.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// FilterHabits returns matching habits in insertion order
func (s *Store) FilterHabits(f HabitFilter) []models.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Habit{}
	for _, h := range s.state.Habits {
		if f.Match(h) {
			out = append(out, h)
		}
	}
	return out
}

// CountHabits returns how many habits each status filter would show
func (s *Store) CountHabits() map[HabitStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[HabitStatus]int{HabitsAll: len(s.state.Habits)}
	for _, h := range s.state.Habits {
		if h.CompletedToday {
			counts[HabitsCompleted]++
		} else {
			counts[HabitsActive]++
		}
	}
	return counts
}

// ActivityFilter selects activities. A zero Date matches every day.
type ActivityFilter struct {
	Status ActivityStatus
	Date   time.Time
}

func (f ActivityFilter) Match(a models.Activity) bool {
	switch f.Status {
	case ActivitiesPending:
		if a.IsCompleted {
			return false
		}
	case ActivitiesCompleted:
		if !a.IsCompleted {
			return false
		}
	}
	if !f.Date.IsZero() && !a.OnDay(f.Date) {
		return false
	}
	return true
}

func (s *Store) FilterActivities(f ActivityFilter) []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Activity{}
	for _, a := range s.state.Activities {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// ActivitiesForDate returns the activities scheduled on the calendar day of
// day, ordered by their display time
func (s *Store) ActivitiesForDate(day time.Time) []models.Activity {
	out := s.FilterActivities(ActivityFilter{Date: day})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// ActivitiesInMonth groups activities by day of month for the calendar view.
// Days are interpreted in loc.
func (s *Store) ActivitiesInMonth(year int, month time.Month, loc *time.Location) map[int][]models.Activity {
	if loc == nil {
		loc = time.Local
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int][]models.Activity)
	for _, a := range s.state.Activities {
		day, ok := a.Day(loc)
		if !ok || day.Year() != year || day.Month() != month {
			continue
		}
		out[day.Day()] = append(out[day.Day()], a)
	}
	for d := range out {
		sort.SliceStable(out[d], func(i, j int) bool { return out[d][i].Time < out[d][j].Time })
	}
	return out
}
