package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habit-tracker/internal/models"
)

func viewStore(t *testing.T) *Store {
	t.Helper()
	habit := func(id, name, category string, done bool) models.Habit {
		h := models.NewHabitFields(name, category).Build(id, testNow)
		h.CompletedToday = done
		return h
	}
	activity := func(id, date, tm string, done bool) models.Activity {
		return models.Activity{ID: id, Name: "a" + id, Type: "work", Date: date, Time: tm, IsCompleted: done, Color: "#3F51B5"}
	}

	s, _ := newTestStore(t, WithSeed(models.State{
		Habits: []models.Habit{
			habit("h1", "Morning Run", "exercise", false),
			habit("h2", "Evening run", "exercise", true),
			habit("h3", "Read", "learning", true),
		},
		Activities: []models.Activity{
			activity("a1", "2024-01-15", "18:00", false),
			activity("a2", "2024-01-15T08:00:00.000Z", "08:00", true),
			activity("a3", "2024-01-16", "09:00", false),
			activity("a4", "2024-02-01", "09:00", true),
			activity("a5", "someday", "09:00", false),
		},
	}))
	return s
}

func habitIDs(hs []models.Habit) []string {
	ids := []string{}
	for _, h := range hs {
		ids = append(ids, h.ID)
	}
	return ids
}

func activityIDs(as []models.Activity) []string {
	ids := []string{}
	for _, a := range as {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestFilterHabits(t *testing.T) {
	s := viewStore(t)

	tests := []struct {
		name   string
		filter HabitFilter
		want   []string
	}{
		{"zero filter", HabitFilter{}, []string{"h1", "h2", "h3"}},
		{"active means not done today", HabitFilter{Status: HabitsActive}, []string{"h1"}},
		{"completed", HabitFilter{Status: HabitsCompleted}, []string{"h2", "h3"}},
		{"search is case-insensitive", HabitFilter{Search: "RUN"}, []string{"h1", "h2"}},
		{"category", HabitFilter{Category: "Learning"}, []string{"h3"}},
		{"combined", HabitFilter{Status: HabitsCompleted, Search: "run"}, []string{"h2"}},
		{"no match", HabitFilter{Search: "swim"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, habitIDs(s.FilterHabits(tt.filter)))
		})
	}
}

func TestCountHabits(t *testing.T) {
	counts := viewStore(t).CountHabits()
	require.Equal(t, 3, counts[HabitsAll])
	require.Equal(t, 1, counts[HabitsActive])
	require.Equal(t, 2, counts[HabitsCompleted])
}

func TestFilterActivities(t *testing.T) {
	s := viewStore(t)
	day := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	require.Equal(t, []string{"a1", "a3", "a5"}, activityIDs(s.FilterActivities(ActivityFilter{Status: ActivitiesPending})))
	require.Equal(t, []string{"a2", "a4"}, activityIDs(s.FilterActivities(ActivityFilter{Status: ActivitiesCompleted})))
	require.Equal(t, []string{"a1", "a2"}, activityIDs(s.FilterActivities(ActivityFilter{Date: day})))
}

func TestActivitiesForDateSortsByTime(t *testing.T) {
	s := viewStore(t)
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	require.Equal(t, []string{"a2", "a1"}, activityIDs(s.ActivitiesForDate(day)))
}

func TestActivitiesInMonth(t *testing.T) {
	s := viewStore(t)

	jan := s.ActivitiesInMonth(2024, time.January, time.UTC)
	require.Len(t, jan, 2)
	require.Equal(t, []string{"a2", "a1"}, activityIDs(jan[15]))
	require.Equal(t, []string{"a3"}, activityIDs(jan[16]))

	feb := s.ActivitiesInMonth(2024, time.February, time.UTC)
	require.Equal(t, []string{"a4"}, activityIDs(feb[1]))
}

func TestParseStatuses(t *testing.T) {
	hs, err := ParseHabitStatus("")
	require.NoError(t, err)
	require.Equal(t, HabitsAll, hs)

	hs, err = ParseHabitStatus("Completed")
	require.NoError(t, err)
	require.Equal(t, HabitsCompleted, hs)

	_, err = ParseHabitStatus("pending")
	require.Error(t, err)

	as, err := ParseActivityStatus("pending")
	require.NoError(t, err)
	require.Equal(t, ActivitiesPending, as)

	_, err = ParseActivityStatus("active")
	require.Error(t, err)
}
