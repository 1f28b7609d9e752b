package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
)

// DashboardStats summarizes the day for the dashboard view
type DashboardStats struct {
	CompletedToday int
	ActiveHabits   int
	// TodayRate is the rounded percentage of active habits completed today
	TodayRate int
	// WeeklyRate is the rounded average of the weekly completion marks of active habits
	WeeklyRate int
	BestStreak int
	// ProductiveMinutes sums completed work and study activities
	ProductiveMinutes int
	TodayActivities   int
}

// ActivityStats summarizes the activities list
type ActivityStats struct {
	Total             int
	Completed         int
	ProductiveMinutes int
	CompletionRate    int
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// IsProductive reports whether an activity type counts toward productive time
func IsProductive(activityType string) bool {
	for _, t := range constants.ProductiveActivityTypes {
		if t == activityType {
			return true
		}
	}
	return false
}

func productiveMinutes(activities []models.Activity) int {
	total := 0
	for _, a := range activities {
		if a.IsCompleted && IsProductive(a.Type) {
			total += a.Duration
		}
	}
	return total
}

func Dashboard(habits []models.Habit, activities []models.Activity, now time.Time) DashboardStats {
	var st DashboardStats
	weeklyMarks := 0

	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		st.ActiveHabits++
		if h.CompletedToday {
			st.CompletedToday++
		}
		if h.CurrentStreak > st.BestStreak {
			st.BestStreak = h.CurrentStreak
		}
		weeklyMarks += h.WeeklyProgress.Completed()
	}

	st.TodayRate = percent(st.CompletedToday, st.ActiveHabits)
	st.WeeklyRate = percent(weeklyMarks, st.ActiveHabits*constants.WeekDays)
	st.ProductiveMinutes = productiveMinutes(activities)

	for _, a := range activities {
		if a.OnDay(now) {
			st.TodayActivities++
		}
	}
	return st
}

func Activities(activities []models.Activity) ActivityStats {
	st := ActivityStats{Total: len(activities)}
	for _, a := range activities {
		if a.IsCompleted {
			st.Completed++
		}
	}
	st.ProductiveMinutes = productiveMinutes(activities)
	st.CompletionRate = percent(st.Completed, st.Total)
	return st
}

// CalculateStreak counts consecutive calendar days ending at the most recent
// completion. Several completions on one day count once.
func CalculateStreak(completions []time.Time) int {
	if len(completions) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(completions))
	seen := make(map[time.Time]bool, len(completions))
	for _, c := range completions {
		d := time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, c.Location())
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 1
	for i := 1; i < len(days); i++ {
		prev := days[i-1].AddDate(0, 0, -1)
		if !days[i].Equal(prev) {
			break
		}
		streak++
	}
	return streak
}

// FormatMinutes renders a duration as 45m, 2h or 1h 30m
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// Greeting picks a salutation for the hour of t
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < constants.AfternoonStartHour:
		return "Good morning"
	case h < constants.EveningStartHour:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
