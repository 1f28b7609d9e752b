package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	todayStyle  = lipgloss.NewStyle().Bold(true).Reverse(true)
	busyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	now := ctx.Today()
	habits := ctx.Store.Habits()
	st := stats.Dashboard(habits, ctx.Store.Activities(), now)

	ctx.Println(headerStyle.Render(stats.Greeting(now)))
	ctx.Printf("%s\n\n", now.Format("Monday, January 2, 2006"))

	ctx.Printf("Habits done today:   %d/%d (%d%%)\n", st.CompletedToday, st.ActiveHabits, st.TodayRate)
	ctx.Printf("Weekly completion:   %d%%\n", st.WeeklyRate)
	ctx.Printf("Best streak:         %d days\n", st.BestStreak)
	ctx.Printf("Productive time:     %s\n", stats.FormatMinutes(st.ProductiveMinutes))
	ctx.Printf("Activities today:    %d\n", st.TodayActivities)

	ctx.Println()
	ctx.Println(headerStyle.Render("Habits"))
	if len(habits) == 0 {
		ctx.Println("  No habits yet. Add one with 'habit-tracker habit add'.")
	}
	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		mark := "○"
		if h.CompletedToday {
			mark = "✓"
		}
		ctx.Printf("  %s %s (streak %d)\n", mark, h.Name, h.CurrentStreak)
	}

	ctx.Println()
	ctx.Println(headerStyle.Render("Schedule"))
	today := ctx.Store.ActivitiesForDate(now)
	if len(today) == 0 {
		ctx.Println("  Nothing scheduled today.")
	}
	for _, a := range today {
		mark := "[ ]"
		if a.IsCompleted {
			mark = "[x]"
		}
		ctx.Printf("  %s %s  %s (%s)\n", mark, a.Time, a.Name, stats.FormatMinutes(a.Duration))
	}
	return nil
}

type CalendarCmd struct {
	Month string `short:"m" help:"Month to show (YYYY-MM); defaults to the current month."`
}

func (c *CalendarCmd) month(now time.Time) (time.Time, error) {
	if c.Month == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation(constants.MonthFormat, c.Month, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", c.Month)
	}
	return t, nil
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	now := ctx.Today()
	first, err := c.month(now)
	if err != nil {
		return err
	}

	byDay := ctx.Store.ActivitiesInMonth(first.Year(), first.Month(), now.Location())
	ctx.Println(renderMonth(first, now, byDay))

	if len(byDay) == 0 {
		ctx.Println("No activities this month.")
		return nil
	}

	daysInMonth := first.AddDate(0, 1, -1).Day()
	for d := 1; d <= daysInMonth; d++ {
		activities := byDay[d]
		if len(activities) == 0 {
			continue
		}
		day := time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, first.Location())
		ctx.Println(headerStyle.Render(day.Format("Mon Jan 2")))
		for _, a := range activities {
			mark := "[ ]"
			if a.IsCompleted {
				mark = "[x]"
			}
			ctx.Printf("  %s %s  %s (%s)\n", mark, a.Time, a.Name, models.ActivityTypeLabel(a.Type))
		}
	}
	return nil
}

// renderMonth draws a Sunday-first month grid. Today is highlighted and days
// with activities are colored.
func renderMonth(first, now time.Time, byDay map[int][]models.Activity) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(first.Format("January 2006")))
	b.WriteString("\nSu Mo Tu We Th Fr Sa\n")

	b.WriteString(strings.Repeat("   ", int(first.Weekday())))
	daysInMonth := first.AddDate(0, 1, -1).Day()
	for d := 1; d <= daysInMonth; d++ {
		cell := fmt.Sprintf("%2d", d)
		switch {
		case first.Year() == now.Year() && first.Month() == now.Month() && d == now.Day():
			cell = todayStyle.Render(cell)
		case len(byDay[d]) > 0:
			cell = busyStyle.Render(cell)
		}
		b.WriteString(cell)

		if time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, first.Location()).Weekday() == time.Saturday {
			b.WriteString("\n")
		} else if d < daysInMonth {
			b.WriteString(" ")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
