package habits

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/store"
	"github.com/julianstephens/habit-tracker/internal/tui/forms"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits." default:"1"`
	Show   HabitShowCmd   `cmd:"" help:"Show one habit."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a habit done (or not done) for today."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
}

// runForm is swapped out in tests
var runForm = func(fm *forms.HabitFormModel) error {
	return forms.NewHabitForm(fm).Run()
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name."`
	Category    string `short:"c" help:"Category (health, exercise, learning, productivity, nutrition, mindfulness, social, personal)." default:"health"`
	Description string `short:"d" help:"Description."`
	Color       string `help:"Display color; defaults to the category color."`
	Frequency   string `short:"f" help:"Frequency (daily|weekly|monthly)." enum:"daily,weekly,monthly" default:"daily"`
	Target      int    `short:"t" help:"Completions per period." default:"1"`
	Reminder    string `short:"r" help:"Reminder time (HH:MM)."`
	Interactive bool   `short:"i" help:"Fill in the habit with an interactive form."`
}

func (c *HabitAddCmd) Validate() error {
	if !c.Interactive && strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("habit name is required unless --interactive is set")
	}
	if c.Target < 1 {
		return fmt.Errorf("target must be at least 1")
	}
	return nil
}

func (c *HabitAddCmd) fields() (models.HabitFields, error) {
	if c.Interactive {
		fm := forms.NewHabitFormModel()
		fm.Name = c.Name
		if _, ok := models.LookupCategory(c.Category); ok {
			fm.Category = c.Category
		}
		if err := runForm(fm); err != nil {
			return models.HabitFields{}, err
		}
		return fm.Fields()
	}

	f := models.NewHabitFields(strings.TrimSpace(c.Name), c.Category)
	f.Description = c.Description
	f.FrequencyType = models.FrequencyType(c.Frequency)
	f.TargetFrequency = c.Target
	if c.Color != "" {
		f.Color = c.Color
	}
	if c.Reminder != "" {
		reminder, err := cli.ParseClock(c.Reminder)
		if err != nil {
			return models.HabitFields{}, err
		}
		f.ReminderTime = reminder
	}
	return f, nil
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	f, err := c.fields()
	if err != nil {
		return err
	}

	habit, err := ctx.Store.AddHabit(f)
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	ctx.AfterChange()

	ctx.Printf("Added habit: %s (ID: %s)\n", habit.Name, habit.ID)
	return nil
}

type HabitListCmd struct {
	Status   string `short:"s" help:"Filter by status (all|active|completed)." default:"all"`
	Category string `short:"c" help:"Only show habits in this category."`
	Search   string `short:"q" help:"Only show habits whose name contains this text."`
	JSON     bool   `help:"Print habits as JSON."`
}

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func statusMark(done bool) string {
	if done {
		return doneStyle.Render("✓")
	}
	return pendingStyle.Render("○")
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	status, err := store.ParseHabitStatus(c.Status)
	if err != nil {
		return err
	}

	habits := ctx.Store.FilterHabits(store.HabitFilter{
		Status:   status,
		Category: c.Category,
		Search:   c.Search,
	})

	if c.JSON {
		data, err := json.MarshalIndent(habits, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal habits: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	counts := ctx.Store.CountHabits()
	ctx.Printf("Habits (%d all, %d active, %d completed today):\n",
		counts[store.HabitsAll], counts[store.HabitsActive], counts[store.HabitsCompleted])

	if len(habits) == 0 {
		ctx.Println("  No habits found")
		return nil
	}

	for _, h := range habits {
		ctx.Printf("  %s %s  [%s]  streak %d, progress %d%%, week %d/%d\n",
			statusMark(h.CompletedToday), h.Name, models.CategoryLabel(h.Category),
			h.CurrentStreak, h.Progress, h.WeeklyProgress.Completed(), constants.WeekDays)
		ctx.Printf("      ID: %s\n", h.ID)
	}
	return nil
}

type HabitShowCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	h, ok := ctx.Store.Habit(c.ID)
	if !ok {
		ctx.Printf("No habit with ID %s\n", c.ID)
		return nil
	}

	ctx.Printf("%s\n", h.Name)
	if h.Description != "" {
		ctx.Printf("  %s\n", h.Description)
	}
	ctx.Printf("  ID:          %s\n", h.ID)
	ctx.Printf("  Category:    %s\n", models.CategoryLabel(h.Category))
	ctx.Printf("  Frequency:   %d x %s\n", h.TargetFrequency, h.FrequencyType)
	if h.ReminderTime != "" {
		ctx.Printf("  Reminder:    %s\n", h.ReminderTime)
	}
	ctx.Printf("  Active:      %v\n", h.IsActive)
	ctx.Printf("  Done today:  %v\n", h.CompletedToday)
	ctx.Printf("  Streak:      %d\n", h.CurrentStreak)
	ctx.Printf("  Progress:    %d%%\n", h.Progress)

	week := make([]string, len(h.WeeklyProgress))
	for i, done := range h.WeeklyProgress {
		week[i] = statusMark(done)
	}
	ctx.Printf("  This week:   %s\n", strings.Join(week, " "))
	ctx.Printf("  Created:     %s\n", h.CreatedAt.Local().Format(constants.DateFormat+" "+constants.TimeFormat))
	return nil
}

type HabitToggleCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	if _, ok := ctx.Store.Habit(c.ID); !ok {
		ctx.Printf("No habit with ID %s\n", c.ID)
		return nil
	}
	if err := ctx.Store.ToggleHabit(c.ID); err != nil {
		return fmt.Errorf("failed to toggle habit: %w", err)
	}
	ctx.AfterChange()

	h, _ := ctx.Store.Habit(c.ID)
	if h.CompletedToday {
		ctx.Printf("✓ %s done today (streak %d, progress %d%%)\n", h.Name, h.CurrentStreak, h.Progress)
	} else {
		ctx.Printf("○ %s marked not done\n", h.Name)
	}
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, ok := ctx.Store.Habit(c.ID)
	if !ok {
		ctx.Printf("No habit with ID %s\n", c.ID)
		return nil
	}
	if err := ctx.Store.DeleteHabit(c.ID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	ctx.AfterChange()

	ctx.Printf("Deleted habit: %s\n", h.Name)
	return nil
}
