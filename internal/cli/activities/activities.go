package activities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/scheduler"
	"github.com/julianstephens/habit-tracker/internal/stats"
	"github.com/julianstephens/habit-tracker/internal/store"
)

type ActivityCmd struct {
	Add    ActivityAddCmd    `cmd:"" help:"Schedule an activity."`
	List   ActivityListCmd   `cmd:"" help:"List activities." default:"1"`
	Toggle ActivityToggleCmd `cmd:"" help:"Mark an activity completed or pending."`
	Delete ActivityDeleteCmd `cmd:"" help:"Delete an activity."`
}

type ActivityAddCmd struct {
	Name     string `arg:"" help:"Activity name."`
	Type     string `short:"t" help:"Activity type (meeting, exercise, study, meal, work, personal)." default:"work"`
	Time     string `short:"T" help:"Start time (HH:MM); the next free slot of the day when omitted."`
	Date     string `short:"d" help:"Date (YYYY-MM-DD, today, tomorrow)." default:"today"`
	Duration int    `short:"m" help:"Duration in minutes." default:"30"`
	Notes    string `short:"n" help:"Notes."`
	Color    string `help:"Display color; defaults to the type color."`
}

func (c *ActivityAddCmd) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("activity name cannot be empty")
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	return nil
}

func (c *ActivityAddCmd) Run(ctx *cli.Context) error {
	day, err := cli.ParseDate(c.Date, ctx.Today())
	if err != nil {
		return err
	}
	sameDay := ctx.Store.ActivitiesForDate(day)

	var clock string
	if c.Time == "" {
		clock, err = c.place(ctx, day, sameDay)
		if err != nil {
			return err
		}
	} else {
		clock, err = cli.ParseClock(c.Time)
		if err != nil {
			return err
		}
		clashes, err := scheduler.Overlaps(sameDay, clock, c.Duration)
		if err != nil {
			return err
		}
		for _, a := range clashes {
			ctx.Printf("⚠️  Overlaps with %s at %s (ID: %s)\n", a.Name, a.Time, a.ID)
		}
	}

	color := c.Color
	if color == "" {
		color = models.ActivityTypeColor(c.Type)
	}

	activity, err := ctx.Store.AddActivity(models.ActivityFields{
		Name:     strings.TrimSpace(c.Name),
		Type:     c.Type,
		Time:     clock,
		Date:     day.Format(constants.DateFormat),
		Duration: c.Duration,
		Notes:    c.Notes,
		Color:    color,
	})
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}
	ctx.AfterChange()

	ctx.Printf("Added activity: %s on %s at %s (ID: %s)\n", activity.Name, activity.Date, activity.Time, activity.ID)
	return nil
}

// place picks the first free slot of the day, never earlier than now when
// the activity is for today.
func (c *ActivityAddCmd) place(ctx *cli.Context, day time.Time, sameDay []models.Activity) (string, error) {
	now := ctx.Today()
	notBefore := ""
	if day.Format(constants.DateFormat) == now.Format(constants.DateFormat) {
		notBefore = now.Format(constants.TimeFormat)
	}
	clock, err := scheduler.NextFreeSlot(sameDay, c.Duration, notBefore, constants.DefaultDayStart, constants.DefaultDayEnd)
	if err != nil {
		return "", fmt.Errorf("no start time given and %w on %s", err, day.Format(constants.DateFormat))
	}
	return clock, nil
}

type ActivityListCmd struct {
	Status string `short:"s" help:"Filter by status (all|pending|completed)." default:"all"`
	Date   string `short:"d" help:"Only show activities on this date (YYYY-MM-DD, today, tomorrow)."`
	JSON   bool   `help:"Print activities as JSON."`
}

func (c *ActivityListCmd) Run(ctx *cli.Context) error {
	status, err := store.ParseActivityStatus(c.Status)
	if err != nil {
		return err
	}

	filter := store.ActivityFilter{Status: status}
	if c.Date != "" {
		day, err := cli.ParseDate(c.Date, ctx.Today())
		if err != nil {
			return err
		}
		filter.Date = day
	}

	activities := ctx.Store.FilterActivities(filter)

	if c.JSON {
		data, err := json.MarshalIndent(activities, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal activities: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	if len(activities) == 0 {
		ctx.Println("No activities found")
		return nil
	}

	st := stats.Activities(activities)
	ctx.Printf("Activities (%d total, %d completed, %d%% done, %s productive):\n",
		st.Total, st.Completed, st.CompletionRate, stats.FormatMinutes(st.ProductiveMinutes))
	for _, a := range activities {
		mark := "[ ]"
		if a.IsCompleted {
			mark = "[x]"
		}
		date := a.Date
		if day, ok := a.Day(ctx.Today().Location()); ok {
			date = day.Format(constants.DateFormat)
		}
		ctx.Printf("  %s %s %s  %s (%s, %s)\n", mark, date, a.Time, a.Name,
			models.ActivityTypeLabel(a.Type), stats.FormatMinutes(a.Duration))
		if a.Notes != "" {
			ctx.Printf("      %s\n", a.Notes)
		}
		ctx.Printf("      ID: %s\n", a.ID)
	}
	return nil
}

type ActivityToggleCmd struct {
	ID string `arg:"" help:"Activity ID."`
}

func (c *ActivityToggleCmd) Run(ctx *cli.Context) error {
	if _, ok := ctx.Store.Activity(c.ID); !ok {
		ctx.Printf("No activity with ID %s\n", c.ID)
		return nil
	}
	if err := ctx.Store.ToggleActivity(c.ID); err != nil {
		return fmt.Errorf("failed to toggle activity: %w", err)
	}
	ctx.AfterChange()

	a, _ := ctx.Store.Activity(c.ID)
	if a.IsCompleted {
		ctx.Printf("✓ %s completed\n", a.Name)
	} else {
		ctx.Printf("○ %s marked pending\n", a.Name)
	}
	return nil
}

type ActivityDeleteCmd struct {
	ID string `arg:"" help:"Activity ID."`
}

func (c *ActivityDeleteCmd) Run(ctx *cli.Context) error {
	a, ok := ctx.Store.Activity(c.ID)
	if !ok {
		ctx.Printf("No activity with ID %s\n", c.ID)
		return nil
	}
	if err := ctx.Store.DeleteActivity(c.ID); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	ctx.AfterChange()

	ctx.Printf("Deleted activity: %s\n", a.Name)
	return nil
}
