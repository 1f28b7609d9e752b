package settings

import (
	"fmt"

	"github.com/julianstephens/habit-tracker/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Theme                    *string `help:"Color theme (light|dark|system)." enum:"light,dark,system"`
	HabitReminders           *bool   `help:"Enable or disable habit reminders."`
	ActivityReminders        *bool   `help:"Enable or disable activity reminders."`
	AchievementNotifications *bool   `help:"Enable or disable achievement notifications."`
	Analytics                *bool   `help:"Enable or disable usage analytics."`
	AutoBackup               *bool   `help:"Back up automatically after every change."`
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings := ctx.Store.Settings()

	updated := false
	if c.Theme != nil {
		settings.Theme = *c.Theme
		updated = true
	}
	if c.HabitReminders != nil {
		settings.HabitReminders = *c.HabitReminders
		updated = true
	}
	if c.ActivityReminders != nil {
		settings.ActivityReminders = *c.ActivityReminders
		updated = true
	}
	if c.AchievementNotifications != nil {
		settings.AchievementNotifications = *c.AchievementNotifications
		updated = true
	}
	if c.Analytics != nil {
		settings.Analytics = *c.Analytics
		updated = true
	}
	if c.AutoBackup != nil {
		settings.AutoBackup = *c.AutoBackup
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	}

	if c.List || !updated {
		s := ctx.Store.Settings()
		ctx.Println("Current Settings:")
		ctx.Printf("  Theme:                     %s\n", s.Theme)
		ctx.Printf("  Habit reminders:           %s\n", onOff(s.HabitReminders))
		ctx.Printf("  Activity reminders:        %s\n", onOff(s.ActivityReminders))
		ctx.Printf("  Achievement notifications: %s\n", onOff(s.AchievementNotifications))
		ctx.Printf("  Analytics:                 %s\n", onOff(s.Analytics))
		ctx.Printf("  Auto backup:               %s\n", onOff(s.AutoBackup))
	}
	return nil
}
