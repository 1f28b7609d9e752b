package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
)

type settingsRow struct {
	label  string
	value  func(models.Settings) string
	change func(*models.Settings)
}

var themeCycle = []string{constants.ThemeLight, constants.ThemeDark, constants.ThemeSystem}

func toggle(get func(*models.Settings) *bool) settingsRow {
	return settingsRow{
		value: func(s models.Settings) string {
			if *get(&s) {
				return "on"
			}
			return "off"
		},
		change: func(s *models.Settings) {
			p := get(s)
			*p = !*p
		},
	}
}

func labeled(label string, r settingsRow) settingsRow {
	r.label = label
	return r
}

var settingsRows = []settingsRow{
	{
		label: "Theme",
		value: func(s models.Settings) string { return s.Theme },
		change: func(s *models.Settings) {
			next := themeCycle[0]
			for i, t := range themeCycle {
				if t == s.Theme {
					next = themeCycle[(i+1)%len(themeCycle)]
				}
			}
			s.Theme = next
		},
	},
	labeled("Habit reminders", toggle(func(s *models.Settings) *bool { return &s.HabitReminders })),
	labeled("Activity reminders", toggle(func(s *models.Settings) *bool { return &s.ActivityReminders })),
	labeled("Achievement notifications", toggle(func(s *models.Settings) *bool { return &s.AchievementNotifications })),
	labeled("Analytics", toggle(func(s *models.Settings) *bool { return &s.Analytics })),
	labeled("Auto backup", toggle(func(s *models.Settings) *bool { return &s.AutoBackup })),
}

func (m *Model) changeSetting() error {
	s := m.store.Settings()
	settingsRows[m.settingsCursor].change(&s)
	return m.store.SaveSettings(s)
}

func (m Model) viewSettings() string {
	s := m.store.Settings()

	var b strings.Builder
	for i, row := range settingsRows {
		cursor := "  "
		if i == m.settingsCursor {
			cursor = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%-27s %s\n", cursor, row.label, row.value(s))
	}
	b.WriteString("\n")
	b.WriteString(dangerStyle.Render("Press X to clear all habits and activities."))
	return b.String()
}
