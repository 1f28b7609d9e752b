package models

import "github.com/julianstephens/habit-tracker/internal/constants"

// Settings holds user preferences. Reminder toggles are stored preferences only.
type Settings struct {
	Theme                    string `json:"theme"`
	HabitReminders           bool   `json:"habitReminders"`
	ActivityReminders        bool   `json:"activityReminders"`
	AchievementNotifications bool   `json:"achievementNotifications"`
	Analytics                bool   `json:"analytics"`
	AutoBackup               bool   `json:"autoBackup"`
}

// DefaultSettings returns the settings a fresh installation starts with
func DefaultSettings() Settings {
	return Settings{
		Theme:                    constants.DefaultTheme,
		HabitReminders:           constants.DefaultHabitReminders,
		ActivityReminders:        constants.DefaultActivityReminders,
		AchievementNotifications: constants.DefaultAchievementNotifications,
		Analytics:                constants.DefaultAnalytics,
		AutoBackup:               constants.DefaultAutoBackup,
	}
}

// ValidTheme reports whether theme is a supported value
func ValidTheme(theme string) bool {
	switch theme {
	case constants.ThemeLight, constants.ThemeDark, constants.ThemeSystem:
		return true
	}
	return false
}
