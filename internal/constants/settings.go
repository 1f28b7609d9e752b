package constants

const (
	// Themes
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"

	// Default Settings Values
	DefaultTheme                    = ThemeSystem
	DefaultHabitReminders           = true
	DefaultActivityReminders        = true
	DefaultAchievementNotifications = true
	DefaultAnalytics                = true
	DefaultAutoBackup               = false
)
