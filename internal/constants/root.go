package constants

const (
	AppName            = "habit-tracker"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habit-tracker"
	DefaultConfigFile  = "~/.config/habit-tracker/config.yaml"
	DefaultStorePath   = "~/.config/habit-tracker/habit-tracker.db"
	EnvPrefix          = "HABIT_TRACKER"
	Version            = "v0.3.0"

	// StorageKey is the key the habit and activity collections are persisted under
	StorageKey = "habit-tracker-storage"
	// SettingsKey is the key the user settings are persisted under
	SettingsKey = "habit-tracker-settings"
	// StorageVersion is written into the persisted envelope
	StorageVersion = 0

	// KeyringStoragePath selects the PostgreSQL connection string stored in the OS keyring
	KeyringStoragePath = "keyring"

	// PostgresSchema is the schema the postgres provider keeps its tables in
	PostgresSchema = "habit_tracker"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MonthFormat is used by the calendar view (YYYY-MM)
	MonthFormat = "2006-01"

	// ISOTimestampFormat renders UTC timestamps with millisecond precision, e.g. 2024-01-15T10:00:00.000Z
	ISOTimestampFormat = "2006-01-02T15:04:05.000Z"

	// Habit scoring
	ProgressStep = 10
	MaxProgress  = 100
	MinProgress  = 0
	WeekDays     = 7

	// Backup constants
	MaxBackups        = 14
	BackupDirName     = "backups"
	BackupFilePrefix  = "habit-tracker-backup-"
	BackupFileSuffix  = ".json"
	LogDirName        = "logs"
	LogFileName       = "habit-tracker.log"
	WatchDebounceMs   = 150
	DefaultImportMode = "sanitize"
)
