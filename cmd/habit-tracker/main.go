package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/cli/activities"
	"github.com/julianstephens/habit-tracker/internal/cli/backups"
	"github.com/julianstephens/habit-tracker/internal/cli/data"
	"github.com/julianstephens/habit-tracker/internal/cli/habits"
	"github.com/julianstephens/habit-tracker/internal/cli/settings"
	"github.com/julianstephens/habit-tracker/internal/cli/system"
	"github.com/julianstephens/habit-tracker/internal/cli/views"
	"github.com/julianstephens/habit-tracker/internal/config"
	"github.com/julianstephens/habit-tracker/internal/constants"
	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
	"github.com/julianstephens/habit-tracker/internal/logger"
	"github.com/julianstephens/habit-tracker/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." type:"string" default:"${configFile}"`
	Storage  string `help:"Storage path: a .db (SQLite) or .json file, a PostgreSQL URL without a password, or 'keyring'. Overrides storage.path from the config."`
	DebugLog bool   `name:"debug" help:"Log debug output to stderr."`

	Init     system.InitCmd         `cmd:"" help:"Initialize habit-tracker storage."`
	Tui      system.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today    views.TodayCmd         `cmd:"" help:"Show today's dashboard."`
	Calendar views.CalendarCmd      `cmd:"" help:"Show a month of activities."`
	Habit    habits.HabitCmd        `cmd:"" help:"Manage habits."`
	Activity activities.ActivityCmd `cmd:"" help:"Manage scheduled activities."`
	Settings settings.SettingsCmd   `cmd:"" help:"Manage application settings."`
	Export   data.ExportCmd         `cmd:"" help:"Export habits and activities to a file."`
	Import   data.ImportCmd         `cmd:"" help:"Import habits and activities from a file."`
	Clear    data.ClearCmd          `cmd:"" help:"Delete all habits and activities."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage data backups."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored data for invalid records."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug    system.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
}

// commands that open storage themselves, or never touch it
var (
	selfOpening = map[string]bool{"init": true, "doctor": true, "migrate": true}
	noStorage   = map[string]bool{"keyring": true}
)

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily habits and schedule activities from the terminal."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"configFile": constants.DefaultConfigFile,
		},
	)

	command := strings.Fields(kctx.Command())[0]

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Storage != "" {
		cfg.StoragePath = CLI.Storage
		if cfg.StoragePath != constants.KeyringStoragePath && !storage.IsPostgres(cfg.StoragePath) {
			if cfg.StoragePath, err = storage.ExpandPath(cfg.StoragePath); err != nil {
				apperrors.Fatal(err)
			}
		}
	}
	cfg.Debug = cfg.Debug || CLI.DebugLog

	var provider storage.Provider
	if !noStorage[command] {
		if provider, err = cli.OpenProvider(cfg); err != nil {
			apperrors.Fatal(err)
		}
	}

	logDir := cfg.Dir()
	if provider != nil {
		logDir = storage.ConfigDir(provider, logDir)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: logDir}); err != nil {
		// logging is best effort; commands still run without a log file
		logger.UseWriter(os.Stderr, cfg.Debug)
	}
	logger.Debug("Starting", "command", kctx.Command(), "storage", cfg.StoragePath)

	appCtx := cli.New(cfg, provider)
	appCtx.ConfigPath = CLI.Config
	defer appCtx.Close()

	if provider != nil && !selfOpening[command] {
		if err := appCtx.Open(); err != nil {
			appCtx.Close()
			apperrors.Fatal(err)
		}
	}

	if err := kctx.Run(appCtx); err != nil {
		appCtx.Close()
		apperrors.Fatal(err)
	}
}
