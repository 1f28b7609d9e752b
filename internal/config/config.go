package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/storage"
	"github.com/julianstephens/habit-tracker/internal/validation"
)

const (
	keyStoragePath = "storage.path"
	keyDebug       = "log.debug"
	keyBackupMax   = "backup.max"
	keyImportMode  = "import.mode"
)

// Config is the resolved application configuration
type Config struct {
	// File is the config file that was read, empty when none existed
	File        string
	StoragePath string
	Debug       bool
	BackupMax   int
	ImportMode  validation.Mode
}

func Default() Config {
	return Config{
		StoragePath: constants.DefaultStorePath,
		BackupMax:   constants.MaxBackups,
		ImportMode:  validation.Mode(constants.DefaultImportMode),
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault(keyStoragePath, def.StoragePath)
	v.SetDefault(keyDebug, def.Debug)
	v.SetDefault(keyBackupMax, def.BackupMax)
	v.SetDefault(keyImportMode, string(def.ImportMode))

	// HABIT_TRACKER_STORAGE_PATH, HABIT_TRACKER_BACKUP_MAX, ...
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the YAML file at path, layered over defaults and under
// HABIT_TRACKER_* environment variables. A missing file is not an error.
func Load(path string) (Config, error) {
	v := newViper()

	file := ""
	if path != "" {
		expanded, err := storage.ExpandPath(path)
		if err != nil {
			return Config{}, err
		}
		info, err := os.Stat(expanded)
		switch {
		case err == nil && info.IsDir():
			return Config{}, fmt.Errorf("config path %s is a directory", expanded)
		case err == nil:
			v.SetConfigFile(expanded)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("reading config %s: %w", expanded, err)
			}
			file = expanded
		case !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("reading config %s: %w", expanded, err)
		}
	}

	mode, err := validation.ParseMode(v.GetString(keyImportMode))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", keyImportMode, err)
	}

	backupMax := v.GetInt(keyBackupMax)
	if backupMax < 1 {
		return Config{}, fmt.Errorf("invalid %s: must be at least 1, got %d", keyBackupMax, backupMax)
	}

	storagePath := strings.TrimSpace(v.GetString(keyStoragePath))
	if storagePath != constants.KeyringStoragePath && !storage.IsPostgres(storagePath) {
		if storagePath, err = storage.ExpandPath(storagePath); err != nil {
			return Config{}, err
		}
	}

	return Config{
		File:        file,
		StoragePath: storagePath,
		Debug:       v.GetBool(keyDebug),
		BackupMax:   backupMax,
		ImportMode:  mode,
	}, nil
}

// Write saves cfg as YAML at path, creating parent directories
func Write(path string, cfg Config) error {
	expanded, err := storage.ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set(keyStoragePath, cfg.StoragePath)
	v.Set(keyDebug, cfg.Debug)
	v.Set(keyBackupMax, cfg.BackupMax)
	v.Set(keyImportMode, string(cfg.ImportMode))

	if err := v.WriteConfigAs(expanded); err != nil {
		return fmt.Errorf("failed to write config %s: %w", expanded, err)
	}
	return nil
}

// Dir is where logs and backups live when the storage provider is not a local file
func (c Config) Dir() string {
	if c.File != "" {
		return filepath.Dir(c.File)
	}
	dir, err := storage.ExpandPath(constants.DefaultConfigDir)
	if err != nil {
		return "."
	}
	return dir
}
