package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habit-tracker/internal/validation"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Empty(t, cfg.File)
	require.Equal(t, filepath.Join(home, ".config", "habit-tracker", "habit-tracker.db"), cfg.StoragePath)
	require.False(t, cfg.Debug)
	require.Equal(t, 14, cfg.BackupMax)
	require.Equal(t, validation.ModeSanitize, cfg.ImportMode)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
storage:
  path: /data/habits.json
log:
  debug: true
backup:
  max: 3
import:
  mode: strict
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, path, cfg.File)
	require.Equal(t, "/data/habits.json", cfg.StoragePath)
	require.True(t, cfg.Debug)
	require.Equal(t, 3, cfg.BackupMax)
	require.Equal(t, validation.ModeStrict, cfg.ImportMode)
	require.Equal(t, filepath.Dir(path), cfg.Dir())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "backup:\n  max: 5\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.BackupMax)
	require.Equal(t, validation.ModeSanitize, cfg.ImportMode)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "storage:\n  path: /from/file.db\n")

	t.Setenv("HABIT_TRACKER_STORAGE_PATH", "/from/env.json")
	t.Setenv("HABIT_TRACKER_BACKUP_MAX", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/from/env.json", cfg.StoragePath)
	require.Equal(t, 7, cfg.BackupMax)
}

func TestTildeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "storage:\n  path: ~/habits/data.json\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "habits", "data.json"), cfg.StoragePath)
}

func TestSpecialStoragePathsAreNotExpanded(t *testing.T) {
	for _, p := range []string{"keyring", "postgres://user@localhost/habits"} {
		t.Run(p, func(t *testing.T) {
			t.Setenv("HABIT_TRACKER_STORAGE_PATH", p)
			cfg, err := Load("")
			require.NoError(t, err)
			require.Equal(t, p, cfg.StoragePath)
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"bad import mode": "import:\n  mode: lenient\n",
		"zero backups":    "backup:\n  max: 0\n",
		"broken yaml":     "storage: [unclosed\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, content)
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Config{
		StoragePath: "/srv/habits.db",
		Debug:       true,
		BackupMax:   9,
		ImportMode:  validation.ModeStrict,
	}

	require.NoError(t, Write(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	want.File = path
	require.Equal(t, want, got)
}
