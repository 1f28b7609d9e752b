package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/logger"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/transfer"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// BackupInfo describes one snapshot file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

func (b BackupInfo) Name() string {
	return filepath.Base(b.Path)
}

// Manager writes export snapshots into <config dir>/backups and keeps the
// newest MaxBackups of them
type Manager struct {
	backupDir  string
	maxBackups int
	now        func() time.Time
}

type Option func(*Manager)

// WithMaxBackups sets the retention limit; values below 1 keep the default
func WithMaxBackups(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxBackups = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(configDir string, opts ...Option) *Manager {
	m := &Manager{
		backupDir:  filepath.Join(configDir, constants.BackupDirName),
		maxBackups: constants.MaxBackups,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) MaxBackups() int {
	return m.maxBackups
}

func (m *Manager) fileName(stamp string, counter int) string {
	if counter > 0 {
		return fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, counter, constants.BackupFileSuffix)
	}
	return constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
}

// nextPath picks a free file name: minute precision first, then seconds, then a counter
func (m *Manager) nextPath() (string, error) {
	now := m.now()

	path := filepath.Join(m.backupDir, m.fileName(now.Format(minuteLayout), 0))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	stamp := now.Format(secondLayout)
	for counter := 0; counter <= 100; counter++ {
		path = filepath.Join(m.backupDir, m.fileName(stamp, counter))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

// CreateBackup writes data as a new snapshot and rotates old ones
func (m *Manager) CreateBackup(data models.ExportData) (string, error) {
	return m.createBackup(data, false)
}

func (m *Manager) createBackup(data models.ExportData, skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}

	if err := transfer.WriteFile(path, data, transfer.FormatJSON, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	logger.Debug("Backup created", "path", path, "habits", len(data.Habits), "activities", len(data.Activities))
	return path, nil
}

// parseTimestamp extracts the time from a backup file name, or false for foreign files
func parseTimestamp(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// YYYYMMDD-HHMM[SS][-N]
	parts := strings.Split(stamp, "-")
	if len(parts) == 3 {
		stamp = parts[0] + "-" + parts[1]
	} else if len(parts) != 2 {
		return time.Time{}, false
	}

	for _, layout := range []string{minuteLayout, secondLayout} {
		if t, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ListBackups returns snapshots newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseTimestamp(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	// names sort in creation order within the same timestamp
	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Name() > backups[j].Name()
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := m.maxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Resolve turns "latest", a file name inside the backup directory, or a path
// into the path of an existing snapshot
func (m *Manager) Resolve(ref string) (string, error) {
	if ref == "" || ref == "latest" {
		backups, err := m.ListBackups()
		if err != nil {
			return "", err
		}
		if len(backups) == 0 {
			return "", fmt.Errorf("no backups found in %s", m.backupDir)
		}
		return backups[0].Path, nil
	}

	candidates := []string{ref}
	if !strings.ContainsRune(ref, os.PathSeparator) {
		candidates = append([]string{filepath.Join(m.backupDir, ref)}, candidates...)
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("backup file does not exist: %s", ref)
}

// ReadBackup decodes a snapshot into a full import document
func (m *Manager) ReadBackup(path string) (models.ImportData, error) {
	d, err := transfer.ReadFile(path)
	if err != nil {
		return models.ImportData{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	if d.Habits == nil || d.Activities == nil {
		return models.ImportData{}, fmt.Errorf("backup file is corrupted or invalid: %s is missing habits or activities", filepath.Base(path))
	}
	return d, nil
}

// Restorer is the part of the store a restore needs
type Restorer interface {
	ExportData() models.ExportData
	ImportData(models.ImportData) error
}

// RestoreBackup snapshots the current state, then replaces it with the
// contents of path. It returns the path of the pre-restore snapshot.
func (m *Manager) RestoreBackup(s Restorer, path string) (string, error) {
	d, err := m.ReadBackup(path)
	if err != nil {
		return "", err
	}

	// skip rotation so the snapshot being restored cannot be rotated away
	current, err := m.createBackup(s.ExportData(), true)
	if err != nil {
		return "", fmt.Errorf("failed to back up current data before restore: %w", err)
	}

	if err := s.ImportData(d); err != nil {
		return current, fmt.Errorf("failed to restore backup: %w", err)
	}
	return current, nil
}
