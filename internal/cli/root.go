package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habit-tracker/internal/backup"
	"github.com/julianstephens/habit-tracker/internal/config"
	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/keyring"
	"github.com/julianstephens/habit-tracker/internal/logger"
	"github.com/julianstephens/habit-tracker/internal/storage"
	"github.com/julianstephens/habit-tracker/internal/store"
)

// Context is handed to every command's Run method
type Context struct {
	Config config.Config
	// ConfigPath is the --config location; init writes defaults there when missing
	ConfigPath string
	Provider   storage.Provider
	Store      *store.Store
	Backups    *backup.Manager

	Out io.Writer
	In  io.Reader
	Now func() time.Time

	// StoreOptions are appended when Open builds the store
	StoreOptions []store.Option
}

// New wires a context around an already chosen provider
func New(cfg config.Config, provider storage.Provider) *Context {
	return &Context{
		Config:   cfg,
		Provider: provider,
		Backups:  backup.NewManager(storage.ConfigDir(provider, cfg.Dir()), backup.WithMaxBackups(cfg.BackupMax)),
		Out:      os.Stdout,
		In:       os.Stdin,
		Now:      time.Now,
	}
}

// ResolveStoragePath swaps the "keyring" placeholder for the stored connection string
func ResolveStoragePath(path string) (string, error) {
	if strings.TrimSpace(path) != constants.KeyringStoragePath {
		return path, nil
	}
	connStr, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return "", errors.New("storage path is 'keyring' but no connection string is stored; run 'habit-tracker keyring set' first")
	}
	if err != nil {
		return "", fmt.Errorf("failed to read connection string from keyring: %w", err)
	}
	return connStr, nil
}

// OpenProvider picks the provider for cfg.StoragePath without loading it
func OpenProvider(cfg config.Config) (storage.Provider, error) {
	path, err := ResolveStoragePath(cfg.StoragePath)
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}

// Open loads the provider and hydrates the store
func (c *Context) Open() error {
	if err := c.Provider.Load(); err != nil {
		return err
	}

	opts := []store.Option{
		store.WithClock(c.now),
		store.WithImportMode(c.Config.ImportMode),
	}
	c.Store = store.New(c.Provider, append(opts, c.StoreOptions...)...)
	if err := c.Store.Open(); err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	return nil
}

func (c *Context) Close() error {
	if c.Provider == nil {
		return nil
	}
	return c.Provider.Close()
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Today is the current time according to the context clock
func (c *Context) Today() time.Time {
	return c.now()
}

// PerformAutomaticBackup snapshots the store and only logs failures
func (c *Context) PerformAutomaticBackup() {
	if c.Store == nil || c.Backups == nil {
		return
	}
	if _, err := c.Backups.CreateBackup(c.Store.ExportData()); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// AfterChange backs up after a mutating command when the autoBackup setting is on
func (c *Context) AfterChange() {
	if c.Store != nil && c.Store.Settings().AutoBackup {
		c.PerformAutomaticBackup()
	}
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question; anything but y/yes is a no
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(c.In)
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// ParseDate accepts YYYY-MM-DD, "today", "tomorrow" and "yesterday", in now's location
func ParseDate(s string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	t, err := time.ParseInLocation(constants.DateFormat, strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, today, tomorrow or yesterday)", s)
	}
	return t, nil
}

// ParseClock validates an HH:MM time of day
func ParseClock(s string) (string, error) {
	t, err := time.Parse(constants.TimeFormat, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	return t.Format(constants.TimeFormat), nil
}
