package storage

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habit-tracker/internal/migration"
	"github.com/julianstephens/habit-tracker/internal/storage/postgres"
)

// Migrator is implemented by SQL-backed providers
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (migration.Status, error)
}

// IsPostgres reports whether path is a PostgreSQL connection URL
func IsPostgres(path string) bool {
	return strings.HasPrefix(path, "postgres://") || strings.HasPrefix(path, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL URL carries a password
func HasEmbeddedCredentials(connStr string) bool {
	return errors.Is(postgres.ValidateConnString(connStr), postgres.ErrEmbeddedCredentials)
}

// ExpandPath resolves a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Open picks a provider for path without touching it: PostgreSQL URLs go to
// PostgresStore, *.json files to JSONStore, anything else to SQLiteStore.
func Open(path string) (Provider, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}

	if IsPostgres(path) {
		if err := postgres.ValidateConnString(path); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store it with 'habit-tracker keyring set' or use .pgpass", err)
			}
			return nil, err
		}
		return NewPostgresStore(path), nil
	}

	if u, err := url.Parse(path); err == nil && u.Scheme != "" && len(u.Scheme) > 1 && u.Host != "" {
		return nil, fmt.Errorf("unsupported storage scheme %q", u.Scheme)
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(expanded), ".json") {
		return NewJSONStore(expanded), nil
	}
	return NewSQLiteStore(expanded), nil
}

// ConfigDir returns the directory that holds backups and logs for a provider.
// Non-file providers fall back to fallback.
func ConfigDir(p Provider, fallback string) string {
	if fb, ok := p.(FileBacked); ok {
		return filepath.Dir(fb.FilePath())
	}
	return fallback
}
