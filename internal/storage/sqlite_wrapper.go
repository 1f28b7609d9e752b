package storage

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/habit-tracker/internal/migration"
	"github.com/julianstephens/habit-tracker/internal/storage/sqlite"
)

// SQLiteStore adapts sqlite.Store to Provider
type SQLiteStore struct {
	store *sqlite.Store
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{store: sqlite.NewStore(path)}
}

func (s *SQLiteStore) Init() error           { return s.store.Init() }
func (s *SQLiteStore) Load() error           { return s.store.Load() }
func (s *SQLiteStore) Close() error          { return s.store.Close() }
func (s *SQLiteStore) GetConfigPath() string { return s.store.GetConfigPath() }
func (s *SQLiteStore) FilePath() string      { return s.store.GetConfigPath() }
func (s *SQLiteStore) GetDB() *sql.DB        { return s.store.GetDB() }

func (s *SQLiteStore) GetItem(key string) ([]byte, error) {
	if s.store.GetDB() == nil {
		return nil, ErrNotLoaded
	}
	v, err := s.store.GetItem(key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *SQLiteStore) SetItem(key string, value []byte) error {
	if s.store.GetDB() == nil {
		return ErrNotLoaded
	}
	return s.store.SetItem(key, value)
}

func (s *SQLiteStore) RemoveItem(key string) error {
	if s.store.GetDB() == nil {
		return ErrNotLoaded
	}
	return s.store.RemoveItem(key)
}

func (s *SQLiteStore) Keys() ([]string, error) {
	if s.store.GetDB() == nil {
		return nil, ErrNotLoaded
	}
	return s.store.Keys()
}

func (s *SQLiteStore) Migrate(logFn func(string)) (int, error) { return s.store.Migrate(logFn) }
func (s *SQLiteStore) SchemaStatus() (migration.Status, error) { return s.store.SchemaStatus() }
