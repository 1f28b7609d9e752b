package storage

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/habit-tracker/internal/migration"
	"github.com/julianstephens/habit-tracker/internal/storage/postgres"
)

// PostgresStore adapts postgres.Store to Provider
type PostgresStore struct {
	store *postgres.Store
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{store: postgres.New(connStr)}
}

func (s *PostgresStore) Init() error           { return s.store.Init() }
func (s *PostgresStore) Load() error           { return s.store.Load() }
func (s *PostgresStore) Close() error          { return s.store.Close() }
func (s *PostgresStore) GetConfigPath() string { return s.store.GetConfigPath() }

func (s *PostgresStore) GetItem(key string) ([]byte, error) {
	if s.store.GetDB() == nil {
		return nil, ErrNotLoaded
	}
	v, err := s.store.GetItem(key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *PostgresStore) SetItem(key string, value []byte) error {
	if s.store.GetDB() == nil {
		return ErrNotLoaded
	}
	return s.store.SetItem(key, value)
}

func (s *PostgresStore) RemoveItem(key string) error {
	if s.store.GetDB() == nil {
		return ErrNotLoaded
	}
	return s.store.RemoveItem(key)
}

func (s *PostgresStore) Keys() ([]string, error) {
	if s.store.GetDB() == nil {
		return nil, ErrNotLoaded
	}
	return s.store.Keys()
}

func (s *PostgresStore) Migrate(logFn func(string)) (int, error) { return s.store.Migrate(logFn) }
func (s *PostgresStore) SchemaStatus() (migration.Status, error) { return s.store.SchemaStatus() }
