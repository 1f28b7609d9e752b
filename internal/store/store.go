package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/logger"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/storage"
	"github.com/julianstephens/habit-tracker/internal/validation"
)

var (
	// ErrInvalidImport wraps the *validation.Result of a rejected import
	ErrInvalidImport = errors.New("invalid import data")
	// ErrNotOpen is returned by operations that need Open to have run
	ErrNotOpen = errors.New("store not open")
	// ErrUnsupportedVersion is returned when the stored envelope is newer than this build
	ErrUnsupportedVersion = errors.New("stored state version is newer than supported")
)

// envelope is the persisted record under constants.StorageKey
type envelope struct {
	State   models.State `json:"state"`
	Version int          `json:"version"`
}

// Store owns habits and activities. Every mutation is written through the
// provider before it becomes visible to readers.
type Store struct {
	mu       sync.RWMutex
	provider storage.Provider
	state    models.State
	settings models.Settings
	open     bool

	now       func() time.Time
	newID     func() string
	seed      func(now time.Time) models.State
	validator *validation.Validator

	events broadcaster
}

type Option func(*Store)

// WithClock overrides time.Now for ids, timestamps and export dates
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the uuid-based id generator
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithSeed replaces the built-in first-run data. Pass an empty State to start blank.
func WithSeed(state models.State) Option {
	return func(s *Store) {
		seed := state.Clone()
		s.seed = func(time.Time) models.State { return seed.Clone() }
	}
}

// WithImportMode selects how imports with repairable records are handled
func WithImportMode(mode validation.Mode) Option {
	return func(s *Store) { s.validator.Mode = mode }
}

// New builds a store over provider. Call Open to hydrate it.
func New(provider storage.Provider, opts ...Option) *Store {
	s := &Store{
		provider:  provider,
		now:       time.Now,
		newID:     uuid.NewString,
		seed:      DefaultSeed,
		validator: validation.New(validation.ModeSanitize),
		settings:  models.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validator.Now = s.now
	return s
}

// SetImportMode changes the validation mode for later imports. Not safe to
// call concurrently with Import.
func (s *Store) SetImportMode(mode validation.Mode) {
	s.validator.Mode = mode
}

// Open rehydrates state and settings from the provider. A missing state
// record yields the seed data; missing settings yield the defaults.
func (s *Store) Open() error {
	state, err := s.readState()
	if err != nil {
		return err
	}
	settings, err := s.readSettings()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state = state
	s.settings = settings
	s.open = true
	s.mu.Unlock()

	logger.Debug("Store opened", "habits", len(state.Habits), "activities", len(state.Activities))
	return nil
}

// Reload re-reads the provider, picking up changes made by another process.
// The lock is held across the read so a concurrent mutation cannot be
// overwritten by an older snapshot.
func (s *Store) Reload() error {
	s.mu.Lock()
	if err := s.provider.Load(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to reload storage: %w", err)
	}
	state, err := s.readState()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	settings, err := s.readSettings()
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.state = state
	s.settings = settings
	s.open = true
	snapshot := state.Clone()
	s.mu.Unlock()

	s.events.emit(Event{Kind: EventReloaded, State: snapshot})
	return nil
}

func (s *Store) readState() (models.State, error) {
	data, err := s.provider.GetItem(constants.StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return normalize(s.seed(s.now())), nil
	}
	if err != nil {
		return models.State{}, fmt.Errorf("failed to read %s: %w", constants.StorageKey, err)
	}
	return decodeEnvelope(data)
}

func decodeEnvelope(data []byte) (models.State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return models.State{}, fmt.Errorf("stored state is corrupt: %w", err)
	}
	if env.Version > constants.StorageVersion {
		return models.State{}, fmt.Errorf("%w (%d > %d)", ErrUnsupportedVersion, env.Version, constants.StorageVersion)
	}
	return normalize(env.State), nil
}

func encodeEnvelope(state models.State) ([]byte, error) {
	return json.Marshal(envelope{State: normalize(state), Version: constants.StorageVersion})
}

// normalize turns nil collections into empty ones so they serialize as []
func normalize(state models.State) models.State {
	if state.Habits == nil {
		state.Habits = []models.Habit{}
	}
	if state.Activities == nil {
		state.Activities = []models.Activity{}
	}
	return state
}

func (s *Store) persist(state models.State) error {
	data, err := encodeEnvelope(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := s.provider.SetItem(constants.StorageKey, data); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

// mutate applies fn to a copy of the state. When fn reports a change, the
// copy is persisted and only then swapped in; a failed write leaves the
// previous state in place. Listeners are notified after the lock is released.
func (s *Store) mutate(kind EventKind, id string, fn func(st *models.State) bool) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrNotOpen
	}

	next := s.state.Clone()
	if !fn(&next) {
		s.mu.Unlock()
		return nil
	}

	if err := s.persist(next); err != nil {
		s.mu.Unlock()
		logger.Error("State change rolled back", "event", kind, "id", id, "error", err)
		return err
	}

	s.state = next
	snapshot := next.Clone()
	s.mu.Unlock()

	logger.Debug("State changed", "event", kind, "id", id)
	s.events.emit(Event{Kind: kind, ID: id, State: snapshot})
	return nil
}

// EnsurePersisted writes the current state when the provider holds no
// record yet, so seed data keeps its ids across processes
func (s *Store) EnsurePersisted() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrNotOpen
	}

	_, err := s.provider.GetItem(constants.StorageKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read %s: %w", constants.StorageKey, err)
	}
	return s.persist(s.state)
}

// freshID returns a generated id not already used in items
func freshID[T any](gen func() string, items []T, idOf func(T) string) string {
	for {
		id := gen()
		if id == "" {
			continue
		}
		taken := false
		for _, it := range items {
			if idOf(it) == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

// State returns a copy of both collections
func (s *Store) State() models.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) Habits() []models.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneHabits(s.state.Habits)
}

func (s *Store) Activities() []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneActivities(s.state.Activities)
}

// Provider exposes the backing storage, for backups and diagnostics
func (s *Store) Provider() storage.Provider {
	return s.provider
}

// Subscribe registers l for change events and returns a function that removes it
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	return s.events.subscribe(l)
}
