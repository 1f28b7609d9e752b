package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/storage"
)

func (s *Store) readSettings() (models.Settings, error) {
	data, err := s.provider.GetItem(constants.SettingsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to read %s: %w", constants.SettingsKey, err)
	}

	settings := models.DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("stored settings are corrupt: %w", err)
	}
	if !models.ValidTheme(settings.Theme) {
		settings.Theme = constants.DefaultTheme
	}
	return settings, nil
}

func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SaveSettings persists settings under their own key
func (s *Store) SaveSettings(settings models.Settings) error {
	if !models.ValidTheme(settings.Theme) {
		return fmt.Errorf("invalid theme %q (expected %s, %s or %s)", settings.Theme,
			constants.ThemeLight, constants.ThemeDark, constants.ThemeSystem)
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrNotOpen
	}
	if err := s.provider.SetItem(constants.SettingsKey, data); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	s.settings = settings
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.events.emit(Event{Kind: EventSettingsChanged, State: snapshot})
	return nil
}
