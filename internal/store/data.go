package store

import (
	"fmt"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/logger"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/validation"
)

// ExportData snapshots both collections, stamped with the current UTC time
func (s *Store) ExportData() models.ExportData {
	s.mu.RLock()
	state := s.state.Clone()
	s.mu.RUnlock()

	return models.ExportData{
		Habits:     state.Habits,
		Activities: state.Activities,
		ExportDate: s.now().UTC().Format(constants.ISOTimestampFormat),
	}
}

// ImportData replaces each collection present in d. Absent collections are
// left alone. A rejected document returns an error wrapping ErrInvalidImport
// and the *validation.Result describing why.
func (s *Store) ImportData(d models.ImportData) error {
	_, err := s.Import(d)
	return err
}

// Import is ImportData that also returns the validation report, including
// records repaired in sanitize mode.
func (s *Store) Import(d models.ImportData) (*validation.Result, error) {
	clean, res := s.validator.ValidateImport(d)
	if !res.Accepted() {
		return res, fmt.Errorf("%w: %w", ErrInvalidImport, res)
	}
	if fixed := res.Fixed(); len(fixed) > 0 {
		logger.Warn("Import records repaired", "count", len(fixed))
	}

	if clean.Empty() {
		return res, nil
	}

	err := s.mutate(EventImported, "", func(st *models.State) bool {
		if clean.Habits != nil {
			st.Habits = models.CloneHabits(*clean.Habits)
		}
		if clean.Activities != nil {
			st.Activities = models.CloneActivities(*clean.Activities)
		}
		return true
	})
	return res, err
}

// ClearAllData empties both collections
func (s *Store) ClearAllData() error {
	return s.mutate(EventCleared, "", func(st *models.State) bool {
		st.Habits = []models.Habit{}
		st.Activities = []models.Activity{}
		return true
	})
}
