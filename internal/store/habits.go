package store

import (
	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
)

// AddHabit appends a habit built from fields with a fresh id and the current
// time. Fields are stored as given, except that progress is clamped to
// [0,100] and a negative streak becomes 0.
func (s *Store) AddHabit(fields models.HabitFields) (models.Habit, error) {
	var added models.Habit
	err := s.mutate(EventHabitAdded, "", func(st *models.State) bool {
		id := freshID(s.newID, st.Habits, func(h models.Habit) string { return h.ID })
		added = fields.Build(id, s.now())
		added.Progress = models.ClampProgress(added.Progress)
		added.CurrentStreak = max(added.CurrentStreak, 0)
		st.Habits = append(st.Habits, added)
		return true
	})
	if err != nil {
		return models.Habit{}, err
	}
	return added, nil
}

// ToggleHabit flips completedToday. Completing a habit bumps its streak and
// adds to its progress; un-completing it leaves both as they are. Unknown ids
// are ignored.
func (s *Store) ToggleHabit(id string) error {
	return s.mutate(EventHabitToggled, id, func(st *models.State) bool {
		i := habitIndex(st.Habits, id)
		if i < 0 {
			return false
		}
		h := &st.Habits[i]
		if !h.CompletedToday {
			h.CurrentStreak++
			h.Progress = models.ClampProgress(h.Progress + constants.ProgressStep)
		}
		h.CompletedToday = !h.CompletedToday
		return true
	})
}

// DeleteHabit removes the habit with id. Unknown ids are ignored.
func (s *Store) DeleteHabit(id string) error {
	return s.mutate(EventHabitDeleted, id, func(st *models.State) bool {
		i := habitIndex(st.Habits, id)
		if i < 0 {
			return false
		}
		st.Habits = append(st.Habits[:i], st.Habits[i+1:]...)
		return true
	})
}

// Habit returns the habit with id
func (s *Store) Habit(id string) (models.Habit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := habitIndex(s.state.Habits, id)
	if i < 0 {
		return models.Habit{}, false
	}
	return s.state.Habits[i], true
}

func habitIndex(habits []models.Habit, id string) int {
	for i := range habits {
		if habits[i].ID == id {
			return i
		}
	}
	return -1
}
