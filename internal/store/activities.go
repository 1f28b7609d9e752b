package store

import "github.com/julianstephens/habit-tracker/internal/models"

// AddActivity appends an activity built from fields with a fresh id. A
// negative duration is stored as 0.
func (s *Store) AddActivity(fields models.ActivityFields) (models.Activity, error) {
	var added models.Activity
	err := s.mutate(EventActivityAdded, "", func(st *models.State) bool {
		id := freshID(s.newID, st.Activities, func(a models.Activity) string { return a.ID })
		added = fields.Build(id)
		added.Duration = max(added.Duration, 0)
		st.Activities = append(st.Activities, added)
		return true
	})
	if err != nil {
		return models.Activity{}, err
	}
	return added, nil
}

// ToggleActivity flips isCompleted. Unknown ids are ignored.
func (s *Store) ToggleActivity(id string) error {
	return s.mutate(EventActivityToggled, id, func(st *models.State) bool {
		i := activityIndex(st.Activities, id)
		if i < 0 {
			return false
		}
		st.Activities[i].IsCompleted = !st.Activities[i].IsCompleted
		return true
	})
}

// DeleteActivity removes the activity with id. Unknown ids are ignored.
func (s *Store) DeleteActivity(id string) error {
	return s.mutate(EventActivityDeleted, id, func(st *models.State) bool {
		i := activityIndex(st.Activities, id)
		if i < 0 {
			return false
		}
		st.Activities = append(st.Activities[:i], st.Activities[i+1:]...)
		return true
	})
}

func (s *Store) Activity(id string) (models.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := activityIndex(s.state.Activities, id)
	if i < 0 {
		return models.Activity{}, false
	}
	return s.state.Activities[i], true
}

func activityIndex(activities []models.Activity, id string) int {
	for i := range activities {
		if activities[i].ID == id {
			return i
		}
	}
	return -1
}
