package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habit-tracker/internal/models"
)

func TestHabitFormFields(t *testing.T) {
	fm := NewHabitFormModel()
	require.Equal(t, "health", fm.Category)

	fm.Name = "  Stretch  "
	fm.Category = "exercise"
	fm.Frequency = "weekly"
	fm.Target = "3"
	fm.Reminder = "07:30"

	f, err := fm.Fields()
	require.NoError(t, err)
	require.Equal(t, "Stretch", f.Name)
	require.Equal(t, "#4CAF50", f.Color)
	require.Equal(t, models.FrequencyWeekly, f.FrequencyType)
	require.Equal(t, 3, f.TargetFrequency)
	require.Equal(t, "07:30", f.ReminderTime)
	require.True(t, f.IsActive)
}

func TestHabitFormRejectsBadInput(t *testing.T) {
	tests := map[string]func(*HabitFormModel){
		"empty name":   func(fm *HabitFormModel) { fm.Name = " " },
		"zero target":  func(fm *HabitFormModel) { fm.Target = "0" },
		"text target":  func(fm *HabitFormModel) { fm.Target = "many" },
		"bad reminder": func(fm *HabitFormModel) { fm.Reminder = "7pm" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			fm := NewHabitFormModel()
			fm.Name = "Stretch"
			mutate(fm)
			_, err := fm.Fields()
			require.Error(t, err)
		})
	}
}

func TestActivityFormFields(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 5, 0, 0, time.UTC)
	fm := NewActivityFormModel(now)
	require.Equal(t, "14:05", fm.Time)

	fm.Name = "Gym"
	fm.Type = "exercise"
	fm.Time = "18:00"
	fm.Duration = "60"

	f, err := fm.Fields(now)
	require.NoError(t, err)
	require.Equal(t, models.ActivityFields{
		Name:     "Gym",
		Type:     "exercise",
		Time:     "18:00",
		Date:     "2024-01-15",
		Duration: 60,
		Color:    "#10B981",
	}, f)

	fm.Duration = "-5"
	_, err = fm.Fields(now)
	require.Error(t, err)
}

func TestFormsBuild(t *testing.T) {
	require.NotNil(t, NewHabitForm(NewHabitFormModel()))
	require.NotNil(t, NewActivityForm(NewActivityFormModel(time.Now())))
}
