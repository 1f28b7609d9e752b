package store

import (
	"time"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
)

// DefaultSeed is the sample data a first run starts with. Activities are
// scheduled for the day of now.
func DefaultSeed(now time.Time) models.State {
	today := now.UTC().Format(constants.ISOTimestampFormat)

	return models.State{
		Habits: []models.Habit{
			{
				ID:              "1",
				Name:            "Morning exercise",
				Description:     "30 minutes of exercise every morning",
				Category:        "exercise",
				Color:           "#4CAF50",
				TargetFrequency: 1,
				FrequencyType:   models.FrequencyDaily,
				ReminderTime:    "07:00",
				IsActive:        true,
				CompletedToday:  false,
				CurrentStreak:   15,
				Progress:        85,
				WeeklyProgress:  models.WeeklyProgress{true, true, true, true, true, false, true},
				CreatedAt:       now,
			},
			{
				ID:              "2",
				Name:            "Daily reading",
				Description:     "Read at least 20 pages",
				Category:        "learning",
				Color:           "#3B82F6",
				TargetFrequency: 1,
				FrequencyType:   models.FrequencyDaily,
				ReminderTime:    "20:00",
				IsActive:        true,
				CompletedToday:  true,
				CurrentStreak:   8,
				Progress:        60,
				WeeklyProgress:  models.WeeklyProgress{true, true, false, true, true, true, false},
				CreatedAt:       now,
			},
			{
				ID:              "3",
				Name:            "Meditation",
				Description:     "10 minutes of mindfulness",
				Category:        "mindfulness",
				Color:           "#8B5CF6",
				TargetFrequency: 1,
				FrequencyType:   models.FrequencyDaily,
				ReminderTime:    "06:30",
				IsActive:        true,
				CompletedToday:  true,
				CurrentStreak:   22,
				Progress:        100,
				WeeklyProgress:  models.WeeklyProgress{true, true, true, true, true, true, true},
				CreatedAt:       now,
			},
		},
		Activities: []models.Activity{
			{
				ID:       "1",
				Name:     "Team meeting",
				Type:     "meeting",
				Time:     "10:00",
				Date:     today,
				Duration: 60,
				Notes:    "Current sprint review",
				Color:    "#3B82F6",
			},
			{
				ID:       "2",
				Name:     "Lunch",
				Type:     "meal",
				Time:     "13:00",
				Date:     today,
				Duration: 60,
				Color:    "#F59E0B",
			},
			{
				ID:       "3",
				Name:     "Exercise",
				Type:     "exercise",
				Time:     "18:00",
				Date:     today,
				Duration: 90,
				Color:    "#10B981",
			},
		},
	}
}
