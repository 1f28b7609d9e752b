package models

import (
	"time"

	"github.com/julianstephens/habit-tracker/internal/constants"
)

// FrequencyType is the advisory cadence of a habit
type FrequencyType string

const (
	FrequencyDaily   FrequencyType = "daily"
	FrequencyWeekly  FrequencyType = "weekly"
	FrequencyMonthly FrequencyType = "monthly"
)

// Valid reports whether f is one of the known cadences
func (f FrequencyType) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// WeeklyProgress holds one completion mark per weekday slot of the current week view
type WeeklyProgress [constants.WeekDays]bool

// Completed returns the number of marked slots
func (w WeeklyProgress) Completed() int {
	n := 0
	for _, done := range w {
		if done {
			n++
		}
	}
	return n
}

// Habit represents a recurring practice to track
type Habit struct {
	ID              string         `json:"id" yaml:"id"`
	Name            string         `json:"name" yaml:"name"`
	Description     string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category        string         `json:"category" yaml:"category"`
	Color           string         `json:"color" yaml:"color"`
	TargetFrequency int            `json:"targetFrequency" yaml:"targetFrequency"`
	FrequencyType   FrequencyType  `json:"frequencyType" yaml:"frequencyType"`
	ReminderTime    string         `json:"reminderTime,omitempty" yaml:"reminderTime,omitempty"`
	IsActive        bool           `json:"isActive" yaml:"isActive"`
	CompletedToday  bool           `json:"completedToday" yaml:"completedToday"`
	CurrentStreak   int            `json:"currentStreak" yaml:"currentStreak"`
	Progress        int            `json:"progress" yaml:"progress"`
	WeeklyProgress  WeeklyProgress `json:"weeklyProgress" yaml:"weeklyProgress"`
	CreatedAt       time.Time      `json:"createdAt" yaml:"createdAt"`
}

// HabitFields carries every caller-supplied Habit attribute; the store assigns ID and CreatedAt
type HabitFields struct {
	Name            string
	Description     string
	Category        string
	Color           string
	TargetFrequency int
	FrequencyType   FrequencyType
	ReminderTime    string
	IsActive        bool
	CompletedToday  bool
	CurrentStreak   int
	Progress        int
	WeeklyProgress  WeeklyProgress
}

// NewHabitFields returns the defaults a freshly created habit starts with:
// active, daily, once per day, no progress.
func NewHabitFields(name, category string) HabitFields {
	return HabitFields{
		Name:            name,
		Category:        category,
		Color:           CategoryColor(category),
		TargetFrequency: 1,
		FrequencyType:   FrequencyDaily,
		IsActive:        true,
	}
}

// Build materializes the fields into a Habit with the given identity
func (f HabitFields) Build(id string, createdAt time.Time) Habit {
	return Habit{
		ID:              id,
		Name:            f.Name,
		Description:     f.Description,
		Category:        f.Category,
		Color:           f.Color,
		TargetFrequency: f.TargetFrequency,
		FrequencyType:   f.FrequencyType,
		ReminderTime:    f.ReminderTime,
		IsActive:        f.IsActive,
		CompletedToday:  f.CompletedToday,
		CurrentStreak:   f.CurrentStreak,
		Progress:        f.Progress,
		WeeklyProgress:  f.WeeklyProgress,
		CreatedAt:       createdAt,
	}
}

// ClampProgress bounds a progress score to [0,100]
func ClampProgress(p int) int {
	if p < constants.MinProgress {
		return constants.MinProgress
	}
	if p > constants.MaxProgress {
		return constants.MaxProgress
	}
	return p
}
