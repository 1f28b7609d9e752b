package forms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
)

// HabitFormModel backs the add-habit form
type HabitFormModel struct {
	Name        string
	Description string
	Category    string
	Frequency   string
	Target      string
	Reminder    string
}

func NewHabitFormModel() *HabitFormModel {
	return &HabitFormModel{
		Category:  models.Categories[0].ID,
		Frequency: string(models.FrequencyDaily),
		Target:    "1",
	}
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

func validateTarget(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("target must be a whole number of at least 1")
	}
	return nil
}

func validateOptionalClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(constants.TimeFormat, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("time must be HH:MM")
	}
	return nil
}

func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(models.Categories))
	for i, c := range models.Categories {
		opts[i] = huh.NewOption(c.Label, c.ID)
	}
	return opts
}

func frequencyOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Daily", string(models.FrequencyDaily)),
		huh.NewOption("Weekly", string(models.FrequencyWeekly)),
		huh.NewOption("Monthly", string(models.FrequencyMonthly)),
	}
}

// NewHabitForm creates the form for adding habits
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(validateName),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&fm.Category),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Frequency").
				Options(frequencyOptions()...).
				Value(&fm.Frequency),
			huh.NewInput().
				Title("Target per period").
				Value(&fm.Target).
				Validate(validateTarget),
			huh.NewInput().
				Title("Reminder (HH:MM, optional)").
				Value(&fm.Reminder).
				Validate(validateOptionalClock),
		),
	).WithTheme(huh.ThemeDracula())
}

// Fields converts a completed form into habit fields
func (fm *HabitFormModel) Fields() (models.HabitFields, error) {
	if err := validateName(fm.Name); err != nil {
		return models.HabitFields{}, err
	}
	if err := validateTarget(fm.Target); err != nil {
		return models.HabitFields{}, err
	}
	if err := validateOptionalClock(fm.Reminder); err != nil {
		return models.HabitFields{}, err
	}

	f := models.NewHabitFields(strings.TrimSpace(fm.Name), fm.Category)
	f.Description = strings.TrimSpace(fm.Description)
	f.FrequencyType = models.FrequencyType(fm.Frequency)
	f.TargetFrequency, _ = strconv.Atoi(strings.TrimSpace(fm.Target))
	f.ReminderTime = strings.TrimSpace(fm.Reminder)
	return f, nil
}

// ActivityFormModel backs the add-activity form
type ActivityFormModel struct {
	Name     string
	Type     string
	Time     string
	Duration string
	Notes    string
}

func NewActivityFormModel(now time.Time) *ActivityFormModel {
	return &ActivityFormModel{
		Type:     models.ActivityTypes[0].ID,
		Time:     now.Format(constants.TimeFormat),
		Duration: "30",
	}
}

func activityTypeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(models.ActivityTypes))
	for i, t := range models.ActivityTypes {
		opts[i] = huh.NewOption(t.Label, t.ID)
	}
	return opts
}

func validateDuration(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("duration must be a whole number of minutes")
	}
	return nil
}

func validateClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("time cannot be empty")
	}
	return validateOptionalClock(s)
}

// NewActivityForm creates the form for scheduling an activity
func NewActivityForm(fm *ActivityFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity Name").
				Value(&fm.Name).
				Validate(validateName),
			huh.NewSelect[string]().
				Title("Type").
				Options(activityTypeOptions()...).
				Value(&fm.Type),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&fm.Time).
				Validate(validateClock),
			huh.NewInput().
				Title("Duration (minutes)").
				Value(&fm.Duration).
				Validate(validateDuration),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

// Fields converts a completed form into activity fields scheduled on day
func (fm *ActivityFormModel) Fields(day time.Time) (models.ActivityFields, error) {
	if err := validateName(fm.Name); err != nil {
		return models.ActivityFields{}, err
	}
	if err := validateClock(fm.Time); err != nil {
		return models.ActivityFields{}, err
	}
	if err := validateDuration(fm.Duration); err != nil {
		return models.ActivityFields{}, err
	}

	t, _ := time.Parse(constants.TimeFormat, strings.TrimSpace(fm.Time))
	duration, _ := strconv.Atoi(strings.TrimSpace(fm.Duration))
	return models.ActivityFields{
		Name:     strings.TrimSpace(fm.Name),
		Type:     fm.Type,
		Time:     t.Format(constants.TimeFormat),
		Date:     day.Format(constants.DateFormat),
		Duration: duration,
		Notes:    strings.TrimSpace(fm.Notes),
		Color:    models.ActivityTypeColor(fm.Type),
	}, nil
}
