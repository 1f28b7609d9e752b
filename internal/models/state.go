package models

// State is the persisted payload: both collections in insertion order
type State struct {
	Habits     []Habit    `json:"habits" yaml:"habits"`
	Activities []Activity `json:"activities" yaml:"activities"`
}

// Clone returns a copy that shares no backing arrays with s
func (s State) Clone() State {
	return State{
		Habits:     CloneHabits(s.Habits),
		Activities: CloneActivities(s.Activities),
	}
}

// CloneHabits copies a habit slice; a nil input yields an empty, non-nil slice
func CloneHabits(in []Habit) []Habit {
	out := make([]Habit, len(in))
	copy(out, in)
	return out
}

// CloneActivities copies an activity slice; a nil input yields an empty, non-nil slice
func CloneActivities(in []Activity) []Activity {
	out := make([]Activity, len(in))
	copy(out, in)
	return out
}

// ExportData is the backup document written by export
type ExportData struct {
	Habits     []Habit    `json:"habits" yaml:"habits"`
	Activities []Activity `json:"activities" yaml:"activities"`
	ExportDate string     `json:"exportDate" yaml:"exportDate"`
}

// ImportData is an accepted import document. A nil collection means the key was
// absent and the stored collection is left untouched; a non-nil empty slice
// replaces the stored collection with nothing.
type ImportData struct {
	Habits     *[]Habit    `json:"habits,omitempty" yaml:"habits,omitempty"`
	Activities *[]Activity `json:"activities,omitempty" yaml:"activities,omitempty"`
}

// ImportFromExport converts an export document into a full import
func ImportFromExport(e ExportData) ImportData {
	habits := CloneHabits(e.Habits)
	activities := CloneActivities(e.Activities)
	return ImportData{Habits: &habits, Activities: &activities}
}

// Empty reports whether the document carries neither collection
func (d ImportData) Empty() bool {
	return d.Habits == nil && d.Activities == nil
}
