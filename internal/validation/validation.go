package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
)

// Mode decides what happens to repairable records
type Mode string

const (
	// ModeSanitize repairs fixable issues and accepts the document
	ModeSanitize Mode = "sanitize"
	// ModeStrict rejects any document with an issue
	ModeStrict Mode = "strict"
)

// ParseMode maps a config value to a Mode. Empty selects sanitize.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSanitize:
		return ModeSanitize, nil
	case ModeStrict:
		return ModeStrict, nil
	}
	return "", fmt.Errorf("invalid import mode %q (expected %s or %s)", s, ModeSanitize, ModeStrict)
}

type IssueType string

const (
	IssueMissingID         IssueType = "missing_id"
	IssueMissingName       IssueType = "missing_name"
	IssueDuplicateID       IssueType = "duplicate_id"
	IssueProgressRange     IssueType = "progress_out_of_range"
	IssueNegativeStreak    IssueType = "negative_streak"
	IssueNegativeDuration  IssueType = "negative_duration"
	IssueMissingColor      IssueType = "missing_color"
	IssueUnknownFrequency  IssueType = "unknown_frequency_type"
	IssueTargetFrequency   IssueType = "invalid_target_frequency"
	IssueMissingCreatedAt  IssueType = "missing_created_at"
	IssueUnparseableDate   IssueType = "unparseable_date"
	IssueCompletedNoStreak IssueType = "completed_without_streak"
)

type Severity int

const (
	// SeverityWarning is reported but never blocks an import
	SeverityWarning Severity = iota
	// SeverityFixable is repaired in sanitize mode and rejected in strict mode
	SeverityFixable
	// SeverityFatal rejects the import in every mode
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityFixable:
		return "fixable"
	default:
		return "warning"
	}
}

// Issue is one problem found on one record
type Issue struct {
	Type        IssueType
	Severity    Severity
	Collection  string // "habits" or "activities"
	Index       int
	ID          string
	Description string
	// Fixed is set when the sanitizer repaired the record
	Fixed bool
}

func (i Issue) String() string {
	ref := fmt.Sprintf("%s[%d]", i.Collection, i.Index)
	if i.ID != "" {
		ref = fmt.Sprintf("%s %q", ref, i.ID)
	}
	s := fmt.Sprintf("%s: %s", ref, i.Description)
	if i.Fixed {
		s += " (fixed)"
	}
	return s
}

// Result collects the issues of one validation pass. A rejected *Result is
// also an error.
type Result struct {
	Mode   Mode
	Issues []Issue
}

func (r *Result) HasIssues() bool {
	return len(r.Issues) > 0
}

func (r *Result) count(sev Severity) int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == sev {
			n++
		}
	}
	return n
}

// Accepted reports whether the validated document may be stored
func (r *Result) Accepted() bool {
	if r.count(SeverityFatal) > 0 {
		return false
	}
	return r.Mode != ModeStrict || r.count(SeverityFixable) == 0
}

// Fixed returns the issues the sanitizer repaired
func (r *Result) Fixed() []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Fixed {
			out = append(out, is)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all issues
func (r *Result) FormatReport() string {
	if !r.HasIssues() {
		return "No issues detected."
	}

	var b strings.Builder
	b.WriteString("Issues detected:\n")
	for _, is := range r.Issues {
		fmt.Fprintf(&b, "- [%s] %s\n", is.Severity, is)
	}
	return b.String()
}

func (r *Result) Error() string {
	fatal, fixable := r.count(SeverityFatal), r.count(SeverityFixable)
	switch {
	case fatal > 0:
		return fmt.Sprintf("import rejected: %d invalid record(s)", fatal)
	case fixable > 0:
		return fmt.Sprintf("import rejected in strict mode: %d issue(s)", fixable)
	}
	return "import rejected"
}

// Validator checks imported documents and stored state
type Validator struct {
	Mode Mode
	// Now stamps habits missing a creation time; time.Now when nil
	Now func() time.Time
}

func New(mode Mode) *Validator {
	if mode == "" {
		mode = ModeSanitize
	}
	return &Validator{Mode: mode, Now: time.Now}
}

func (v *Validator) now() time.Time {
	if v.Now == nil {
		return time.Now()
	}
	return v.Now()
}

// ValidateImport returns a sanitized copy of d alongside the issues found. The
// copy is only meaningful when the result is Accepted; d itself is never modified.
func (v *Validator) ValidateImport(d models.ImportData) (models.ImportData, *Result) {
	res := &Result{Mode: v.Mode}
	sanitize := v.Mode != ModeStrict
	out := models.ImportData{}

	if d.Habits != nil {
		habits := models.CloneHabits(*d.Habits)
		v.checkHabits(habits, res, sanitize)
		out.Habits = &habits
	}
	if d.Activities != nil {
		activities := models.CloneActivities(*d.Activities)
		v.checkActivities(activities, res, sanitize)
		out.Activities = &activities
	}

	return out, res
}

// CheckState reports issues in stored state without repairing anything
func (v *Validator) CheckState(s models.State) *Result {
	res := &Result{Mode: ModeStrict}
	state := s.Clone()
	v.checkHabits(state.Habits, res, false)
	v.checkActivities(state.Activities, res, false)
	return res
}

func (v *Validator) checkHabits(habits []models.Habit, res *Result, fix bool) {
	seen := make(map[string]bool, len(habits))

	for i := range habits {
		h := &habits[i]
		add := func(t IssueType, sev Severity, fixed bool, format string, args ...interface{}) {
			res.Issues = append(res.Issues, Issue{
				Type:        t,
				Severity:    sev,
				Collection:  "habits",
				Index:       i,
				ID:          h.ID,
				Description: fmt.Sprintf(format, args...),
				Fixed:       fixed,
			})
		}

		switch {
		case strings.TrimSpace(h.ID) == "":
			add(IssueMissingID, SeverityFatal, false, "habit has no id")
		case seen[h.ID]:
			add(IssueDuplicateID, SeverityFatal, false, "duplicate habit id")
		default:
			seen[h.ID] = true
		}

		if strings.TrimSpace(h.Name) == "" {
			add(IssueMissingName, SeverityWarning, false, "habit has no name")
		}

		if h.Progress < constants.MinProgress || h.Progress > constants.MaxProgress {
			old := h.Progress
			if fix {
				h.Progress = models.ClampProgress(h.Progress)
			}
			add(IssueProgressRange, SeverityFixable, fix, "progress %d outside [0,100]", old)
		}

		if h.CurrentStreak < 0 {
			old := h.CurrentStreak
			if fix {
				h.CurrentStreak = 0
			}
			add(IssueNegativeStreak, SeverityFixable, fix, "negative streak %d", old)
		}

		if strings.TrimSpace(h.Color) == "" {
			add(IssueMissingColor, SeverityWarning, false, "habit has no color")
		}

		if !h.FrequencyType.Valid() {
			add(IssueUnknownFrequency, SeverityWarning, false, "unknown frequency type %q", h.FrequencyType)
		}

		if h.TargetFrequency < 1 {
			add(IssueTargetFrequency, SeverityWarning, false, "target frequency %d below 1", h.TargetFrequency)
		}

		if h.CreatedAt.IsZero() {
			if fix {
				h.CreatedAt = v.now()
			}
			add(IssueMissingCreatedAt, SeverityFixable, fix, "habit has no creation time")
		}

		if h.CompletedToday && h.CurrentStreak == 0 {
			add(IssueCompletedNoStreak, SeverityWarning, false, "completed today with a zero streak")
		}
	}
}

func (v *Validator) checkActivities(activities []models.Activity, res *Result, fix bool) {
	seen := make(map[string]bool, len(activities))

	for i := range activities {
		a := &activities[i]
		add := func(t IssueType, sev Severity, fixed bool, format string, args ...interface{}) {
			res.Issues = append(res.Issues, Issue{
				Type:        t,
				Severity:    sev,
				Collection:  "activities",
				Index:       i,
				ID:          a.ID,
				Description: fmt.Sprintf(format, args...),
				Fixed:       fixed,
			})
		}

		switch {
		case strings.TrimSpace(a.ID) == "":
			add(IssueMissingID, SeverityFatal, false, "activity has no id")
		case seen[a.ID]:
			add(IssueDuplicateID, SeverityFatal, false, "duplicate activity id")
		default:
			seen[a.ID] = true
		}

		if strings.TrimSpace(a.Name) == "" {
			add(IssueMissingName, SeverityWarning, false, "activity has no name")
		}

		if a.Duration < 0 {
			old := a.Duration
			if fix {
				a.Duration = 0
			}
			add(IssueNegativeDuration, SeverityFixable, fix, "negative duration %d", old)
		}

		if strings.TrimSpace(a.Color) == "" {
			add(IssueMissingColor, SeverityWarning, false, "activity has no color")
		}

		if _, ok := a.Day(time.UTC); !ok {
			add(IssueUnparseableDate, SeverityWarning, false, "date %q is not an ISO date", a.Date)
		}
	}
}
