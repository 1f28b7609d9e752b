package habits

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/cli/clitest"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/tui/forms"
)

func TestHabitAddCmd(t *testing.T) {
	env := clitest.New(t, storeWithoutSeed()...)

	cmd := &HabitAddCmd{Name: "Stretch", Category: "exercise", Frequency: "weekly", Target: 3, Reminder: "7:15"}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	habits := env.Ctx.Store.Habits()
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	h := habits[0]
	if h.ID != "id-1" || h.Color != "#4CAF50" || h.TargetFrequency != 3 || h.ReminderTime != "07:15" {
		t.Errorf("unexpected habit: %+v", h)
	}
	if h.FrequencyType != models.FrequencyWeekly || !h.IsActive || h.CompletedToday {
		t.Errorf("unexpected defaults: %+v", h)
	}
	if !strings.Contains(env.Out.String(), "Added habit: Stretch (ID: id-1)") {
		t.Errorf("unexpected output: %q", env.Out.String())
	}
}

func TestHabitAddCmdValidate(t *testing.T) {
	if err := (&HabitAddCmd{Target: 1}).Validate(); err == nil {
		t.Error("expected error for missing name")
	}
	if err := (&HabitAddCmd{Interactive: true, Target: 1}).Validate(); err != nil {
		t.Errorf("interactive add should not need a name: %v", err)
	}
	if err := (&HabitAddCmd{Name: "x", Target: 0}).Validate(); err == nil {
		t.Error("expected error for zero target")
	}
}

func TestHabitAddCmdInteractive(t *testing.T) {
	env := clitest.New(t, storeWithoutSeed()...)

	orig := runForm
	defer func() { runForm = orig }()
	runForm = func(fm *forms.HabitFormModel) error {
		if fm.Name != "Journal" || fm.Category != "personal" {
			t.Errorf("flags not prefilled: %+v", fm)
		}
		fm.Description = "Write one page"
		fm.Target = "2"
		return nil
	}

	cmd := &HabitAddCmd{Name: "Journal", Category: "personal", Interactive: true}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("interactive add failed: %v", err)
	}

	h := env.Ctx.Store.Habits()[0]
	if h.Description != "Write one page" || h.TargetFrequency != 2 || h.Color != "#607D8B" {
		t.Errorf("unexpected habit: %+v", h)
	}
}

func TestHabitAddCmdInteractiveAborted(t *testing.T) {
	env := clitest.New(t, storeWithoutSeed()...)

	orig := runForm
	defer func() { runForm = orig }()
	runForm = func(*forms.HabitFormModel) error { return errors.New("user aborted") }

	if err := (&HabitAddCmd{Interactive: true, Target: 1}).Run(env.Ctx); err == nil {
		t.Fatal("expected aborted form to fail")
	}
	if len(env.Ctx.Store.Habits()) != 0 {
		t.Error("aborted form should not add a habit")
	}
}

func TestHabitListCmd(t *testing.T) {
	env := clitest.New(t)

	if err := (&HabitListCmd{Status: "active"}).Run(env.Ctx); err != nil {
		t.Fatalf("habit list failed: %v", err)
	}
	out := env.Out.String()
	if !strings.Contains(out, "3 all, 1 active, 2 completed today") {
		t.Errorf("missing counts: %q", out)
	}
	if !strings.Contains(out, "Morning exercise") || strings.Contains(out, "Meditation") {
		t.Errorf("active filter not applied: %q", out)
	}

	if err := (&HabitListCmd{Status: "bogus"}).Run(env.Ctx); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestHabitListCmdJSON(t *testing.T) {
	env := clitest.New(t)

	if err := (&HabitListCmd{Status: "all", Search: "READ", JSON: true}).Run(env.Ctx); err != nil {
		t.Fatalf("habit list --json failed: %v", err)
	}

	var habits []models.Habit
	if err := json.Unmarshal(env.Out.Bytes(), &habits); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, env.Out.String())
	}
	if len(habits) != 1 || habits[0].Name != "Daily reading" {
		t.Errorf("unexpected habits: %+v", habits)
	}
}

func TestHabitToggleCmd(t *testing.T) {
	env := clitest.New(t)

	if err := (&HabitToggleCmd{ID: "1"}).Run(env.Ctx); err != nil {
		t.Fatalf("habit toggle failed: %v", err)
	}
	h, _ := env.Ctx.Store.Habit("1")
	if !h.CompletedToday || h.CurrentStreak != 16 || h.Progress != 95 {
		t.Errorf("unexpected habit after toggle: %+v", h)
	}
	if !strings.Contains(env.Out.String(), "streak 16") {
		t.Errorf("unexpected output: %q", env.Out.String())
	}
}

func TestUnknownHabitIsNotAnError(t *testing.T) {
	env := clitest.New(t)
	before := env.Ctx.Store.State()

	cmds := []interface {
		Run(*cli.Context) error
	}{
		&HabitToggleCmd{ID: "missing"},
		&HabitDeleteCmd{ID: "missing"},
		&HabitShowCmd{ID: "missing"},
	}
	for _, cmd := range cmds {
		if err := cmd.Run(env.Ctx); err != nil {
			t.Errorf("%T returned error for unknown id: %v", cmd, err)
		}
	}

	if strings.Count(env.Out.String(), "No habit with ID missing") != 3 {
		t.Errorf("expected a notice per command, got %q", env.Out.String())
	}
	if len(env.Ctx.Store.Habits()) != len(before.Habits) {
		t.Error("state changed")
	}
}

func TestHabitDeleteAndShowCmd(t *testing.T) {
	env := clitest.New(t)

	if err := (&HabitShowCmd{ID: "3"}).Run(env.Ctx); err != nil {
		t.Fatalf("habit show failed: %v", err)
	}
	if !strings.Contains(env.Out.String(), "Meditation") || !strings.Contains(env.Out.String(), "Streak:      22") {
		t.Errorf("unexpected show output: %q", env.Out.String())
	}

	if err := (&HabitDeleteCmd{ID: "3"}).Run(env.Ctx); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}
	if _, ok := env.Ctx.Store.Habit("3"); ok {
		t.Error("habit still present after delete")
	}
}
