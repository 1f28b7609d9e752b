package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/storage"
	"github.com/julianstephens/habit-tracker/internal/validation"
)

var testNow = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t fataler, opts ...Option) (*Store, *storage.MemoryStore) {
	t.Helper()
	mem := storage.NewMemoryStore()
	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(sequentialIDs()),
	}
	s := New(mem, append(base, opts...)...)
	if err := s.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s, mem
}

func readEnvelope(t *testing.T, mem *storage.MemoryStore) envelope {
	t.Helper()
	raw, err := mem.GetItem(constants.StorageKey)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func TestOpenUsesSeedWhenStorageEmpty(t *testing.T) {
	s, mem := newTestStore(t)

	habits := s.Habits()
	require.Len(t, habits, 3)
	require.Len(t, s.Activities(), 3)
	require.Equal(t, "1", habits[0].ID)

	for _, a := range s.Activities() {
		require.True(t, a.OnDay(testNow), "seed activity %s should be scheduled today", a.ID)
	}

	// nothing is written until the first change
	_, err := mem.GetItem(constants.StorageKey)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOpenWithEmptySeed(t *testing.T) {
	s, _ := newTestStore(t, WithSeed(models.State{}))
	require.Empty(t, s.Habits())
	require.NotNil(t, s.Habits())
	require.Empty(t, s.Activities())
}

func TestToggleHabitSeedScenario(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.ToggleHabit("1"))
	h, ok := s.Habit("1")
	require.True(t, ok)
	require.True(t, h.CompletedToday)
	require.Equal(t, 16, h.CurrentStreak)
	require.Equal(t, 95, h.Progress)

	// un-completing keeps the streak and progress gained above
	require.NoError(t, s.ToggleHabit("1"))
	h, _ = s.Habit("1")
	require.False(t, h.CompletedToday)
	require.Equal(t, 16, h.CurrentStreak)
	require.Equal(t, 95, h.Progress)
}

func TestToggleHabitClampsProgress(t *testing.T) {
	s, _ := newTestStore(t, WithSeed(models.State{}))

	fields := models.NewHabitFields("Stretch", "health")
	fields.Progress = 97
	h, err := s.AddHabit(fields)
	require.NoError(t, err)

	require.NoError(t, s.ToggleHabit(h.ID))
	got, _ := s.Habit(h.ID)
	require.Equal(t, 100, got.Progress)
	require.Equal(t, 1, got.CurrentStreak)
}

func TestAddHabitAssignsIdentity(t *testing.T) {
	s, mem := newTestStore(t, WithSeed(models.State{}))

	fields := models.NewHabitFields("Journal", "personal")
	fields.Description = "one page"
	fields.ReminderTime = "21:00"

	h, err := s.AddHabit(fields)
	require.NoError(t, err)
	require.Equal(t, "id-1", h.ID)
	require.True(t, h.CreatedAt.Equal(testNow))

	want := fields.Build("id-1", testNow)
	if diff := cmp.Diff(want, h); diff != "" {
		t.Errorf("habit mismatch (-want +got):\n%s", diff)
	}

	env := readEnvelope(t, mem)
	require.Equal(t, constants.StorageVersion, env.Version)
	require.Len(t, env.State.Habits, 1)
	require.Equal(t, "Journal", env.State.Habits[0].Name)
}

func TestAddHabitDoesNotValidate(t *testing.T) {
	s, _ := newTestStore(t, WithSeed(models.State{}))

	h, err := s.AddHabit(models.HabitFields{})
	require.NoError(t, err)
	require.Equal(t, "", h.Name)
	require.Len(t, s.Habits(), 1)
}

func TestAddKeepsRangeInvariants(t *testing.T) {
	s, _ := newTestStore(t, WithSeed(models.State{}))

	h, err := s.AddHabit(models.HabitFields{Name: "Walk", Progress: 150, CurrentStreak: -3})
	require.NoError(t, err)
	require.Equal(t, 100, h.Progress)
	require.Equal(t, 0, h.CurrentStreak)
	require.Equal(t, "", h.Color)

	a, err := s.AddActivity(models.ActivityFields{Name: "Nap", Duration: -20})
	require.NoError(t, err)
	require.Equal(t, 0, a.Duration)

	// an unvalidated add still exports and imports unchanged
	exp := s.ExportData()
	require.NoError(t, s.ClearAllData())
	require.NoError(t, s.ImportData(models.ImportFromExport(exp)))
	if diff := cmp.Diff(exp.Habits, s.Habits()); diff != "" {
		t.Errorf("habits changed by round trip (-export +imported):\n%s", diff)
	}
}

func TestAddHabitSkipsTakenIDs(t *testing.T) {
	ids := []string{"1", "", "1", "fresh"}
	gen := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	s, _ := newTestStore(t, WithIDGenerator(gen))

	h, err := s.AddHabit(models.NewHabitFields("Walk", "exercise"))
	require.NoError(t, err)
	require.Equal(t, "fresh", h.ID)
}

func TestAddHabitKeepsInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddHabit(models.NewHabitFields("A", "health"))
	require.NoError(t, err)
	_, err = s.AddHabit(models.NewHabitFields("B", "health"))
	require.NoError(t, err)

	var names []string
	for _, h := range s.Habits() {
		names = append(names, h.Name)
	}
	require.Equal(t, []string{"Morning exercise", "Daily reading", "Meditation", "A", "B"}, names)
}

func TestAddActivityGymScenario(t *testing.T) {
	s, _ := newTestStore(t, WithIDGenerator(func() string { return "gym-1" }))

	fields := models.ActivityFields{
		Name:        "Gym",
		Type:        "exercise",
		Time:        "18:00",
		Date:        "2024-01-15",
		Duration:    90,
		IsCompleted: false,
		Color:       "#10B981",
	}
	a, err := s.AddActivity(fields)
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)

	stored, ok := s.Activity(a.ID)
	require.True(t, ok)
	if diff := cmp.Diff(fields.Build(a.ID), stored); diff != "" {
		t.Errorf("activity mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleActivityIsSymmetric(t *testing.T) {
	s, _ := newTestStore(t)
	before, _ := s.Activity("2")

	require.NoError(t, s.ToggleActivity("2"))
	mid, _ := s.Activity("2")
	require.True(t, mid.IsCompleted)

	require.NoError(t, s.ToggleActivity("2"))
	after, _ := s.Activity("2")
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("double toggle changed activity (-before +after):\n%s", diff)
	}
}

func TestDeleteOperations(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.DeleteHabit("2"))
	require.NoError(t, s.DeleteActivity("3"))

	_, ok := s.Habit("2")
	require.False(t, ok)
	_, ok = s.Activity("3")
	require.False(t, ok)
	require.Len(t, s.Habits(), 2)
	require.Len(t, s.Activities(), 2)
}

func TestUnknownIDsAreNoops(t *testing.T) {
	s, mem := newTestStore(t)
	// force an initial write so there is a stored record to compare
	require.NoError(t, s.ToggleActivity("1"))
	before, err := mem.GetItem(constants.StorageKey)
	require.NoError(t, err)
	state := s.State()

	events := 0
	defer s.Subscribe(func(Event) { events++ })()

	require.NoError(t, s.ToggleHabit("missing"))
	require.NoError(t, s.DeleteHabit("missing"))
	require.NoError(t, s.ToggleActivity("missing"))
	require.NoError(t, s.DeleteActivity("missing"))

	after, err := mem.GetItem(constants.StorageKey)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
	if diff := cmp.Diff(state, s.State()); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}
	require.Zero(t, events)
}

func TestExportData(t *testing.T) {
	s, _ := newTestStore(t)

	exp := s.ExportData()
	require.Equal(t, "2024-01-15T09:30:00.000Z", exp.ExportDate)
	require.Len(t, exp.Habits, 3)
	require.Len(t, exp.Activities, 3)

	// the export is a copy
	exp.Habits[0].Name = "changed"
	h, _ := s.Habit("1")
	require.Equal(t, "Morning exercise", h.Name)
}

func TestExportDateIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2024, 3, 1, 20, 15, 30, 123456789, loc)
	s, _ := newTestStore(t, WithClock(func() time.Time { return local }))

	require.Equal(t, "2024-03-02T01:15:30.123Z", s.ExportData().ExportDate)
}

func TestImportReplacesPresentCollections(t *testing.T) {
	s, _ := newTestStore(t)
	activities := s.Activities()

	habits := []models.Habit{models.NewHabitFields("Imported", "health").Build("x1", testNow)}
	require.NoError(t, s.ImportData(models.ImportData{Habits: &habits}))

	if diff := cmp.Diff(habits, s.Habits()); diff != "" {
		t.Errorf("habits not replaced (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(activities, s.Activities()); diff != "" {
		t.Errorf("activities should be untouched (-want +got):\n%s", diff)
	}
}

func TestImportEmptyCollectionClearsIt(t *testing.T) {
	s, _ := newTestStore(t)

	empty := []models.Activity{}
	require.NoError(t, s.ImportData(models.ImportData{Activities: &empty}))
	require.Empty(t, s.Activities())
	require.Len(t, s.Habits(), 3)
}

func TestImportNothingIsNoop(t *testing.T) {
	s, mem := newTestStore(t)

	res, err := s.Import(models.ImportData{})
	require.NoError(t, err)
	require.False(t, res.HasIssues())

	_, err = mem.GetItem(constants.StorageKey)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestImportRejectsInvalidRecords(t *testing.T) {
	s, _ := newTestStore(t)
	before := s.State()

	habits := []models.Habit{{ID: "", Name: ""}}
	err := s.ImportData(models.ImportData{Habits: &habits})
	require.ErrorIs(t, err, ErrInvalidImport)

	var res *validation.Result
	require.ErrorAs(t, err, &res)
	require.True(t, res.HasIssues())

	if diff := cmp.Diff(before, s.State()); diff != "" {
		t.Errorf("rejected import changed state (-before +after):\n%s", diff)
	}
}

func TestImportSanitizesByDefault(t *testing.T) {
	s, _ := newTestStore(t)

	h := models.NewHabitFields("Overachiever", "health").Build("x1", testNow)
	h.Progress = 250
	habits := []models.Habit{h}

	res, err := s.Import(models.ImportData{Habits: &habits})
	require.NoError(t, err)
	require.Len(t, res.Fixed(), 1)

	got, _ := s.Habit("x1")
	require.Equal(t, 100, got.Progress)
}

func TestImportStrictModeRejectsFixable(t *testing.T) {
	s, _ := newTestStore(t, WithImportMode(validation.ModeStrict))

	h := models.NewHabitFields("Overachiever", "health").Build("x1", testNow)
	h.Progress = 250
	habits := []models.Habit{h}

	err := s.ImportData(models.ImportData{Habits: &habits})
	require.ErrorIs(t, err, ErrInvalidImport)
	require.Len(t, s.Habits(), 3)
}

func TestSetImportModeAppliesToLaterImports(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetImportMode(validation.ModeStrict)

	h := models.NewHabitFields("Overachiever", "health").Build("x1", testNow)
	h.Progress = -5
	habits := []models.Habit{h}

	require.ErrorIs(t, s.ImportData(models.ImportData{Habits: &habits}), ErrInvalidImport)

	s.SetImportMode(validation.ModeSanitize)
	require.NoError(t, s.ImportData(models.ImportData{Habits: &habits}))
	got, ok := s.Habit("x1")
	require.True(t, ok)
	require.Equal(t, 0, got.Progress)
}

func TestClearAllData(t *testing.T) {
	s, mem := newTestStore(t)

	require.NoError(t, s.ClearAllData())
	require.Empty(t, s.Habits())
	require.Empty(t, s.Activities())

	raw, err := mem.GetItem(constants.StorageKey)
	require.NoError(t, err)
	require.JSONEq(t, `{"state":{"habits":[],"activities":[]},"version":0}`, string(raw))
}

func TestPersistFailureRollsBack(t *testing.T) {
	s, mem := newTestStore(t)
	before := s.State()

	events := 0
	defer s.Subscribe(func(Event) { events++ })()

	mem.FailWrites = errors.New("disk full")

	require.Error(t, s.ToggleHabit("1"))
	_, err := s.AddHabit(models.NewHabitFields("x", "health"))
	require.Error(t, err)
	require.Error(t, s.ClearAllData())

	if diff := cmp.Diff(before, s.State()); diff != "" {
		t.Errorf("failed writes leaked into state (-before +after):\n%s", diff)
	}
	require.Zero(t, events)

	mem.FailWrites = nil
	require.NoError(t, s.ToggleHabit("1"))
	require.Equal(t, 1, events)
}

func TestRehydrateFromStorage(t *testing.T) {
	mem := storage.NewMemoryStore()
	first := New(mem, WithClock(func() time.Time { return testNow }))
	require.NoError(t, first.Open())
	require.NoError(t, first.ToggleHabit("1"))
	require.NoError(t, first.DeleteActivity("2"))

	second := New(mem)
	require.NoError(t, second.Open())
	if diff := cmp.Diff(first.State(), second.State()); diff != "" {
		t.Errorf("rehydrated state differs (-first +second):\n%s", diff)
	}
}

func TestOpenRejectsCorruptAndNewerState(t *testing.T) {
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.SetItem(constants.StorageKey, []byte(`{"state":`)))
	require.Error(t, New(mem).Open())

	require.NoError(t, mem.SetItem(constants.StorageKey, []byte(`{"state":{"habits":[],"activities":[]},"version":7}`)))
	require.ErrorIs(t, New(mem).Open(), ErrUnsupportedVersion)
}

func TestOpenAcceptsMissingCollections(t *testing.T) {
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.SetItem(constants.StorageKey, []byte(`{"state":{},"version":0}`)))

	s := New(mem)
	require.NoError(t, s.Open())
	require.NotNil(t, s.Habits())
	require.Empty(t, s.Habits())
}

func TestOperationsRequireOpen(t *testing.T) {
	s := New(storage.NewMemoryStore())
	require.ErrorIs(t, s.ToggleHabit("1"), ErrNotOpen)
	require.ErrorIs(t, s.SaveSettings(models.DefaultSettings()), ErrNotOpen)
}

func TestReloadPicksUpExternalChanges(t *testing.T) {
	mem := storage.NewMemoryStore()
	a := New(mem)
	b := New(mem)
	require.NoError(t, a.Open())
	require.NoError(t, b.Open())

	var got []Event
	defer b.Subscribe(func(e Event) { got = append(got, e) })()

	require.NoError(t, a.DeleteHabit("1"))
	require.Len(t, b.Habits(), 3)

	require.NoError(t, b.Reload())
	require.Len(t, b.Habits(), 2)
	require.Len(t, got, 1)
	require.Equal(t, EventReloaded, got[0].Kind)
	require.Len(t, got[0].State.Habits, 2)
}

func TestSettings(t *testing.T) {
	s, mem := newTestStore(t)
	require.Equal(t, models.DefaultSettings(), s.Settings())

	settings := s.Settings()
	settings.Theme = constants.ThemeDark
	settings.AutoBackup = true
	require.NoError(t, s.SaveSettings(settings))

	raw, err := mem.GetItem(constants.SettingsKey)
	require.NoError(t, err)
	require.JSONEq(t, `{"theme":"dark","habitReminders":true,"activityReminders":true,"achievementNotifications":true,"analytics":true,"autoBackup":true}`, string(raw))

	reopened := New(mem)
	require.NoError(t, reopened.Open())
	require.Equal(t, settings, reopened.Settings())

	settings.Theme = "neon"
	require.Error(t, s.SaveSettings(settings))
	require.Equal(t, constants.ThemeDark, s.Settings().Theme)
}

func TestSettingsPartialRecordKeepsDefaults(t *testing.T) {
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.SetItem(constants.SettingsKey, []byte(`{"theme":"light"}`)))

	s := New(mem)
	require.NoError(t, s.Open())

	want := models.DefaultSettings()
	want.Theme = constants.ThemeLight
	require.Equal(t, want, s.Settings())
}

func TestEnsurePersistedWritesSeedOnce(t *testing.T) {
	s, mem := newTestStore(t)

	require.NoError(t, s.EnsurePersisted())
	env := readEnvelope(t, mem)
	require.Len(t, env.State.Habits, 3)

	require.NoError(t, s.ToggleHabit("2"))
	before, err := mem.GetItem(constants.StorageKey)
	require.NoError(t, err)

	// an existing record is left alone
	require.NoError(t, s.EnsurePersisted())
	after, err := mem.GetItem(constants.StorageKey)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}
