package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/store"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID   string
	Name string
}

// FilterChangedMsg asks the parent to reload the list with a new status filter
type FilterChangedMsg struct {
	Status store.HabitStatus
}

type Item struct {
	Habit models.Habit
}

func (i Item) Title() string {
	if i.Habit.CompletedToday {
		return "✓ " + i.Habit.Name
	}
	return "○ " + i.Habit.Name
}

func (i Item) Description() string {
	return fmt.Sprintf("%s | streak %d | %d%% | %d/7 this week",
		models.CategoryLabel(i.Habit.Category), i.Habit.CurrentStreak, i.Habit.Progress, i.Habit.WeeklyProgress.Completed())
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	Filter key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "done today"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
	}
}

var statusCycle = []store.HabitStatus{store.HabitsAll, store.HabitsActive, store.HabitsCompleted}

type Model struct {
	list   list.Model
	keys   KeyMap
	status store.HabitStatus
}

func New(habits []models.Habit, width, height int) Model {
	l := list.New(toItems(habits), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	// '/' filtering would fight with the status filter
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete, keys.Filter}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys, status: store.HabitsAll}
}

func toItems(habits []models.Habit) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h}
	}
	return items
}

func (m *Model) SetHabits(habits []models.Habit) {
	m.list.SetItems(toItems(habits))
}

func (m Model) Status() store.HabitStatus {
	return m.status
}

// Selected returns the highlighted habit
func (m Model) Selected() (models.Habit, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Habit, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: h.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: h.ID, Name: h.Name} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Filter):
			m.status = nextStatus(m.status)
			status := m.status
			return m, func() tea.Msg { return FilterChangedMsg{Status: status} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func nextStatus(s store.HabitStatus) store.HabitStatus {
	for i, st := range statusCycle {
		if st == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return store.HabitsAll
}

func (m Model) View() string {
	header := fmt.Sprintf("  Showing: %s\n", m.status)
	if len(m.list.Items()) == 0 {
		if m.status != store.HabitsAll {
			return header + "\n  No habits match this filter.\n  Press 'f' to change it."
		}
		return header + "\n  No habits yet.\n  Press 'a' to add one."
	}
	return header + m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, max(height-1, 0))
}
